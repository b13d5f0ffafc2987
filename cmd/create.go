/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/stageload/internal/iodb"
	"github.com/gnames/stageload/internal/ioschema"
	"github.com/gnames/stageload/pkg/db"
	"github.com/gnames/stageload/pkg/schema"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty staging table",
		Long: `Drop the staging table stage_tbl and create it again, empty.

This command:
  1. Connects to MySQL using configuration settings
  2. Checks if stage_tbl holds rows and prompts for confirmation
  3. Drops stage_tbl and creates it from the built-in schema

The load command does the same before every load, use create to
prepare the table for other tools.

Use --force to skip confirmation.

Examples:
  stageload create
  stageload create --force
  stageload create -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, forceCreate)
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing rows without confirmation")

	return createCmd
}

func runCreate(
	cmd *cobra.Command,
	_ []string,
	force bool,
) error {
	ctx := context.Background()

	op := iodb.NewMySQLOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	rows, err := stagedRows(ctx, op)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if rows > 0 && !force {
		gn.Warn("Table <em>%s</em> contains %s rows, they will be dropped.",
			schema.TableName, humanize.Comma(rows))
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			gn.Warn("Failed to read user input")
			return err
		}
		if !ok {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	if err = ioschema.NewManager(op).Recreate(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Table <em>%s</em> is created and empty", schema.TableName)
	return nil
}

// stagedRows returns the number of rows in the staging table, 0 if the
// table does not exist.
func stagedRows(ctx context.Context, op db.Operator) (int64, error) {
	exists, err := op.TableExists(ctx, schema.TableName)
	if err != nil || !exists {
		return 0, err
	}
	return op.RowCount(ctx, schema.TableName)
}

// confirm asks a yes/no question, only "yes" and "y" confirm.
func confirm(r io.Reader, w io.Writer) (bool, error) {
	fmt.Fprint(w, "\nDo you want to continue? (yes/no): ")

	reader := bufio.NewReader(r)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y", nil
}
