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
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/stageload/internal/iodb"
	"github.com/gnames/stageload/internal/ioschema"
	"github.com/gnames/stageload/pkg/schema"
	"github.com/spf13/cobra"
)

// getDropCmd returns the drop command.
func getDropCmd() *cobra.Command {
	var forceDrop bool

	dropCmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop the staging table",
		Long: `Drop the staging table stage_tbl if it exists.

Use --force to skip confirmation when the table holds rows.

Examples:
  stageload drop
  stageload drop --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrop(cmd, forceDrop)
		},
	}

	dropCmd.Flags().BoolVarP(&forceDrop, "force", "f",
		false, "drop the table without confirmation")

	return dropCmd
}

func runDrop(cmd *cobra.Command, force bool) error {
	ctx := context.Background()

	op := iodb.NewMySQLOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	rows, err := stagedRows(ctx, op)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if rows > 0 && !force {
		gn.Warn("Table <em>%s</em> contains rows.", schema.TableName)
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if !ok {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	if err = ioschema.NewManager(op).Drop(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Table <em>%s</em> is dropped", schema.TableName)
	return nil
}
