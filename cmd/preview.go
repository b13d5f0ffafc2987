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
	"github.com/gnames/stageload/internal/iopreview"
	"github.com/spf13/cobra"
)

// getPreviewCmd returns the preview command.
func getPreviewCmd() *cobra.Command {
	var (
		limit  int
		format string
	)

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the number of staged rows and the first of them",
		Long: `Show how many rows the staging table stage_tbl holds and print
the first rows as the server stored them.

Examples:
  stageload preview
  stageload preview -n 50
  stageload preview --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, limit, format)
		},
	}

	previewCmd.Flags().IntVarP(&limit, "number", "n", 10,
		"number of rows to show")
	previewCmd.Flags().StringVar(&format, "format", "text",
		"output format: text or json")

	return previewCmd
}

func runPreview(cmd *cobra.Command, limit int, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	ctx := context.Background()

	op := iodb.NewMySQLOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	total, rows, err := iopreview.New(op).Preview(ctx, limit)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return printRows(cmd.OutOrStdout(), total, rows, format)
}
