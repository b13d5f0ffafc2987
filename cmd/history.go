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
	"github.com/gnames/gnuuid"
	"github.com/gnames/stageload/internal/iofs"
	"github.com/gnames/stageload/internal/iohistory"
	"github.com/gnames/stageload/pkg/config"
	"github.com/gnames/stageload/pkg/lifecycle"
	"github.com/spf13/cobra"
)

// getHistoryCmd returns the history command.
func getHistoryCmd() *cobra.Command {
	var (
		limit  int
		source string
		format string
	)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List previous load runs",
		Long: `List previous load runs, newest first.

Runs are recorded in ~/.local/share/stageload/history.sqlite when
load.history is true in the configuration.

Examples:
  stageload history
  stageload history -n 5
  stageload history --source customers.csv --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, limit, source, format)
		},
	}

	historyCmd.Flags().IntVarP(&limit, "number", "n", 20,
		"number of runs to show")
	historyCmd.Flags().StringVarP(&source, "source", "s", "",
		"show only runs of this CSV file")
	historyCmd.Flags().StringVar(&format, "format", "text",
		"output format: text or json")

	return historyCmd
}

func runHistory(
	cmd *cobra.Command,
	limit int,
	source, format string,
) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	ctx := context.Background()

	filter := lifecycle.HistoryFilter{Limit: limit}
	if source != "" {
		path, err := iofs.NormalizePath(source)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		filter.SourceID = gnuuid.New(path).String()
	}

	hist, err := iohistory.Open(ctx, config.HistoryFilePath(cfg.HomeDir))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer hist.Close()

	reps, err := hist.List(ctx, filter)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if len(reps) == 0 && format == "text" {
		gn.Info("No runs recorded yet")
		return nil
	}
	return printHistory(cmd.OutOrStdout(), reps, format)
}
