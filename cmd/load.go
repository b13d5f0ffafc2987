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
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/gnames/stageload/internal/iodb"
	"github.com/gnames/stageload/internal/iohistory"
	"github.com/gnames/stageload/internal/ioload"
	"github.com/gnames/stageload/pkg/config"
	"github.com/spf13/cobra"
)

// getLoadCmd returns the load command.
func getLoadCmd() *cobra.Command {
	var (
		noAudit    bool
		noProgress bool
		format     string
	)

	loadCmd := &cobra.Command{
		Use:   "load <file.csv>",
		Short: "Load a CSV file into the staging table",
		Long: `Load a CSV file into the MySQL staging table stage_tbl.

This command:
  1. Connects to MySQL using configuration settings
  2. Drops stage_tbl and creates it again
  3. Runs LOAD DATA LOCAL INFILE with the file, skipping the header line
  4. Commits and closes the connection

The file is comma separated with '\n' line endings. Quotes have no
special meaning, rows the server cannot use are ignored with a warning.
At the same time the file is audited on the client to report how many
lines the server skipped.

Examples:
  stageload load customers.csv
  stageload load ~/exports/customers.csv --format json
  stageload load customers.csv --no-audit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var loadOpts []config.Option
			if noAudit {
				loadOpts = append(loadOpts, config.OptLoadAudit(false))
			}
			if noProgress {
				loadOpts = append(loadOpts, config.OptLoadProgress(false))
			}
			cfg.Update(loadOpts)
			return runLoad(cmd, args[0], format)
		},
	}

	loadCmd.Flags().BoolVar(&noAudit, "no-audit", false,
		"skip the client-side scan of the file")
	loadCmd.Flags().BoolVar(&noProgress, "no-progress", false,
		"hide the progress bar of the file scan")
	loadCmd.Flags().StringVarP(&format, "format", "f", "text",
		"report format: text or json")

	return loadCmd
}

func runLoad(cmd *cobra.Command, source, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var loadOpts []ioload.Option
	if cfg.Load.History {
		hist, err := iohistory.Open(ctx, config.HistoryFilePath(cfg.HomeDir))
		if err != nil {
			gn.Warn("Run history is not available")
			gn.PrintErrorMessage(err)
		} else {
			defer hist.Close()
			loadOpts = append(loadOpts, ioload.OptHistory(hist))
		}
	}

	l := ioload.New(cfg, iodb.NewMySQLOperator(), loadOpts...)
	rep, err := l.Load(ctx, source)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return printReport(cmd.OutOrStdout(), rep, format)
}
