package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/stageload/pkg/report"
	"github.com/gnames/stageload/pkg/schema"
)

func checkFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown format %q, use text or json", format)
	}
}

func printJSON(w io.Writer, v any) error {
	bs, err := gnfmt.GNjson{Pretty: true}.Encode(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bs))
	return err
}

func printReport(w io.Writer, rep *report.Report, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == "json" {
		return printJSON(w, rep)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Run:\t%s\n", rep.RunID)
	fmt.Fprintf(tw, "Source:\t%s (%s)\n", rep.SourcePath,
		humanize.Bytes(uint64(rep.SourceSize)))
	fmt.Fprintf(tw, "Table:\t%s\n", rep.Table)
	fmt.Fprintf(tw, "Status:\t%s\n", rep.Status)
	fmt.Fprintf(tw, "Duration:\t%s\n",
		gnfmt.TimeString(rep.Duration().Seconds()))
	fmt.Fprintf(tw, "Loaded rows:\t%s\n", humanize.Comma(rep.Loaded))
	if rep.Audited() {
		fmt.Fprintf(tw, "Data lines:\t%s\n", humanize.Comma(rep.Audit.DataLines))
		fmt.Fprintf(tw, "Skipped lines:\t%s\n", humanize.Comma(rep.Skipped))
		fmt.Fprintf(tw, "Field count mismatch:\t%s\n",
			humanize.Comma(rep.Audit.FieldMismatch))
		if rep.Audit.InvalidUTF8 > 0 {
			fmt.Fprintf(tw, "Invalid UTF-8 lines:\t%s\n",
				humanize.Comma(rep.Audit.InvalidUTF8))
		}
		if rep.Audit.CRLF > 0 {
			fmt.Fprintf(tw, "CRLF lines:\t%s\n", humanize.Comma(rep.Audit.CRLF))
		}
		if !rep.Audit.HeaderMatches {
			fmt.Fprintf(tw, "Header:\t%s (expected %s)\n",
				strings.Join(rep.Audit.Header, ","),
				strings.Join(schema.StagingRow{}.Columns(), ","))
		}
	}
	fmt.Fprintf(tw, "Warnings:\t%s\n", humanize.Comma(rep.WarningCount))
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, v := range rep.Warnings {
		fmt.Fprintf(w, "  %s %d: %s\n", v.Level, v.Code, v.Message)
	}
	if int64(len(rep.Warnings)) < rep.WarningCount {
		fmt.Fprintf(w, "  ... %s more\n",
			humanize.Comma(rep.WarningCount-int64(len(rep.Warnings))))
	}
	return nil
}

func printHistory(w io.Writer, reps []*report.Report, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == "json" {
		return printJSON(w, reps)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSTATUS\tLOADED\tSKIPPED\tWARNINGS\tSOURCE")
	for _, v := range reps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v.StartedAt.Local().Format(time.DateTime),
			v.Status,
			humanize.Comma(v.Loaded),
			humanize.Comma(v.Skipped),
			humanize.Comma(v.WarningCount),
			v.SourcePath,
		)
	}
	return tw.Flush()
}

func printRows(
	w io.Writer,
	total int64,
	rows []schema.StagingRow,
	format string,
) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == "json" {
		return printJSON(w, struct {
			Total int64               `json:"total"`
			Rows  []schema.StagingRow `json:"rows"`
		}{total, rows})
	}

	fmt.Fprintf(w, "%s: %s rows\n", schema.TableName, humanize.Comma(total))
	if len(rows) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(
		strings.Join(schema.StagingRow{}.Columns(), "\t")))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join([]string{
			intCell(r.ID),
			strCell(r.CKey),
			strCell(r.FirstName),
			strCell(r.LastName),
			strCell(r.MatStatus),
			strCell(r.Gender),
			dateCell(r.CreateDate),
		}, "\t"))
	}
	return tw.Flush()
}

const nullCell = "NULL"

func intCell(i *int32) string {
	if i == nil {
		return nullCell
	}
	return fmt.Sprintf("%d", *i)
}

func strCell(s *string) string {
	if s == nil {
		return nullCell
	}
	return *s
}

func dateCell(t *time.Time) string {
	if t == nil {
		return nullCell
	}
	return t.Format(time.DateOnly)
}
