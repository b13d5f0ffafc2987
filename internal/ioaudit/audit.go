// Package ioaudit implements lifecycle.Auditor. It scans a CSV source
// the way LOAD DATA reads it: lines end with '\n', fields are split on
// ',' and quotes have no special meaning.
package ioaudit

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnlib"
	"github.com/gnames/stageload/pkg/lifecycle"
	"github.com/gnames/stageload/pkg/report"
	"github.com/gnames/stageload/pkg/schema"
)

// checkEvery is how many lines are read between context checks.
const checkEvery = 10_000

// maxLineSize is the longest line the audit keeps in memory. A longer
// line stops the audit, the load itself is not affected.
const maxLineSize = 16 << 20

type auditor struct {
	progress bool
	columns  []string
	maxLine  int
}

// New creates an Auditor. With progress a bar over the bytes read is
// shown on STDERR.
func New(progress bool) lifecycle.Auditor {
	return &auditor{
		progress: progress,
		columns:  schema.StagingRow{}.Columns(),
		maxLine:  maxLineSize,
	}
}

// Audit reads the whole file at path once.
func (a *auditor) Audit(
	ctx context.Context,
	path string,
) (*report.Audit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if a.progress {
		if info, err := f.Stat(); err == nil && info.Size() > 0 {
			bar := newProgressBar(info.Size(), "Auditing: ")
			defer bar.Finish()
			r = bar.NewProxyReader(f)
		}
	}

	res, err := a.scan(ctx, r)
	if err != nil {
		return nil, ReadError(path, err)
	}

	slog.Info("Source audited",
		"path", path,
		"lines", humanize.Comma(res.Lines),
		"data_lines", humanize.Comma(res.DataLines),
		"field_mismatch", res.FieldMismatch,
		"invalid_utf8", res.InvalidUTF8,
		"crlf", res.CRLF,
	)
	return res, nil
}

func (a *auditor) scan(ctx context.Context, r io.Reader) (*report.Audit, error) {
	res := &report.Audit{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, a.maxLine)), a.maxLine)
	sc.Split(splitLines)

	for sc.Scan() {
		a.addLine(res, sc.Bytes())
		if res.Lines%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("line %d is longer than %s: %w",
				res.Lines+1, humanize.IBytes(uint64(a.maxLine)), err)
		}
		return nil, err
	}
	return res, nil
}

// splitLines splits on '\n' only. Unlike bufio.ScanLines it keeps a
// trailing '\r', the server keeps it too.
func splitLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func (a *auditor) addLine(res *report.Audit, line []byte) {
	res.Lines++
	if bytes.HasSuffix(line, []byte{'\r'}) {
		res.CRLF++
		line = line[:len(line)-1]
	}

	if res.Lines == 1 {
		header := strings.Split(gnlib.FixUtf8(string(line)), ",")
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}
		res.Header = header
		res.HeaderMatches = slices.Equal(header, a.columns)
		return
	}

	res.DataLines++
	if !utf8.Valid(line) {
		res.InvalidUTF8++
	}
	if len(line) == 0 {
		res.BlankLines++
		return
	}
	if bytes.Count(line, []byte{','})+1 != len(a.columns) {
		res.FieldMismatch++
	}
}

func newProgressBar(total int64, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start64(total)
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
