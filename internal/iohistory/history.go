// Package iohistory implements lifecycle.History on a local SQLite
// file. Every load run, failed or not, becomes one row.
package iohistory

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/stageload/pkg/lifecycle"
	"github.com/gnames/stageload/pkg/report"
	_ "modernc.org/sqlite"
)

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	source_id TEXT NOT NULL,
	source_path TEXT NOT NULL,
	source_size INTEGER NOT NULL DEFAULT 0,
	table_name TEXT NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	status TEXT NOT NULL,
	loaded INTEGER NOT NULL DEFAULT 0,
	skipped INTEGER NOT NULL DEFAULT 0,
	warning_count INTEGER NOT NULL DEFAULT 0,
	warnings TEXT,
	audit TEXT,
	error TEXT
)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_source_id ON runs(source_id)`,
}

// timeLayout has a fixed width, so text order is time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type history struct {
	db  *sql.DB
	enc gnfmt.GNjson
}

// Open opens (and creates if needed) the history database at path.
func Open(ctx context.Context, path string) (lifecycle.History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, OpenError(path, err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, OpenError(path, err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaDDL {
		if _, err = db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, OpenError(path, err)
		}
	}

	return &history{db: db, enc: gnfmt.GNjson{}}, nil
}

// Save stores the report, a report with the same RunID is replaced.
func (h *history) Save(ctx context.Context, rep *report.Report) error {
	warnings, err := h.encode(rep.Warnings)
	if err != nil {
		return WriteError(rep.RunID, err)
	}
	audit, err := h.encode(rep.Audit)
	if err != nil {
		return WriteError(rep.RunID, err)
	}

	q := `INSERT OR REPLACE INTO runs (
		run_id, source_id, source_path, source_size, table_name,
		started_at, finished_at, status, loaded, skipped, warning_count,
		warnings, audit, error
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = h.db.ExecContext(ctx, q,
		rep.RunID, rep.SourceID, rep.SourcePath, rep.SourceSize, rep.Table,
		rep.StartedAt.UTC().Format(timeLayout),
		rep.FinishedAt.UTC().Format(timeLayout),
		string(rep.Status), rep.Loaded, rep.Skipped, rep.WarningCount,
		warnings, audit, nullString(rep.Error),
	)
	if err != nil {
		return WriteError(rep.RunID, err)
	}
	return nil
}

// List returns runs newest first.
func (h *history) List(
	ctx context.Context,
	filter lifecycle.HistoryFilter,
) ([]*report.Report, error) {
	var (
		where []string
		args  []any
	)
	if filter.SourceID != "" {
		where = append(where, "source_id = ?")
		args = append(args, filter.SourceID)
	}

	q := `SELECT run_id, source_id, source_path, source_size, table_name,
		started_at, finished_at, status, loaded, skipped, warning_count,
		warnings, audit, error
	FROM runs`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY started_at DESC"
	if filter.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := h.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, ReadError(err)
	}
	defer rows.Close()

	var res []*report.Report
	for rows.Next() {
		rep, err := h.scan(rows)
		if err != nil {
			return nil, ReadError(err)
		}
		res = append(res, rep)
	}
	if err = rows.Err(); err != nil {
		return nil, ReadError(err)
	}
	return res, nil
}

// Close releases the database.
func (h *history) Close() error {
	return h.db.Close()
}

func (h *history) scan(rows *sql.Rows) (*report.Report, error) {
	var (
		rep                   report.Report
		started, finished     string
		status                string
		warnings, audit, errS sql.NullString
	)
	err := rows.Scan(
		&rep.RunID, &rep.SourceID, &rep.SourcePath, &rep.SourceSize,
		&rep.Table, &started, &finished, &status, &rep.Loaded,
		&rep.Skipped, &rep.WarningCount, &warnings, &audit, &errS,
	)
	if err != nil {
		return nil, err
	}

	if rep.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return nil, err
	}
	if rep.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
		return nil, err
	}
	rep.Status = report.Status(status)
	rep.Error = errS.String

	if warnings.Valid {
		if err = h.enc.Decode([]byte(warnings.String), &rep.Warnings); err != nil {
			return nil, err
		}
	}
	if audit.Valid {
		rep.Audit = &report.Audit{}
		if err = h.enc.Decode([]byte(audit.String), rep.Audit); err != nil {
			return nil, err
		}
	}
	return &rep, nil
}

// encode returns NULL for empty values.
func (h *history) encode(v any) (sql.NullString, error) {
	switch t := v.(type) {
	case []report.Warning:
		if len(t) == 0 {
			return sql.NullString{}, nil
		}
	case *report.Audit:
		if t == nil {
			return sql.NullString{}, nil
		}
	}
	bs, err := h.enc.Encode(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(bs), Valid: true}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
