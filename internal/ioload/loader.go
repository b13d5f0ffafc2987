// Package ioload implements lifecycle.Loader: it recreates the staging
// table and fills it from a CSV file with one LOAD DATA LOCAL INFILE
// statement. This is an impure I/O package.
package ioload

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/gnames/stageload/internal/ioaudit"
	"github.com/gnames/stageload/internal/iofs"
	"github.com/gnames/stageload/internal/ioschema"
	"github.com/gnames/stageload/pkg/config"
	"github.com/gnames/stageload/pkg/db"
	"github.com/gnames/stageload/pkg/lifecycle"
	"github.com/gnames/stageload/pkg/report"
	"github.com/gnames/stageload/pkg/schema"
	"golang.org/x/sync/errgroup"
)

type loader struct {
	cfg      *config.Config
	operator db.Operator
	schema   lifecycle.SchemaManager
	auditor  lifecycle.Auditor
	history  lifecycle.History
}

// Option configures the loader.
type Option func(*loader)

// OptAuditor replaces the default source auditor. A nil auditor turns
// auditing off.
func OptAuditor(a lifecycle.Auditor) Option {
	return func(l *loader) {
		l.auditor = a
	}
}

// OptHistory makes the loader save every report to h.
func OptHistory(h lifecycle.History) Option {
	return func(l *loader) {
		l.history = h
	}
}

// New creates a Loader. The operator must be disconnected, Load opens
// and closes the connection itself.
func New(
	cfg *config.Config,
	op db.Operator,
	opts ...Option,
) lifecycle.Loader {
	res := &loader{
		cfg:      cfg,
		operator: op,
		schema:   ioschema.NewManager(op),
	}
	if cfg.Load.Audit {
		res.auditor = ioaudit.New(cfg.Load.Progress)
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Load connects to the database, recreates the staging table, loads the
// source into it and commits. The connection is released on every exit
// path. The report is never nil.
func (l *loader) Load(
	ctx context.Context,
	source string,
) (rep *report.Report, err error) {
	rep = report.New(schema.TableName)
	rep.SourcePath = source

	defer func() {
		rep.Finish(err)
		l.saveHistory(ctx, rep)
	}()

	path, err := iofs.NormalizePath(source)
	if err != nil {
		return rep, loadFailed(err)
	}
	rep.SourcePath = path
	rep.SourceID = gnuuid.New(path).String()

	dbCfg := l.cfg.Database
	if err = l.operator.Connect(ctx, &dbCfg); err != nil {
		return rep, loadFailed(err)
	}
	defer l.disconnect()
	gn.Info("Connection established: <em>%s@%s:%d/%s</em>",
		dbCfg.User, dbCfg.Host, dbCfg.Port, dbCfg.Database)

	gn.Info("Creating stage table <em>%s</em>", schema.TableName)
	if err = l.schema.Recreate(ctx); err != nil {
		return rep, loadFailed(err)
	}

	rep.SourceSize, err = iofs.FileSize(path)
	if err != nil {
		return rep, loadFailed(SourceError(path, err))
	}

	gn.Info("Loading <em>%s</em> (%s)", path,
		humanize.Bytes(uint64(rep.SourceSize)))
	if err = l.loadSource(ctx, path, rep); err != nil {
		return rep, loadFailed(err)
	}

	gn.Info("Data successfully loaded into <em>%s</em>: %s rows in %s",
		schema.TableName, humanize.Comma(rep.Loaded),
		gnfmt.TimeString(rep.Duration().Seconds()))
	return rep, nil
}

// loadSource runs the bulk statement and the optional audit side by
// side. Audit problems are logged, they never fail the load.
func (l *loader) loadSource(
	ctx context.Context,
	path string,
	rep *report.Report,
) error {
	var audit *report.Audit
	g, gCtx := errgroup.WithContext(ctx)

	if l.auditor != nil {
		g.Go(func() error {
			res, err := l.auditor.Audit(gCtx, path)
			if cancelled(err) {
				slog.Debug("Source audit stopped", "path", path)
				return nil
			}
			if err != nil {
				slog.Warn("Source audit failed", "path", path, "error", err)
				return nil
			}
			audit = res
			return nil
		})
	}

	g.Go(func() error {
		return l.bulkLoad(gCtx, path, rep)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	rep.Audit = audit
	if audit != nil && !audit.HeaderMatches {
		slog.Warn("CSV header does not match table columns",
			"header", audit.Header, "columns", schema.StagingRow{}.Columns())
	}
	return nil
}

// bulkLoad executes LOAD DATA in a transaction on a pinned connection,
// so the statistics queries read the warnings of the load itself.
func (l *loader) bulkLoad(
	ctx context.Context,
	path string,
	rep *report.Report,
) error {
	release := l.operator.AllowLocalFile(path)
	defer release()

	conn, err := l.operator.DB().Conn(ctx)
	if err != nil {
		return ConnAcquireError(err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Warn("Cannot release connection", "error", err)
		}
	}()

	stmt := Statement(path)

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return StatementError(stmt, err)
	}
	defer func() {
		err := tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Warn("Cannot roll back load transaction", "error", err)
		}
	}()

	slog.Info("Running bulk load", "statement", stmt)
	res, err := tx.ExecContext(ctx, stmt)
	if err != nil {
		return StatementError(stmt, err)
	}

	if rep.Loaded, err = res.RowsAffected(); err != nil {
		slog.Warn("Cannot read affected rows",
			"error", StatsError("RowsAffected", err))
	}
	l.collectWarnings(ctx, tx, rep)

	if err = tx.Commit(); err != nil {
		return CommitError(err)
	}

	slog.Info("Bulk load committed",
		"table", schema.TableName,
		"loaded", rep.Loaded,
		"warnings", rep.WarningCount,
	)
	return nil
}

// collectWarnings reads the diagnostics of the load statement. SHOW
// WARNINGS goes first, diagnostic statements keep the warning area
// intact for the count query.
func (l *loader) collectWarnings(
	ctx context.Context,
	tx *sql.Tx,
	rep *report.Report,
) {
	if limit := l.cfg.Load.MaxWarnings; limit > 0 {
		warns, err := showWarnings(ctx, tx, limit)
		if err != nil {
			slog.Warn("Cannot read load warnings", "error", err)
		}
		rep.Warnings = warns
		for _, w := range warns {
			slog.Warn("Load warning",
				"level", w.Level, "code", w.Code, "message", w.Message)
		}
	}

	q := "SELECT @@warning_count"
	if err := tx.QueryRowContext(ctx, q).Scan(&rep.WarningCount); err != nil {
		slog.Warn("Cannot read warning count", "error", StatsError(q, err))
	}
	if rep.WarningCount > 0 {
		gn.Warn("Server raised %s warnings during the load",
			humanize.Comma(rep.WarningCount))
	}
}

func showWarnings(
	ctx context.Context,
	tx *sql.Tx,
	limit int,
) ([]report.Warning, error) {
	q := fmt.Sprintf("SHOW WARNINGS LIMIT %d", limit)
	rows, err := tx.QueryContext(ctx, q)
	if err != nil {
		return nil, StatsError(q, err)
	}
	defer rows.Close()

	var res []report.Warning
	for rows.Next() {
		var w report.Warning
		if err := rows.Scan(&w.Level, &w.Code, &w.Message); err != nil {
			return res, StatsError(q, err)
		}
		res = append(res, w)
	}
	if err := rows.Err(); err != nil {
		return res, StatsError(q, err)
	}
	return res, nil
}

func (l *loader) disconnect() {
	if err := l.operator.Close(); err != nil {
		slog.Warn("Cannot close database connection", "error", err)
		return
	}
	gn.Info("Connection closed")
}

func (l *loader) saveHistory(ctx context.Context, rep *report.Report) {
	if l.history == nil {
		return
	}
	if err := l.history.Save(context.WithoutCancel(ctx), rep); err != nil {
		slog.Warn("Cannot save run history", "run", rep.RunID, "error", err)
	}
}
