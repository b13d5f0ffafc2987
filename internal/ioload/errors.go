package ioload

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/gnames/gn"
	"github.com/gnames/stageload/pkg/errcode"
	"github.com/gnames/stageload/pkg/schema"
)

// loadFailed marks err as a failure of the load run. Errors that are
// not *gn.Error are returned wrapped in a generic one.
func loadFailed(err error) error {
	if err == nil {
		return nil
	}
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return &gn.Error{
			Code: errcode.UnknownError,
			Msg:  "Load failed",
			Err:  fmt.Errorf("%w: %w", errcode.ErrLoadFailed, err),
		}
	}
	if !errors.Is(gnErr.Err, errcode.ErrLoadFailed) {
		gnErr.Err = fmt.Errorf("%w: %w", errcode.ErrLoadFailed, gnErr.Err)
	}
	return gnErr
}

// SourceError creates an error for a source file that cannot be used.
func SourceError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		msg := `Source file <em>%s</em> does not exist

The staging table was recreated and stays empty.`
		return &gn.Error{
			Code: errcode.LoadSourceNotFoundError,
			Msg:  msg,
			Vars: []any{path},
			Err:  fmt.Errorf("source %s not found: %w", path, err),
		}
	}

	msg := "Cannot read source file <em>%s</em>"
	return &gn.Error{
		Code: errcode.LoadSourceAccessError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot access source %s: %w", path, err),
	}
}

// ConnAcquireError creates an error for a connection that could not be
// taken from the pool for the load statement.
func ConnAcquireError(err error) error {
	msg := "Lost connection to the database before loading data"
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot acquire connection: %w", err),
	}
}

// StatementError creates an error for a rejected LOAD DATA statement.
func StatementError(stmt string, err error) error {
	msg := `Bulk load into <em>%s</em> failed

<em>Possible causes:</em>
  - local_infile is disabled on the server
  - allow_local_infile is false in the configuration
  - The file cannot be read by the client

<em>How to fix:</em>
  1. Run <em>SET GLOBAL local_infile = 1</em> on the server
  2. Check <em>database.allow_local_infile</em> in config.yaml
  3. Check the log file for the server message`

	return &gn.Error{
		Code: errcode.LoadStatementError,
		Msg:  msg,
		Vars: []any{schema.TableName},
		Err:  fmt.Errorf("%s: %w", stmt, err),
	}
}

// StatsError creates an error for load statistics that could not be
// read. It is logged, never returned from Load.
func StatsError(query string, err error) error {
	msg := "Cannot read load statistics"
	return &gn.Error{
		Code: errcode.LoadStatsError,
		Msg:  msg,
		Err:  fmt.Errorf("%s: %w", query, err),
	}
}

// CommitError creates an error for a failed commit of loaded rows.
func CommitError(err error) error {
	msg := `Cannot commit loaded data

The staging table content is unreliable until a load completes.`
	return &gn.Error{
		Code: errcode.LoadCommitError,
		Msg:  msg,
		Err:  fmt.Errorf("commit: %w", err),
	}
}

// cancelled is true when err comes from a cancelled context, also when
// it is wrapped in a *gn.Error.
func cancelled(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	var gnErr *gn.Error
	return errors.As(err, &gnErr) && errors.Is(gnErr.Err, context.Canceled)
}
