package errcode

import (
	"errors"

	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBRowCountError

	// Schema errors
	SchemaDropError
	SchemaCreateError

	// Load errors
	LoadSourcePathError
	LoadSourceNotFoundError
	LoadSourceAccessError
	LoadStatementError
	LoadStatsError
	LoadCommitError

	// Audit errors
	AuditReadError

	// History errors
	HistoryOpenError
	HistoryWriteError
	HistoryReadError

	// Preview errors
	PreviewError
)

// ErrLoadFailed is wrapped by every error that aborts a bulk load,
// whatever step it came from.
var ErrLoadFailed = errors.New("load failed")

// Category groups error codes by the load step that produced them.
type Category int

const (
	OtherFailure Category = iota
	ConnectionFailure
	SchemaFailure
	LoadFailure
	CommitFailure
)

func (c Category) String() string {
	switch c {
	case ConnectionFailure:
		return "connection"
	case SchemaFailure:
		return "schema"
	case LoadFailure:
		return "load"
	case CommitFailure:
		return "commit"
	default:
		return "other"
	}
}

// CategoryOf returns the load step category of an error code.
func CategoryOf(code gn.ErrorCode) Category {
	switch code {
	case DBConnectionError, DBNotConnectedError:
		return ConnectionFailure
	case SchemaDropError, SchemaCreateError:
		return SchemaFailure
	case LoadSourcePathError, LoadSourceNotFoundError,
		LoadSourceAccessError, LoadStatementError, LoadStatsError:
		return LoadFailure
	case LoadCommitError:
		return CommitFailure
	default:
		return OtherFailure
	}
}

// CategoryOfError extracts the category from a *gn.Error. Any other
// error falls into OtherFailure.
func CategoryOfError(err error) Category {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return CategoryOf(gnErr.Code)
	}
	return OtherFailure
}

// IsLoadFailure reports whether err aborted a bulk load.
func IsLoadFailure(err error) bool {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return errors.Is(gnErr.Err, ErrLoadFailed)
	}
	return errors.Is(err, ErrLoadFailed)
}
