package iologger

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/stageload/pkg/errcode"
)

// CreateLogFileError reports a stageload.log that cannot be opened for
// writing, usually because the log directory is missing.
func CreateLogFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  "Cannot open stageload log <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("open log %s: %w", path, err),
	}
}
