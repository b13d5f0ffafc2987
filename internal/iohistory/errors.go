package iohistory

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/stageload/pkg/errcode"
)

func OpenError(path string, err error) error {
	msg := "Cannot open run history <em>%s</em>"
	return &gn.Error{
		Code: errcode.HistoryOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot open history %s: %w", path, err),
	}
}

func WriteError(runID string, err error) error {
	msg := "Cannot save run <em>%s</em> to history"
	return &gn.Error{
		Code: errcode.HistoryWriteError,
		Msg:  msg,
		Vars: []any{runID},
		Err:  fmt.Errorf("cannot save run %s: %w", runID, err),
	}
}

func ReadError(err error) error {
	msg := "Cannot read run history"
	return &gn.Error{
		Code: errcode.HistoryReadError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot read history: %w", err),
	}
}
