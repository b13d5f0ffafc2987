package ioaudit

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/stageload/pkg/errcode"
)

// ReadError creates an error for a source that could not be scanned.
func ReadError(path string, err error) error {
	msg := "Cannot audit <em>%s</em>"
	return &gn.Error{
		Code: errcode.AuditReadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot audit %s: %w", path, err),
	}
}
