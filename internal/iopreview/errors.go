package iopreview

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/stageload/pkg/errcode"
	"github.com/gnames/stageload/pkg/schema"
)

func NotConnectedError() error {
	msg := "Preview attempted without database connection"
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

func PreviewError(err error) error {
	msg := `Cannot read table <em>%s</em>

Run <em>stageload create</em> or <em>stageload load</em> first.`
	return &gn.Error{
		Code: errcode.PreviewError,
		Msg:  msg,
		Vars: []any{schema.TableName},
		Err:  fmt.Errorf("cannot preview %s: %w", schema.TableName, err),
	}
}
