package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/stageload/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// DropError creates an error for a failed DROP TABLE.
func DropError(table, stmt string, err error) error {
	msg := `Cannot drop table <em>%s</em>

<em>Possible causes:</em>
  - Insufficient database permissions
  - Table is locked by another session

<em>How to fix:</em>
  1. Check database user has DROP permission
  2. Check for long running transactions on the table`

	return &gn.Error{
		Code: errcode.SchemaDropError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("%s: %w", stmt, err),
	}
}

// CreateError creates an error for a failed CREATE TABLE.
func CreateError(table, stmt string, err error) error {
	msg := `Cannot create table <em>%s</em>

<em>Possible causes:</em>
  - Insufficient database permissions
  - Invalid column definitions

<em>How to fix:</em>
  1. Check database user has CREATE permission
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("%s: %w", stmt, err),
	}
}
