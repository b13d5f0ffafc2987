package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/stageload/pkg/errcode"
)

// ConnectionError creates an error for failed database connections.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to MySQL database

<em>Possible causes:</em>
  - MySQL is not running
  - Wrong user name or password
  - Database <em>%s</em> does not exist

<em>How to fix:</em>
  1. Check if MySQL is running:
     <em>mysqladmin -h %s -P %d ping</em>
  2. Check credentials of user <em>%s</em>
  3. Review connection settings in:
     <em>~/.config/stageload/config.yaml</em>`

	vars := []any{database, host, port, user}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s as %s: %w",
			host, port, database, user, err),
	}
}

// NotConnectedError creates an error for operations attempted
// before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableExistsCheckError creates an error for a failed table
// lookup.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to check table %s: %w",
			table, err),
	}
}

// RowCountError creates an error for a failed row count.
func RowCountError(table string, err error) error {
	msg := "Cannot count rows of <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.DBRowCountError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to count rows of %s: %w",
			table, err),
	}
}
