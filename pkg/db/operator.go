package db

import (
	"context"
	"database/sql"

	"github.com/gnames/stageload/pkg/config"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes the *sql.DB for
// the lifecycle components (SchemaManager, Loader, Previewer) to execute
// their SQL.
//
// The operator keeps at most one open connection, statements of a run are
// executed one at a time.
type Operator interface {
	// Connect opens and verifies the connection to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection.
	Close() error

	// DB returns the underlying *sql.DB, nil before Connect.
	DB() *sql.DB

	// TableExists checks if a table exists in the current database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// RowCount returns the number of rows in a table.
	RowCount(ctx context.Context, tableName string) (int64, error)

	// AllowLocalFile lets the driver send the file at path to the server
	// when LOAD DATA LOCAL INFILE asks for it. Returned function revokes
	// the permission. It is a no-op when local infile is disabled in the
	// configuration.
	AllowLocalFile(path string) (release func())
}
