// Package iodb implements database operations using go-sql-driver/mysql.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/gnames/stageload/pkg/config"
	"github.com/gnames/stageload/pkg/db"
	"github.com/go-sql-driver/mysql"
)

// mysqlOperator implements db.Operator interface using
// database/sql with the MySQL driver.
type mysqlOperator struct {
	db  *sql.DB
	cfg *config.DatabaseConfig
}

// NewMySQLOperator creates a new database operator
// (without connecting).
func NewMySQLOperator() db.Operator {
	return &mysqlOperator{}
}

// DriverConfig converts connection settings to the MySQL driver
// configuration. Local files are never allowed globally, they are
// registered one by one with AllowLocalFile.
func DriverConfig(cfg *config.DatabaseConfig) *mysql.Config {
	res := mysql.NewConfig()
	res.User = cfg.User
	res.Passwd = cfg.Password
	res.Net = "tcp"
	res.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	res.DBName = cfg.Database
	res.ParseTime = true
	res.AllowAllFiles = false
	res.Timeout = time.Duration(cfg.Timeout) * time.Second
	return res
}

// Connect opens a connection to MySQL and verifies it with a ping.
func (m *mysqlOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	connector, err := mysql.NewConnector(DriverConfig(cfg))
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	sqlDB := sql.OpenDB(connector)

	// One connection is enough: statements of a run go one after another
	// and LOAD DATA must share the session with its warnings query.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	m.db = sqlDB
	m.cfg = cfg
	return nil
}

// Close releases the database connection.
func (m *mysqlOperator) Close() error {
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}

// DB returns the underlying *sql.DB.
func (m *mysqlOperator) DB() *sql.DB {
	return m.db
}

// TableExists checks if a table exists in the current
// database.
func (m *mysqlOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if m.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		AND table_name = ?
	`

	var count int
	err := m.db.QueryRowContext(ctx, query, tableName).Scan(&count)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return count > 0, nil
}

// RowCount returns the number of rows of a table.
func (m *mysqlOperator) RowCount(
	ctx context.Context,
	tableName string,
) (int64, error) {
	if m.db == nil {
		return 0, NotConnectedError()
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(tableName))

	var count int64
	err := m.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, RowCountError(tableName, err)
	}
	return count, nil
}

// AllowLocalFile registers path in the driver's local file allow-list.
func (m *mysqlOperator) AllowLocalFile(path string) func() {
	if m.cfg == nil || !m.cfg.AllowLocalInfile {
		return func() {}
	}
	mysql.RegisterLocalFile(path)
	return func() {
		mysql.DeregisterLocalFile(path)
	}
}
