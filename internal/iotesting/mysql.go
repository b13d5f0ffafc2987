// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/gnames/stageload/internal/iodb"
	"github.com/gnames/stageload/pkg/config"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
)

const (
	// MySQLImage is the server image used by integration tests.
	MySQLImage = "mysql:8.4"

	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "stageload_test"

	// RootPassword is the password of the root user in the container.
	RootPassword = "stageload"
)

// MySQLContainer is a running MySQL server for a test.
type MySQLContainer struct {
	*tcmysql.MySQLContainer
	db config.DatabaseConfig
}

// StartMySQL starts a MySQL container, enables local_infile on the
// server and terminates the container when the test finishes.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    ctr := iotesting.StartMySQL(t)
//	    cfg := ctr.Config()
//	    // ... use cfg for database operations
//	}
func StartMySQL(t *testing.T) *MySQLContainer {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcmysql.Run(ctx,
		MySQLImage,
		tcmysql.WithDatabase(TestDatabaseName),
		tcmysql.WithUsername("root"),
		tcmysql.WithPassword(RootPassword),
	)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate mysql: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("start mysql: %v", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		t.Fatalf("get mysql host: %v", err)
	}

	port, err := ctr.MappedPort(ctx, "3306/tcp")
	if err != nil {
		t.Fatalf("get mysql port: %v", err)
	}

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseHost(host),
		config.OptDatabasePort(port.Int()),
		config.OptDatabaseUser("root"),
		config.OptDatabasePassword(RootPassword),
		config.OptDatabaseDatabase(TestDatabaseName),
	})

	res := &MySQLContainer{MySQLContainer: ctr, db: cfg.Database}

	if err = res.SetLocalInfile(ctx, true); err != nil {
		t.Fatalf("enable local_infile: %v", err)
	}

	return res
}

// DatabaseConfig returns a fresh copy of the connection settings.
func (c *MySQLContainer) DatabaseConfig() *config.DatabaseConfig {
	res := c.db
	return &res
}

// Config returns a complete configuration that points to the container,
// with history and progress bar disabled.
func (c *MySQLContainer) Config() *config.Config {
	cfg := config.New()
	cfg.Database = c.db
	cfg.Update([]config.Option{
		config.OptLoadProgress(false),
		config.OptLoadHistory(false),
	})
	return cfg
}

// SetLocalInfile runs the operational prerequisite of a load run:
// SET GLOBAL local_infile.
func (c *MySQLContainer) SetLocalInfile(ctx context.Context, on bool) error {
	sqlDB, err := c.open()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	val := 0
	if on {
		val = 1
	}
	_, err = sqlDB.ExecContext(ctx,
		fmt.Sprintf("SET GLOBAL local_infile = %d", val))
	return err
}

// QueryInt runs a query returning a single integer, for assertions.
func (c *MySQLContainer) QueryInt(
	ctx context.Context,
	query string,
	args ...any,
) (int64, error) {
	sqlDB, err := c.open()
	if err != nil {
		return 0, err
	}
	defer sqlDB.Close()

	var res int64
	err = sqlDB.QueryRowContext(ctx, query, args...).Scan(&res)
	return res, err
}

// QueryString runs a query returning a single string, for assertions.
func (c *MySQLContainer) QueryString(
	ctx context.Context,
	query string,
	args ...any,
) (string, error) {
	sqlDB, err := c.open()
	if err != nil {
		return "", err
	}
	defer sqlDB.Close()

	var res string
	err = sqlDB.QueryRowContext(ctx, query, args...).Scan(&res)
	return res, err
}

// Exec runs a statement against the test database.
func (c *MySQLContainer) Exec(ctx context.Context, query string) error {
	sqlDB, err := c.open()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	_, err = sqlDB.ExecContext(ctx, query)
	return err
}

func (c *MySQLContainer) open() (*sql.DB, error) {
	return sql.Open("mysql", iodb.DriverConfig(&c.db).FormatDSN())
}
