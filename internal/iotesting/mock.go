package iotesting

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gnames/stageload/pkg/config"
	"github.com/gnames/stageload/pkg/db"
)

// MockOperator is a db.Operator backed by go-sqlmock. Queries are
// matched exactly, so tests pin the statements sent to the server.
type MockOperator struct {
	Mock sqlmock.Sqlmock
	SQL  *sql.DB

	// ConnectErr is returned by Connect when set.
	ConnectErr error

	Connected bool
	Closed    bool

	// Allowed and Released record AllowLocalFile calls.
	Allowed  []string
	Released []string
}

var _ db.Operator = (*MockOperator)(nil)

// NewMockOperator creates a disconnected MockOperator that matches
// queries exactly.
func NewMockOperator(t *testing.T) *MockOperator {
	t.Helper()
	return NewMockOperatorWithMatcher(t, sqlmock.QueryMatcherEqual)
}

// NewMockOperatorWithMatcher creates a disconnected MockOperator that
// matches queries with the given matcher.
func NewMockOperatorWithMatcher(
	t *testing.T,
	matcher sqlmock.QueryMatcher,
) *MockOperator {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	if err != nil {
		t.Fatalf("create sqlmock: %v", err)
	}
	return &MockOperator{Mock: mock, SQL: sqlDB}
}

func (m *MockOperator) Connect(context.Context, *config.DatabaseConfig) error {
	if m.ConnectErr != nil {
		return m.ConnectErr
	}
	m.Connected = true
	return nil
}

func (m *MockOperator) Close() error {
	if !m.Connected {
		return nil
	}
	m.Connected = false
	m.Closed = true
	return m.SQL.Close()
}

func (m *MockOperator) DB() *sql.DB {
	if !m.Connected {
		return nil
	}
	return m.SQL
}

func (m *MockOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	var count int
	err := m.SQL.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?",
		tableName).Scan(&count)
	return count > 0, err
}

func (m *MockOperator) RowCount(
	ctx context.Context,
	tableName string,
) (int64, error) {
	var count int64
	err := m.SQL.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM `%s`", tableName)).Scan(&count)
	return count, err
}

func (m *MockOperator) AllowLocalFile(path string) func() {
	m.Allowed = append(m.Allowed, path)
	return func() {
		m.Released = append(m.Released, path)
	}
}
