package db_test

import (
	"testing"

	"github.com/gnames/stageload/internal/iodb"
	"github.com/gnames/stageload/pkg/db"
)

// TestMySQLOperatorImplementsInterface verifies that the MySQL operator
// implements the db.Operator interface.
func TestMySQLOperatorImplementsInterface(t *testing.T) {
	var _ db.Operator = iodb.NewMySQLOperator()
}
