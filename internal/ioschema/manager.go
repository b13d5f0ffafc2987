// Package ioschema implements SchemaManager interface for
// the staging table. This is an impure I/O package that runs the DDL
// generated from schema.StagingRow.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/stageload/pkg/db"
	"github.com/gnames/stageload/pkg/lifecycle"
	"github.com/gnames/stageload/pkg/schema"
)

// manager implements the lifecycle.SchemaManager interface.
type manager struct {
	operator db.Operator
	model    schema.DDLGenerator
}

// NewManager creates a new SchemaManager for the staging table.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op, model: schema.StagingRow{}}
}

// Recreate drops the staging table and creates it again, so every load
// starts from an empty table.
func (m *manager) Recreate(ctx context.Context) error {
	if err := m.Drop(ctx); err != nil {
		return err
	}
	return m.Create(ctx)
}

// Create creates the staging table if it does not exist.
func (m *manager) Create(ctx context.Context) error {
	sqlDB := m.operator.DB()
	if sqlDB == nil {
		return NotConnectedError()
	}

	ddl := m.model.TableDDL()
	slog.Debug("Creating staging table", "table", m.model.TableName())
	if _, err := sqlDB.ExecContext(ctx, ddl); err != nil {
		return CreateError(m.model.TableName(), ddl, err)
	}
	return nil
}

// Drop removes the staging table if it exists.
func (m *manager) Drop(ctx context.Context) error {
	sqlDB := m.operator.DB()
	if sqlDB == nil {
		return NotConnectedError()
	}

	ddl := m.model.DropDDL()
	slog.Debug("Dropping staging table", "table", m.model.TableName())
	if _, err := sqlDB.ExecContext(ctx, ddl); err != nil {
		return DropError(m.model.TableName(), ddl, err)
	}
	return nil
}
