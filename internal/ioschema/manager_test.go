package ioschema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gnames/gn"
	"github.com/gnames/stageload/internal/iodb"
	"github.com/gnames/stageload/internal/ioschema"
	"github.com/gnames/stageload/internal/iotesting"
	"github.com/gnames/stageload/pkg/errcode"
	"github.com/gnames/stageload/pkg/lifecycle"
	"github.com/gnames/stageload/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestManager_ImplementsInterface verifies manager
// implements lifecycle.SchemaManager interface.
func TestManager_ImplementsInterface(t *testing.T) {
	op := iodb.NewMySQLOperator()
	var _ lifecycle.SchemaManager = ioschema.NewManager(op)
}

func TestManager_NotConnected(t *testing.T) {
	op := iotesting.NewMockOperator(t)
	mgr := ioschema.NewManager(op)

	for _, fn := range []func(context.Context) error{
		mgr.Recreate, mgr.Create, mgr.Drop,
	} {
		err := fn(context.Background())
		var gnErr *gn.Error
		require.ErrorAs(t, err, &gnErr)
		assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	}
}

func TestManager_Recreate(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewMockOperator(t)
	require.NoError(t, op.Connect(ctx, nil))
	model := schema.StagingRow{}

	op.Mock.ExpectExec(model.DropDDL()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	op.Mock.ExpectExec(model.TableDDL()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := ioschema.NewManager(op).Recreate(ctx)
	require.NoError(t, err)
	assert.NoError(t, op.Mock.ExpectationsWereMet(),
		"Drop must come before create")
}

func TestManager_RecreateDropFails(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewMockOperator(t)
	require.NoError(t, op.Connect(ctx, nil))
	model := schema.StagingRow{}
	denied := errors.New("Error 1142: DROP command denied")

	op.Mock.ExpectExec(model.DropDDL()).WillReturnError(denied)

	err := ioschema.NewManager(op).Recreate(ctx)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.SchemaDropError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, denied)
	assert.NoError(t, op.Mock.ExpectationsWereMet(),
		"Create must not run after a failed drop")
}

func TestManager_CreateFails(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewMockOperator(t)
	require.NoError(t, op.Connect(ctx, nil))
	model := schema.StagingRow{}

	op.Mock.ExpectExec(model.TableDDL()).
		WillReturnError(errors.New("Error 1044: access denied"))

	err := ioschema.NewManager(op).Create(ctx)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.SchemaCreateError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "CREATE TABLE IF NOT EXISTS stage_tbl")
}

func TestManager_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	ctx := context.Background()
	ctr := iotesting.StartMySQL(t)

	op := iodb.NewMySQLOperator()
	require.NoError(t, op.Connect(ctx, ctr.DatabaseConfig()))
	defer op.Close()

	mgr := ioschema.NewManager(op)

	// Recreate twice: the second run must not fail on an existing table.
	for range 2 {
		require.NoError(t, mgr.Recreate(ctx))
		exists, err := op.TableExists(ctx, schema.TableName)
		require.NoError(t, err)
		assert.True(t, exists)
	}

	_, err := op.DB().ExecContext(ctx,
		"INSERT INTO stage_tbl (id, ckey) VALUES (1, 'C1')")
	require.NoError(t, err)

	require.NoError(t, mgr.Recreate(ctx))
	count, err := op.RowCount(ctx, schema.TableName)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count, "Recreate must leave an empty table")

	require.NoError(t, mgr.Drop(ctx))
	exists, err := op.TableExists(ctx, schema.TableName)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, mgr.Drop(ctx), "Drop of a missing table is not an error")
}
