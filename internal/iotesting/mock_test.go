package iotesting

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockOperator_ExactMatch(t *testing.T) {
	op := NewMockOperator(t)
	ctx := context.Background()
	require.NoError(t, op.Connect(ctx, nil))

	op.Mock.ExpectQuery("SELECT COUNT(*) FROM `stage_tbl`").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(7))
	op.Mock.ExpectClose()

	count, err := op.RowCount(ctx, "stage_tbl")
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	require.NoError(t, op.Close())
	assert.True(t, op.Closed)
	assert.Nil(t, op.DB())
	require.NoError(t, op.Mock.ExpectationsWereMet())
}

func TestNewMockOperatorWithMatcher(t *testing.T) {
	op := NewMockOperatorWithMatcher(t, sqlmock.QueryMatcherRegexp)
	ctx := context.Background()

	op.Mock.ExpectQuery("information_schema\\.tables").
		WithArgs("stage_tbl").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))

	exists, err := op.TableExists(ctx, "stage_tbl")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, op.Mock.ExpectationsWereMet())
}

func TestMockOperator_AllowLocalFile(t *testing.T) {
	op := NewMockOperator(t)
	release := op.AllowLocalFile("/data/customers.csv")
	assert.Equal(t, []string{"/data/customers.csv"}, op.Allowed)
	assert.Empty(t, op.Released)

	release()
	assert.Equal(t, []string{"/data/customers.csv"}, op.Released)
}
