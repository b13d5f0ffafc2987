package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/stageload/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNotConnectedError_Structure verifies error structure.
func TestNotConnectedError_Structure(t *testing.T) {
	err := NotConnectedError()

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}

func TestDDLErrors(t *testing.T) {
	originalErr := errors.New("Error 1142: DROP command denied")

	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		stmt string
	}{
		{"drop", DropError("stage_tbl", "DROP TABLE IF EXISTS stage_tbl", originalErr),
			errcode.SchemaDropError, "DROP TABLE IF EXISTS stage_tbl"},
		{"create", CreateError("stage_tbl", "CREATE TABLE IF NOT EXISTS stage_tbl", originalErr),
			errcode.SchemaCreateError, "CREATE TABLE IF NOT EXISTS stage_tbl"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Equal(t, []any{"stage_tbl"}, gnErr.Vars)
			assert.Contains(t, gnErr.Msg, "<em>%s</em>")
			assert.ErrorIs(t, gnErr.Err, originalErr)
			assert.Contains(t, gnErr.Err.Error(), tt.stmt,
				"Error should name the failing statement")
			assert.Equal(t, errcode.SchemaFailure, errcode.CategoryOf(gnErr.Code))
		})
	}
}
