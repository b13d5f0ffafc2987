package iofs

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/stageload/pkg/config"
	"github.com/gnames/stageload/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockPath puts a regular file where stageload expects a directory.
func blockPath(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("not a dir"), 0644))
}

// TestEnsureDirs_ConfigDirBlocked verifies a file in place of
// ~/.config yields CreateDirError for the stageload config dir.
func TestEnsureDirs_ConfigDirBlocked(t *testing.T) {
	home := t.TempDir()
	blockPath(t, filepath.Join(home, ".config"))

	err := EnsureDirs(home)
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.CreateDirError, gnErr.Code)
	require.Len(t, gnErr.Vars, 1)
	assert.Equal(t, config.ConfigDir(home), gnErr.Vars[0])
	assert.Contains(t, gnErr.Msg, "stageload directory")
	assert.ErrorIs(t, gnErr.Err, syscall.ENOTDIR)
	assert.Contains(t, gnErr.Err.Error(), "touchDir")
}

// TestEnsureDirs_LogDirBlocked verifies the log directory is checked
// after the data directory.
func TestEnsureDirs_LogDirBlocked(t *testing.T) {
	home := t.TempDir()
	blockPath(t, config.LogDir(home))

	err := EnsureDirs(home)
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.CreateDirError, gnErr.Code)
	assert.Equal(t, config.LogDir(home), gnErr.Vars[0])
	assert.DirExists(t, config.DataDir(home))
}

// TestEnsureConfigFile_ConfigDirIsFile verifies the default config
// cannot be written when its directory is a file.
func TestEnsureConfigFile_ConfigDirIsFile(t *testing.T) {
	home := t.TempDir()
	blockPath(t, config.ConfigDir(home))

	err := EnsureConfigFile(home)
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.CopyFileError, gnErr.Code)
	require.Len(t, gnErr.Vars, 1)
	assert.Equal(t, config.ConfigFilePath(home), gnErr.Vars[0])
	assert.Contains(t, gnErr.Msg, "default stageload config")
	assert.ErrorIs(t, gnErr.Err, syscall.ENOTDIR)
	assert.NoFileExists(t, config.ConfigFilePath(home))
}

// TestNormalizePath_BlankError verifies the error for a blank source
// names the rejected path and wraps os.ErrInvalid.
func TestNormalizePath_BlankError(t *testing.T) {
	_, err := NormalizePath("  ")
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.LoadSourcePathError, gnErr.Code)
	assert.Contains(t, gnErr.Msg, "CSV path")
	assert.Equal(t, "", gnErr.Vars[0])
	assert.ErrorIs(t, gnErr.Err, os.ErrInvalid)
	assert.Contains(t, gnErr.Err.Error(), "NormalizePath")
}

// TestReadFileError names the config file and the calling function.
func TestReadFileError(t *testing.T) {
	cause := errors.New("yaml: line 3: did not find expected key")
	path := "/home/ann/.config/stageload/config.yaml"

	err := ReadFileError(path, cause)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ReadFileError, gnErr.Code)
	assert.Equal(t, []any{path}, gnErr.Vars)
	assert.Contains(t, gnErr.Msg, "fix or remove it")
	assert.ErrorIs(t, gnErr.Err, cause)
	assert.Contains(t, gnErr.Err.Error(), "TestReadFileError")
}
