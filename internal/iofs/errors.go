package iofs

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/stageload/pkg/errcode"
)

var errIsDir = errors.New("is a directory")

// caller names the function that hit a file system failure.
func caller() string {
	pc, _, _, _ := runtime.Caller(2)
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return "unknown"
}

// CreateDirError reports a stageload directory (config, data or logs)
// that could not be made.
func CreateDirError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot prepare stageload directory <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("%s: mkdir %s: %w", caller(), dir, err),
	}
}

// CopyFileError reports a failure to write the default config.yaml.
func CopyFileError(file string, err error) error {
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  "Cannot write default stageload config <em>%s</em>",
		Vars: []any{file},
		Err:  fmt.Errorf("%s: write default config %s: %w", caller(), file, err),
	}
}

// ReadFileError reports a config.yaml that cannot be read or decoded.
func ReadFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  "Cannot read stageload config <em>%s</em>, fix or remove it",
		Vars: []any{path},
		Err:  fmt.Errorf("%s: read config %s: %w", caller(), path, err),
	}
}

// PathError reports a CSV source path that cannot be made absolute.
func PathError(path string, err error) error {
	return &gn.Error{
		Code: errcode.LoadSourcePathError,
		Msg:  "Cannot resolve CSV path <em>%q</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("%s: resolve source %q: %w", caller(), path, err),
	}
}
