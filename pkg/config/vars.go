package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "stageload"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/stageload by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for persistent data such as the
// run history.
// Returns ~/.local/share/stageload by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/stageload/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/stageload/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// HistoryFilePath returns the full path to the run history database.
func HistoryFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "history.sqlite")
}
