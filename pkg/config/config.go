// Package config provides configuration management for stageload.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, allow_local_infile,
//     timeout
//   - Load: audit, progress, max_warnings, history
//   - Log: level, format, destination
//
// Runtime-only fields:
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use STAGELOAD_ prefix with underscores for nesting:
//
//	STAGELOAD_DATABASE_HOST=localhost
//	STAGELOAD_DATABASE_PASSWORD=secret
//	STAGELOAD_LOAD_AUDIT=false
//	STAGELOAD_LOG_LEVEL=debug
//
// A .env file in the working directory is read before the environment
// is consulted.
//
// # Server prerequisite
//
// LOAD DATA LOCAL INFILE only works when the server allows it. Before a
// load run
//
//	SET GLOBAL local_infile = 1;
//
// and afterwards
//
//	SET GLOBAL local_infile = 0;
//
// stageload never changes this setting itself.
package config

// Config represents the complete stageload configuration.
type Config struct {
	// Database contains MySQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Load contains settings of the bulk load run.
	Load LoadConfig `mapstructure:"load" yaml:"load"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// DatabaseConfig contains MySQL connection parameters.
type DatabaseConfig struct {
	// Host is the MySQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the MySQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the MySQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the MySQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the MySQL database (schema) that holds the staging
	// table.
	Database string `mapstructure:"database" yaml:"database"`

	// AllowLocalInfile permits the client to send the source file to the
	// server during LOAD DATA LOCAL INFILE. The server must allow it as
	// well (local_infile=1).
	AllowLocalInfile bool `mapstructure:"allow_local_infile" yaml:"allow_local_infile"`

	// Timeout is the dial timeout in seconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`
}

// LoadConfig contains settings of a load run.
type LoadConfig struct {
	// Audit enables a client-side scan of the source file that counts
	// data lines, so the number of rows dropped by the server is known.
	Audit bool `mapstructure:"audit" yaml:"audit"`

	// Progress shows a progress bar during the audit scan.
	Progress bool `mapstructure:"progress" yaml:"progress"`

	// MaxWarnings limits how many server warnings are collected after
	// the load.
	MaxWarnings int `mapstructure:"max_warnings" yaml:"max_warnings"`

	// History records every run in a local SQLite file.
	History bool `mapstructure:"history" yaml:"history"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:             "localhost",
			Port:             3306,
			User:             "root",
			Password:         "",
			Database:         "datawarehouse",
			AllowLocalInfile: true,
			Timeout:          10,
		},
		Load: LoadConfig{
			Audit:       true,
			Progress:    true,
			MaxWarnings: 20,
			History:     true,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

// Masked returns a copy of the config with the password hidden, for
// display.
func (c *Config) Masked() Config {
	res := *c
	if res.Database.Password != "" {
		res.Database.Password = "********"
	}
	return res
}
