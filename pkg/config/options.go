package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the MySQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the MySQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the MySQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the MySQL database password.
// Passwords often contain special characters, so only surrounding
// whitespace is trimmed.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the MySQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseAllowLocalInfile enables or disables sending local files to
// the server.
func OptDatabaseAllowLocalInfile(b bool) Option {
	return func(c *Config) {
		c.Database.AllowLocalInfile = b
	}
}

// OptDatabaseTimeout sets the dial timeout in seconds.
func OptDatabaseTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Timeout", i) {
			c.Database.Timeout = i
		}
	}
}

// OptLoadAudit enables or disables the source file audit.
func OptLoadAudit(b bool) Option {
	return func(c *Config) {
		c.Load.Audit = b
	}
}

// OptLoadProgress enables or disables the audit progress bar.
func OptLoadProgress(b bool) Option {
	return func(c *Config) {
		c.Load.Progress = b
	}
}

// OptLoadMaxWarnings sets how many server warnings are collected,
// 0 turns collection off.
func OptLoadMaxWarnings(i int) Option {
	return func(c *Config) {
		if i == 0 || isValidInt("Max Warnings", i) {
			c.Load.MaxWarnings = i
		}
	}
}

// OptLoadHistory enables or disables the run history.
func OptLoadHistory(b bool) Option {
	return func(c *Config) {
		c.Load.History = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, data, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
