/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/stageload/internal/iofs"
	"github.com/gnames/stageload/internal/iologger"
	stageload "github.com/gnames/stageload/pkg"
	"github.com/gnames/stageload/pkg/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			stageload.Version, stageload.Build),
		Use:   "stageload",
		Short: "Loads CSV files into a MySQL staging table",
		Long: `stageload recreates the MySQL staging table stage_tbl and fills it
from a CSV file with a single LOAD DATA LOCAL INFILE statement.

Every load drops the previous content of the staging table. The first
line of the file is a header and is skipped, malformed rows are left to
the server's IGNORE handling.

The server must accept local files:
  SET GLOBAL local_infile = 1;

Settings are read from ~/.config/stageload/config.yaml, STAGELOAD_*
environment variables (a .env file is read too) and command line flags.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "stageload version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for stageload")

	pf := rootCmd.PersistentFlags()
	pf.String("host", "", "MySQL host, overrides configuration")
	pf.Int("port", 0, "MySQL port, overrides configuration")
	pf.StringP("user", "u", "", "MySQL user, overrides configuration")
	pf.StringP("database", "d", "", "MySQL database, overrides configuration")

	rootCmd.AddCommand(
		getLoadCmd(),
		getCreateCmd(),
		getDropCmd(),
		getPreviewCmd(),
		getHistoryCmd(),
		getConfigCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// .env is optional, real environment variables win over it.
	if err = godotenv.Load(); err != nil && !os.IsNotExist(err) {
		gn.Warn("Cannot read <em>.env</em> file: %s", err)
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	opts = append(opts, flagOptions(cmd)...)
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"host", cfg.Database.Host,
		"database", cfg.Database.Database,
	)

	return nil
}

// flagOptions turns connection flags given on the command line into
// options. They are applied last, so they win over config and env.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()
	if flags.Changed("host") {
		s, _ := flags.GetString("host")
		res = append(res, config.OptDatabaseHost(s))
	}
	if flags.Changed("port") {
		i, _ := flags.GetInt("port")
		res = append(res, config.OptDatabasePort(i))
	}
	if flags.Changed("user") {
		s, _ := flags.GetString("user")
		res = append(res, config.OptDatabaseUser(s))
	}
	if flags.Changed("database") {
		s, _ := flags.GetString("database")
		res = append(res, config.OptDatabaseDatabase(s))
	}
	return res
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initDefaults(v)
	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// initDefaults keeps keys missing from an older config.yaml at their
// default values instead of zero values.
func initDefaults(v *viper.Viper) {
	def := config.New()
	v.SetDefault("database.host", def.Database.Host)
	v.SetDefault("database.port", def.Database.Port)
	v.SetDefault("database.user", def.Database.User)
	v.SetDefault("database.password", def.Database.Password)
	v.SetDefault("database.database", def.Database.Database)
	v.SetDefault("database.allow_local_infile", def.Database.AllowLocalInfile)
	v.SetDefault("database.timeout", def.Database.Timeout)

	v.SetDefault("load.audit", def.Load.Audit)
	v.SetDefault("load.progress", def.Load.Progress)
	v.SetDefault("load.max_warnings", def.Load.MaxWarnings)
	v.SetDefault("load.history", def.Load.History)

	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.destination", def.Log.Destination)
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("STAGELOAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "STAGELOAD_DATABASE_HOST")
	v.BindEnv("database.port", "STAGELOAD_DATABASE_PORT")
	v.BindEnv("database.user", "STAGELOAD_DATABASE_USER")
	v.BindEnv("database.password", "STAGELOAD_DATABASE_PASSWORD")
	v.BindEnv("database.database", "STAGELOAD_DATABASE_DATABASE")
	v.BindEnv("database.allow_local_infile", "STAGELOAD_DATABASE_ALLOW_LOCAL_INFILE")
	v.BindEnv("database.timeout", "STAGELOAD_DATABASE_TIMEOUT")

	// Load configuration
	v.BindEnv("load.audit", "STAGELOAD_LOAD_AUDIT")
	v.BindEnv("load.progress", "STAGELOAD_LOAD_PROGRESS")
	v.BindEnv("load.max_warnings", "STAGELOAD_LOAD_MAX_WARNINGS")
	v.BindEnv("load.history", "STAGELOAD_LOAD_HISTORY")

	// Log configuration
	v.BindEnv("log.level", "STAGELOAD_LOG_LEVEL")
	v.BindEnv("log.format", "STAGELOAD_LOG_FORMAT")
	v.BindEnv("log.destination", "STAGELOAD_LOG_DESTINATION")

	v.AutomaticEnv()
}
