package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/loykin/logmirror/internal/sink/clickhouse"
	"github.com/loykin/logmirror/internal/sink/console"
	"github.com/loykin/logmirror/internal/sink/file"
	"github.com/loykin/logmirror/internal/sink/opensearch"
	"github.com/loykin/logmirror/internal/sink/sqlite"
	"github.com/loykin/logmirror/internal/source"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SinkFile holds the file sink's backing path.
type SinkFile struct {
	Path string `mapstructure:"path"`
}

// SinkConsole enables echoing messages to a terminal stream.
type SinkConsole struct {
	Enable bool   `mapstructure:"enable"`
	Stream string `mapstructure:"stream"` // stdout or stderr
}

// SinkSQLite enables the SQLite-backed sink.
type SinkSQLite struct {
	Enable bool   `mapstructure:"enable"`
	Path   string `mapstructure:"path"`
}

// SinkClickHouse enables the ClickHouse-backed sink.
type SinkClickHouse struct {
	Enable   bool   `mapstructure:"enable"`
	Addr     string `mapstructure:"addr"` // http(s)://host:8123 or native host:9000
	Database string `mapstructure:"database"`
	Table    string `mapstructure:"table"` // table or db.table
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// SinkOpenSearch enables the OpenSearch-backed sink.
type SinkOpenSearch struct {
	Enable   bool   `mapstructure:"enable"`
	URL      string `mapstructure:"url"` // http(s)://host:9200
	Index    string `mapstructure:"index"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// SinksConfig selects which backends take part in the run. Memory and
// file are always active; the rest are opt-in.
type SinksConfig struct {
	Host       string         `mapstructure:"host"` // override host tag; default os.Hostname()
	File       SinkFile       `mapstructure:"file"`
	Console    SinkConsole    `mapstructure:"console"`
	SQLite     SinkSQLite     `mapstructure:"sqlite"`
	ClickHouse SinkClickHouse `mapstructure:"clickhouse"`
	OpenSearch SinkOpenSearch `mapstructure:"opensearch"`
}

// PrometheusConfig holds metrics endpoint options.
type PrometheusConfig struct {
	Enable bool   `mapstructure:"enable"`
	Addr   string `mapstructure:"addr"`
}

// LogConfig holds diagnostic logging options. When Path is set the log
// is written to a rotating file instead of stderr.
type LogConfig struct {
	Level      string `mapstructure:"level"` // debug, info, warn, error
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max-size-mb"`
	MaxBackups int    `mapstructure:"max-backups"`
	MaxAgeDays int    `mapstructure:"max-age-days"`
}

// Config holds all configuration options for the logmirror application.
type Config struct {
	// Optional config file path (flag/env only)
	ConfigFile string
	Sinks      SinksConfig      `mapstructure:"sinks"`
	Source     source.Config    `mapstructure:"source"`
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
	Log        LogConfig        `mapstructure:"log"`
}

// LoadFromViper binds flags to viper, reads file/env, and populates the Config fields via mapstructure.
func (c *Config) LoadFromViper(cmd *cobra.Command) error {
	v := viper.GetViper()
	v.SetEnvPrefix("LOGMIRROR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Bind all flags
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Determine config file path: --config flag or LOGMIRROR_CONFIG env; no auto-defaults
	if c.ConfigFile == "" {
		// Viper AutomaticEnv binds LOGMIRROR_CONFIG to key "config"
		c.ConfigFile = v.GetString("config")
	}
	if c.ConfigFile != "" {
		v.SetConfigFile(c.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into this Config using mapstructure with proper tagname
	if err := v.Unmarshal(c); err != nil {
		return err
	}
	return nil
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Sinks: SinksConfig{
			File:    SinkFile{Path: filepath.Join(os.TempDir(), "logmirror.txt")},
			Console: SinkConsole{Stream: "stdout"},
			SQLite:  SinkSQLite{Path: filepath.Join(os.TempDir(), "logmirror.db")},
		},
		Prometheus: PrometheusConfig{Enable: false, Addr: ":2112"},
		Log:        LogConfig{Level: "info", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 7},
	}
}

// SetupFlags adds all command line flags to the provided cobra command
func (c *Config) SetupFlags(cmd *cobra.Command) {
	// Config file
	cmd.Flags().StringVar(&c.ConfigFile, "config", c.ConfigFile, "Path to config file (yaml/json/toml)")

	// Source flags
	cmd.Flags().StringVar(&c.Source.Path, "source.path", c.Source.Path, "File to load the message set from (default: built-in demo set)")
	cmd.Flags().StringVar(&c.Source.Format, "source.format", c.Source.Format, "Source file format (lines, csv, audit)")
	cmd.Flags().StringVar(&c.Source.Column, "source.column", c.Source.Column, "CSV column holding the message (header name or index)")

	// Optional backend toggles
	cmd.Flags().BoolVar(&c.Sinks.Console.Enable, "sinks.console.enable", c.Sinks.Console.Enable, "Echo messages to a terminal stream as a sink")
	cmd.Flags().BoolVar(&c.Sinks.SQLite.Enable, "sinks.sqlite.enable", c.Sinks.SQLite.Enable, "Mirror messages into a SQLite database")
	cmd.Flags().StringVar(&c.Sinks.SQLite.Path, "sinks.sqlite.path", c.Sinks.SQLite.Path, "SQLite database path")

	// ClickHouse and OpenSearch credentials are intentionally not exposed
	// as command-line flags. Configure them via config file (--config or
	// LOGMIRROR_CONFIG) or environment variables
	// (LOGMIRROR_SINKS_CLICKHOUSE_ADDR, LOGMIRROR_SINKS_OPENSEARCH_URL, etc.).

	// Logging flags
	cmd.Flags().StringVar(&c.Log.Level, "log.level", c.Log.Level, "Diagnostic log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&c.Log.Path, "log.path", c.Log.Path, "Write diagnostics to a rotating file instead of stderr")

	// Prometheus flags
	cmd.Flags().BoolVar(&c.Prometheus.Enable, "prometheus.enable", c.Prometheus.Enable, "Enable Prometheus metrics HTTP endpoint")
	cmd.Flags().StringVar(&c.Prometheus.Addr, "prometheus.addr", c.Prometheus.Addr, "Prometheus metrics listen address (e.g., :2112)")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := (file.Config{Path: c.Sinks.File.Path}).Validate(); err != nil {
		return err
	}
	if c.Sinks.Console.Enable {
		if err := (console.Config{Stream: c.Sinks.Console.Stream}).Validate(); err != nil {
			return err
		}
	}
	if c.Sinks.SQLite.Enable {
		if err := (sqlite.Config{Path: c.Sinks.SQLite.Path}).Validate(); err != nil {
			return err
		}
	}
	if c.Sinks.ClickHouse.Enable {
		if err := (clickhouse.Config{
			Addr:     c.Sinks.ClickHouse.Addr,
			Database: c.Sinks.ClickHouse.Database,
			Table:    c.Sinks.ClickHouse.Table,
		}).Validate(); err != nil {
			return err
		}
	}
	if c.Sinks.OpenSearch.Enable {
		if err := (opensearch.Config{
			URL:   c.Sinks.OpenSearch.URL,
			Index: c.Sinks.OpenSearch.Index,
		}).Validate(); err != nil {
			return err
		}
	}

	if err := c.Source.Validate(); err != nil {
		return err
	}

	if _, err := parseLogLevel(c.Log.Level); err != nil {
		return err
	}

	if c.Prometheus.Enable && c.Prometheus.Addr == "" {
		return fmt.Errorf("prometheus.addr must be set when prometheus.enable is true")
	}
	return nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log.level: %s", level)
	}
}
