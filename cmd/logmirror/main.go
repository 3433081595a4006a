package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/loykin/logmirror/internal/harness"
	"github.com/loykin/logmirror/internal/metrics"
	"github.com/loykin/logmirror/internal/source"
	pkgmetrics "github.com/loykin/logmirror/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	config := DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "logmirror [file]",
		Short: "Mirrors a message stream into interchangeable sinks and verifies read-back",
		Long: `logmirror appends the same ordered message set to a collection of sink
backends (always in-memory and file-backed, optionally console, SQLite,
ClickHouse, and OpenSearch) and verifies that every backend reproduces
the exact sequence on read-back.

The optional positional argument overrides the file sink's backing path.

Examples:
  # Run the built-in demo set against memory and a temp file
  logmirror

  # Use a specific backing file
  logmirror /var/tmp/mirror.txt

  # Load messages from a file, one per line
  logmirror --source.path ./messages.txt

  # Mirror into SQLite as well
  logmirror --sinks.sqlite.enable --sinks.sqlite.path /tmp/mirror.db`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadFromViper(cmd); err != nil {
				return err
			}
			return config.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				config.Sinks.File.Path = args[0]
			}
			return runMirror(config)
		},
	}

	// Setup flags from config
	config.SetupFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// setupLogging installs the process-wide slog handler, optionally
// writing through a rotating file.
func setupLogging(cfg *Config) {
	level, _ := parseLogLevel(cfg.Log.Level)
	var w io.Writer = os.Stderr
	if cfg.Log.Path != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.Log.Path,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func runMirror(config *Config) error {
	setupLogging(config)

	// Optionally start Prometheus metrics endpoint
	var metricsStop = func() error { return nil }
	if config.Prometheus.Enable {
		// Register our metrics explicitly to the default registry to avoid library init-time side effects
		if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
			return fmt.Errorf("failed to register prometheus metrics: %w", err)
		}
		metricsServer, err := pkgmetrics.Start(config.Prometheus.Addr)
		if err != nil {
			return fmt.Errorf("failed to start prometheus endpoint: %w", err)
		}
		metricsStop = metricsServer.Stop
	}
	defer func() { _ = metricsStop() }()

	msgs, err := source.Load(config.Source)
	if err != nil {
		return err
	}

	sinks, err := buildSinks(config)
	if err != nil {
		return err
	}
	h := harness.New(sinks...)
	defer func() {
		if err := h.Close(); err != nil {
			slog.Error("failed to close sinks", "error", err)
		}
	}()

	return h.Run(msgs)
}
