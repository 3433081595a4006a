package main

import (
	"strings"
	"testing"
)

func TestDefaultConfigAndValidate(t *testing.T) {
	cfg := DefaultConfig()

	// Basic defaults
	if cfg.Sinks.File.Path == "" {
		t.Fatal("default file sink path should be set")
	}
	if !strings.HasSuffix(cfg.Sinks.File.Path, "logmirror.txt") {
		t.Fatalf("default file sink path = %q, want */logmirror.txt", cfg.Sinks.File.Path)
	}
	if cfg.Prometheus.Enable {
		t.Fatal("prometheus.enable should default to false")
	}
	if cfg.Sinks.Console.Enable || cfg.Sinks.SQLite.Enable || cfg.Sinks.ClickHouse.Enable || cfg.Sinks.OpenSearch.Enable {
		t.Fatal("optional sinks should default to disabled")
	}

	// Validate should pass for defaults
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got error: %v", err)
	}
}

func TestValidate_FilePathRequired(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sinks.File.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty file sink path")
	}
}

func TestValidate_OptionalSinkRequirements(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sinks.ClickHouse.Enable = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("clickhouse enabled without addr/table should fail")
	}
	cfg.Sinks.ClickHouse.Addr = "127.0.0.1:9000"
	cfg.Sinks.ClickHouse.Table = "messages"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("clickhouse config should validate: %v", err)
	}

	cfg2 := DefaultConfig()
	cfg2.Sinks.OpenSearch.Enable = true
	if err := cfg2.Validate(); err == nil {
		t.Fatal("opensearch enabled without url/index should fail")
	}

	cfg3 := DefaultConfig()
	cfg3.Sinks.SQLite.Enable = true
	cfg3.Sinks.SQLite.Path = ""
	if err := cfg3.Validate(); err == nil {
		t.Fatal("sqlite enabled without path should fail")
	}

	cfg4 := DefaultConfig()
	cfg4.Sinks.Console.Enable = true
	cfg4.Sinks.Console.Stream = "tty"
	if err := cfg4.Validate(); err == nil {
		t.Fatal("invalid console stream should fail")
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid log level")
	}
	for _, lvl := range []string{"", "debug", "info", "warn", "error"} {
		cfg.Log.Level = lvl
		if err := cfg.Validate(); err != nil {
			t.Fatalf("level %q should validate: %v", lvl, err)
		}
	}
}

func TestValidate_PrometheusAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Prometheus.Enable = true
	cfg.Prometheus.Addr = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when prometheus enabled without addr")
	}
}

func TestValidate_Source(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source.Format = "lines"
	if err := cfg.Validate(); err == nil {
		t.Fatal("source.format without source.path should fail")
	}
	cfg.Source.Path = "/tmp/messages.txt"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("source config should validate: %v", err)
	}
}
