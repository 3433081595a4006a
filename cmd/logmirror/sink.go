package main

import (
	"os"

	"github.com/loykin/logmirror/internal/sink"
	"github.com/loykin/logmirror/internal/sink/clickhouse"
	"github.com/loykin/logmirror/internal/sink/console"
	"github.com/loykin/logmirror/internal/sink/file"
	"github.com/loykin/logmirror/internal/sink/memory"
	"github.com/loykin/logmirror/internal/sink/opensearch"
	"github.com/loykin/logmirror/internal/sink/sqlite"
)

// Sink is the common sink interface from internal packages.
type Sink = sink.Sink

// buildSinks constructs the sink collection for a run: memory and file
// always, optional backends when enabled. On any constructor failure
// the already-built sinks are closed and the error is returned for the
// caller to treat as fatal.
func buildSinks(cfg *Config) ([]Sink, error) {
	sinks := []Sink{memory.New()}

	closeAll := func() {
		for _, s := range sinks {
			_ = s.Close()
		}
	}

	fs, err := file.New(cfg.Sinks.File.Path)
	if err != nil {
		closeAll()
		return nil, err
	}
	sinks = append(sinks, fs)

	if cfg.Sinks.Console.Enable {
		sinks = append(sinks, console.New(cfg.Sinks.Console.Stream))
	}

	if cfg.Sinks.SQLite.Enable {
		s, err := sqlite.New(cfg.Sinks.SQLite.Path)
		if err != nil {
			closeAll()
			return nil, err
		}
		sinks = append(sinks, s)
	}

	host := cfg.Sinks.Host
	if host == "" {
		if h, err := os.Hostname(); err == nil {
			host = h
		}
	}

	if cfg.Sinks.ClickHouse.Enable {
		s, err := clickhouse.New(
			cfg.Sinks.ClickHouse.Addr,
			cfg.Sinks.ClickHouse.Database,
			cfg.Sinks.ClickHouse.Table,
			cfg.Sinks.ClickHouse.User,
			cfg.Sinks.ClickHouse.Password,
			host,
		)
		if err != nil {
			closeAll()
			return nil, err
		}
		sinks = append(sinks, s)
	}

	if cfg.Sinks.OpenSearch.Enable {
		s, err := opensearch.New(
			cfg.Sinks.OpenSearch.URL,
			cfg.Sinks.OpenSearch.Index,
			cfg.Sinks.OpenSearch.User,
			cfg.Sinks.OpenSearch.Password,
			host,
		)
		if err != nil {
			closeAll()
			return nil, err
		}
		sinks = append(sinks, s)
	}

	return sinks, nil
}
