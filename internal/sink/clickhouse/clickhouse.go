// Package clickhouse provides a sink that records messages in a
// ClickHouse table and reads them back ordered by a per-sink sequence.
package clickhouse

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"strings"
	"time"

	ch "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/loykin/logmirror/internal/sink"
)

// Sink inserts one row per Append carrying a monotonically increasing
// sequence number. ClickHouse gives no insertion-order guarantee, so
// read-back orders by that sequence instead.
type Sink struct {
	conn     ch.Conn
	database string
	table    string
	host     string
	seq      uint64
}

// New connects to ClickHouse, applies embedded migrations for the
// configured table, and returns a usable sink.
func New(addr, database, table, user, pass, host string) (*Sink, error) {
	if addr == "" || table == "" {
		return nil, fmt.Errorf("clickhouse addr and table are required")
	}
	// Build options: support HTTP and native
	var opts ch.Options
	if strings.Contains(addr, "://") {
		u, err := url.Parse(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid ch addr: %w", err)
		}
		hostport := u.Host
		secure := u.Scheme == "https"
		opts = ch.Options{Addr: []string{hostport}, Protocol: ch.HTTP, Auth: ch.Auth{Username: user, Password: pass, Database: database}}
		if secure {
			opts.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
		}
	} else {
		opts = ch.Options{Addr: []string{addr}, Auth: ch.Auth{Username: user, Password: pass, Database: database}}
	}
	// Run embedded migrations to ensure table exists
	if err := runMigrations(&opts, database, table); err != nil {
		return nil, err
	}
	// Open insert connection
	conn, err := ch.Open(&opts)
	if err != nil {
		return nil, err
	}
	return &Sink{
		conn:     conn,
		database: database,
		table:    table,
		host:     host,
	}, nil
}

var _ sink.Sink = (*Sink)(nil)

func (s *Sink) Name() string { return "clickhouse" }

func (s *Sink) fullTable() string {
	tbl := s.table
	if s.database != "" && !strings.Contains(tbl, ".") {
		tbl = s.database + "." + s.table
	}
	return tbl
}

// Append inserts a single row synchronously; no batching across calls.
func (s *Sink) Append(msg string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.seq++
	err := s.conn.Exec(ctx,
		"INSERT INTO "+s.fullTable()+" (seq, ts, host, message) VALUES (?, ?, ?, ?)",
		s.seq, time.Now(), s.host, msg)
	if err != nil {
		s.seq--
		return fmt.Errorf("clickhouse insert failed: %w", err)
	}
	return nil
}

// ReadAll selects all messages ordered by their append sequence.
func (s *Sink) ReadAll() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rows, err := s.conn.Query(ctx,
		"SELECT message FROM "+s.fullTable()+" ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("clickhouse query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("clickhouse scan failed: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("clickhouse read failed: %w", err)
	}
	return messages, nil
}

func (s *Sink) Close() error {
	return s.conn.Close()
}
