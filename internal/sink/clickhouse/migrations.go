package clickhouse

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ch "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Expose embedded migration content for testing purposes.
func ReadEmbeddedMigration(name string) (string, error) {
	b, err := migrationFS.ReadFile("migrations/" + name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// runMigrations injects the configured table into embedded SQL and applies it via goose.
func runMigrations(opts *ch.Options, database, table string) error {
	// Open DB and ping; the server may still be starting, so retry the
	// ping with a capped backoff before giving up.
	db := ch.OpenDB(opts)
	defer func() { _ = db.Close() }()
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = 10 * time.Second
	if err := backoff.Retry(db.Ping, bo); err != nil {
		return fmt.Errorf("clickhouse ping failed: %w", err)
	}
	if err := goose.SetDialect("clickhouse"); err != nil {
		return err
	}
	// The sqlite sink may have pointed goose at its embedded FS; these
	// migrations are materialized on disk, so reset to the os filesystem.
	goose.SetBaseFS(nil)
	// Create temp dir and write processed migration files
	tmpDir, err := os.MkdirTemp("", "logmirror_ch_mig_*")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()
	// Compute full table name
	fullTable := table
	if database != "" && !strings.Contains(fullTable, ".") {
		fullTable = database + "." + table
	}
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		b, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return err
		}
		content := strings.ReplaceAll(string(b), "__TABLE_FULL__", fullTable)
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0o600); err != nil {
			return err
		}
	}
	if err := goose.Up(db, tmpDir); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}
	return nil
}
