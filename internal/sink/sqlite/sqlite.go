// Package sqlite provides a sink backed by a local SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/loykin/logmirror/internal/sink"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Sink records each message as a row in the messages table. Read-back
// orders by the autoincrement id, which preserves append order.
type Sink struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and applies embedded
// migrations before returning a usable sink.
func New(dbPath string) (*Sink, error) {
	// Ensure directory exists
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := ensureDir(dir); err != nil {
			return nil, fmt.Errorf("failed to create directory for database: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set up goose with embedded migrations
	InitMigrations()

	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set dialect: %w", err)
	}

	goose.SetTableName("logmirror_db_version")

	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Sink{db: db}, nil
}

var _ sink.Sink = (*Sink)(nil)

func (s *Sink) Name() string { return "sqlite" }

func (s *Sink) Append(msg string) error {
	_, err := s.db.Exec(
		`INSERT INTO messages (message, created_at) VALUES (?, CURRENT_TIMESTAMP)`,
		msg)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (s *Sink) ReadAll() ([]string, error) {
	rows, err := s.db.Query(`SELECT message FROM messages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return messages, nil
}

func (s *Sink) Close() error {
	return s.db.Close()
}

// ensureDir makes sure a directory exists
func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
