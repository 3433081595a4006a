// Package source produces the ordered message set driven through the
// sinks: either the built-in demo set or the contents of a file in one
// of several line-oriented formats.
package source

import (
	"bufio"
	"fmt"
	"os"
)

// DefaultMessages is the built-in demo message set used when no source
// file is configured.
func DefaultMessages() []string {
	return []string{"Hello, World!", "abracadabra", "Sayonara!"}
}

// Config selects where the message set comes from.
type Config struct {
	Path   string `mapstructure:"path"`   // empty: use DefaultMessages
	Format string `mapstructure:"format"` // "lines" (default), "csv", "audit"
	Column string `mapstructure:"column"` // csv only: header name or 0-based index
}

func (c Config) Validate() error {
	switch c.Format {
	case "", "lines", "csv", "audit":
	default:
		return fmt.Errorf("invalid source.format: %s", c.Format)
	}
	if c.Path == "" && c.Format != "" {
		return fmt.Errorf("source.format requires source.path")
	}
	return nil
}

// Load reads the configured message set. With an empty path the
// built-in demo set is returned.
func Load(cfg Config) ([]string, error) {
	if cfg.Path == "" {
		return DefaultMessages(), nil
	}
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file %s: %w", cfg.Path, err)
	}
	defer func() { _ = f.Close() }()

	switch cfg.Format {
	case "csv":
		return readCSV(f, cfg.Column)
	case "audit":
		return readAudit(f)
	default:
		return readLines(f)
	}
}

func readLines(f *os.File) ([]string, error) {
	var messages []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		messages = append(messages, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return messages, nil
}
