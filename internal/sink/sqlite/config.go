package sqlite

import "fmt"

// Config holds the SQLite sink's database path.
type Config struct {
	Path string `mapstructure:"path"`
}

func (c Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("sinks.sqlite.path must be set")
	}
	return nil
}
