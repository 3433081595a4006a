package file

import "fmt"

// Config holds the file sink's backing path.
type Config struct {
	Path string `mapstructure:"path"`
}

func (c Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("sinks.file.path must be set")
	}
	return nil
}
