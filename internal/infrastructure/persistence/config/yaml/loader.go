// Package yaml provides YAML configuration loading infrastructure for the
// node-level config.Config.
package yaml

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kodflow/topiccore/internal/domain/config"
	"github.com/kodflow/topiccore/internal/domain/shared"
)

// Loader loads a config.Config from a YAML file.
type Loader struct {
	// fs reads the config file; shared.DefaultFileSystem unless overridden,
	// letting tests substitute a fake without touching the real filesystem.
	fs shared.FileSystem
}

// New creates a new YAML configuration loader backed by the real filesystem.
func New() *Loader {
	return &Loader{fs: shared.DefaultFileSystem}
}

// NewWithFileSystem creates a YAML configuration loader backed by fs.
func NewWithFileSystem(fs shared.FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads and parses a configuration file from path, filling any
// unspecified field with config.Default()'s value.
func (l *Loader) Load(path string) (config.Config, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return l.Parse(data)
}

// Parse parses configuration from YAML bytes.
func (l *Loader) Parse(data []byte) (config.Config, error) {
	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return config.Config{}, fmt.Errorf("parsing config: %w", err)
	}
	resolved, err := cfg.WithDefaults()
	if err != nil {
		return config.Config{}, fmt.Errorf("resolving config defaults: %w", err)
	}
	return resolved, nil
}
