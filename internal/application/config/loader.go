// Package config provides the application port for configuration loading.
package config

import "github.com/kodflow/topiccore/internal/domain/config"

// Loader loads configuration from external sources. This is the port
// that infrastructure adapters implement.
type Loader interface {
	// Load loads configuration from the given path.
	Load(path string) (config.Config, error)
}
