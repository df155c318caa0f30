// Package config provides the node-level configuration value object: the
// handful of defaults and paths the ambient stack needs (log level,
// default queue/buffer sizes, the registry audit-log path), loaded from
// YAML at startup (§6, out-of-scope collaborators carried as ambient
// stack rather than part of the topic core itself).
package config

import "github.com/kodflow/topiccore/internal/domain/shared"

// Config holds the node's static configuration, loaded once at startup
// and passed down to the bootstrap wiring.
type Config struct {
	// Namespace is the node's private namespace root, e.g. "/robot1".
	Namespace string `yaml:"namespace"`
	// LogLevel is the minimum logging.Level name to emit.
	LogLevel string `yaml:"log_level"`
	// LogDir is the directory file and JSON log writers write under.
	LogDir string `yaml:"log_dir"`
	// DefaultQueueSize is a subscriber queue-size hint, filled in by
	// WithDefaults when zero. The pubsub handles do not read it.
	DefaultQueueSize int `yaml:"default_queue_size"`
	// DefaultBuffSize is a subscriber buffer-size hint, filled in by
	// WithDefaults when zero. The pubsub handles do not read it.
	DefaultBuffSize int `yaml:"default_buff_size"`
	// DefaultBuffSizeHuman, when set, overrides DefaultBuffSize with a
	// human-readable size such as "64KB" or "1MB" (shared.ParseSize),
	// letting an operator write node.yaml without computing byte counts.
	DefaultBuffSizeHuman string `yaml:"default_buff_size_human"`
	// TCPNoDelay is a nodelay preference; the pubsub handles and
	// connections do not read it.
	TCPNoDelay bool `yaml:"tcp_nodelay"`
	// RegistryLogPath is where the registration audit trail is persisted;
	// empty disables persistence.
	RegistryLogPath string `yaml:"registry_log_path"`
}

// defaultQueueSize is used when Config.DefaultQueueSize is zero.
const defaultQueueSize int = -1

// defaultBuffSize is used when Config.DefaultBuffSize is zero.
const defaultBuffSize int = 65536

// Default returns a Config with conservative defaults for an unconfigured
// node.
func Default() Config {
	return Config{
		Namespace:        "/",
		LogLevel:         "info",
		LogDir:           "./log",
		DefaultQueueSize: defaultQueueSize,
		DefaultBuffSize:  defaultBuffSize,
		TCPNoDelay:       false,
		RegistryLogPath:  "",
	}
}

// WithDefaults fills any zero-valued field of c with Default()'s value, so
// a partially specified YAML document still yields a usable Config. It
// returns an error only if DefaultBuffSizeHuman is set and fails to parse.
func (c Config) WithDefaults() (Config, error) {
	d := Default()
	if c.Namespace == "" {
		c.Namespace = d.Namespace
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogDir == "" {
		c.LogDir = d.LogDir
	}
	if c.DefaultQueueSize == 0 {
		c.DefaultQueueSize = d.DefaultQueueSize
	}
	if c.DefaultBuffSizeHuman != "" {
		size, err := shared.ParseSize(c.DefaultBuffSizeHuman)
		if err != nil {
			return Config{}, err
		}
		c.DefaultBuffSize = int(size)
	} else if c.DefaultBuffSize == 0 {
		c.DefaultBuffSize = d.DefaultBuffSize
	}
	return c, nil
}
