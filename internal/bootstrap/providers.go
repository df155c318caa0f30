package bootstrap

import (
	"fmt"

	appconfig "github.com/kodflow/topiccore/internal/application/config"
	domainconfig "github.com/kodflow/topiccore/internal/domain/config"
	domainlogging "github.com/kodflow/topiccore/internal/domain/logging"
	"github.com/kodflow/topiccore/internal/infrastructure/observability/logging/eventlog"
	"github.com/kodflow/topiccore/internal/infrastructure/persistence/registrylog"
	"github.com/kodflow/topiccore/internal/infrastructure/resolution"
)

// LoadConfig loads the node configuration from configPath, falling back
// to config.Default() when configPath is empty.
//
// Params:
//   - loader: the configuration loader port.
//   - configPath: path to the node's YAML config file; empty uses defaults.
//
// Returns:
//   - domainconfig.Config: the loaded (or default) configuration.
//   - error: any file read or parse error.
func LoadConfig(loader appconfig.Loader, configPath string) (domainconfig.Config, error) {
	if configPath == "" {
		return domainconfig.Default(), nil
	}
	cfg, err := loader.Load(configPath)
	if err != nil {
		return domainconfig.Config{}, fmt.Errorf("loading node config: %w", err)
	}
	return cfg, nil
}

// ProvideLogger builds the node's MultiLogger: a console writer always,
// plus a JSON file writer under cfg.LogDir when one is configured.
//
// Params:
//   - cfg: the loaded node configuration.
//
// Returns:
//   - domainlogging.Logger: the wired logger.
//   - error: a file writer construction error.
func ProvideLogger(cfg domainconfig.Config) (domainlogging.Logger, error) {
	logger, err := eventlog.BuildLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// ProvideLoggerWithoutConsole builds the same logger as ProvideLogger but
// without a console writer, for callers that own the terminal themselves
// (e.g. an interactive TUI) and would have their display corrupted by
// interleaved log lines.
//
// Params:
//   - cfg: the loaded node configuration.
//
// Returns:
//   - domainlogging.Logger: the wired logger, silent if cfg.LogDir is empty.
//   - error: a file writer construction error.
func ProvideLoggerWithoutConsole(cfg domainconfig.Config) (domainlogging.Logger, error) {
	logger, err := eventlog.BuildLoggerWithoutConsole(cfg)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// ProvideRegistryLog opens the registration-event audit log at
// cfg.RegistryLogPath, or returns nil when persistence is disabled.
//
// Params:
//   - cfg: the loaded node configuration.
//
// Returns:
//   - *registrylog.Store: the opened store, or nil if RegistryLogPath is empty.
//   - error: a database open error.
func ProvideRegistryLog(cfg domainconfig.Config) (*registrylog.Store, error) {
	if cfg.RegistryLogPath == "" {
		return nil, nil
	}
	store, err := registrylog.Open(cfg.RegistryLogPath)
	if err != nil {
		return nil, fmt.Errorf("opening registry log: %w", err)
	}
	return store, nil
}

// ProvideNameResolver builds the NameResolver rooted at cfg.Namespace.
//
// Params:
//   - cfg: the loaded node configuration.
//
// Returns:
//   - *resolution.Resolver: the node's name resolver.
func ProvideNameResolver(cfg domainconfig.Config) *resolution.Resolver {
	return resolution.New(cfg.Namespace, nil, nil)
}
