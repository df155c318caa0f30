// Package eventlog provides topic-core event logging infrastructure.
package eventlog

import (
	"fmt"

	"github.com/kodflow/topiccore/internal/domain/config"
	"github.com/kodflow/topiccore/internal/domain/logging"
)

// nodeLogFileName is the JSON log file written under cfg.LogDir.
const nodeLogFileName string = "/node.jsonl"

// BuildLogger creates a MultiLogger from the node configuration: a
// console writer always, plus a JSON file writer under cfg.LogDir when
// one is configured.
//
// Params:
//   - cfg: the node configuration.
//
// Returns:
//   - logging.Logger: the created logger.
//   - error: nil on success, error on failure.
func BuildLogger(cfg config.Config) (logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logging.LevelInfo
	}

	writers := []logging.Writer{WithLevelFilter(NewConsoleWriter(), level)}

	if cfg.LogDir != "" {
		jsonWriter, jerr := NewJSONWriter(cfg.LogDir + nodeLogFileName)
		if jerr != nil {
			return nil, fmt.Errorf("building json writer: %w", jerr)
		}
		writers = append(writers, WithLevelFilter(jsonWriter, level))
	}

	return New(writers...), nil
}

// BuildLoggerWithoutConsole creates a MultiLogger from cfg but excludes
// the console writer. Used for interactive TUI mode where console output
// would pollute the display.
//
// Params:
//   - cfg: the node configuration.
//
// Returns:
//   - logging.Logger: the created logger (without a console writer).
//   - error: nil on success, error on failure.
func BuildLoggerWithoutConsole(cfg config.Config) (logging.Logger, error) {
	if cfg.LogDir == "" {
		return NewSilentLogger(), nil
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logging.LevelInfo
	}
	jsonWriter, jerr := NewJSONWriter(cfg.LogDir + nodeLogFileName)
	if jerr != nil {
		return nil, fmt.Errorf("building json writer: %w", jerr)
	}
	return New(WithLevelFilter(jsonWriter, level)), nil
}

// DefaultLogger creates a logger with default console output. A
// convenience for when no configuration is available.
//
// Returns:
//   - logging.Logger: the default console logger.
func DefaultLogger() logging.Logger {
	return New(WithLevelFilter(NewConsoleWriter(), logging.LevelInfo))
}

// NewSilentLogger creates a logger with no output, used for interactive
// mode when file logging is not configured.
//
// Returns:
//   - logging.Logger: a logger that discards all output.
func NewSilentLogger() logging.Logger {
	return New() // Empty MultiLogger with no writers.
}

// BuildLoggerWithBufferedConsole creates a MultiLogger with a buffered
// console writer, holding logs until Flush is called so a startup banner
// can print first.
//
// Params:
//   - cfg: the node configuration.
//
// Returns:
//   - logging.Logger: the created logger.
//   - *BufferedWriter: the buffered console writer.
//   - error: nil on success, error on failure.
func BuildLoggerWithBufferedConsole(cfg config.Config) (logging.Logger, *BufferedWriter, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logging.LevelInfo
	}

	bufferedConsole := NewBufferedWriter(NewConsoleWriter())
	writers := []logging.Writer{bufferedConsole}

	if cfg.LogDir != "" {
		jsonWriter, jerr := NewJSONWriter(cfg.LogDir + nodeLogFileName)
		if jerr != nil {
			return nil, nil, fmt.Errorf("building json writer: %w", jerr)
		}
		writers = append(writers, WithLevelFilter(jsonWriter, level))
	}

	return New(writers...), bufferedConsole, nil
}
