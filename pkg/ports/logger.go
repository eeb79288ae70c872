// Package ports defines the interfaces between the resampling core and its collaborators.
package ports

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLogLevel is returned for a level name ParseLogLevel does not know.
var ErrUnknownLogLevel = errors.New("ports: unknown log level")

// LogLevel orders log messages by severity. A logger prints messages at or
// above its own level.
type LogLevel int

const (
	LevelDebug LogLevel = iota // adapter internals: ffmpeg arguments, state changes
	LevelInfo                  // run progress: plan, backend, output
	LevelWarn                  // recovered: encoder fallback, black frames, rate mismatch
	LevelError                 // the run stops
	LevelQuiet                 // nothing is printed
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
	"quiet":   LevelQuiet,
}

// ParseLogLevel reads a level name from the settings file or the command
// line. Names are case-insensitive and an empty name means info.
func ParseLogLevel(name string) (LogLevel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return LevelInfo, nil
	}
	if level, ok := levelNames[name]; ok {
		return level, nil
	}
	return LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLogLevel, name)
}

// Logger takes message keys that the console adapter translates with
// go-l10n before formatting them with args. Adapters log through a
// WithComponent logger at debug level; the orchestrator logs at info.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a logger that prefixes messages with "[component]".
	WithComponent(component string) Logger
}
