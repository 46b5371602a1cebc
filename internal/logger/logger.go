// Package logger provides the leveled logger shared by the brew timer.
// Levels are off (no output), normal (info/warn/error) and verbose
// (adds debug). Levels can be parsed from config strings. The logger is
// safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// ParseLevel maps a config string to a Level. Accepts "off"/"quiet",
// "info"/"normal" and "debug"/"verbose"; anything else is an error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "quiet", "none":
		return LevelOff, nil
	case "", "info", "normal":
		return LevelNormal, nil
	case "debug", "verbose":
		return LevelVerbose, nil
	default:
		return LevelNormal, fmt.Errorf("unknown log level %q", s)
	}
}

// String returns the config name of the level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelVerbose:
		return "debug"
	default:
		return "info"
	}
}

// Logger writes prefixed, timestamped lines at or below its level.
type Logger struct {
	mu     sync.RWMutex
	level  Level
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errLog *log.Logger
}

// New creates a logger writing to out, or os.Stderr when out is nil.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	mk := func(prefix string) *log.Logger { return log.New(out, prefix, log.Ltime) }
	return &Logger{
		level:  level,
		debug:  mk("[DBG] "),
		info:   mk("[INF] "),
		warn:   mk("[WRN] "),
		errLog: mk("[ERR] "),
	}
}

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// Enabled reports whether messages at min would be written.
func (l *Logger) Enabled(min Level) bool {
	return l.GetLevel() >= min
}

func (l *Logger) logf(min Level, dst *log.Logger, format string, args []any) {
	if !l.Enabled(min) {
		return
	}
	// Depth 3: logf, the public method, then its caller.
	dst.Output(3, fmt.Sprintf(format, args...))
}

// Debug logs at debug level; only written in verbose mode.
func (l *Logger) Debug(format string, args ...any) { l.logf(LevelVerbose, l.debug, format, args) }

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) { l.logf(LevelNormal, l.info, format, args) }

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) { l.logf(LevelNormal, l.warn, format, args) }

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) { l.logf(LevelNormal, l.errLog, format, args) }
