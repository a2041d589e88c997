// Package logger provides a small leveled logger for the application.
// Levels: off (silent), normal (info/warn/error), verbose (adds debug).
// All methods are safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level controls verbosity.
type Level int

const (
	// LevelOff disables all output.
	LevelOff Level = iota
	// LevelNormal enables info, warn and error output.
	LevelNormal
	// LevelVerbose enables everything including debug.
	LevelVerbose
)

// Logger is a leveled logger with an optional component name prefix.
type Logger struct {
	mu   *sync.RWMutex
	lvl  *Level
	name string
	out  *log.Logger
}

// New creates a logger at the given level writing to out. A nil out falls
// back to os.Stderr.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	lvl := level
	return &Logger{
		mu:  &sync.RWMutex{},
		lvl: &lvl,
		out: log.New(out, "", log.Ltime),
	}
}

// Named returns a child logger that prefixes every line with the component
// name. The child shares the parent's level and output.
func (l *Logger) Named(name string) *Logger {
	child := *l
	if l.name != "" {
		child.name = l.name + "." + name
	} else {
		child.name = name
	}
	return &child
}

// SetLevel changes the level at runtime, for the whole logger tree.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.lvl = level
}

func (l *Logger) emit(min Level, tag, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if *l.lvl < min {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.name != "" {
		l.out.Printf("%s %s: %s", tag, l.name, msg)
		return
	}
	l.out.Printf("%s %s", tag, msg)
}

// Debug logs at debug level (verbose only).
func (l *Logger) Debug(format string, args ...any) { l.emit(LevelVerbose, "[DBG]", format, args...) }

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) { l.emit(LevelNormal, "[INF]", format, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) { l.emit(LevelNormal, "[WRN]", format, args...) }

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) { l.emit(LevelNormal, "[ERR]", format, args...) }
