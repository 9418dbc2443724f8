// Package applog is the engine's own diagnostic output — distinct from
// the on-device log records the engine manages for callers. Copied and
// renamed from the teacher's internal/logger/app_logger.go almost
// verbatim: it is already exactly the ambient hand-rolled leveled logger
// with a package singleton that every file in the teacher repo calls
// into. Renamed Level -> Severity to avoid colliding with the engine's
// own record.Level vocabulary.
package applog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Severity is one of the six diagnostic levels this logger emits at.
type Severity int

const (
	Trace Severity = 10
	Debug Severity = 20
	Info  Severity = 30
	Warn  Severity = 40
	Error Severity = 50
	Fatal Severity = 60
)

var severityNames = map[Severity]string{
	Trace: "TRACE",
	Debug: "DEBUG",
	Info:  "INFO",
	Warn:  "WARN",
	Error: "ERROR",
	Fatal: "FATAL",
}

var namesToSeverity = map[string]Severity{
	"TRACE": Trace,
	"DEBUG": Debug,
	"INFO":  Info,
	"WARN":  Warn,
	"ERROR": Error,
	"FATAL": Fatal,
}

// Logger writes leveled diagnostic lines to an io.Writer, defaulting to
// stdout at Warn.
type Logger struct {
	mu     sync.Mutex
	writer io.Writer
	level  Severity
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Get returns the singleton diagnostic logger instance.
func Get() *Logger {
	once.Do(func() {
		defaultLogger = &Logger{
			writer: os.Stdout,
			level:  Warn,
		}
	})
	return defaultLogger
}

// SetLevel sets the minimum severity that will be emitted.
func (l *Logger) SetLevel(level Severity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetLevelFromString sets the level from a name such as "DEBUG".
func (l *Logger) SetLevelFromString(name string) error {
	name = strings.ToUpper(name)
	level, ok := namesToSeverity[name]
	if !ok {
		return fmt.Errorf("applog: invalid level: %s", name)
	}
	l.SetLevel(level)
	return nil
}

func (l *Logger) logf(level Severity, format string, args ...interface{}) {
	l.mu.Lock()
	shouldSkip := level < l.level
	l.mu.Unlock()
	if shouldSkip {
		return
	}

	now := time.Now().Format("2006-01-02T15:04:05Z07:00")
	levelName := severityNames[level]
	message := fmt.Sprintf(format, args...)
	logLine := fmt.Sprintf("[%s] %s: %s\n", now, levelName, message)

	l.mu.Lock()
	_, _ = fmt.Fprint(l.writer, logLine)
	l.mu.Unlock()

	if level == Fatal {
		os.Exit(1)
	}
}

func (l *Logger) Trace(format string, args ...interface{}) { l.logf(Trace, format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.logf(Debug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.logf(Info, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.logf(Warn, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.logf(Error, format, args...) }
func (l *Logger) Fatal(format string, args ...interface{}) { l.logf(Fatal, format, args...) }
