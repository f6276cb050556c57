// Package applog is a small leveled logger wrapping the standard log
// package, used throughout the CLI and its supporting packages instead of
// bare fmt.Println so verbosity can be controlled from one place.
package applog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log entry. Its order matters: a Logger
// suppresses entries below its configured minimum level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes leveled, timestamped lines to an underlying io.Writer.
type Logger struct {
	mu     sync.Mutex
	writer io.Writer
	goLog  *log.Logger
	level  Level
}

// New creates a Logger writing to w at the given minimum level.
func New(w io.Writer, level Level) *Logger {
	l := &Logger{writer: w, level: level}
	l.goLog = log.New(l, "", 0)
	return l
}

// Write implements io.Writer so the standard log package can write
// through the Logger's own mutex and destination.
func (l *Logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writer == nil {
		return len(p), nil
	}
	return l.writer.Write(p)
}

// SetWriter changes the output destination.
func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

// SetLevel changes the minimum level logged.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) logf(level Level, format string, v ...interface{}) {
	l.mu.Lock()
	min := l.level
	l.mu.Unlock()
	if level < min {
		return
	}
	message := strings.TrimSpace(fmt.Sprintf(format, v...))
	l.goLog.Println(fmt.Sprintf("%s %-5s %s", time.Now().Format("15:04:05.000"), level, message))
}

func (l *Logger) Debugf(format string, v ...interface{}) { l.logf(LevelDebug, format, v...) }
func (l *Logger) Infof(format string, v ...interface{})  { l.logf(LevelInfo, format, v...) }
func (l *Logger) Warnf(format string, v ...interface{})  { l.logf(LevelWarn, format, v...) }
func (l *Logger) Errorf(format string, v ...interface{}) { l.logf(LevelError, format, v...) }

var defaultLogger = New(os.Stderr, LevelInfo)

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

func Debugf(format string, v ...interface{}) { defaultLogger.Debugf(format, v...) }
func Infof(format string, v ...interface{})  { defaultLogger.Infof(format, v...) }
func Warnf(format string, v ...interface{})  { defaultLogger.Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { defaultLogger.Errorf(format, v...) }
