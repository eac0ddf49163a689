// Package logger provides jsontab's logging surface, backed by
// charmbracelet/log. All diagnostics go to stderr; stdout is never
// written to, and the result file is the only data channel.
package logger

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the minimal structured logging interface used across jsontab.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

type logger struct {
	inner *charmlog.Logger
}

func (l *logger) Debug(msg string, keyvals ...interface{}) { l.inner.Debug(msg, keyvals...) }
func (l *logger) Info(msg string, keyvals ...interface{})  { l.inner.Info(msg, keyvals...) }
func (l *logger) Warn(msg string, keyvals ...interface{})  { l.inner.Warn(msg, keyvals...) }
func (l *logger) Error(msg string, keyvals ...interface{}) { l.inner.Error(msg, keyvals...) }

// New creates a stderr logger. Debug mode lowers the level from Warn to
// Debug; otherwise a successful run logs nothing.
func New(debug bool) Logger {
	return NewWithWriter(os.Stderr, debug)
}

// NewWithWriter creates a logger writing to w, for tests that capture
// log output.
func NewWithWriter(w io.Writer, debug bool) Logger {
	level := charmlog.WarnLevel
	if debug {
		level = charmlog.DebugLevel
	}
	inner := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	return &logger{inner: inner}
}
