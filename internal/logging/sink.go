// Package logging defines the level-keyed sink that remote log ingestion
// forwards to.
package logging

import "log/slog"

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// ValidLevel reports whether level names one of the four sinks.
func ValidLevel(level string) bool {
	switch level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return true
	}
	return false
}

// Sink accepts a message and a flattened key/value sequence per level.
type Sink interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type slogSink struct {
	logger *slog.Logger
}

func (s *slogSink) Debug(msg string, args ...any) { s.logger.Debug(msg, args...) }
func (s *slogSink) Info(msg string, args ...any)  { s.logger.Info(msg, args...) }
func (s *slogSink) Warn(msg string, args ...any)  { s.logger.Warn(msg, args...) }
func (s *slogSink) Error(msg string, args ...any) { s.logger.Error(msg, args...) }

// NewSlogSink adapts a slog.Logger into a Sink.
func NewSlogSink(logger *slog.Logger) Sink {
	return &slogSink{logger: logger}
}
