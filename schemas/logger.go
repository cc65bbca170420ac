package schemas

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the logging interface consumed by every component in this
// module. Messages use printf-style formatting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// zerologLogger adapts a zerolog.Logger to the Logger interface.
type zerologLogger struct {
	logger zerolog.Logger
}

// NewDefaultLogger returns a Logger writing human-readable output to stderr
// at the given level.
func NewDefaultLogger(level zerolog.Level) Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return &zerologLogger{
		logger: zerolog.New(writer).Level(level).With().Timestamp().Logger(),
	}
}

// NewZerologLogger wraps an existing zerolog.Logger.
func NewZerologLogger(logger zerolog.Logger) Logger {
	return &zerologLogger{logger: logger}
}

func (l *zerologLogger) Debug(msg string, args ...any) {
	l.logger.Debug().Msgf(msg, args...)
}

func (l *zerologLogger) Info(msg string, args ...any) {
	l.logger.Info().Msgf(msg, args...)
}

func (l *zerologLogger) Warn(msg string, args ...any) {
	l.logger.Warn().Msgf(msg, args...)
}

func (l *zerologLogger) Error(msg string, args ...any) {
	l.logger.Error().Msgf(msg, args...)
}

// NopLogger discards everything. Useful as a test default.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
