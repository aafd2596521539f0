package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

// SlogLogger adapts a slog.Logger to the printf-style IAppLogger.
type SlogLogger struct {
	log *slog.Logger
}

// NewLogger creates a logger writing to stdout with the given level and format (text|json).
func NewLogger(level, format string) usecasecontract.IAppLogger {
	return NewLoggerTo(os.Stdout, level, format)
}

func NewLoggerTo(w io.Writer, level, format string) usecasecontract.IAppLogger {
	opts := &slog.HandlerOptions{Level: levelFromString(level)}
	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &SlogLogger{log: slog.New(handler)}
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Debugf logs a debug message.
func (l *SlogLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

// Infof logs an info message.
func (l *SlogLogger) Infof(format string, args ...interface{}) {
	l.log.Info(fmt.Sprintf(format, args...))
}

// Warnf logs a warning message.
func (l *SlogLogger) Warnf(format string, args ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

// Warningf logs a warning message.
func (l *SlogLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

// Errorf logs an error message.
func (l *SlogLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(fmt.Sprintf(format, args...))
}

// Fatalf logs an error message and exits.
func (l *SlogLogger) Fatalf(format string, args ...interface{}) {
	l.log.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
