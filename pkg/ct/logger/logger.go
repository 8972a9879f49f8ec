package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel represents the severity level for logging.
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Logger provides structured logging with level-based filtering.
type Logger interface {
	Debug(v ...any)
	Debugf(format string, a ...any)
	Info(v ...any)
	Infof(format string, a ...any)
	Warn(v ...any)
	Warnf(format string, a ...any)
	Error(v ...any)
	Errorf(format string, a ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	logger *slog.Logger
	level  LogLevel
}

// New creates a text logger on stdout with the specified level.
func New(level string) Logger {
	return NewWithFormat(level, "text", os.Stdout)
}

// NewWithFormat creates a logger writing to w.
// Level accepts "debug", "dbg", "info", "inf", "warn", "wrn", "error", "err" (case-insensitive)
// and defaults to info. Format is "json" or "text"; anything else is text.
func NewWithFormat(level, format string, w io.Writer) Logger {
	lvl := parseLevel(level)
	opts := &slog.HandlerOptions{Level: toSlogLevel(lvl)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &slogLogger{
		logger: slog.New(handler),
		level:  lvl,
	}
}

func (l *slogLogger) enabled(level LogLevel) bool {
	return l.level <= level
}

func (l *slogLogger) Debug(v ...any) {
	if l.enabled(DebugLevel) {
		l.logger.Debug(fmt.Sprint(v...))
	}
}

func (l *slogLogger) Debugf(format string, a ...any) {
	if l.enabled(DebugLevel) {
		l.logger.Debug(fmt.Sprintf(format, a...))
	}
}

func (l *slogLogger) Info(v ...any) {
	if l.enabled(InfoLevel) {
		l.logger.Info(fmt.Sprint(v...))
	}
}

func (l *slogLogger) Infof(format string, a ...any) {
	if l.enabled(InfoLevel) {
		l.logger.Info(fmt.Sprintf(format, a...))
	}
}

func (l *slogLogger) Warn(v ...any) {
	if l.enabled(WarnLevel) {
		l.logger.Warn(fmt.Sprint(v...))
	}
}

func (l *slogLogger) Warnf(format string, a ...any) {
	if l.enabled(WarnLevel) {
		l.logger.Warn(fmt.Sprintf(format, a...))
	}
}

func (l *slogLogger) Error(v ...any) {
	if l.enabled(ErrorLevel) {
		l.logger.Error(fmt.Sprint(v...))
	}
}

func (l *slogLogger) Errorf(format string, a ...any) {
	if l.enabled(ErrorLevel) {
		l.logger.Error(fmt.Sprintf(format, a...))
	}
}

// With returns a logger carrying additional key/value fields at the same level.
func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{
		logger: l.logger.With(args...),
		level:  l.level,
	}
}

type noopLogger struct{}

func (noopLogger) Debug(v ...any)                 {}
func (noopLogger) Debugf(format string, a ...any) {}
func (noopLogger) Info(v ...any)                  {}
func (noopLogger) Infof(format string, a ...any)  {}
func (noopLogger) Warn(v ...any)                  {}
func (noopLogger) Warnf(format string, a ...any)  {}
func (noopLogger) Error(v ...any)                 {}
func (noopLogger) Errorf(format string, a ...any) {}
func (noopLogger) With(args ...any) Logger        { return noopLogger{} }

// NewNoopLogger returns a logger that discards everything.
func NewNoopLogger() Logger {
	return noopLogger{}
}

func parseLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "dbg":
		return DebugLevel
	case "warn", "warning", "wrn":
		return WarnLevel
	case "error", "err":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
