package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

type ctxKey struct{}

type implLogger struct {
	logger *log.Logger
}

// New creates a new Logger instance writing text output to stdout
func New(level string) Logger {
	return NewWithWriter(os.Stdout, level, "text")
}

// NewWithWriter creates a Logger writing to w using the given level and format
// (text, json or logfmt).
func NewWithWriter(w io.Writer, level, format string) Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006/01/02 15:04:05",
	})
	l.SetLevel(parseLevel(level))

	switch strings.ToLower(format) {
	case "json":
		l.SetFormatter(log.JSONFormatter)
	case "logfmt":
		l.SetFormatter(log.LogfmtFormatter)
	default:
		l.SetFormatter(log.TextFormatter)
	}

	return &implLogger{logger: l}
}

// NewNop returns a Logger that discards everything
func NewNop() Logger {
	return NewWithWriter(io.Discard, "error", "text")
}

// WithRequestID attaches a request identifier that is prefixed to every line
// logged with the returned context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func (l *implLogger) format(ctx context.Context, msg string, args []interface{}) (string, []interface{}) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	if ctx != nil {
		if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
			return msg, []interface{}{"request", id}
		}
	}
	return msg, nil
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	m, kv := l.format(ctx, msg, args)
	l.logger.Debug(m, kv...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	m, kv := l.format(ctx, msg, args)
	l.logger.Info(m, kv...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	m, kv := l.format(ctx, msg, args)
	l.logger.Warn(m, kv...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	m, kv := l.format(ctx, msg, args)
	l.logger.Error(m, kv...)
}
