// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/boutique-storefront/internal/config"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

var std = logrus.New()

// New builds the application logger from configuration and installs it as the default
func New(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	// Set log format based on config
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	// Set log level
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	std = logger
	return logger
}

// L returns the default logger
func L() *logrus.Logger {
	return std
}

// SetOutput redirects the default logger, mostly useful in tests
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// WithRequestID stores the request id in ctx
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFrom returns the request id stored in ctx, if any
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// FromContext returns a log entry carrying the request id
func FromContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(std)
	if reqID := RequestIDFrom(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	return entry
}
