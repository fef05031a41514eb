package logger

import (
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger emits structured JSON log lines tagged with the service name, an
// action token, and the request id of the operation being served.
type Logger struct {
	service  string
	hostname string
	zl       *zap.Logger
}

// New creates a logger for the named service.
func New(service string) *Logger {
	hostname, _ := os.Hostname()

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)

	zl, err := cfg.Build()
	if err != nil {
		zl = zap.NewNop()
	}

	return &Logger{
		service:  service,
		hostname: hostname,
		zl:       zl,
	}
}

// GenerateRequestID returns a fresh request id.
func GenerateRequestID() string {
	return uuid.NewString()
}

func (l *Logger) common(action, requestID string) []zap.Field {
	return []zap.Field{
		zap.String("service", l.service),
		zap.String("hostname", l.hostname),
		zap.String("action", action),
		zap.String("request_id", requestID),
	}
}

// Info logs an informational message.
func (l *Logger) Info(action, message, requestID string, fields map[string]interface{}) {
	zf := l.common(action, requestID)
	if fields != nil {
		zf = append(zf, zap.Any("details", fields))
	}
	l.zl.Info(message, zf...)
}

// Debug logs a debug message.
func (l *Logger) Debug(action, message, requestID string, fields map[string]interface{}) {
	zf := l.common(action, requestID)
	if fields != nil {
		zf = append(zf, zap.Any("details", fields))
	}
	l.zl.Debug(message, zf...)
}

// Error logs an error with its cause attached.
func (l *Logger) Error(action, message, requestID string, err error, fields map[string]interface{}) {
	zf := l.common(action, requestID)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	if fields != nil {
		zf = append(zf, zap.Any("details", fields))
	}
	l.zl.Error(message, zf...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() {
	_ = l.zl.Sync()
}
