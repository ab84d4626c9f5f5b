package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger is the small structured-logging surface shared by every package.
// WithContext picks up trace and span ids.
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}
