package transport

import (
	"EconSim/modules/kit/logx"
	"EconSim/modules/kit/tracex"
	"context"
	"time"

	"go.uber.org/zap"
)

// AccessLog is the per-request state the access line is built from.
type AccessLog struct {
	BizCode     BizCode
	ErrorReason string
	startTime   time.Time
	action      string
}

type accessLogKey struct{}

// NewContext derives a request context carrying a fresh AccessLog and trace id.
func NewContext(parent context.Context, action string) context.Context {
	ctx := parent
	if ctx == nil {
		ctx = context.Background()
	}
	if action == "" {
		action = "unknown"
	}
	if traceID := tracex.NewTraceID(); traceID != "" {
		ctx = tracex.WithTraceID(ctx, traceID)
	}
	ctx = tracex.WithSpanID(ctx, "http")

	al := &AccessLog{
		BizCode:   BizCode(SystemError),
		startTime: time.Now(),
		action:    action,
	}
	return context.WithValue(ctx, accessLogKey{}, al)
}

func FromContext(ctx context.Context) *AccessLog {
	if ctx == nil {
		return nil
	}
	al, _ := ctx.Value(accessLogKey{}).(*AccessLog)
	return al
}

func SetBizCode(ctx context.Context, code BizCode) {
	if al := FromContext(ctx); al != nil {
		al.BizCode = code
	}
}

func SetErrorReason(ctx context.Context, reason string) {
	if reason == "" {
		return
	}
	if al := FromContext(ctx); al != nil {
		al.ErrorReason = reason
	}
}

func WriteAccessLog(ctx context.Context, log logx.Logger, fields ...zap.Field) {
	al := FromContext(ctx)
	if al == nil || log == nil {
		return
	}

	base := []zap.Field{zap.Duration("latency", time.Since(al.startTime))}
	if al.BizCode == BizCode(OK) {
		base = append(base, zap.String("result", "success"))
	} else {
		base = append(base, zap.String("result", "failure"))
		if al.ErrorReason != "" {
			base = append(base, zap.String("error_reason", al.ErrorReason))
		}
	}
	logx.ReportAccess(ctx, log, al.action, int(al.BizCode), append(base, fields...)...)
}
