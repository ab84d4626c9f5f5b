package handler

import (
	"EconSim/internal/shared/transport"
	"EconSim/internal/simulation/app"
	"EconSim/modules/kit/logx"
	"context"
	"errors"
	nethttp "net/http"
)

const busyMsg = "sistema occupato, riprova più tardi"

func mapBizReasonToClientCode(reason string) int {
	switch reason {
	case "":
		return transport.OK
	default:
		return transport.InvalidParam
	}
}

func mapTechErrToClientCode(err error) (int, int) {
	switch {
	case errors.Is(err, app.ErrTimeout),
		errors.Is(err, app.ErrRuntimeUnavailable),
		errors.Is(err, app.ErrArchiveUnavailable):
		return nethttp.StatusServiceUnavailable, transport.ServiceUnavailable
	default:
		return nethttp.StatusInternalServerError, transport.SystemError
	}
}

// HandleError logs err once and maps it to an HTTP status, a body code and a
// client message. Business rejections travel with status 200.
func HandleError(ctx context.Context, log logx.Logger, action string, err error) (int, int, string) {
	reason := app.GetErrorReasonCode(err)
	transport.SetErrorReason(ctx, reason)

	if app.IsBizError(err) {
		msg := app.GetErrorMessage(err)
		logx.ReportBiz(ctx, log, logx.NewBizLog(action, reason, msg))
		return nethttp.StatusOK, mapBizReasonToClientCode(reason), msg
	}

	logx.ReportSysError(ctx, log, logx.NewSysLog(action, err))
	status, code := mapTechErrToClientCode(err)
	return status, code, busyMsg
}
