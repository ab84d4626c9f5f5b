package app

import (
	"EconSim/modules/kit/errx"
	"errors"
)

const (
	CodeRuntimeUnavailable errx.Code = "SIM_RUNTIME_UNAVAILABLE"
	CodeArchiveUnavailable errx.Code = "SIM_ARCHIVE_UNAVAILABLE"
)

var (
	ErrRuntimeUnavailable = errx.NewSys(CodeRuntimeUnavailable, "simulation runtime unavailable")
	ErrArchiveUnavailable = errx.NewSys(CodeArchiveUnavailable, "turn archive unavailable")
	ErrTimeout            = errx.ErrTimeout
	ErrInternal           = errx.ErrInternal
	ErrReqParam           = errx.ErrReqParam
)

// IsBizError reports whether err is a caller mistake rather than ours.
func IsBizError(err error) bool {
	var e *errx.Error
	return errors.As(err, &e) && !e.IsSys()
}

func GetErrorReasonCode(err error) string {
	var rp interface{ Reason() string }
	if !errors.As(err, &rp) {
		return ""
	}
	return rp.Reason()
}

func GetErrorMessage(err error) string {
	var mp interface{ Msg() string }
	if !errors.As(err, &mp) {
		return ""
	}
	return mp.Msg()
}
