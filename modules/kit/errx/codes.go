package errx

// System error codes shared by every service. Domain codes live with their
// domain, not here.
const (
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeTimeout       Code = "TIMEOUT"
	CodeReqParamError Code = "REQ_PARAM_ERROR"
	CodeNotFound      Code = "NOT_FOUND"
)

var (
	ErrInternal    = NewSys(CodeInternal, "internal server error")
	ErrUnavailable = NewSys(CodeUnavailable, "service unavailable")
	ErrTimeout     = NewSys(CodeTimeout, "request timed out")
	ErrReqParam    = NewBiz(CodeReqParamError, "invalid request parameter")
	ErrNotFound    = NewBiz(CodeNotFound, "not found")
)
