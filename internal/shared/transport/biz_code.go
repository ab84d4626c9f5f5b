package transport

// BizCode is the code carried in error bodies and access logs.
type BizCode int

// Codes share the HTTP numbering so access log levels line up with status:
// 0 success, 4xx caller error, 5xx our fault.
const (
	OK                 = 0
	InvalidParam       = 400
	NotFound           = 404
	MethodNotAllowed   = 405
	SystemError        = 500
	ServiceUnavailable = 503
)
