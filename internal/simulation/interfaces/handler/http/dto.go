package http

// ErrorBody is returned by every failing endpoint.
type ErrorBody struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}
