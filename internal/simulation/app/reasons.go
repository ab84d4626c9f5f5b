package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{Code: c, Message: m}
}

var (
	ReasonRuntimeNotStarted = NewReason("RUNTIME_NOT_STARTED", "simulation runtime not started")
	ReasonActorTimeout      = NewReason("ACTOR_TIMEOUT", "simulation actor did not answer in time")
	ReasonActorUnavailable  = NewReason("ACTOR_UNAVAILABLE", "simulation actor is not online")
	ReasonUnexpectedReply   = NewReason("ACTOR_BAD_REPLY", "simulation actor returned an unexpected reply")
	ReasonArchiveRead       = NewReason("ARCHIVE_READ_FAILED", "could not read turn history")
	ReasonHistoryLimit      = NewReason("HISTORY_LIMIT_INVALID", "limit must be a positive integer")
)
