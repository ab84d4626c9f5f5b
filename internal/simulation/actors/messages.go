package actors

import (
	"EconSim/internal/simulation/entity"
	"time"
)

// SimulationMessage is implemented by every request the simulation actor
// accepts.
type SimulationMessage interface {
	simulationMessage()
}

type GetState struct{}

// AdvanceTurn carries the caller's ask deadline. A request still queued
// when the deadline passes is dropped, since its caller already got a
// timeout; one that started in time runs to completion.
type AdvanceTurn struct {
	Deadline time.Time
}

func (m *AdvanceTurn) Expired(now time.Time) bool {
	return !m.Deadline.IsZero() && now.After(m.Deadline)
}

func (*GetState) simulationMessage() {}
func (*AdvanceTurn) simulationMessage() {}

// StateReply answers both requests.
type StateReply struct {
	Ok       bool
	Reason   string
	Snapshot entity.Snapshot
}

// SnapshotTopic is the name snapshots are broadcast under.
const SnapshotTopic = "stato"

// ReasonDeadlineExpired is the StateReply reason of a dropped advance.
const ReasonDeadlineExpired = "deadline expired"

// Publisher receives a snapshot after every turn.
type Publisher interface {
	Broadcast(name string, data any)
}

func ok(s entity.Snapshot) *StateReply {
	return &StateReply{Ok: true, Snapshot: s}
}

func fail(reason string) *StateReply {
	return &StateReply{Reason: reason}
}
