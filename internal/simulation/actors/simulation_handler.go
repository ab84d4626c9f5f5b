package actors

import (
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type SimulationHandler struct{}

var SH = &SimulationHandler{}

func (h *SimulationHandler) HandleGetState(ctx actor.Context, a *SimulationActor, _ *GetState) {
	ctx.Respond(ok(a.entity.Snapshot()))
}

// HandleAdvanceTurn applies one turn, queues the archive record and
// pushes the new state to subscribers before replying.
func (h *SimulationHandler) HandleAdvanceTurn(ctx actor.Context, a *SimulationActor, req *AdvanceTurn) {
	if req.Expired(time.Now()) {
		a.log.Warn("advance dropped, caller deadline passed", zap.Time("deadline", req.Deadline))
		ctx.Respond(fail(ReasonDeadlineExpired))
		return
	}
	a.entity.AdvanceTurn()
	a.dc.Capture()

	snapshot := a.entity.Snapshot()
	if a.publisher != nil {
		a.publisher.Broadcast(SnapshotTopic, snapshot)
	}
	a.log.Debug("turn advanced",
		zap.Int64("turn", snapshot.Turn),
		zap.Int64("citizen_money", a.entity.CitizenMoney()),
	)
	ctx.Respond(ok(snapshot))
}
