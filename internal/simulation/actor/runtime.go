package actor

import (
	"EconSim/internal/simulation/actors"
	"EconSim/internal/simulation/app"
	"EconSim/internal/simulation/dc"
	"EconSim/internal/simulation/entity"
	"EconSim/modules/kit/logx"
	"context"
	"errors"
	"sync/atomic"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

const defaultAskTimeout = 3 * time.Second

// Runtime hosts the simulation actor and turns asks into plain calls.
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	pid     *protoactor.PID
	dc      *dc.SimulationDC
	timeout time.Duration
	stopped atomic.Bool
}

func NewRuntime(d *dc.SimulationDC, pub actors.Publisher, askTimeout time.Duration, log logx.Logger) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	props := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewSimulationActor(d, pub, log)
	})
	pid := root.Spawn(props)

	return &Runtime{
		system:  system,
		root:    root,
		pid:     pid,
		dc:      d,
		timeout: askTimeout,
	}
}

func (r *Runtime) State(ctx context.Context) (entity.Snapshot, error) {
	return r.ask(ctx, &actors.GetState{})
}

func (r *Runtime) AdvanceTurn(ctx context.Context) (entity.Snapshot, error) {
	timeout := r.timeoutFromContext(ctx)
	return r.askWithin(ctx, &actors.AdvanceTurn{Deadline: time.Now().Add(timeout)}, timeout)
}

// Shutdown stops the actor, drains the archive queue and stops the system.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil || r.root == nil || !r.stopped.CompareAndSwap(false, true) {
		return nil
	}
	if r.pid != nil {
		_ = r.root.StopFuture(r.pid).Wait()
	}
	var err error
	if r.dc != nil {
		err = r.dc.Close(ctx)
	}
	r.system.Shutdown()
	return err
}

func (r *Runtime) ask(ctx context.Context, msg actors.SimulationMessage) (entity.Snapshot, error) {
	return r.askWithin(ctx, msg, r.timeoutFromContext(ctx))
}

func (r *Runtime) askWithin(ctx context.Context, msg actors.SimulationMessage, timeout time.Duration) (entity.Snapshot, error) {
	if r == nil || r.root == nil || r.pid == nil || r.stopped.Load() {
		return entity.Snapshot{}, app.ErrRuntimeUnavailable.WithReason(app.ReasonRuntimeNotStarted)
	}
	if err := ctx.Err(); err != nil {
		return entity.Snapshot{}, app.ErrTimeout.WithReason(app.ReasonActorTimeout).WithCause(err)
	}

	res, err := r.root.RequestFuture(r.pid, msg, timeout).Result()
	if err != nil {
		if errors.Is(err, protoactor.ErrTimeout) {
			return entity.Snapshot{}, app.ErrTimeout.WithReason(app.ReasonActorTimeout).WithCause(err)
		}
		return entity.Snapshot{}, app.ErrRuntimeUnavailable.WithReason(app.ReasonActorUnavailable).WithCause(err)
	}

	reply, ok := res.(*actors.StateReply)
	if !ok || reply == nil {
		return entity.Snapshot{}, app.ErrInternal.WithReason(app.ReasonUnexpectedReply)
	}
	if !reply.Ok {
		return entity.Snapshot{}, app.ErrRuntimeUnavailable.
			WithReason(app.ReasonActorUnavailable).
			WithData("actor_reason", reply.Reason)
	}
	return reply.Snapshot, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	return min(remain, r.timeout)
}

var _ app.Runtime = (*Runtime)(nil)
