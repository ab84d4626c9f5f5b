package actors

import (
	"EconSim/internal/simulation/dc"
	"EconSim/internal/simulation/entity"
	"EconSim/modules/kit/logx"
	"time"

	"github.com/asynkron/protoactor-go/actor"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// SimulationActor is the only goroutine that touches the simulation, so
// turn advances never interleave.
type SimulationActor struct {
	state      State
	dc         *dc.SimulationDC
	entity     *entity.Simulation
	dispatcher *Dispatcher
	publisher  Publisher
	flushStop  chan struct{}
	log        logx.Logger
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

func NewSimulationActor(d *dc.SimulationDC, pub Publisher, log logx.Logger) *SimulationActor {
	if log == nil {
		log = logx.NewNop()
	}
	return &SimulationActor{
		state:      None,
		dc:         d,
		dispatcher: NewDispatcher(),
		publisher:  pub,
		log:        log,
	}
}

func (a *SimulationActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.state = Init
		a.init(ctx)
	case *actor.Stopping:
		a.stopFlushLoop()
		a.dc.Flush()
		a.state = Stopping
	case *actor.Stopped:
		a.stopFlushLoop()
		a.state = Offline
	case *actor.Restarting:
		a.stopFlushLoop()
		a.state = Init
	case flushTick:
		if a.state == Online {
			a.dc.Flush()
		}
	case SimulationMessage:
		if a.state != Online {
			ctx.Respond(fail("simulation not online"))
			return
		}
		a.dispatcher.Dispatch(ctx, a, msg)
	}
}

func (a *SimulationActor) init(ctx actor.Context) {
	a.entity = a.dc.Load()
	a.state = Online
	a.startFlushLoop(ctx)
}

func (a *SimulationActor) State() State {
	return a.state
}

func (a *SimulationActor) startFlushLoop(ctx actor.Context) {
	if a.flushStop != nil {
		return
	}
	interval := a.dc.FlushEvery()
	if interval <= 0 {
		return
	}
	a.flushStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(a.flushStop, interval)
}

func (a *SimulationActor) stopFlushLoop() {
	if a.flushStop == nil {
		return
	}
	close(a.flushStop)
	a.flushStop = nil
}
