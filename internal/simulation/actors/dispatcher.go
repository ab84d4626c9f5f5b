package actors

import (
	"reflect"

	"github.com/asynkron/protoactor-go/actor"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{handlers: make(map[reflect.Type]Handler)}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, SH.HandleGetState)
	register(d, SH.HandleAdvanceTurn)
}

func register[Req SimulationMessage](
	d *Dispatcher,
	fn func(ctx actor.Context, a *SimulationActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, a *SimulationActor, req SimulationMessage) {
	if req == nil {
		ctx.Respond(fail("nil request"))
		return
	}
	bodyType := reflect.TypeOf(req)
	handler, found := d.handlers[bodyType]
	if !found {
		ctx.Respond(fail("no handler for " + bodyType.String()))
		return
	}
	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(a),
		reflect.ValueOf(req),
	})
}
