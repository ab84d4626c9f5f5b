package interfaces

import (
	transporthttp "EconSim/internal/shared/transport/http"
	"EconSim/internal/shared/transport/ws"
	"EconSim/internal/simulation/actors"
	"EconSim/internal/simulation/app"
	"EconSim/internal/simulation/interfaces/handler/http"
	"EconSim/modules/kit/logx"
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const greetTimeout = 2 * time.Second

type Module struct {
	httpHandler *http.HttpHandler
	hub         *ws.Hub
}

// New wires the HTTP routes and greets every snapshot subscriber with the
// current state.
func New(svc *app.SimulationService, hub *ws.Hub, log logx.Logger) (*Module, error) {
	h, err := http.NewHttpHandler(svc, log)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logx.NewNop()
	}
	if hub != nil {
		hub.OnConnect(func(c *ws.Conn) {
			ctx, cancel := context.WithTimeout(context.Background(), greetTimeout)
			defer cancel()
			s, err := svc.State(ctx)
			if err != nil {
				log.Warn("ws greet failed", zap.String("addr", c.Addr()), zap.Error(err))
				return
			}
			if !c.PushInitial(actors.SnapshotTopic, s) {
				log.Debug("ws greet skipped, newer snapshot already sent", zap.String("addr", c.Addr()))
			}
		})
	}
	return &Module{httpHandler: h, hub: hub}, nil
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
	if m.hub != nil {
		g.GET("/ws/stato", gin.WrapH(m.hub))
	}
}

var _ transporthttp.Registrar = (*Module)(nil)
