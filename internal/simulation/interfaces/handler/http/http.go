package http

import (
	"EconSim/internal/simulation/app"
	"EconSim/internal/simulation/entity"
	"EconSim/internal/simulation/interfaces/handler"
	"EconSim/modules/kit/logx"
	staticfiles "EconSim/static"
	"context"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const SnapshotVersionHeader = "X-Snapshot-Version"

type HttpHandler struct {
	svc   *app.SimulationService
	log   logx.Logger
	index []byte
}

func NewHttpHandler(svc *app.SimulationService, log logx.Logger) (*HttpHandler, error) {
	index, err := staticfiles.IndexHTML()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logx.NewNop()
	}
	return &HttpHandler{svc: svc, log: log, index: index}, nil
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/", h.Index)
	group.StaticFS("/static", nethttp.FS(staticfiles.EmbeddedFS()))

	api := group.Group("/api")
	api.GET("/stato", h.State)
	api.POST("/avanza_turno", h.AdvanceTurn)
	api.GET("/storico", h.History)
}

// Index serves the entry page byte for byte.
func (h *HttpHandler) Index(c *gin.Context) {
	c.Data(nethttp.StatusOK, "text/html; charset=utf-8", h.index)
}

func (h *HttpHandler) State(c *gin.Context) {
	ctx := c.Request.Context()
	s, err := h.svc.State(ctx)
	if err != nil {
		h.error(ctx, c, "simulation state", err)
		return
	}
	h.snapshot(c, s)
}

// AdvanceTurn ignores the request body.
func (h *HttpHandler) AdvanceTurn(c *gin.Context) {
	ctx := c.Request.Context()
	s, err := h.svc.AdvanceTurn(ctx)
	if err != nil {
		h.error(ctx, c, "simulation advance turn", err)
		return
	}
	h.snapshot(c, s)
}

func (h *HttpHandler) History(c *gin.Context) {
	ctx := c.Request.Context()
	records, err := h.svc.History(ctx, c.Query("limit"))
	if err != nil {
		h.error(ctx, c, "simulation history", err)
		return
	}
	c.JSON(nethttp.StatusOK, records)
}

func (h *HttpHandler) snapshot(c *gin.Context, s entity.Snapshot) {
	c.Header(SnapshotVersionHeader, strconv.Itoa(entity.SnapshotVersion))
	c.JSON(nethttp.StatusOK, s)
}

func (h *HttpHandler) fail(c *gin.Context, status, code int, msg string) {
	c.JSON(status, ErrorBody{Code: code, Msg: msg})
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, action string, err error) {
	status, code, msg := handler.HandleError(ctx, h.log, action, err)
	h.fail(c, status, code, msg)
}
