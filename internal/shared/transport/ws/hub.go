package ws

import (
	"EconSim/modules/kit/logx"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub fans server pushes out to every connected subscriber. It implements
// http.Handler for the upgrade endpoint.
type Hub struct {
	mu        sync.RWMutex
	conns     map[*Conn]struct{}
	upgrader  websocket.Upgrader
	onConnect func(*Conn)
	log       logx.Logger
}

func NewHub(l logx.Logger) *Hub {
	if l == nil {
		l = logx.NewNop()
	}
	return &Hub{
		conns: make(map[*Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: l,
	}
}

// OnConnect sets a hook run for each new subscriber, e.g. to send the
// current state before the first broadcast.
func (h *Hub) OnConnect(fn func(*Conn)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onConnect = fn
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade error", zap.Error(err))
		return
	}

	c := newConn(wsConn, h.log, h.remove)
	h.mu.Lock()
	h.conns[c] = struct{}{}
	onConnect := h.onConnect
	h.mu.Unlock()

	h.log.Info("ws subscriber connected", zap.String("addr", c.Addr()))
	c.Run()
	if onConnect != nil {
		onConnect(c)
	}
}

func (h *Hub) Broadcast(name string, data any) {
	h.mu.RLock()
	conns := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		c.Push(name, data)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.RLock()
	conns := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	for _, c := range conns {
		c.Close()
	}
}

func (h *Hub) remove(c *Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}
