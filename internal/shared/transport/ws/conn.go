package ws

import (
	"EconSim/modules/kit/logx"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	outQueueSize = 64
	writeWait    = 5 * time.Second
)

// Conn is one subscriber. Writes go through outChan so a single goroutine
// owns the socket writer.
type Conn struct {
	conn      *websocket.Conn
	outChan   chan *RespBody
	done      chan struct{}
	closeOnce sync.Once
	pushMu    sync.Mutex
	pushed    bool
	log       logx.Logger
	onClose   func(*Conn)
}

func newConn(wsConn *websocket.Conn, l logx.Logger, onClose func(*Conn)) *Conn {
	return &Conn{
		conn:    wsConn,
		outChan: make(chan *RespBody, outQueueSize),
		done:    make(chan struct{}),
		log:     l,
		onClose: onClose,
	}
}

func (c *Conn) Addr() string {
	return c.conn.RemoteAddr().String()
}

// Push queues a message. A subscriber that cannot keep up is dropped.
func (c *Conn) Push(name string, data any) {
	c.pushMu.Lock()
	defer c.pushMu.Unlock()
	c.pushed = true
	c.push(&RespBody{Name: name, Msg: data})
}

// PushInitial queues a greeting unless a Push already reached this
// subscriber, in which case the greeting would be older than what it has.
func (c *Conn) PushInitial(name string, data any) bool {
	c.pushMu.Lock()
	defer c.pushMu.Unlock()
	if c.pushed {
		return false
	}
	c.pushed = true
	c.push(&RespBody{Name: name, Msg: data})
	return true
}

func (c *Conn) push(body *RespBody) {
	select {
	case <-c.done:
	case c.outChan <- body:
	default:
		c.log.Warn("ws subscriber too slow, closing", zap.String("addr", c.Addr()))
		c.Close()
	}
}

func (c *Conn) Run() {
	go c.readMsgLoop()
	go c.writeMsgLoop()
}

func (c *Conn) Done() <-chan struct{} {
	return c.done
}

func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
		if c.onClose != nil {
			c.onClose(c)
		}
	})
}

// readMsgLoop only answers heartbeats; the feed is server push.
func (c *Conn) readMsgLoop() {
	defer c.Close()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debug("ws read msg", zap.Error(err))
			}
			return
		}

		var req ReqBody
		if err := json.Unmarshal(data, &req); err != nil {
			c.log.Warn("ws read msg unmarshal", zap.Error(err))
			continue
		}
		if req.Name != HeartbeatMsg {
			c.log.Debug("ws ignoring client msg", zap.String("name", req.Name))
			continue
		}

		h := &Heartbeat{}
		if err := mapstructure.Decode(req.Msg, h); err != nil {
			c.log.Warn("ws heartbeat decode", zap.Error(err))
		}
		h.STime = time.Now().UnixMilli()
		c.push(&RespBody{Seq: req.Seq, Name: HeartbeatMsg, Msg: h})
	}
}

func (c *Conn) writeMsgLoop() {
	for {
		select {
		case msg := <-c.outChan:
			c.write(msg)
		case <-c.done:
			return
		}
	}
}

func (c *Conn) write(msg *RespBody) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("ws write marshal json", zap.Error(err))
		return
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.log.Debug("ws write", zap.Error(err))
		c.Close()
	}
}
