package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return c
}

func readBody(t *testing.T, c *websocket.Conn) RespBody {
	t.Helper()
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := c.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var body RespBody
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return body
}

func TestHub_OnConnectAndBroadcast(t *testing.T) {
	hub := NewHub(nil)
	hub.OnConnect(func(c *Conn) { c.Push("hello", 1) })
	srv := httptest.NewServer(hub)
	defer srv.Close()

	c := dial(t, srv)
	defer c.Close()

	if got := readBody(t, c); got.Name != "hello" {
		t.Fatalf("first message=%+v", got)
	}

	hub.Broadcast("tick", map[string]int{"n": 2})
	got := readBody(t, c)
	if got.Name != "tick" {
		t.Fatalf("broadcast=%+v", got)
	}
}

func TestHub_HeartbeatEchoesClientTime(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	c := dial(t, srv)
	defer c.Close()

	req := `{"seq":7,"name":"heartbeat","msg":{"ctime":123}}`
	if err := c.WriteMessage(websocket.TextMessage, []byte(req)); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := readBody(t, c)
	if got.Seq != 7 || got.Name != HeartbeatMsg {
		t.Fatalf("resp=%+v", got)
	}
	msg, _ := got.Msg.(map[string]any)
	if msg["ctime"] != float64(123) || msg["stime"] == float64(0) {
		t.Fatalf("heartbeat=%v", msg)
	}
}

func TestHub_CloseRemovesSubscribers(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	c := dial(t, srv)
	defer c.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Len() != 1 {
		t.Fatalf("len=%d", hub.Len())
	}

	hub.Close()
	if hub.Len() != 0 {
		t.Fatalf("len after close=%d", hub.Len())
	}
}

func TestHub_GreetingOlderThanBroadcastIsSkipped(t *testing.T) {
	hub := NewHub(nil)
	release := make(chan struct{})
	greeted := make(chan bool, 1)
	hub.OnConnect(func(c *Conn) {
		<-release
		greeted <- c.PushInitial("stato", map[string]int{"turno": 0})
	})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	c := dial(t, srv)
	defer c.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Len() != 1 {
		t.Fatalf("len=%d", hub.Len())
	}

	// A turn lands while the greeting is still being built.
	hub.Broadcast("stato", map[string]int{"turno": 1})
	close(release)
	if <-greeted {
		t.Fatalf("greeting should be skipped after a broadcast")
	}
	hub.Broadcast("stato", map[string]int{"turno": 2})

	for _, want := range []float64{1, 2} {
		got := readBody(t, c)
		msg, _ := got.Msg.(map[string]any)
		if msg["turno"] != want {
			t.Fatalf("frame=%+v want turno %v", got, want)
		}
	}
}

func TestHub_GreetingGoesFirst(t *testing.T) {
	hub := NewHub(nil)
	hub.OnConnect(func(c *Conn) {
		if !c.PushInitial("stato", map[string]int{"turno": 0}) {
			t.Errorf("fresh subscriber should get the greeting")
		}
	})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	c := dial(t, srv)
	defer c.Close()

	got := readBody(t, c)
	msg, _ := got.Msg.(map[string]any)
	if got.Name != "stato" || msg["turno"] != float64(0) {
		t.Fatalf("greeting=%+v", got)
	}
}
