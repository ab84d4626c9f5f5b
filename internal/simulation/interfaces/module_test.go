package interfaces

import (
	"EconSim/internal/shared/transport/http"
	"EconSim/internal/shared/transport/ws"
	"EconSim/internal/shared/utils"
	"EconSim/internal/simulation/actor"
	"EconSim/internal/simulation/actors"
	"EconSim/internal/simulation/app"
	"EconSim/internal/simulation/dc"
	"EconSim/internal/simulation/entity"
	"EconSim/internal/simulation/infra/persistence/memory"
	"EconSim/modules/kit/logx"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type wsFrame struct {
	Name string          `json:"name"`
	Msg  entity.Snapshot `json:"msg"`
}

func newStack(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ids, err := utils.NewSnowflake(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	archive := memory.NewTurnArchive(0)
	hub := ws.NewHub(logx.NewNop())
	d := dc.NewSimulationDC(archive, ids, nil, 20*time.Millisecond, logx.NewNop())
	rt := actor.NewRuntime(d, hub, time.Second, logx.NewNop())

	m, err := New(app.NewSimulationService(rt, archive), hub, logx.NewNop())
	if err != nil {
		t.Fatalf("module: %v", err)
	}
	srv := http.NewHttpServer(":0", gin.New(), logx.NewNop())
	srv.Register(m)
	ts := httptest.NewServer(srv.Handler())

	t.Cleanup(func() {
		ts.Close()
		hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = rt.Shutdown(ctx)
	})
	return ts
}

func readFrame(t *testing.T, c *websocket.Conn) wsFrame {
	t.Helper()
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := c.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f wsFrame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return f
}

func TestModule_SnapshotFeed(t *testing.T) {
	ts := newStack(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/stato"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	greet := readFrame(t, c)
	if greet.Name != actors.SnapshotTopic || greet.Msg.Turn != 0 {
		t.Fatalf("greet=%+v", greet)
	}

	resp, err := nethttp.Post(ts.URL+"/api/avanza_turno", "application/json", nil)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	_ = resp.Body.Close()

	pushed := readFrame(t, c)
	if pushed.Msg.Turn != 1 || pushed.Msg.UtilityProviders[0].Capital != 50100 {
		t.Fatalf("pushed=%+v", pushed)
	}
}

func TestModule_HistoryAfterAdvances(t *testing.T) {
	ts := newStack(t)

	for i := 0; i < 3; i++ {
		resp, err := nethttp.Post(ts.URL+"/api/avanza_turno", "", nil)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		_ = resp.Body.Close()
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		resp, err := nethttp.Get(ts.URL + "/api/storico?limit=2")
		if err != nil {
			t.Fatalf("history: %v", err)
		}
		var records []entity.TurnRecord
		err = json.NewDecoder(resp.Body).Decode(&records)
		_ = resp.Body.Close()
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(records) == 2 {
			if records[0].Turn != 3 || records[1].Turn != 2 {
				t.Fatalf("records=%+v", records)
			}
			if records[0].Snapshot.Citizens[0].Money != 850 || records[0].Version != entity.SnapshotVersion {
				t.Fatalf("record=%+v", records[0])
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("history has %d records", len(records))
		}
		time.Sleep(20 * time.Millisecond)
	}
}
