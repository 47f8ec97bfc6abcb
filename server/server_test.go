package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/brensch/snek/driver"
	"github.com/brensch/snek/game"
	"github.com/brensch/snek/rules"
)

func testServer(t *testing.T, settings rules.Settings) *httptest.Server {
	t.Helper()
	config := DefaultConfig()
	config.Settings = settings
	config.Runner = driver.Config{Interval: 10 * time.Millisecond, QueueSize: 8}
	config.Seed = func() uint64 { return 1 }

	s := New(config, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitFrame reads frames until match returns true or limit frames pass.
func waitFrame(t *testing.T, conn *websocket.Conn, limit int, match func(driver.Frame) bool) driver.Frame {
	t.Helper()
	for i := 0; i < limit; i++ {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var f driver.Frame
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		if match(f) {
			return f
		}
	}
	t.Fatalf("no matching frame within %d frames", limit)
	return driver.Frame{}
}

func TestHealthAndIndex(t *testing.T) {
	ts := testServer(t, rules.DefaultSettings)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	var info infoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Board != (game.Board{Width: 20, Height: 15}) || info.TickMS != 10 {
		t.Fatalf("info=%+v", info)
	}
}

func TestSession_StreamsFramesAndTurns(t *testing.T) {
	ts := testServer(t, rules.DefaultSettings)
	conn := dial(t, ts)

	first := waitFrame(t, conn, 1, func(driver.Frame) bool { return true })
	if first.Turn != 0 || first.Length != 5 || first.Width != 20 {
		t.Fatalf("first frame=%+v", first)
	}

	if err := conn.WriteJSON(clientMessage{Type: "key", Key: "ArrowDown"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	f := waitFrame(t, conn, 12, func(f driver.Frame) bool {
		head, ok := f.Head()
		return ok && head.Y == 1
	})
	if len(f.Segments) < 2 || f.Segments[0].Dir != game.South {
		t.Fatalf("segments=%+v want a south head run", f.Segments)
	}
}

func TestSession_HaltAndRestart(t *testing.T) {
	ts := testServer(t, rules.Settings{StartLength: 5, AutoRestart: false})
	conn := dial(t, ts)

	waitFrame(t, conn, 1, func(driver.Frame) bool { return true })
	if err := conn.WriteJSON(clientMessage{Type: "turn", Dir: "north"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	over := waitFrame(t, conn, 20, func(f driver.Frame) bool { return f.Halted })
	if over.Outcome != rules.GameOver {
		t.Fatalf("outcome=%v want game_over", over.Outcome)
	}

	if err := conn.WriteJSON(clientMessage{Type: "restart"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	f := waitFrame(t, conn, 20, func(f driver.Frame) bool { return !f.Halted })
	if f.Restarts != 1 {
		t.Fatalf("restarts=%d want=1", f.Restarts)
	}
}

func TestClientMessage_Command(t *testing.T) {
	tests := []struct {
		msg  clientMessage
		want driver.Command
		ok   bool
	}{
		{clientMessage{Type: "turn", Dir: "west"}, driver.Turn(game.West), true},
		{clientMessage{Type: "key", Key: "k"}, driver.Turn(game.North), true},
		{clientMessage{Type: "restart"}, driver.Restart(), true},
		{clientMessage{Type: "turn", Dir: "up-ish"}, driver.Command{}, false},
		{clientMessage{Type: "key", Key: "Space"}, driver.Command{}, false},
		{clientMessage{Type: "pause"}, driver.Command{}, false},
	}
	for _, tt := range tests {
		got, ok := tt.msg.command()
		if ok != tt.ok || got != tt.want {
			t.Errorf("%+v: got %+v,%v want %+v,%v", tt.msg, got, ok, tt.want, tt.ok)
		}
	}
}
