package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/numguess/numguess/internal/dependencies/mocks"
	"github.com/numguess/numguess/internal/model"
	"github.com/numguess/numguess/internal/services/room"
	"github.com/numguess/numguess/internal/testutil"
)

func TestSendDropsWhenBufferFull(t *testing.T) {
	c := &Client{
		id:     "test",
		send:   make(chan []byte, 1),
		done:   make(chan struct{}),
		logger: testutil.NopLogger(),
	}

	if err := c.Send([]byte(`{"type":"a"}`)); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if err := c.Send([]byte(`{"type":"b"}`)); !errors.Is(err, model.ErrStaleConnection) {
		t.Fatalf("send to full buffer = %v, want ErrStaleConnection", err)
	}
}

func TestSendFailsWhenClosed(t *testing.T) {
	c := &Client{
		id:     "test",
		send:   make(chan []byte, 1),
		done:   make(chan struct{}),
		logger: testutil.NopLogger(),
	}
	c.closed.Store(true)

	if err := c.Send([]byte(`{"type":"a"}`)); !errors.Is(err, model.ErrStaleConnection) {
		t.Fatalf("send on closed client = %v, want ErrStaleConnection", err)
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *room.Controller) {
	t.Helper()

	logger := testutil.NopLogger()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(49) // first round secret is 50

	ctrl := room.NewController(room.DefaultConfig(), clk, rnd, logger)
	notifier := room.NewNotifier(ctrl, clk, logger)
	handler := NewHandler(ctrl, notifier, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handler.ServeWS)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, ctrl
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	if resp != nil {
		defer resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	var event map[string]any
	if err := json.Unmarshal(frame, &event); err != nil {
		t.Fatalf("unmarshal frame %q: %v", frame, err)
	}
	return event
}

func joinAs(t *testing.T, conn *websocket.Conn, name string) {
	t.Helper()

	if err := conn.WriteJSON(map[string]any{"action": "join", "name": name}); err != nil {
		t.Fatalf("write join: %v", err)
	}
	joined := readEvent(t, conn)
	if got := joined["type"]; got != "joined" {
		t.Fatalf("first frame type = %v, want joined", got)
	}
	state := readEvent(t, conn)
	if got := state["type"]; got != "game_state" {
		t.Fatalf("second frame type = %v, want game_state", got)
	}
}

func TestJoinOverWebsocket(t *testing.T) {
	srv, ctrl := newTestServer(t)
	conn := dial(t, srv)

	if err := conn.WriteJSON(map[string]any{"action": "join", "name": "alice"}); err != nil {
		t.Fatalf("write join: %v", err)
	}

	joined := readEvent(t, conn)
	if got := joined["type"]; got != "joined" {
		t.Fatalf("first frame type = %v, want joined", got)
	}
	if msg, _ := joined["message"].(string); !strings.Contains(msg, "alice") {
		t.Fatalf("joined message = %q, want welcome for alice", msg)
	}
	if _, ok := joined["game_info"]; !ok {
		t.Fatalf("joined frame missing game_info: %v", joined)
	}

	state := readEvent(t, conn)
	if got := state["type"]; got != "game_state" {
		t.Fatalf("second frame type = %v, want game_state", got)
	}
	if got := state["total_players"]; got != float64(1) {
		t.Fatalf("total_players = %v, want 1", got)
	}

	if got := ctrl.PlayerCount(); got != 1 {
		t.Fatalf("player count = %d, want 1", got)
	}
}

func TestGuessOverWebsocket(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)
	joinAs(t, conn, "alice")

	if err := conn.WriteJSON(map[string]any{"action": "guess", "player": "alice", "guess": 30}); err != nil {
		t.Fatalf("write guess: %v", err)
	}

	result := readEvent(t, conn)
	if got := result["type"]; got != "guess_result" {
		t.Fatalf("frame type = %v, want guess_result", got)
	}
	if got := result["hint"]; got != "too low" {
		t.Fatalf("hint = %v, want too low", got)
	}
	if got := result["remaining_guesses"]; got != float64(9) {
		t.Fatalf("remaining_guesses = %v, want 9", got)
	}
}

func TestPeersSeeEachOther(t *testing.T) {
	srv, _ := newTestServer(t)

	alice := dial(t, srv)
	joinAs(t, alice, "alice")

	bob := dial(t, srv)
	joinAs(t, bob, "bob")

	announce := readEvent(t, alice)
	if got := announce["type"]; got != "player_joined" {
		t.Fatalf("frame type = %v, want player_joined", got)
	}
	if got := announce["player"]; got != "bob" {
		t.Fatalf("player = %v, want bob", got)
	}
	if got := announce["total_players"]; got != float64(2) {
		t.Fatalf("total_players = %v, want 2", got)
	}
	if _, ok := announce["timestamp"]; !ok {
		t.Fatalf("broadcast frame missing timestamp: %v", announce)
	}
}

func TestDisconnectRemovesPlayer(t *testing.T) {
	srv, ctrl := newTestServer(t)
	conn := dial(t, srv)
	joinAs(t, conn, "alice")

	if err := conn.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ctrl.PlayerCount() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("player count = %d after disconnect, want 0", ctrl.PlayerCount())
}
