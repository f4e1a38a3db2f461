package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tilt/internal/board"
	"github.com/vovakirdan/tilt/internal/game"
)

func newGame(t *testing.T) *game.Game {
	t.Helper()
	g := game.New(game.Options{ID: "watch", Size: 3, Winning: 256, Seed: 1})
	if err := g.Restore([][]int{{0, 0, 0}, {0, 0, 0}, {2, 0, 2}}, 0); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	return g
}

func newClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		send: make(chan []byte, 256),
	}
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		return msg
	case <-time.After(100 * time.Millisecond):
		t.Fatal("No message received within timeout")
	}
	return Message{}
}

func TestNewHub(t *testing.T) {
	hub := NewHub(nil)

	if hub.clients == nil {
		t.Error("Hub clients map is nil")
	}
	if hub.broadcast == nil || hub.register == nil || hub.unregister == nil {
		t.Error("Hub channels are not initialized")
	}
	if hub.logger == nil {
		t.Error("Hub should fall back to the default logger")
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(nil)
	client1 := newClient(hub)
	client2 := newClient(hub)

	hub.registerClient(client1)
	hub.registerClient(client2)
	if len(hub.clients) != 2 {
		t.Fatalf("Expected 2 clients, got %d", len(hub.clients))
	}

	hub.unregisterClient(client1)
	if len(hub.clients) != 1 || !hub.clients[client2] {
		t.Error("client2 should be the only client left")
	}
	if _, ok := <-client1.send; ok {
		t.Error("client1 send channel should be closed")
	}

	// Unregistering twice is a no-op
	hub.unregisterClient(client1)
}

func TestHubRegisterSendsLatest(t *testing.T) {
	hub := NewHub(nil)
	hub.Watch(newGame(t))

	client := newClient(hub)
	hub.registerClient(client)

	msg := receive(t, client)
	if msg.GameID != "watch" || msg.Event != game.EventRestore {
		t.Errorf("Expected restore of game watch, got %s/%s", msg.GameID, msg.Event)
	}
	if msg.Snapshot.Rows[2][0] != 2 || msg.Snapshot.Rows[2][2] != 2 {
		t.Errorf("Snapshot rows not transmitted: %v", msg.Snapshot.Rows)
	}
}

func TestHubBroadcastsTilt(t *testing.T) {
	hub := NewHub(nil)
	g := newGame(t)
	detach := hub.Watch(g)

	client := newClient(hub)
	hub.registerClient(client)
	receive(t, client) // latest

	g.Tilt(board.West)
	hub.broadcastMessage(<-hub.broadcast)

	msg := receive(t, client)
	if msg.Event != game.EventTilt {
		t.Errorf("Expected event tilt, got %s", msg.Event)
	}
	if msg.Snapshot.Score != 4 || msg.Snapshot.Rows[2][0] != 4 {
		t.Errorf("Unexpected snapshot after tilt: %+v", msg.Snapshot)
	}
	if latest := hub.Latest(); len(latest) != 1 || latest[0].Event != game.EventTilt {
		t.Errorf("Latest() = %+v, want the tilt", latest)
	}

	detach()
	g.Tilt(board.East)
	select {
	case <-hub.broadcast:
		t.Error("detached game should not broadcast")
	default:
	}
}

func TestHubLatestKeepsNewestSnapshot(t *testing.T) {
	hub := NewHub(nil)
	g := newGame(t)

	var events []game.Event
	g.Subscribe(func(ev game.Event) { events = append(events, ev) })
	g.Tilt(board.West)
	g.Tilt(board.North)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Snapshot.Version >= events[1].Snapshot.Version {
		t.Fatalf("Versions not increasing: %d then %d", events[0].Snapshot.Version, events[1].Snapshot.Version)
	}

	// Deliver them the way two racing turns could.
	hub.Observe(events[1])
	hub.Observe(events[0])

	latest := hub.Latest()
	if len(latest) != 1 || latest[0].Snapshot.Version != events[1].Snapshot.Version {
		t.Errorf("Latest() = %+v, want the snapshot after the north tilt", latest)
	}
}

func TestHubDropsWhenQueueFull(t *testing.T) {
	hub := NewHub(nil)
	g := newGame(t)
	hub.Watch(g)

	for range broadcastBuffer + 10 {
		g.Tilt(board.West)
		g.Tilt(board.East)
	}
	if n := len(hub.broadcast); n != broadcastBuffer {
		t.Errorf("Expected a full queue of %d, got %d", broadcastBuffer, n)
	}
}

func TestWebSocketReceivesEvents(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	g := newGame(t)
	hub.Watch(g)

	server := httptest.NewServer(NewHandler(hub))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	read := func() Message {
		t.Helper()
		//nolint:errcheck // Test deadline
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Failed to read WebSocket message: %v", err)
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		return msg
	}

	// The latest state arrives once the client is registered
	if msg := read(); msg.Event != game.EventRestore {
		t.Fatalf("Expected restore first, got %s", msg.Event)
	}

	g.Tilt(board.West)
	msg := read()
	if msg.Event != game.EventTilt || msg.Snapshot.Score != 4 {
		t.Errorf("Expected tilt with score 4, got %s with %d", msg.Event, msg.Snapshot.Score)
	}
}

func TestStateEndpoint(t *testing.T) {
	hub := NewHub(nil)
	hub.Watch(newGame(t))

	server := httptest.NewServer(NewHandler(hub))
	defer server.Close()

	resp, err := http.Get(server.URL + "/state")
	if err != nil {
		t.Fatalf("GET /state failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var messages []Message
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		t.Fatalf("Failed to decode state: %v", err)
	}
	if len(messages) != 1 || messages[0].GameID != "watch" || messages[0].Snapshot.Size != 3 {
		t.Errorf("Unexpected state: %+v", messages)
	}

	resp2, err := http.Post(server.URL+"/state", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /state failed: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode == http.StatusOK {
		t.Error("POST /state should not be routed")
	}
}
