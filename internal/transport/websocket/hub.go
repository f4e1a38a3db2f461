package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tilt/internal/game"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Pending broadcasts before new ones are dropped.
	broadcastBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Spectating is read-only and public
		return true
	},
}

// Message is one event sent to spectators.
type Message struct {
	GameID   string         `json:"game_id"`
	Event    game.EventKind `json:"event"`
	Snapshot game.Snapshot  `json:"snapshot"`
}

// Client is a connected spectator.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the set of spectators and broadcasts game events to them.
type Hub struct {
	clients map[*Client]bool

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{} // Closed when Run returns

	mu     sync.RWMutex
	latest map[string]Message // Last message per game ID

	logger *log.Logger
}

// NewHub creates a hub. Call Run to start delivering messages.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		latest:     make(map[string]Message),
		logger:     logger,
	}
}

// Run starts the hub's event loop and blocks until ctx is done, closing every
// client on the way out.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.unregisterClient(client)
			}
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case data := <-h.broadcast:
			h.broadcastMessage(data)
		}
	}
}

// Watch subscribes the hub to g and records its current snapshot. The
// returned function stops watching.
func (h *Hub) Watch(g *game.Game) (detach func()) {
	snap := g.Snapshot()
	h.mu.Lock()
	h.latest[snap.ID] = Message{GameID: snap.ID, Event: game.EventRestore, Snapshot: snap}
	h.mu.Unlock()
	return g.Subscribe(h.Observe)
}

// Observe publishes a game event. It never blocks: when the broadcast queue
// is full the event is dropped for live clients but still becomes the
// latest state.
func (h *Hub) Observe(ev game.Event) {
	msg := Message{GameID: ev.Snapshot.ID, Event: ev.Kind, Snapshot: ev.Snapshot}
	h.setLatest(msg)

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("cannot marshal event", "game", msg.GameID, "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("broadcast queue full, dropping event", "game", msg.GameID, "event", msg.Event)
	}
}

// setLatest records msg unless a newer snapshot of the same game arrived
// first.
func (h *Hub) setLatest(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.latest[msg.GameID]; ok && cur.Snapshot.Version > msg.Snapshot.Version {
		return
	}
	h.latest[msg.GameID] = msg
}

// Latest returns the last known message of every watched game, sorted by
// game ID.
func (h *Hub) Latest() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Message, 0, len(h.latest))
	for _, msg := range h.latest {
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GameID < out[j].GameID
	})
	return out
}

// ServeWS upgrades the request and registers the new spectator.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// registerClient adds a client and queues the latest state of every game.
func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true

	for _, msg := range h.Latest() {
		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		select {
		case client.send <- data:
		default:
		}
	}

	h.logger.Debug("spectator joined", "clients", len(h.clients))
}

// unregisterClient removes a client and closes its send channel.
func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.logger.Debug("spectator left", "clients", len(h.clients))
	}
}

// broadcastMessage sends data to every client, dropping slow ones.
func (h *Hub) broadcastMessage(data []byte) {
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.unregisterClient(client)
		}
	}
}

// readPump discards incoming messages until the connection closes.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // Deadline errors surface on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket error", "error", err)
			}
			return
		}
	}
}

// writePump sends queued messages and pings to the connection. Each message
// is its own websocket frame.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			//nolint:errcheck // Deadline errors surface on the write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				//nolint:errcheck // Best-effort close frame
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			//nolint:errcheck // Deadline errors surface on the write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
