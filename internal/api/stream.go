package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"globelabels/pkg/globe"
	"globelabels/pkg/metrics"
)

const (
	streamBuffer = 64
	writeWait    = 5 * time.Second
)

// Envelope kinds sent to renderers.
const (
	KindState  = "state"
	KindUpdate = "update"
	KindFrame  = "frame"
)

// Envelope wraps every message on the stream.
type Envelope struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}

type streamClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// StreamHub fans controller updates and animation frames out to websocket
// renderers. A client that falls behind loses messages rather than blocking
// the controller.
type StreamHub struct {
	mu       sync.Mutex
	clients  map[string]*streamClient
	snapshot func() globe.State
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewStreamHub creates a hub. snapshot provides the state sent to new clients.
func NewStreamHub(snapshot func() globe.State) *StreamHub {
	return &StreamHub{
		clients:  make(map[string]*streamClient),
		snapshot: snapshot,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: slog.With("component", "stream"),
	}
}

// HandleStream handles GET /api/labels/stream
func (h *StreamHub) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade connection", "error", err)
		return
	}

	c := &streamClient{id: uuid.NewString(), conn: conn, send: make(chan []byte, streamBuffer)}
	if h.snapshot != nil {
		if msg, err := encode(KindState, h.snapshot()); err == nil {
			c.send <- msg
		}
	}
	h.register(c)

	go h.writeLoop(c)

	// Renderers do not send anything; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.logger.Debug("Client disconnected", "client", c.id, "error", err)
			break
		}
	}
	h.unregister(c.id)
}

func (h *StreamHub) writeLoop(c *streamClient) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.logger.Debug("Write failed", "client", c.id, "error", err)
			h.unregister(c.id)
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *StreamHub) register(c *streamClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	metrics.StreamClients.Set(float64(len(h.clients)))
	h.logger.Info("Client connected", "client", c.id, "clients", len(h.clients))
}

func (h *StreamHub) unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return
	}
	delete(h.clients, id)
	close(c.send)
	metrics.StreamClients.Set(float64(len(h.clients)))
}

// clientCount returns the number of connected renderers.
func (h *StreamHub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// PublishUpdate implements globe.Sink.
func (h *StreamHub) PublishUpdate(u *globe.Update) {
	h.broadcast(KindUpdate, u)
}

// PublishFrame implements globe.Sink.
func (h *StreamHub) PublishFrame(f *globe.Frame) {
	h.broadcast(KindFrame, f)
}

func (h *StreamHub) broadcast(kind string, v any) {
	msg, err := encode(kind, v)
	if err != nil {
		h.logger.Error("Failed to encode message", "kind", kind, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Debug("Client lagging, message dropped", "client", c.id, "kind", kind)
		}
	}
}

// Close disconnects every client.
func (h *StreamHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
	metrics.StreamClients.Set(0)
}

func encode(kind string, v any) ([]byte, error) {
	return json.Marshal(Envelope{Kind: kind, Data: v})
}
