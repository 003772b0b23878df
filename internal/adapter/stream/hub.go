// Package stream pushes every published fleet snapshot to websocket
// subscribers so the 3D scene can update without polling.
package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"fleetsim/internal/app/fleetview"
	"fleetsim/internal/domain/fleet"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

type client struct {
	id   string
	send chan []byte
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[string]*client),
		logger:  logger,
	}
}

// Broadcast fans a snapshot out to every subscriber. Slow clients are
// dropped rather than allowed to stall the scheduler.
func (h *Hub) Broadcast(rows []fleet.VesselWithState) {
	payload, err := json.Marshal(fleetview.FleetStatuses(rows))
	if err != nil {
		h.logger.Error("marshal fleet snapshot", "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.logger.Warn("stream client lagging, dropping frame", "client", c.id)
		}
	}
}

func (h *Hub) register() *client {
	c := &client{id: uuid.NewString(), send: make(chan []byte, 8)}
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
}

// ServeHTTP upgrades the request and pumps snapshots until the client goes
// away or ctx is cancelled.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Warn("websocket accept", "err", err)
		return
	}

	c := h.register()
	defer h.unregister(c)
	h.logger.Info("stream client connected", "client", c.id)

	ctx := r.Context()
	defer conn.Close(websocket.StatusNormalClosure, "")
	for {
		select {
		case <-ctx.Done():
			return
		case payload := <-c.send:
			if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
				h.logger.Info("stream client disconnected", "client", c.id, "err", err)
				return
			}
		}
	}
}

// ClientCount reports how many subscribers are attached.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
