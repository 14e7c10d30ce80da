package stats

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Hub fans a snapshot out to every connected dashboard socket
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
	log   *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]bool),
		log:   log,
	}
}

// HandleConn owns one socket for its lifetime. Inbound messages are only
// read to notice the close.
func (h *Hub) HandleConn(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, c)
		h.mu.Unlock()
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends the snapshot to every connection, dropping the ones that
// fail to write
func (h *Hub) Broadcast(snap Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		h.log.Error("failed to encode stats snapshot", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.log.Warn("dropping stats subscriber", zap.Error(err))
			delete(h.conns, c)
			c.Close()
		}
	}
}

// Subscribers returns the current connection count
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
