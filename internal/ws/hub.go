package ws

import (
	"sync"

	"hoppon-server/internal/metrics"
)

// Hub is the in-memory connection registry: the single source of truth for
// which users are reachable right now. It tracks at most one client per user;
// a fresh authentication for the same user supersedes the previous binding.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*Client),
	}
}

// Bind records the client as the live connection for the user, overwriting any
// prior binding. It returns the superseded client (nil if there was none) so
// the caller can close it.
func (h *Hub) Bind(userID int64, c *Client) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	prev := h.clients[userID]
	h.clients[userID] = c
	metrics.ActiveConnections.Set(float64(len(h.clients)))
	if prev == c {
		return nil
	}
	return prev
}

// Unbind removes the user's binding, but only if it still points at this
// client. A stale disconnect of a superseded connection must not evict a newer
// binding for the same user. Reports whether the entry was removed.
func (h *Hub) Unbind(userID int64, c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[userID] != c {
		return false
	}
	delete(h.clients, userID)
	metrics.ActiveConnections.Set(float64(len(h.clients)))
	return true
}

// Find returns the user's live client, or nil when the user is offline.
func (h *Hub) Find(userID int64) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[userID]
}

// PushToUsers delivers the payload to every listed user that has a live
// connection; offline users are skipped with no queuing or retry. A write
// failure closes that one connection and never aborts delivery to the rest.
// Returns the number of successful deliveries.
func (h *Hub) PushToUsers(userIDs []int64, payload any) int {
	h.mu.RLock()
	targets := make([]*Client, 0, len(userIDs))
	for _, uid := range userIDs {
		if c, ok := h.clients[uid]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if err := c.Send(payload); err != nil {
			c.Close()
			// the connection's own handler unbinds it on teardown
			continue
		}
		delivered++
	}
	return delivered
}

// BroadcastAll delivers the payload to every bound connection.
func (h *Hub) BroadcastAll(payload any) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Send(payload); err != nil {
			c.Close()
		}
	}
}
