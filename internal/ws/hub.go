// Package ws is the real-time fan-out layer: an injected socket registry
// mapping user ids to their active connections, with best-effort event
// emission that never blocks or fails the caller.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Envelope is the frame written to connected sockets.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

type Client struct {
	UserID   string
	SocketID string
	Send     chan []byte
}

type Hub struct {
	mu            sync.RWMutex
	clientsByUser map[string]map[*Client]struct{}
	presence      *Presence
	log           *zap.SugaredLogger
}

// NewHub builds the registry. presence may be nil when Redis is not
// configured.
func NewHub(presence *Presence, log *zap.SugaredLogger) *Hub {
	return &Hub{
		clientsByUser: make(map[string]map[*Client]struct{}),
		presence:      presence,
		log:           log,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if _, ok := h.clientsByUser[c.UserID]; !ok {
		h.clientsByUser[c.UserID] = make(map[*Client]struct{})
	}
	h.clientsByUser[c.UserID][c] = struct{}{}
	h.mu.Unlock()

	if h.presence != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := h.presence.Online(ctx, c.UserID, c.SocketID); err != nil {
			h.log.Warnf("presence online for %s: %v", c.UserID, err)
		}
	}
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set, ok := h.clientsByUser[c.UserID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clientsByUser, c.UserID)
		}
	}
	h.mu.Unlock()

	if h.presence != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := h.presence.Offline(ctx, c.UserID, c.SocketID); err != nil {
			h.log.Warnf("presence offline for %s: %v", c.UserID, err)
		}
	}
}

// SocketsFor returns the socket ids currently registered for a user.
func (h *Hub) SocketsFor(userID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	set, ok := h.clientsByUser[userID]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c.SocketID)
	}
	return out
}

// Emit fans an event out to every active socket of the target users.
// Delivery is best-effort: slow clients are skipped and failures are logged,
// never returned.
func (h *Hub) Emit(event string, userIDs []string, payload interface{}) {
	msg, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		h.log.Warnf("emit %s: marshal: %v", event, err)
		return
	}

	h.mu.RLock()
	for _, userID := range userIDs {
		for c := range h.clientsByUser[userID] {
			select {
			case c.Send <- msg:
			default:
				// client not keeping up, drop the frame
			}
		}
	}
	h.mu.RUnlock()

	if h.presence != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		for _, userID := range userIDs {
			if err := h.presence.Publish(ctx, "user:"+userID, msg); err != nil {
				h.log.Warnf("emit %s: publish for %s: %v", event, userID, err)
			}
		}
	}
}
