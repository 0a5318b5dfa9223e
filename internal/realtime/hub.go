// Package realtime holds the process-wide registry of live user
// connections and the fire-and-forget delivery primitives over it.
package realtime

import (
	"sync"

	"go.uber.org/zap"
)

// Conn is one live transport handle. Send pushes a single event frame;
// Close tears the transport down. Implementations must be safe for
// concurrent Send calls.
type Conn interface {
	Send(event string, data any) error
	Close() error
}

// Event is the wire envelope for both directions of the realtime
// transport.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Outbound event names.
const (
	EventNewNotification      = "new_notification"
	EventNotificationRead     = "notification_read"
	EventAllNotificationsRead = "all_notifications_read"
	EventNotificationDeleted  = "notification_deleted"
)

// Hub maps user identities to their single live connection. A user has
// at most one binding at any instant; authenticating a second
// connection force-closes the first. Authenticate and disconnect
// arrive from arbitrary connection goroutines, so all map access goes
// through the mutex.
type Hub struct {
	mu     sync.Mutex
	conns  map[string]Conn
	logger *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[string]Conn),
		logger: logger,
	}
}

// Bind registers conn as userID's live connection. Any previous
// binding for the user is closed and replaced: last writer wins.
func (h *Hub) Bind(userID string, conn Conn) {
	h.mu.Lock()
	prev := h.conns[userID]
	h.conns[userID] = conn
	h.mu.Unlock()

	if prev != nil && prev != conn {
		if err := prev.Close(); err != nil {
			h.logger.Debug("closing evicted connection", zap.String("user_id", userID), zap.Error(err))
		}
	}
}

// Unbind removes userID's binding, but only if conn still owns it. A
// connection that was already evicted by a newer bind must not tear
// down its successor.
func (h *Hub) Unbind(userID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == conn {
		delete(h.conns, userID)
	}
}

// Bound reports whether userID currently has a live connection.
func (h *Hub) Bound(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.conns[userID]
	return ok
}

// EmitToUser pushes one event to userID's live connection. It returns
// false when the user has no binding; that is a delivery miss, not an
// error. Send failures are logged and still count as an attempted
// delivery: there is no retry and no queueing.
func (h *Hub) EmitToUser(userID, event string, data any) bool {
	h.mu.Lock()
	conn, ok := h.conns[userID]
	h.mu.Unlock()

	if !ok {
		return false
	}
	if err := conn.Send(event, data); err != nil {
		h.logger.Warn("realtime send failed",
			zap.String("user_id", userID),
			zap.String("event", event),
			zap.Error(err),
		)
	}
	return true
}

// EmitToAll broadcasts one event to every bound connection.
func (h *Hub) EmitToAll(event string, data any) {
	h.mu.Lock()
	conns := make(map[string]Conn, len(h.conns))
	for id, c := range h.conns {
		conns[id] = c
	}
	h.mu.Unlock()

	for id, c := range conns {
		if err := c.Send(event, data); err != nil {
			h.logger.Warn("realtime broadcast failed",
				zap.String("user_id", id),
				zap.String("event", event),
				zap.Error(err),
			)
		}
	}
}
