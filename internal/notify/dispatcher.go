// Package notify materializes notification records and requests their
// best-effort realtime delivery.
package notify

import (
	"context"

	"go.uber.org/zap"

	"taskboard/internal/model"
	"taskboard/internal/realtime"
	"taskboard/internal/store"
)

// Dispatcher persists notifications and pushes them to the recipient's
// live connection. Persistence and delivery are two independent steps:
// persistence failures are logged and swallowed so a notification can
// never abort the mutation that triggered it, and delivery is
// fire-and-forget against the durable row.
type Dispatcher struct {
	store  store.Store
	hub    *realtime.Hub
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher over the given store and hub.
func NewDispatcher(st store.Store, hub *realtime.Hub, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{store: st, hub: hub, logger: logger}
}

// Notify persists a notification for userID and pushes a
// new_notification event carrying the full record to their live
// connection, if any. Returns the persisted record, or nil if
// persistence failed.
func (d *Dispatcher) Notify(ctx context.Context, userID, typ, message, relatedID string) *model.Notification {
	n, err := d.store.CreateNotification(ctx, model.Notification{
		UserID:    userID,
		Type:      typ,
		Message:   message,
		RelatedID: relatedID,
	})
	if err != nil {
		d.logger.Error("persisting notification failed",
			zap.String("user_id", userID),
			zap.String("type", typ),
			zap.Error(err),
		)
		return nil
	}

	if !d.hub.EmitToUser(userID, realtime.EventNewNotification, n) {
		d.logger.Debug("recipient offline, notification stored only",
			zap.String("user_id", userID),
			zap.String("notification_id", n.ID),
		)
	}
	return n
}

// Emit pushes a lightweight event with no backing row, e.g. read-state
// changes. Returns false on a delivery miss.
func (d *Dispatcher) Emit(userID, event string, data any) bool {
	return d.hub.EmitToUser(userID, event, data)
}
