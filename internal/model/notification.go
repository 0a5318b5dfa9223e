package model

import "time"

// Notification types.
const (
	NotificationAssignment = "assignment"
	NotificationMention    = "mention"
	NotificationComment    = "comment"
)

// Notification is a durable alert addressed to one user. The row is
// the source of truth; realtime delivery of it is best-effort.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// UserID is the recipient.
	UserID string `json:"user_id"`

	// Type is one of the Notification* constants.
	Type string `json:"type"`

	// Message is the rendered, human-readable notification text.
	Message string `json:"message"`

	// Read indicates whether the recipient has seen it.
	Read bool `json:"read"`

	// RelatedID links to the originating entity, typically a task.
	RelatedID string `json:"related_id,omitempty"`

	// CreatedAt is when the notification was generated.
	CreatedAt time.Time `json:"created_at"`
}
