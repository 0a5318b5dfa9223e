package model

import "time"

// History entry actions. One entry is written per changed field, plus
// lifecycle entries for create/delete and comment activity.
const (
	ActionCreate       = "create"
	ActionDelete       = "delete"
	ActionTitle        = "title"
	ActionDescription  = "description"
	ActionDate         = "date"
	ActionStatus       = "status"
	ActionPriority     = "priority"
	ActionAssignAdd    = "assign_add"
	ActionAssignRemove = "assign_remove"
	ActionTags         = "tags"
	ActionComment      = "comment"
)

// HistoryEntry is one immutable audit record of a change or lifecycle
// event on a task. Entries are append-only: never updated or deleted
// once written, even after the task itself is gone.
type HistoryEntry struct {
	// ID is the unique identifier for this entry.
	ID string `json:"id"`

	// TaskID references the task the entry belongs to.
	TaskID string `json:"task_id"`

	// ActorID is the user who performed the change.
	ActorID string `json:"actor_id"`

	// Action is one of the Action* constants.
	Action string `json:"action"`

	// OldValue is the previous value, rendered as a string. Empty
	// when the action has no meaningful old value (e.g. create).
	OldValue string `json:"old_value,omitempty"`

	// NewValue is the new value, rendered as a string. Empty when
	// the action has no meaningful new value (e.g. delete).
	NewValue string `json:"new_value,omitempty"`

	// CreatedAt orders entries for a task.
	CreatedAt time.Time `json:"created_at"`
}
