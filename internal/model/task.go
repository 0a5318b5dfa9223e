package model

import "time"

// Task status values as they appear on the board columns.
const (
	StatusPending    = "Pending"
	StatusInProgress = "InProgress"
	StatusDone       = "Done"
)

// Task priority values.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusDone
}

// ValidPriority reports whether p is one of the known task priorities.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task is a work item on the board. It stores only identities for its
// creator and assignees; resolving those to full users happens at read
// time through the store.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id"`

	// Title is the human-readable summary of the task.
	Title string `json:"title"`

	// Description is the full body text. May be empty.
	Description string `json:"description"`

	// DueDate is when the task is due.
	DueDate time.Time `json:"due_date"`

	// Status is the board column (use Status* constants).
	Status string `json:"status"`

	// Priority is the urgency level (use Priority* constants).
	Priority string `json:"priority"`

	// Tags is the ordered list of free-form labels.
	Tags []string `json:"tags"`

	// Assignees holds the user IDs currently assigned to the task.
	Assignees []string `json:"assignees"`

	// CreatedBy is the user ID of the task's creator.
	CreatedBy string `json:"created_by"`

	// CommentsCount is the denormalized number of comments.
	CommentsCount int `json:"comments_count"`

	// AttachmentsCount is the denormalized number of attachments.
	AttachmentsCount int `json:"attachments_count"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskPatch is a proposed mutation of a task. Nil fields mean "no
// change requested". Description is a pointer so that an explicit
// empty string is distinct from an omitted field; an empty title is
// ignored rather than applied.
type TaskPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	Assignees   []string   `json:"assignees"`
	Tags        []string   `json:"tags"`
}
