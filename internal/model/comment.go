package model

import "time"

// Comment is a free-text note on a task. Mentions store user IDs
// resolved at creation time from @tokens in the content plus any
// explicitly supplied mention list.
type Comment struct {
	// ID is the unique identifier for this comment.
	ID string `json:"id"`

	// TaskID references the task the comment belongs to.
	TaskID string `json:"task_id"`

	// UserID is the comment's author.
	UserID string `json:"user_id"`

	// Content is the comment body.
	Content string `json:"content"`

	// Mentions holds the user IDs mentioned in this comment.
	Mentions []string `json:"mentions"`

	// ParentID references the parent comment for threaded replies,
	// or is nil for top-level comments.
	ParentID *string `json:"parent_id,omitempty"`

	// CreatedAt is when the comment was posted.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is set when the comment is edited.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
