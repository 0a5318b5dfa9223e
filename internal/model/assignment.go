package model

import "time"

// AssignmentRecord is an immutable audit record of newly-added
// assignees on a task. Only additions are recorded here; removals
// appear solely as assign_remove history entries.
type AssignmentRecord struct {
	// ID is the unique identifier for this record.
	ID string `json:"id"`

	// TaskID references the task the assignment happened on.
	TaskID string `json:"task_id"`

	// AssignedBy is the user who performed the assignment.
	AssignedBy string `json:"assigned_by"`

	// Assignees holds the user IDs added by this assignment, in the
	// order they were added.
	Assignees []string `json:"assignees"`

	// CreatedAt is when the assignment was recorded.
	CreatedAt time.Time `json:"created_at"`
}
