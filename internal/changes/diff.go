// Package changes computes field-level change sets between a task
// snapshot and a proposed mutation. It is pure: no I/O, no clock.
package changes

import (
	"strings"
	"time"

	"taskboard/internal/model"
)

// Record is one field-level before/after pair. Action uses the history
// action vocabulary so records can be written to the ledger as-is.
type Record struct {
	Action   string
	OldValue string
	NewValue string
}

// ChangeSet is the ordered result of diffing a task against a patch.
// Records are emitted in field declaration order: title, description,
// date, status, priority, assign_add, assign_remove, tags. The
// assignee delta is also exposed as identity sets for the assignment
// ledger and notification fan-out.
type ChangeSet struct {
	Records []Record

	// AddedAssignees is proposed minus current, in proposed order.
	AddedAssignees []string

	// RemovedAssignees is current minus proposed, in current order.
	RemovedAssignees []string
}

// Empty reports whether the patch requested no effective change.
func (cs ChangeSet) Empty() bool {
	return len(cs.Records) == 0
}

// Compute diffs current against patch and returns the resulting
// change set. Nil patch fields mean "no change requested". An empty
// title is ignored; an explicit empty description is a real change.
func Compute(current model.Task, patch model.TaskPatch) ChangeSet {
	var cs ChangeSet

	if patch.Title != nil && *patch.Title != "" && *patch.Title != current.Title {
		cs.Records = append(cs.Records, Record{
			Action:   model.ActionTitle,
			OldValue: current.Title,
			NewValue: *patch.Title,
		})
	}

	if patch.Description != nil && *patch.Description != current.Description {
		cs.Records = append(cs.Records, Record{
			Action:   model.ActionDescription,
			OldValue: current.Description,
			NewValue: *patch.Description,
		})
	}

	if patch.DueDate != nil && !patch.DueDate.Equal(current.DueDate) {
		cs.Records = append(cs.Records, Record{
			Action:   model.ActionDate,
			OldValue: current.DueDate.Format(time.RFC3339),
			NewValue: patch.DueDate.Format(time.RFC3339),
		})
	}

	if patch.Status != nil && *patch.Status != "" && *patch.Status != current.Status {
		cs.Records = append(cs.Records, Record{
			Action:   model.ActionStatus,
			OldValue: current.Status,
			NewValue: *patch.Status,
		})
	}

	if patch.Priority != nil && *patch.Priority != "" && *patch.Priority != current.Priority {
		cs.Records = append(cs.Records, Record{
			Action:   model.ActionPriority,
			OldValue: current.Priority,
			NewValue: *patch.Priority,
		})
	}

	if patch.Assignees != nil {
		cs.AddedAssignees = difference(patch.Assignees, current.Assignees)
		cs.RemovedAssignees = difference(current.Assignees, patch.Assignees)

		if len(cs.AddedAssignees) > 0 {
			cs.Records = append(cs.Records, Record{
				Action:   model.ActionAssignAdd,
				NewValue: strings.Join(cs.AddedAssignees, ", "),
			})
		}
		if len(cs.RemovedAssignees) > 0 {
			cs.Records = append(cs.Records, Record{
				Action:   model.ActionAssignRemove,
				OldValue: strings.Join(cs.RemovedAssignees, ", "),
			})
		}
	}

	if patch.Tags != nil {
		oldTags := strings.Join(current.Tags, ", ")
		newTags := strings.Join(patch.Tags, ", ")
		if oldTags != newTags {
			cs.Records = append(cs.Records, Record{
				Action:   model.ActionTags,
				OldValue: oldTags,
				NewValue: newTags,
			})
		}
	}

	return cs
}

// difference returns the elements of a not present in b, preserving
// the order of a.
func difference(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, s := range b {
		inB[s] = struct{}{}
	}
	var out []string
	for _, s := range a {
		if _, ok := inB[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
