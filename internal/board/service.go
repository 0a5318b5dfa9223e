// Package board implements the task mutation pipeline: change
// computation, history and assignment ledgers, and notification
// fan-out. The HTTP layer calls in here and stays thin.
package board

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/changes"
	"taskboard/internal/model"
	"taskboard/internal/notify"
	"taskboard/internal/store"
)

// ErrInvalidInput marks validation failures on proposed mutations.
// Nothing is written when it is returned.
var ErrInvalidInput = errors.New("invalid input")

// Service orchestrates task mutations. Each store write it performs is
// independent: once a mutation starts emitting ledger writes it runs
// them to completion, and a failed history or assignment write fails
// the call even though the task row may already be updated.
type Service struct {
	store    store.Store
	notifier *notify.Dispatcher
	logger   *zap.Logger
}

// NewService creates the board service.
func NewService(st store.Store, notifier *notify.Dispatcher, logger *zap.Logger) *Service {
	return &Service{store: st, notifier: notifier, logger: logger}
}

// CreateTaskInput holds the fields for a new task.
type CreateTaskInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Tags        []string  `json:"tags"`
	Assignees   []string  `json:"assignees"`
}

// CreateTask creates a task, writes its create history entry, and if
// assignees were given, records the assignment and notifies each
// assignee. The create entry is written before the caller sees success.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput, actorID string) (*model.Task, error) {
	actor, err := s.store.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if in.Status != "" && !model.ValidStatus(in.Status) {
		return nil, fmt.Errorf("invalid status %q: %w", in.Status, ErrInvalidInput)
	}
	if in.Priority != "" && !model.ValidPriority(in.Priority) {
		return nil, fmt.Errorf("invalid priority %q: %w", in.Priority, ErrInvalidInput)
	}

	task, err := s.store.CreateTask(ctx, model.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      in.Status,
		Priority:    in.Priority,
		Tags:        in.Tags,
		Assignees:   in.Assignees,
		CreatedBy:   actorID,
	})
	if err != nil {
		return nil, err
	}

	_, err = s.store.AppendHistory(ctx, model.HistoryEntry{
		TaskID:   task.ID,
		ActorID:  actorID,
		Action:   model.ActionCreate,
		NewValue: task.Title,
	})
	if err != nil {
		return nil, err
	}

	if len(task.Assignees) > 0 {
		rec, err := s.store.AppendAssignment(ctx, model.AssignmentRecord{
			TaskID:     task.ID,
			AssignedBy: actorID,
			Assignees:  task.Assignees,
		})
		if err != nil {
			return nil, err
		}
		for _, assigneeID := range rec.Assignees {
			s.notifier.Notify(ctx, assigneeID, model.NotificationAssignment,
				fmt.Sprintf("%s assigned you a new task: %q", actor.Name, task.Title),
				task.ID)
		}
	}

	return task, nil
}

// ApplyTaskMutation diffs the stored task against patch, applies the
// patch, and runs the full pipeline: one history entry per change in
// field order, one assignment record if assignees were added, one
// notification per added assignee. A patch that changes nothing writes
// nothing beyond the task row itself.
func (s *Service) ApplyTaskMutation(ctx context.Context, taskID string, patch model.TaskPatch, actorID string) (*model.Task, error) {
	actor, err := s.store.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	task, err := s.store.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil && *patch.Status != "" && !model.ValidStatus(*patch.Status) {
		return nil, fmt.Errorf("invalid status %q: %w", *patch.Status, ErrInvalidInput)
	}
	if patch.Priority != nil && *patch.Priority != "" && !model.ValidPriority(*patch.Priority) {
		return nil, fmt.Errorf("invalid priority %q: %w", *patch.Priority, ErrInvalidInput)
	}

	cs := changes.Compute(*task, patch)

	applyPatch(task, patch)
	if err := s.store.UpdateTask(ctx, *task); err != nil {
		return nil, err
	}

	for _, rec := range cs.Records {
		_, err := s.store.AppendHistory(ctx, model.HistoryEntry{
			TaskID:   task.ID,
			ActorID:  actorID,
			Action:   rec.Action,
			OldValue: rec.OldValue,
			NewValue: rec.NewValue,
		})
		if err != nil {
			return nil, err
		}
	}

	// Additions get an assignment record and notifications; removals
	// only appear in the history ledger.
	if len(cs.AddedAssignees) > 0 {
		rec, err := s.store.AppendAssignment(ctx, model.AssignmentRecord{
			TaskID:     task.ID,
			AssignedBy: actorID,
			Assignees:  cs.AddedAssignees,
		})
		if err != nil {
			return nil, err
		}
		for _, assigneeID := range rec.Assignees {
			s.notifier.Notify(ctx, assigneeID, model.NotificationAssignment,
				fmt.Sprintf("%s assigned you to a task: %q", actor.Name, task.Title),
				task.ID)
		}
	}

	return task, nil
}

// UpdateTaskStatus is the drag-and-drop fast path: it moves a task to
// a new column and writes a single status history entry, skipping the
// rest of the pipeline.
func (s *Service) UpdateTaskStatus(ctx context.Context, taskID, status, actorID string) (*model.Task, error) {
	if _, err := s.store.GetUserByID(ctx, actorID); err != nil {
		return nil, err
	}
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q: %w", status, ErrInvalidInput)
	}
	task, err := s.store.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	oldStatus := task.Status
	task.Status = status
	if err := s.store.UpdateTask(ctx, *task); err != nil {
		return nil, err
	}

	_, err = s.store.AppendHistory(ctx, model.HistoryEntry{
		TaskID:   task.ID,
		ActorID:  actorID,
		Action:   model.ActionStatus,
		OldValue: oldStatus,
		NewValue: status,
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask writes the final delete history entry, then removes the
// task. The entry goes first so it can still carry the task's title.
func (s *Service) DeleteTask(ctx context.Context, taskID, actorID string) error {
	if _, err := s.store.GetUserByID(ctx, actorID); err != nil {
		return err
	}
	task, err := s.store.GetTaskByID(ctx, taskID)
	if err != nil {
		return err
	}

	_, err = s.store.AppendHistory(ctx, model.HistoryEntry{
		TaskID:   task.ID,
		ActorID:  actorID,
		Action:   model.ActionDelete,
		OldValue: task.Title,
	})
	if err != nil {
		return err
	}

	return s.store.DeleteTask(ctx, taskID)
}

// Task retrieves one task.
func (s *Service) Task(ctx context.Context, id string) (*model.Task, error) {
	return s.store.GetTaskByID(ctx, id)
}

// Tasks retrieves all tasks, newest first.
func (s *Service) Tasks(ctx context.Context) ([]model.Task, error) {
	return s.store.GetTasks(ctx)
}

// TaskHistory retrieves a task's history entries, newest first.
func (s *Service) TaskHistory(ctx context.Context, taskID string) ([]model.HistoryEntry, error) {
	return s.store.GetHistory(ctx, store.HistoryFilter{TaskID: &taskID})
}

// RecentHistory retrieves the latest history entries across all tasks.
func (s *Service) RecentHistory(ctx context.Context) ([]model.HistoryEntry, error) {
	return s.store.GetHistory(ctx, store.HistoryFilter{Limit: recentLimit})
}

// TaskAssignments retrieves a task's assignment records, newest first.
func (s *Service) TaskAssignments(ctx context.Context, taskID string) ([]model.AssignmentRecord, error) {
	return s.store.GetAssignmentsByTask(ctx, taskID)
}

// RecentAssignments retrieves the latest assignment records across all
// tasks.
func (s *Service) RecentAssignments(ctx context.Context) ([]model.AssignmentRecord, error) {
	return s.store.GetRecentAssignments(ctx, recentLimit)
}

// Users retrieves the user directory.
func (s *Service) Users(ctx context.Context) ([]model.User, error) {
	return s.store.GetUsers(ctx)
}

// recentLimit caps the dashboard feeds of history, assignment, and
// notification reads.
const recentLimit = 50

// applyPatch copies the patch's requested changes onto task. Nil
// fields are left alone; an empty title is ignored.
func applyPatch(task *model.Task, patch model.TaskPatch) {
	if patch.Title != nil && *patch.Title != "" {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Status != nil && *patch.Status != "" {
		task.Status = *patch.Status
	}
	if patch.Priority != nil && *patch.Priority != "" {
		task.Priority = *patch.Priority
	}
	if patch.Assignees != nil {
		task.Assignees = patch.Assignees
	}
	if patch.Tags != nil {
		task.Tags = patch.Tags
	}
}
