package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/model"
)

// CreateTask inserts a new task. Generates a UUID if ID is empty and
// fills in default status/priority.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return nil, fmt.Errorf("task title must not be empty")
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = model.StatusPending
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if task.Assignees == nil {
		task.Assignees = []string{}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, title, description, due_date, status, priority,
			tags, assignees, created_by,
			comments_count, attachments_count, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description, task.DueDate, task.Status, task.Priority,
		encodeStrings(task.Tags), encodeStrings(task.Assignees), task.CreatedBy,
		task.CommentsCount, task.AttachmentsCount, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return &task, nil
}

// UpdateTask writes the full task row by ID.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}
	task.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?, description = ?, due_date = ?, status = ?, priority = ?,
			tags = ?, assignees = ?,
			comments_count = ?, attachments_count = ?, updated_at = ?
		WHERE id = ?`,
		task.Title, task.Description, task.DueDate, task.Status, task.Priority,
		encodeStrings(task.Tags), encodeStrings(task.Assignees),
		task.CommentsCount, task.AttachmentsCount, task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", task.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s: %w", task.ID, ErrNotFound)
	}
	return nil
}

// DeleteTask removes a task by ID. History and assignment entries for
// the task are kept: the ledgers are append-only.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetTaskByID retrieves a single task by ID.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx, `
		SELECT id, title, description, due_date, status, priority,
			tags, assignees, created_by,
			comments_count, attachments_count, created_at, updated_at
		FROM tasks WHERE id = ?`, id)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	return task, nil
}

// GetTasks retrieves all tasks, newest first.
func (s *SQLiteStore) GetTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, title, description, due_date, status, priority,
			tags, assignees, created_by,
			comments_count, attachments_count, created_at, updated_at
		FROM tasks ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// rowScanner is satisfied by both *sqlx.Row and *sqlx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*model.Task, error) {
	var task model.Task
	var tags, assignees string

	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.DueDate,
		&task.Status, &task.Priority, &tags, &assignees, &task.CreatedBy,
		&task.CommentsCount, &task.AttachmentsCount,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.Tags = decodeStrings(tags)
	task.Assignees = decodeStrings(assignees)
	return &task, nil
}
