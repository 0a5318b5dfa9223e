package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/model"
)

// AppendAssignment writes one immutable assignment record and returns
// it with its generated ID and timestamp, so callers can hand it
// straight to the notification dispatcher without a re-read.
func (s *SQLiteStore) AppendAssignment(ctx context.Context, rec model.AssignmentRecord) (*model.AssignmentRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.Assignees == nil {
		rec.Assignees = []string{}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assignments (id, task_id, assigned_by, assignees, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.TaskID, rec.AssignedBy, encodeStrings(rec.Assignees), rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("appending assignment record: %w", err)
	}
	return &rec, nil
}

// GetAssignmentsByTask retrieves a task's assignment records, newest first.
func (s *SQLiteStore) GetAssignmentsByTask(ctx context.Context, taskID string) ([]model.AssignmentRecord, error) {
	return s.queryAssignments(ctx, `
		SELECT id, task_id, assigned_by, assignees, created_at
		FROM assignments WHERE task_id = ?
		ORDER BY created_at DESC, rowid DESC`, taskID)
}

// GetRecentAssignments retrieves the latest assignment records across
// all tasks, newest first.
func (s *SQLiteStore) GetRecentAssignments(ctx context.Context, limit int) ([]model.AssignmentRecord, error) {
	return s.queryAssignments(ctx, `
		SELECT id, task_id, assigned_by, assignees, created_at
		FROM assignments
		ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
}

func (s *SQLiteStore) queryAssignments(ctx context.Context, query string, args ...any) ([]model.AssignmentRecord, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying assignments: %w", err)
	}
	defer rows.Close()

	var recs []model.AssignmentRecord
	for rows.Next() {
		var rec model.AssignmentRecord
		var assignees string
		if err := rows.Scan(
			&rec.ID, &rec.TaskID, &rec.AssignedBy, &assignees, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning assignment record: %w", err)
		}
		rec.Assignees = decodeStrings(assignees)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
