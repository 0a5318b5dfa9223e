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

// CreateComment inserts a new comment and bumps the owning task's
// denormalized comment counter.
func (s *SQLiteStore) CreateComment(ctx context.Context, c model.Comment) (*model.Comment, error) {
	if strings.TrimSpace(c.Content) == "" {
		return nil, fmt.Errorf("comment content must not be empty")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now().UTC()
	if c.Mentions == nil {
		c.Mentions = []string{}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO comments (id, task_id, user_id, content, mentions, parent_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.TaskID, c.UserID, c.Content, encodeStrings(c.Mentions), c.ParentID, c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE tasks SET comments_count = comments_count + 1 WHERE id = ?", c.TaskID)
	if err != nil {
		return nil, fmt.Errorf("bumping comment counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing comment: %w", err)
	}
	return &c, nil
}

// UpdateComment updates an existing comment's content and mentions.
func (s *SQLiteStore) UpdateComment(ctx context.Context, c model.Comment) error {
	now := time.Now().UTC()
	c.UpdatedAt = &now

	result, err := s.db.ExecContext(ctx, `
		UPDATE comments SET content = ?, mentions = ?, updated_at = ?
		WHERE id = ?`,
		c.Content, encodeStrings(c.Mentions), c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating comment %s: %w", c.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("comment %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

// DeleteComment removes a comment by ID and decrements the owning
// task's comment counter.
func (s *SQLiteStore) DeleteComment(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var taskID string
	err = tx.GetContext(ctx, &taskID, "SELECT task_id FROM comments WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("getting comment %s: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting comment %s: %w", id, err)
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE tasks SET comments_count = MAX(comments_count - 1, 0) WHERE id = ?", taskID)
	if err != nil {
		return fmt.Errorf("lowering comment counter: %w", err)
	}

	return tx.Commit()
}

// GetCommentByID retrieves a single comment by ID.
func (s *SQLiteStore) GetCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	row := s.db.QueryRowxContext(ctx, `
		SELECT id, task_id, user_id, content, mentions, parent_id, created_at, updated_at
		FROM comments WHERE id = ?`, id)

	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting comment %s: %w", id, err)
	}
	return c, nil
}

// GetCommentsByTask retrieves a task's top-level comments, oldest first.
func (s *SQLiteStore) GetCommentsByTask(ctx context.Context, taskID string) ([]model.Comment, error) {
	return s.queryComments(ctx, `
		SELECT id, task_id, user_id, content, mentions, parent_id, created_at, updated_at
		FROM comments WHERE task_id = ? AND parent_id IS NULL
		ORDER BY created_at ASC, rowid ASC`, taskID)
}

// GetReplies retrieves the replies of one comment, oldest first.
func (s *SQLiteStore) GetReplies(ctx context.Context, parentID string) ([]model.Comment, error) {
	return s.queryComments(ctx, `
		SELECT id, task_id, user_id, content, mentions, parent_id, created_at, updated_at
		FROM comments WHERE parent_id = ?
		ORDER BY created_at ASC, rowid ASC`, parentID)
}

func (s *SQLiteStore) queryComments(ctx context.Context, query string, args ...any) ([]model.Comment, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}
	defer rows.Close()

	var cs []model.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		cs = append(cs, *c)
	}
	return cs, rows.Err()
}

func scanComment(row rowScanner) (*model.Comment, error) {
	var c model.Comment
	var mentions string

	err := row.Scan(
		&c.ID, &c.TaskID, &c.UserID, &c.Content, &mentions,
		&c.ParentID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Mentions = decodeStrings(mentions)
	return &c, nil
}
