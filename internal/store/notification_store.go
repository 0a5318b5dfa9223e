package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/model"
)

// CreateNotification inserts a new notification for one recipient and
// returns it with its generated ID and timestamp.
func (s *SQLiteStore) CreateNotification(ctx context.Context, n model.Notification) (*model.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.Read = false
	n.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, type, message, read, related_id, created_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)`,
		n.ID, n.UserID, n.Type, n.Message, n.RelatedID, n.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}
	return &n, nil
}

// GetNotificationsForUser retrieves a user's notifications, newest first.
func (s *SQLiteStore) GetNotificationsForUser(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, user_id, type, message, read, related_id, created_at
		FROM notifications WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var ns []model.Notification
	for rows.Next() {
		var n model.Notification
		var read int
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.Message, &read, &n.RelatedID, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		n.Read = read != 0
		ns = append(ns, n)
	}
	return ns, rows.Err()
}

// GetUnreadCount returns the number of unread notifications for a user.
func (s *SQLiteStore) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read = 0", userID)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationRead marks one notification as read. Only the
// recipient may do this; repeating the call is a no-op, not an error.
func (s *SQLiteStore) MarkNotificationRead(ctx context.Context, id, userID string) error {
	owner, err := s.notificationOwner(ctx, id)
	if err != nil {
		return err
	}
	if owner != userID {
		return fmt.Errorf("notification %s: %w", id, ErrForbidden)
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE notifications SET read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("marking notification %s read: %w", id, err)
	}
	return nil
}

// MarkAllNotificationsRead marks every unread notification of a user as read.
func (s *SQLiteStore) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET read = 1 WHERE user_id = ? AND read = 0", userID)
	if err != nil {
		return fmt.Errorf("marking all notifications read: %w", err)
	}
	return nil
}

// DeleteNotification removes one notification. Only the recipient may
// delete it.
func (s *SQLiteStore) DeleteNotification(ctx context.Context, id, userID string) error {
	owner, err := s.notificationOwner(ctx, id)
	if err != nil {
		return err
	}
	if owner != userID {
		return fmt.Errorf("notification %s: %w", id, ErrForbidden)
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM notifications WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting notification %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) notificationOwner(ctx context.Context, id string) (string, error) {
	var owner string
	err := s.db.GetContext(ctx, &owner,
		"SELECT user_id FROM notifications WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("getting notification %s: %w", id, err)
	}
	return owner, nil
}
