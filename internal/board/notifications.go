package board

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/realtime"
)

// Notifications retrieves a user's latest notifications, newest first.
func (s *Service) Notifications(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.store.GetNotificationsForUser(ctx, userID, recentLimit)
}

// UnreadCount returns the number of unread notifications for a user.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.store.GetUnreadCount(ctx, userID)
}

// MarkNotificationRead marks one notification as read for its
// recipient and emits a notification_read event to them. Repeating the
// call succeeds without further state change.
func (s *Service) MarkNotificationRead(ctx context.Context, id, userID string) error {
	if err := s.store.MarkNotificationRead(ctx, id, userID); err != nil {
		return err
	}
	s.notifier.Emit(userID, realtime.EventNotificationRead, map[string]string{"id": id})
	return nil
}

// MarkAllNotificationsRead marks every unread notification of a user
// as read and emits an all_notifications_read event.
func (s *Service) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	if err := s.store.MarkAllNotificationsRead(ctx, userID); err != nil {
		return err
	}
	s.notifier.Emit(userID, realtime.EventAllNotificationsRead, map[string]string{})
	return nil
}

// DeleteNotification removes one notification for its recipient and
// emits a notification_deleted event.
func (s *Service) DeleteNotification(ctx context.Context, id, userID string) error {
	if err := s.store.DeleteNotification(ctx, id, userID); err != nil {
		return err
	}
	s.notifier.Emit(userID, realtime.EventNotificationDeleted, map[string]string{"id": id})
	return nil
}
