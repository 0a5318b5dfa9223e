package store

import (
	"context"
	"errors"

	"taskboard/internal/model"
)

// Sentinel errors returned by Store implementations.
var (
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the acting user does not own the entity.
	ErrForbidden = errors.New("forbidden")
)

// HistoryFilter controls history queries.
type HistoryFilter struct {
	TaskID *string // nil = all tasks
	Limit  int     // 0 = no limit
}

// Store defines the persistence interface for users, tasks, and the
// ledgers and notifications derived from task mutations.
type Store interface {
	// === Users ===

	CreateUser(ctx context.Context, user model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)

	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) error
	DeleteTask(ctx context.Context, id string) error
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	GetTasks(ctx context.Context) ([]model.Task, error)

	// === History ledger (append-only) ===

	AppendHistory(ctx context.Context, entry model.HistoryEntry) (*model.HistoryEntry, error)
	GetHistory(ctx context.Context, filter HistoryFilter) ([]model.HistoryEntry, error)

	// === Assignment ledger (append-only) ===

	AppendAssignment(ctx context.Context, rec model.AssignmentRecord) (*model.AssignmentRecord, error)
	GetAssignmentsByTask(ctx context.Context, taskID string) ([]model.AssignmentRecord, error)
	GetRecentAssignments(ctx context.Context, limit int) ([]model.AssignmentRecord, error)

	// === Notifications ===

	CreateNotification(ctx context.Context, n model.Notification) (*model.Notification, error)
	GetNotificationsForUser(ctx context.Context, userID string, limit int) ([]model.Notification, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkNotificationRead(ctx context.Context, id, userID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, id, userID string) error

	// === Comments ===

	CreateComment(ctx context.Context, c model.Comment) (*model.Comment, error)
	UpdateComment(ctx context.Context, c model.Comment) error
	DeleteComment(ctx context.Context, id string) error
	GetCommentByID(ctx context.Context, id string) (*model.Comment, error)
	GetCommentsByTask(ctx context.Context, taskID string) ([]model.Comment, error)
	GetReplies(ctx context.Context, parentID string) ([]model.Comment, error)
}
