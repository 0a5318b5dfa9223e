package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/model"
	"taskboard/internal/store"
	"taskboard/tests/testutil"
)

func TestTaskLifecycle(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	task, err := s.CreateTask(ctx, model.Task{
		Title:     "Write onboarding docs",
		DueDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Assignees: []string{"u1"},
		Tags:      []string{"docs"},
		CreatedBy: "u0",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, model.StatusPending, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)

	got, err := s.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write onboarding docs", got.Title)
	assert.Equal(t, []string{"u1"}, got.Assignees)
	assert.Equal(t, []string{"docs"}, got.Tags)

	got.Status = model.StatusDone
	require.NoError(t, s.UpdateTask(ctx, *got))

	updated, err := s.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, updated.Status)

	require.NoError(t, s.DeleteTask(ctx, task.ID))

	_, err = s.GetTaskByID(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.CreateTask(context.Background(), model.Task{Title: "   "})
	assert.Error(t, err)
}

func TestHistoryIsAppendOnlyAndOrdered(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	actions := []string{model.ActionCreate, model.ActionStatus, model.ActionTags}
	for _, action := range actions {
		_, err := s.AppendHistory(ctx, model.HistoryEntry{
			TaskID:  "t1",
			ActorID: "u0",
			Action:  action,
		})
		require.NoError(t, err)
	}

	taskID := "t1"
	entries, err := s.GetHistory(ctx, store.HistoryFilter{TaskID: &taskID})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first; same-instant writes keep insertion order.
	assert.Equal(t, model.ActionTags, entries[0].Action)
	assert.Equal(t, model.ActionStatus, entries[1].Action)
	assert.Equal(t, model.ActionCreate, entries[2].Action)
}

func TestHistorySurvivesTaskDeletion(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	task, err := s.CreateTask(ctx, model.Task{Title: "Draft", CreatedBy: "u0"})
	require.NoError(t, err)

	_, err = s.AppendHistory(ctx, model.HistoryEntry{
		TaskID:   task.ID,
		ActorID:  "u0",
		Action:   model.ActionDelete,
		OldValue: task.Title,
	})
	require.NoError(t, err)
	require.NoError(t, s.DeleteTask(ctx, task.ID))

	entries, err := s.GetHistory(ctx, store.HistoryFilter{TaskID: &task.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Draft", entries[0].OldValue)
}

func TestHistoryLimit(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.AppendHistory(ctx, model.HistoryEntry{
			TaskID: "t1", ActorID: "u0", Action: model.ActionStatus,
		})
		require.NoError(t, err)
	}

	entries, err := s.GetHistory(ctx, store.HistoryFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestAssignmentRecordRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	rec, err := s.AppendAssignment(ctx, model.AssignmentRecord{
		TaskID:     "t1",
		AssignedBy: "u0",
		Assignees:  []string{"u1", "u2"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	recs, err := s.GetAssignmentsByTask(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "u0", recs[0].AssignedBy)
	assert.Equal(t, []string{"u1", "u2"}, recs[0].Assignees)
}

func TestNotificationReadFlow(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	n, err := s.CreateNotification(ctx, model.Notification{
		UserID:    "u1",
		Type:      model.NotificationAssignment,
		Message:   "you were assigned",
		RelatedID: "t1",
	})
	require.NoError(t, err)
	assert.False(t, n.Read)

	count, err := s.GetUnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Only the recipient may mark it read.
	err = s.MarkNotificationRead(ctx, n.ID, "u2")
	assert.ErrorIs(t, err, store.ErrForbidden)

	require.NoError(t, s.MarkNotificationRead(ctx, n.ID, "u1"))

	// Second call is a no-op, not an error.
	require.NoError(t, s.MarkNotificationRead(ctx, n.ID, "u1"))

	count, err = s.GetUnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.CreateNotification(ctx, model.Notification{
			UserID: "u1", Type: model.NotificationMention, Message: "hi",
		})
		require.NoError(t, err)
	}
	require.NoError(t, s.MarkAllNotificationsRead(ctx, "u1"))

	count, err := s.GetUnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDeleteNotificationOwnership(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	n, err := s.CreateNotification(ctx, model.Notification{
		UserID: "u1", Type: model.NotificationMention, Message: "hi",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteNotification(ctx, n.ID, "u2"), store.ErrForbidden)
	require.NoError(t, s.DeleteNotification(ctx, n.ID, "u1"))

	err = s.DeleteNotification(ctx, n.ID, "u1")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestCommentCounterTracksCreateAndDelete(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	task, err := s.CreateTask(ctx, model.Task{Title: "Counter check", CreatedBy: "u0"})
	require.NoError(t, err)

	c1, err := s.CreateComment(ctx, model.Comment{
		TaskID: task.ID, UserID: "u0", Content: "first",
	})
	require.NoError(t, err)
	_, err = s.CreateComment(ctx, model.Comment{
		TaskID: task.ID, UserID: "u1", Content: "second",
	})
	require.NoError(t, err)

	got, err := s.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentsCount)

	require.NoError(t, s.DeleteComment(ctx, c1.ID))

	got, err = s.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CommentsCount)
}

func TestCommentThreading(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	task, err := s.CreateTask(ctx, model.Task{Title: "Thread me", CreatedBy: "u0"})
	require.NoError(t, err)

	parent, err := s.CreateComment(ctx, model.Comment{
		TaskID: task.ID, UserID: "u0", Content: "top level",
	})
	require.NoError(t, err)
	_, err = s.CreateComment(ctx, model.Comment{
		TaskID: task.ID, UserID: "u1", Content: "a reply", ParentID: &parent.ID,
	})
	require.NoError(t, err)

	top, err := s.GetCommentsByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "top level", top[0].Content)

	replies, err := s.GetReplies(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "a reply", replies[0].Content)
}

func TestUserDirectory(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.SeedUser(t, s, "u1", "Ana Soylu")
	testutil.SeedUser(t, s, "u2", "Mert Demir")

	users, err := s.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ana Soylu", users[0].Name)

	u, err := s.GetUserByID(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, u.Role)

	_, err = s.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
