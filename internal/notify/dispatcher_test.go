package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskboard/internal/model"
	"taskboard/internal/realtime"
	"taskboard/internal/store"
	"taskboard/tests/testutil"
)

type fakeConn struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (c *fakeConn) Send(event string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, realtime.Event{Event: event, Data: data})
	return nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) sent() []realtime.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]realtime.Event(nil), c.events...)
}

// brokenNotificationStore fails every notification insert.
type brokenNotificationStore struct {
	store.Store
}

func (s *brokenNotificationStore) CreateNotification(ctx context.Context, n model.Notification) (*model.Notification, error) {
	return nil, errors.New("disk full")
}

func TestNotify_PersistsAndDelivers(t *testing.T) {
	st := testutil.NewTestStore(t)
	hub := realtime.NewHub(zap.NewNop())
	d := NewDispatcher(st, hub, zap.NewNop())

	conn := &fakeConn{}
	hub.Bind("u1", conn)

	n := d.Notify(context.Background(), "u1", model.NotificationAssignment, "you were assigned", "t1")
	require.NotNil(t, n)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Read)

	events := conn.sent()
	require.Len(t, events, 1)
	assert.Equal(t, realtime.EventNewNotification, events[0].Event)

	stored, err := st.GetNotificationsForUser(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "you were assigned", stored[0].Message)
}

// An offline recipient still gets the durable row; the miss is silent.
func TestNotify_OfflineRecipientStillPersisted(t *testing.T) {
	st := testutil.NewTestStore(t)
	hub := realtime.NewHub(zap.NewNop())
	d := NewDispatcher(st, hub, zap.NewNop())

	n := d.Notify(context.Background(), "offline", model.NotificationMention, "mentioned you", "t1")
	require.NotNil(t, n)

	stored, err := st.GetNotificationsForUser(context.Background(), "offline", 10)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

// Persistence failures are swallowed: the dispatcher returns nil and
// the caller's mutation proceeds.
func TestNotify_PersistFailureReturnsNil(t *testing.T) {
	st := testutil.NewTestStore(t)
	hub := realtime.NewHub(zap.NewNop())
	d := NewDispatcher(&brokenNotificationStore{Store: st}, hub, zap.NewNop())

	conn := &fakeConn{}
	hub.Bind("u1", conn)

	n := d.Notify(context.Background(), "u1", model.NotificationAssignment, "doomed", "t1")
	assert.Nil(t, n)
	assert.Empty(t, conn.sent())
}

func TestEmit_ReportsDeliveryMiss(t *testing.T) {
	st := testutil.NewTestStore(t)
	hub := realtime.NewHub(zap.NewNop())
	d := NewDispatcher(st, hub, zap.NewNop())

	assert.False(t, d.Emit("nobody", realtime.EventNotificationRead, nil))

	conn := &fakeConn{}
	hub.Bind("u1", conn)
	assert.True(t, d.Emit("u1", realtime.EventNotificationRead, map[string]string{"id": "n1"}))
}
