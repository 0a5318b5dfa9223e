package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeConn records sent events and close calls.
type fakeConn struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

func (c *fakeConn) Send(event string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, Event{Event: event, Data: data})
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) sent() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func newTestHub() *Hub {
	return NewHub(zap.NewNop())
}

func TestHub_BindAndEmit(t *testing.T) {
	hub := newTestHub()
	conn := &fakeConn{}
	hub.Bind("u1", conn)

	delivered := hub.EmitToUser("u1", EventNewNotification, "payload")
	assert.True(t, delivered)

	events := conn.sent()
	require.Len(t, events, 1)
	assert.Equal(t, EventNewNotification, events[0].Event)
	assert.Equal(t, "payload", events[0].Data)
}

func TestHub_EmitMissWithoutBinding(t *testing.T) {
	hub := newTestHub()
	assert.False(t, hub.EmitToUser("ghost", EventNewNotification, nil))
}

// Authenticating a second connection for the same user must close the
// first and leave only the second bound.
func TestHub_RebindEvictsPreviousConnection(t *testing.T) {
	hub := newTestHub()
	connA := &fakeConn{}
	connB := &fakeConn{}

	hub.Bind("u1", connA)
	hub.Bind("u1", connB)

	assert.True(t, connA.isClosed())
	assert.False(t, connB.isClosed())

	require.True(t, hub.EmitToUser("u1", EventNotificationRead, nil))
	assert.Empty(t, connA.sent())
	assert.Len(t, connB.sent(), 1)
}

// An evicted connection's close must not unbind its successor.
func TestHub_StaleUnbindIsNoOp(t *testing.T) {
	hub := newTestHub()
	connA := &fakeConn{}
	connB := &fakeConn{}

	hub.Bind("u1", connA)
	hub.Bind("u1", connB)
	hub.Unbind("u1", connA)

	assert.True(t, hub.Bound("u1"))
	assert.True(t, hub.EmitToUser("u1", EventNotificationRead, nil))
}

func TestHub_UnbindRemovesBinding(t *testing.T) {
	hub := newTestHub()
	conn := &fakeConn{}

	hub.Bind("u1", conn)
	hub.Unbind("u1", conn)

	assert.False(t, hub.Bound("u1"))
	assert.False(t, hub.EmitToUser("u1", EventNewNotification, nil))
}

func TestHub_EmitToAllBroadcasts(t *testing.T) {
	hub := newTestHub()
	connA := &fakeConn{}
	connB := &fakeConn{}

	hub.Bind("u1", connA)
	hub.Bind("u2", connB)
	hub.EmitToAll(EventAllNotificationsRead, nil)

	assert.Len(t, connA.sent(), 1)
	assert.Len(t, connB.sent(), 1)
}

func TestHub_ConcurrentBindsKeepOneBinding(t *testing.T) {
	hub := newTestHub()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Bind("u1", &fakeConn{})
		}()
	}
	wg.Wait()

	assert.True(t, hub.Bound("u1"))
	assert.True(t, hub.EmitToUser("u1", EventNewNotification, nil))
}
