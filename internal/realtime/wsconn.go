package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

// wsConn adapts a gorilla websocket connection to the Conn interface.
// gorilla allows only one concurrent writer, so writes are serialized
// with a mutex.
type wsConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

// NewWebsocketConn wraps ws as a hub Conn.
func NewWebsocketConn(ws *websocket.Conn) Conn {
	return &wsConn{ws: ws}
}

func (c *wsConn) Send(event string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(Event{Event: event, Data: data})
}

func (c *wsConn) Close() error {
	return c.ws.Close()
}
