package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"taskboard/internal/realtime"
)

// eventAuthenticate is the only inbound event the transport accepts.
const eventAuthenticate = "authenticate"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checks belong to the auth middleware outside this core.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebsocket upgrades the connection and runs its read loop. The
// connection delivers nothing until an authenticate event binds it to
// a user in the hub; binding evicts any previous connection for that
// user. When the transport closes, the binding is removed unless a
// newer connection already took it over.
func (s *Server) handleWebsocket(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	conn := realtime.NewWebsocketConn(ws)

	var userID string
	defer func() {
		if userID != "" {
			s.hub.Unbind(userID, conn)
		}
		conn.Close()
	}()

	for {
		var ev struct {
			Event string `json:"event"`
			Data  string `json:"data"`
		}
		if err := ws.ReadJSON(&ev); err != nil {
			return nil
		}
		if ev.Event != eventAuthenticate || ev.Data == "" {
			continue
		}

		if userID != "" && userID != ev.Data {
			s.hub.Unbind(userID, conn)
		}
		userID = ev.Data
		s.hub.Bind(userID, conn)
		s.logger.Debug("websocket authenticated", zap.String("user_id", userID))
	}
}
