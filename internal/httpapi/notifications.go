package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/model"
)

func (s *Server) handleListNotifications(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	ns, err := s.service.Notifications(c.Request().Context(), actorID)
	if err != nil {
		return httpError(err)
	}
	if ns == nil {
		ns = []model.Notification{}
	}
	return c.JSON(http.StatusOK, ns)
}

// UnreadCountResponse is the response body for
// GET /api/notifications/unread-count.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

func (s *Server) handleUnreadCount(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	count, err := s.service.UnreadCount(c.Request().Context(), actorID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}

func (s *Server) handleMarkRead(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	if err := s.service.MarkNotificationRead(c.Request().Context(), c.Param("id"), actorID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleMarkAllRead(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	if err := s.service.MarkAllNotificationsRead(c.Request().Context(), actorID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteNotification(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	if err := s.service.DeleteNotification(c.Request().Context(), c.Param("id"), actorID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
