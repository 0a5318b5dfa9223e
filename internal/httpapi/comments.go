package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/board"
	"taskboard/internal/model"
)

func (s *Server) handleTaskComments(c echo.Context) error {
	comments, err := s.service.TaskComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return c.JSON(http.StatusOK, comments)
}

func (s *Server) handleCreateComment(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	var in board.CreateCommentInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	comment, err := s.service.CreateComment(c.Request().Context(), in, actorID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// UpdateCommentRequest is the request body for PUT /api/comments/:id.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleUpdateComment(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	var req UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	comment, err := s.service.UpdateComment(c.Request().Context(), c.Param("id"), req.Content, actorID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (s *Server) handleDeleteComment(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	if err := s.service.DeleteComment(c.Request().Context(), c.Param("id"), actorID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleReplies(c echo.Context) error {
	replies, err := s.service.Replies(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if replies == nil {
		replies = []model.Comment{}
	}
	return c.JSON(http.StatusOK, replies)
}
