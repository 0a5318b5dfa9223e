package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/board"
	"taskboard/internal/model"
)

func (s *Server) handleListTasks(c echo.Context) error {
	tasks, err := s.service.Tasks(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleGetTask(c echo.Context) error {
	task, err := s.service.Task(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleCreateTask(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	var in board.CreateTaskInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	task, err := s.service.CreateTask(c.Request().Context(), in, actorID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	var patch model.TaskPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	task, err := s.service.ApplyTaskMutation(c.Request().Context(), c.Param("id"), patch, actorID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// StatusRequest is the request body for PATCH /api/tasks/:id/status.
type StatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateTaskStatus(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	task, err := s.service.UpdateTaskStatus(c.Request().Context(), c.Param("id"), req.Status, actorID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	if err := s.service.DeleteTask(c.Request().Context(), c.Param("id"), actorID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleTaskHistory(c echo.Context) error {
	entries, err := s.service.TaskHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) handleRecentHistory(c echo.Context) error {
	entries, err := s.service.RecentHistory(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) handleTaskAssignments(c echo.Context) error {
	recs, err := s.service.TaskAssignments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if recs == nil {
		recs = []model.AssignmentRecord{}
	}
	return c.JSON(http.StatusOK, recs)
}

func (s *Server) handleRecentAssignments(c echo.Context) error {
	recs, err := s.service.RecentAssignments(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if recs == nil {
		recs = []model.AssignmentRecord{}
	}
	return c.JSON(http.StatusOK, recs)
}

func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.service.Users(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, users)
}
