// Package httpapi exposes the board service over a thin REST API and a
// websocket endpoint for realtime notification delivery. Handlers bind
// input, resolve the acting user from the X-User-ID header (auth
// middleware lives outside this core), and delegate to internal/board.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"taskboard/internal/board"
	"taskboard/internal/realtime"
	"taskboard/internal/store"
)

// actorHeader carries the authenticated user's ID, set by the auth
// middleware in front of this service.
const actorHeader = "X-User-ID"

// Server wires the echo instance, the board service, and the realtime hub.
type Server struct {
	echo    *echo.Echo
	service *board.Service
	hub     *realtime.Hub
	logger  *zap.Logger
	config  *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(svc *board.Service, hub *realtime.Hub, logger *zap.Logger, cfg *Config) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("board service cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg == nil {
		cfg = &Config{Host: "localhost", Port: 8080}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:    e,
		service: svc,
		hub:     hub,
		logger:  logger,
		config:  cfg,
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/ws", s.handleWebsocket)

	api := s.echo.Group("/api")

	api.GET("/tasks", s.handleListTasks)
	api.POST("/tasks", s.handleCreateTask)
	api.GET("/tasks/:id", s.handleGetTask)
	api.PUT("/tasks/:id", s.handleUpdateTask)
	api.PATCH("/tasks/:id/status", s.handleUpdateTaskStatus)
	api.DELETE("/tasks/:id", s.handleDeleteTask)

	api.GET("/tasks/:id/activities", s.handleTaskHistory)
	api.GET("/activities", s.handleRecentHistory)
	api.GET("/tasks/:id/assignments", s.handleTaskAssignments)
	api.GET("/assignments", s.handleRecentAssignments)

	api.GET("/tasks/:id/comments", s.handleTaskComments)
	api.POST("/comments", s.handleCreateComment)
	api.PUT("/comments/:id", s.handleUpdateComment)
	api.DELETE("/comments/:id", s.handleDeleteComment)
	api.GET("/comments/:id/replies", s.handleReplies)

	api.GET("/notifications", s.handleListNotifications)
	api.GET("/notifications/unread-count", s.handleUnreadCount)
	api.PATCH("/notifications/read-all", s.handleMarkAllRead)
	api.PATCH("/notifications/:id/read", s.handleMarkRead)
	api.DELETE("/notifications/:id", s.handleDeleteNotification)

	api.GET("/users", s.handleListUsers)
}

// Start begins serving and blocks until the listener fails or Shutdown
// is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("http server starting", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("starting http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// actor extracts the acting user's ID from the request, or fails with
// 401 when the header is missing.
func actor(c echo.Context) (string, error) {
	id := c.Request().Header.Get(actorHeader)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing "+actorHeader+" header")
	}
	return id, nil
}

// httpError maps service errors onto HTTP status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, board.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
