package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskservice/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server provides HTTP handlers for the task tracking API.
type Server struct {
	engine *gin.Engine
	tasks  *service.TaskService
	health Pinger
	logger *slog.Logger
	now    func() time.Time
}

// New constructs the HTTP server with routes and middleware configured.
// A nil health pinger makes /healthz always report ok.
func New(tasks *service.TaskService, health Pinger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())

	srv := &Server{
		engine: router,
		tasks:  tasks,
		health: health,
		logger: logger,
		now:    time.Now,
	}
	router.Use(srv.accessLog(healthPath))

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and root handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api/v1")
	{
		tasks := api.Group("/tasks")
		{
			tasks.POST("", s.handleCreateTask)
			tasks.GET("", s.handleListTasks)
			tasks.GET(":id", s.handleGetTask)
			tasks.PATCH(":id/status", s.handleUpdateTaskStatus)
			tasks.DELETE(":id", s.handleDeleteTask)
		}
	}

	s.engine.GET(healthPath, s.handleHealth)
	s.mountRoot()
}

// handleHealth reports readiness based on a store ping.
func (s *Server) handleHealth(c *gin.Context) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			s.logger.Error("health check failed", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64 with error handling.
func (s *Server) parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.writeError(c, http.StatusBadRequest, "Invalid task identifier", []string{name + ": must be an integer, got " + strconv.Quote(raw)})
		return 0, false
	}
	return id, true
}

// respondSuccess writes the payload, or only the status when there is none.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
