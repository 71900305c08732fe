package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	healthPath     = "/healthz"
	welcomeMessage = "Welcome to the task tracking service"
)

// mountRoot serves the welcome banner and the JSON fallback for unknown routes.
func (s *Server) mountRoot() {
	s.engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, welcomeMessage)
	})
	s.engine.NoRoute(func(c *gin.Context) {
		s.writeError(c, http.StatusNotFound, "Endpoint not found", []string{c.Request.Method + " " + c.Request.URL.Path})
	})
}
