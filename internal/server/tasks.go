package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskservice/internal/models"
)

// handleCreateTask validates and stores a new task.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req models.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBindError(c, err)
		return
	}

	task, err := s.tasks.CreateTask(c.Request.Context(), &req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, task)
}

// handleListTasks returns every task as a JSON array.
func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.tasks.GetAllTasks(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, tasks)
}

// handleGetTask fetches a single task.
func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := s.parseID(c, "id")
	if !ok {
		return
	}

	task, err := s.tasks.GetTaskByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, task)
}

// handleUpdateTaskStatus moves a task to the status given in the query string.
func (s *Server) handleUpdateTaskStatus(c *gin.Context) {
	id, ok := s.parseID(c, "id")
	if !ok {
		return
	}

	task, err := s.tasks.UpdateTaskStatusByID(c.Request.Context(), id, models.Status(c.Query("status")))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, task)
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := s.parseID(c, "id")
	if !ok {
		return
	}
	if err := s.tasks.DeleteTask(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusNoContent, nil)
}
