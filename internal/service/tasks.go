// Package service implements the task use cases on top of a Repository.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"taskservice/internal/mapper"
	"taskservice/internal/models"
	"taskservice/internal/validation"
)

// Repository is the persistence contract the service depends on.
// FindByID, Delete and Save of an existing task report models.ErrNotFound
// for unknown identifiers.
type Repository interface {
	Save(ctx context.Context, t models.Task) (models.Task, error)
	FindByID(ctx context.Context, id int64) (models.Task, error)
	FindAll(ctx context.Context) ([]models.Task, error)
	Delete(ctx context.Context, id int64) error
}

// TaskService orchestrates validation, mapping and persistence for tasks.
type TaskService struct {
	repo      Repository
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(repo Repository, v *validation.Validator, logger *slog.Logger) *TaskService {
	if v == nil {
		v = validation.New(nil)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &TaskService{repo: repo, validator: v, logger: logger}
}

// CreateTask validates the request, persists it and returns the stored task.
func (s *TaskService) CreateTask(ctx context.Context, req *models.TaskRequest) (models.TaskResponse, error) {
	if req == nil {
		return models.TaskResponse{}, ErrInvalidArgument
	}
	if err := s.validator.ValidateRequest(req); err != nil {
		return models.TaskResponse{}, err
	}

	saved, err := s.repo.Save(ctx, mapper.ToEntity(*req))
	if err != nil {
		return models.TaskResponse{}, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info("task created", slog.Int64("id", saved.ID), slog.String("status", string(saved.Status)))
	return mapper.ToResponse(saved), nil
}

// GetTaskByID returns a single task.
func (s *TaskService) GetTaskByID(ctx context.Context, id int64) (models.TaskResponse, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return models.TaskResponse{}, err
	}
	return mapper.ToResponse(t), nil
}

// GetAllTasks returns every stored task; the slice is empty, not nil, when there are none.
func (s *TaskService) GetAllTasks(ctx context.Context) ([]models.TaskResponse, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return mapper.ToResponses(tasks), nil
}

// UpdateTaskStatusByID moves a task to the given status. Any transition is
// allowed and the due date is left as it is.
func (s *TaskService) UpdateTaskStatusByID(ctx context.Context, id int64, status models.Status) (models.TaskResponse, error) {
	if err := s.validator.ValidateStatus(status); err != nil {
		return models.TaskResponse{}, err
	}

	t, err := s.find(ctx, id)
	if err != nil {
		return models.TaskResponse{}, err
	}

	previous := t.Status
	t.Status = status
	saved, err := s.repo.Save(ctx, t)
	if errors.Is(err, models.ErrNotFound) {
		return models.TaskResponse{}, &NotFoundError{ID: id}
	}
	if err != nil {
		return models.TaskResponse{}, fmt.Errorf("update task status: %w", err)
	}

	s.logger.Info("task status updated",
		slog.Int64("id", id),
		slog.String("from", string(previous)),
		slog.String("to", string(status)),
	)
	return mapper.ToResponse(saved), nil
}

// DeleteTask permanently removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return &NotFoundError{ID: id}
	}
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.logger.Info("task deleted", slog.Int64("id", id))
	return nil
}

func (s *TaskService) find(ctx context.Context, id int64) (models.Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return models.Task{}, &NotFoundError{ID: id}
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}
