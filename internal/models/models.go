package models

import (
	"errors"
	"time"
)

// ErrNotFound is returned by a task repository when no task matches the identifier.
var ErrNotFound = errors.New("task not found")

// Status is the lifecycle label of a task. Any status may follow any other.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// ValidTaskStatuses enumerates the statuses accepted on the wire.
var ValidTaskStatuses = map[Status]struct{}{
	StatusPending:    {},
	StatusInProgress: {},
	StatusCompleted:  {},
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := ValidTaskStatuses[s]
	return ok
}

// Task is the persisted task row.
type Task struct {
	ID          int64
	Title       string
	Description *string
	Status      Status
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskRequest is the inbound payload for task creation.
type TaskRequest struct {
	Title       string    `json:"title" validate:"notblank"`
	Description *string   `json:"description"`
	Status      Status    `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	DueDate     *DateTime `json:"dueDate"`
}

// TaskResponse is the outbound representation of a task.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      Status    `json:"status"`
	DueDate     *DateTime `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Errors    []string  `json:"errors"`
	Timestamp time.Time `json:"timestamp"`
}
