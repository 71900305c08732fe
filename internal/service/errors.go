package service

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a caller hands the service a nil request.
var ErrInvalidArgument = errors.New("task request is required")

// NotFoundError reports an unknown task identifier.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Task not found with ID:%d", e.ID)
}
