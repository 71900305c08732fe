// Package mapper copies task fields between the request, entity and response shapes.
package mapper

import "taskservice/internal/models"

// ToEntity builds an unsaved task from a request. Identifier and timestamps
// are left zero for the store to assign.
func ToEntity(req models.TaskRequest) models.Task {
	return models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate.TimePtr(),
	}
}

// ToResponse copies every task field into its wire representation.
func ToResponse(t models.Task) models.TaskResponse {
	return models.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     models.NewDateTime(t.DueDate),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToResponses maps a slice of tasks. The result is never nil so it renders as [].
func ToResponses(tasks []models.Task) []models.TaskResponse {
	out := make([]models.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToResponse(t))
	}
	return out
}
