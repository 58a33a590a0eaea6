package validation

import (
	"strings"
	"time"
)

// CreateTaskInput is the schema for POST /api/tasks. Status values are
// plain strings here; services convert to model types after validation.
type CreateTaskInput struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"max=2000"`
	Status      string     `json:"status" binding:"omitempty,oneof=pending in-progress done"`
	DueDate     *time.Time `json:"dueDate"`
}

func (in *CreateTaskInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Status == "" {
		in.Status = "pending"
	}
}

// UpdateTaskInput is the schema for PATCH /api/tasks/:id. All fields are
// optional; only provided fields are merged onto the stored task.
type UpdateTaskInput struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Status      *string    `json:"status" binding:"omitempty,oneof=pending in-progress done"`
	DueDate     *time.Time `json:"dueDate"`
}

func (in *UpdateTaskInput) normalize() {
	if in.Title != nil {
		trimmed := strings.TrimSpace(*in.Title)
		in.Title = &trimmed
	}
	if in.Description != nil {
		trimmed := strings.TrimSpace(*in.Description)
		in.Description = &trimmed
	}
}

// TaskQuery is the schema for GET /api/tasks query parameters. Defaults
// are applied during binding.
type TaskQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending in-progress done"`
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=10" binding:"min=1,max=100"`
	SortBy string `form:"sortBy,default=createdAt" binding:"oneof=createdAt dueDate title"`
	Order  string `form:"order,default=desc" binding:"oneof=asc desc"`
}
