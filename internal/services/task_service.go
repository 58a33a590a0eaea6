package services

import (
	"errors"

	"gorm.io/gorm"

	"tasktracker/internal/dto"
	apierrors "tasktracker/internal/errors"
	"tasktracker/internal/models"
	"tasktracker/internal/repository"
	"tasktracker/internal/validation"
)

// TaskService handles ownership-scoped task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// Create persists a new task owned by ownerID, with defaults applied by
// the validation layer.
func (s *TaskService) Create(ownerID uint64, input validation.CreateTaskInput) (*models.Task, error) {
	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatus(input.Status),
		DueDate:     input.DueDate,
		UserID:      ownerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}

	return task, nil
}

// List returns the owner's tasks plus the pagination block. The underlying
// count and fetch are independent reads; total and the returned page may
// disagree under concurrent writes.
func (s *TaskService) List(ownerID uint64, query validation.TaskQuery) (*dto.TaskListResponse, error) {
	filter := repository.TaskFilter{
		OwnerID: ownerID,
		SortBy:  query.SortBy,
		Order:   query.Order,
		Page:    query.Page,
		Limit:   query.Limit,
	}
	if query.Status != "" {
		status := models.TaskStatus(query.Status)
		filter.Status = &status
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, err
	}

	response := dto.ToTaskListResponse(tasks, total, query.Page, query.Limit)
	return &response, nil
}

// GetByID returns a task after the existence and ownership checks.
func (s *TaskService) GetByID(ownerID, taskID uint64) (*models.Task, error) {
	return s.fetchOwned(ownerID, taskID)
}

// Update merges only the provided fields onto the stored task and persists
// it. Only the owner can update.
func (s *TaskService) Update(ownerID, taskID uint64, input validation.UpdateTaskInput) (*models.Task, error) {
	task, err := s.fetchOwned(ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = models.TaskStatus(*input.Status)
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete physically removes a task. Only the owner can delete.
func (s *TaskService) Delete(ownerID, taskID uint64) error {
	task, err := s.fetchOwned(ownerID, taskID)
	if err != nil {
		return err
	}

	return s.taskRepo.Delete(task.ID)
}

// fetchOwned loads a task and applies the existence-then-ownership check.
// A non-owner querying an existing task gets Forbidden, not NotFound; the
// order deliberately confirms existence to authenticated callers.
func (s *TaskService) fetchOwned(ownerID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("Task not found")
		}
		return nil, err
	}

	if task.UserID != ownerID {
		return nil, apierrors.Forbidden("Forbidden")
	}

	return task, nil
}
