package repository

import (
	"tasktracker/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email. The password digest is
	// not selected.
	FindByEmail(email string) (*models.User, error)

	// FindByEmailWithDigest finds a user by normalized email including the
	// password digest, for credential verification only.
	FindByEmailWithDigest(email string) (*models.User, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks matching the filter plus the total count
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete physically removes a task
	Delete(id uint64) error
}

// TaskFilter holds filtering, sorting and pagination options for listing
// tasks. OwnerID is always applied; every read is ownership-scoped.
type TaskFilter struct {
	OwnerID uint64
	Status  *models.TaskStatus
	SortBy  string
	Order   string
	Page    int
	Limit   int
}
