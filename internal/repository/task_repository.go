package repository

import (
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"tasktracker/internal/database"
	"tasktracker/internal/models"
)

// sortColumns whitelists the sortable columns. Filter values are validated
// upstream; the map keeps query-string names out of the ORDER BY clause.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"dueDate":   "due_date",
	"title":     "title",
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter plus the total count. The count
// and the page fetch are independent reads and run concurrently; the pair
// has no transactional consistency guarantee under concurrent writes.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	scoped := func() *gorm.DB {
		q := r.db.Model(&models.Task{}).Scopes(database.OwnedBy(filter.OwnerID))
		if filter.Status != nil {
			q = q.Where("status = ?", *filter.Status)
		}
		return q
	}

	var (
		tasks []models.Task
		total int64
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		return scoped().Count(&total).Error
	})
	g.Go(func() error {
		column, ok := sortColumns[filter.SortBy]
		if !ok {
			column = "created_at"
		}
		direction := "DESC"
		if filter.Order == "asc" {
			direction = "ASC"
		}

		return scoped().
			Order(column + " " + direction).
			Scopes(database.Paginate(filter.Page, filter.Limit)).
			Find(&tasks).Error
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete physically removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
