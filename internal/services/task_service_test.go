package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	apierrors "tasktracker/internal/errors"
	"tasktracker/internal/models"
	"tasktracker/internal/repository"
	"tasktracker/internal/validation"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService
	owner   *models.User
	other   *models.User
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	suite.db = openTestDB(suite.T())
	suite.service = NewTaskService(repository.NewTaskRepository(suite.db))

	suite.owner = suite.createTestUser("owner@example.com")
	suite.other = suite.createTestUser("other@example.com")
}

func (suite *TaskServiceTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Name:           "Test User",
		Email:          email,
		PasswordDigest: "digest",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskServiceTestSuite) createTask(title string) *models.Task {
	task, err := suite.service.Create(suite.owner.ID, validation.CreateTaskInput{
		Title:  title,
		Status: "pending",
	})
	suite.Require().NoError(err)
	return task
}

func (suite *TaskServiceTestSuite) requireAPIError(err error, status int) *apierrors.APIError {
	var apiErr *apierrors.APIError
	suite.Require().ErrorAs(err, &apiErr)
	suite.Require().Equal(status, apiErr.Status)
	return apiErr
}

func (suite *TaskServiceTestSuite) TestCreate() {
	due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	task, err := suite.service.Create(suite.owner.ID, validation.CreateTaskInput{
		Title:       "Write report",
		Description: "Quarterly numbers",
		Status:      "pending",
		DueDate:     &due,
	})
	suite.Require().NoError(err)
	suite.NotZero(task.ID)
	suite.Equal(suite.owner.ID, task.UserID)
	suite.Equal(models.TaskStatusPending, task.Status)
	suite.Require().NotNil(task.DueDate)
	suite.True(task.DueDate.Equal(due))
}

func (suite *TaskServiceTestSuite) TestGetByID() {
	task := suite.createTask("mine")

	found, err := suite.service.GetByID(suite.owner.ID, task.ID)
	suite.Require().NoError(err)
	suite.Equal(task.ID, found.ID)
}

func (suite *TaskServiceTestSuite) TestGetByID_NotFound() {
	_, err := suite.service.GetByID(suite.owner.ID, 9999)
	apiErr := suite.requireAPIError(err, http.StatusNotFound)
	suite.Equal("Task not found", apiErr.Message)
}

func (suite *TaskServiceTestSuite) TestGetByID_Forbidden() {
	task := suite.createTask("mine")

	// Existence is checked before ownership, so another authenticated user
	// sees Forbidden rather than NotFound.
	_, err := suite.service.GetByID(suite.other.ID, task.ID)
	suite.requireAPIError(err, http.StatusForbidden)
}

func (suite *TaskServiceTestSuite) TestUpdate_PartialMerge() {
	due := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	task, err := suite.service.Create(suite.owner.ID, validation.CreateTaskInput{
		Title:       "original title",
		Description: "original description",
		Status:      "pending",
		DueDate:     &due,
	})
	suite.Require().NoError(err)

	status := "done"
	updated, err := suite.service.Update(suite.owner.ID, task.ID, validation.UpdateTaskInput{
		Status: &status,
	})
	suite.Require().NoError(err)

	suite.Equal(models.TaskStatusDone, updated.Status)
	suite.Equal("original title", updated.Title)
	suite.Equal("original description", updated.Description)
	suite.Require().NotNil(updated.DueDate)
	suite.True(updated.DueDate.Equal(due))
}

func (suite *TaskServiceTestSuite) TestUpdate_Forbidden() {
	task := suite.createTask("mine")

	title := "hijacked"
	_, err := suite.service.Update(suite.other.ID, task.ID, validation.UpdateTaskInput{Title: &title})
	suite.requireAPIError(err, http.StatusForbidden)
}

func (suite *TaskServiceTestSuite) TestDelete() {
	task := suite.createTask("short-lived")

	suite.Require().NoError(suite.service.Delete(suite.owner.ID, task.ID))

	_, err := suite.service.GetByID(suite.owner.ID, task.ID)
	suite.requireAPIError(err, http.StatusNotFound)
}

func (suite *TaskServiceTestSuite) TestDelete_Forbidden() {
	task := suite.createTask("mine")

	err := suite.service.Delete(suite.other.ID, task.ID)
	suite.requireAPIError(err, http.StatusForbidden)

	_, err = suite.service.GetByID(suite.owner.ID, task.ID)
	suite.NoError(err)
}

func (suite *TaskServiceTestSuite) TestList_Pagination() {
	suite.createTask("first")
	suite.createTask("second")
	suite.createTask("third")

	response, err := suite.service.List(suite.owner.ID, validation.TaskQuery{
		Page:   2,
		Limit:  1,
		SortBy: "title",
		Order:  "asc",
	})
	suite.Require().NoError(err)

	suite.Equal(int64(3), response.Pagination.Total)
	suite.Equal(3, response.Pagination.TotalPages)
	suite.Equal(2, response.Pagination.Page)
	suite.Require().Len(response.Tasks, 1)
	suite.Equal("second", response.Tasks[0].Title)
}

func (suite *TaskServiceTestSuite) TestList_AllPagesDisjoint() {
	titles := []string{"a", "b", "c", "d", "e"}
	for _, title := range titles {
		suite.createTask(title)
	}

	seen := map[uint64]bool{}
	for page := 1; page <= 3; page++ {
		response, err := suite.service.List(suite.owner.ID, validation.TaskQuery{
			Page:   page,
			Limit:  2,
			SortBy: "title",
			Order:  "asc",
		})
		suite.Require().NoError(err)
		for _, task := range response.Tasks {
			suite.False(seen[task.ID], "task %d returned twice", task.ID)
			seen[task.ID] = true
		}
	}
	suite.Len(seen, len(titles))
}

func (suite *TaskServiceTestSuite) TestList_StatusFilterAndOwnerScope() {
	suite.createTask("pending one")

	status := "done"
	done := suite.createTask("done one")
	_, err := suite.service.Update(suite.owner.ID, done.ID, validation.UpdateTaskInput{Status: &status})
	suite.Require().NoError(err)

	// Another user's task never shows up
	_, err = suite.service.Create(suite.other.ID, validation.CreateTaskInput{Title: "not mine", Status: "done"})
	suite.Require().NoError(err)

	response, err := suite.service.List(suite.owner.ID, validation.TaskQuery{
		Status: "done",
		Page:   1,
		Limit:  10,
		SortBy: "createdAt",
		Order:  "desc",
	})
	suite.Require().NoError(err)

	suite.Equal(int64(1), response.Pagination.Total)
	suite.Require().Len(response.Tasks, 1)
	suite.Equal(done.ID, response.Tasks[0].ID)
}

func TestTaskServiceSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

func TestTaskService_DueDateRoundTrip(t *testing.T) {
	db := openTestDB(t)
	service := NewTaskService(repository.NewTaskRepository(db))

	user := &models.User{Name: "U", Email: "u@example.com", PasswordDigest: "digest"}
	require.NoError(t, db.Create(user).Error)

	task, err := service.Create(user.ID, validation.CreateTaskInput{Title: "x", Status: "pending"})
	require.NoError(t, err)
	require.Nil(t, task.DueDate)
}
