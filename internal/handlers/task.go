package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/dto"
	apierrors "tasktracker/internal/errors"
	"tasktracker/internal/middleware"
	"tasktracker/internal/services"
	"tasktracker/internal/validation"
)

// TaskHandler coordinates task CRUD HTTP handlers. Every operation is
// scoped to the authenticated owner bound by the auth middleware.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	var input validation.CreateTaskInput
	if err := validation.BindJSON(c, &input); err != nil {
		apierrors.Respond(c, err)
		return
	}

	task, err := h.taskService.Create(ownerID, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// List handles GET /api/tasks with filtering, sorting and pagination.
func (h *TaskHandler) List(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	var query validation.TaskQuery
	if err := validation.BindQuery(c, &query); err != nil {
		apierrors.Respond(c, err)
		return
	}

	response, err := h.taskService.List(ownerID, query)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(ownerID, taskID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Update handles PATCH /api/tasks/:id with partial-field merge.
func (h *TaskHandler) Update(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var input validation.UpdateTaskInput
	if err := validation.BindJSON(c, &input); err != nil {
		apierrors.Respond(c, err)
		return
	}

	task, err := h.taskService.Update(ownerID, taskID, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Delete handles DELETE /api/tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(ownerID, taskID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func requireOwner(c *gin.Context) (uint64, bool) {
	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Respond(c, apierrors.Unauthorized("Authorization token missing"))
		return 0, false
	}
	return ownerID, true
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.Respond(c, apierrors.BadRequest("Invalid Id format"))
		return 0, false
	}
	return taskID, true
}
