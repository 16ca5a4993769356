package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"taskhub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Response messages are reproduced verbatim from the upstream API,
// spelling included, so existing clients that match on them keep working.

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Index handles GET /tasks. The list is not scoped to the caller, and an
// internal failure here answers 200 with success:false; both are upstream
// behaviors preserved for compatibility.
func (h *TaskHandler) Index(c *gin.Context) {
	tasks, err := h.taskService.List(c.Request.Context())
	if err != nil {
		failure(c, http.StatusOK, "Error occured while trying to retrieve tasks from DB", err.Error())
		return
	}

	message := "Tasks successfully retrieved from the DB"
	if len(tasks) == 0 {
		message = "There are no tasks in the DB"
	}
	success(c, http.StatusOK, message, taskList(tasks))
}

// Store handles POST /tasks. The created task is attributed to the caller.
func (h *TaskHandler) Store(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		failure(c, http.StatusUnauthorized, "Unauthenticated.", nil)
		return
	}

	var req services.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusUnprocessableEntity, "Validation failed while trying to create new task", err.Error())
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		if ve, ok := services.AsValidationError(err); ok {
			failure(c, http.StatusUnprocessableEntity, "Validation failed while trying to create new task", ve.Fields)
			return
		}
		failure(c, http.StatusInternalServerError, "Error occured while trying create new task", err.Error())
		return
	}

	success(c, http.StatusCreated, "New task successfully created", task)
}

// Show handles GET /tasks/:id.
func (h *TaskHandler) Show(c *gin.Context) {
	idStr := c.Param("id")
	id, ok := parseTaskID(c, idStr)
	if !ok {
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), id)
	if err != nil {
		h.renderTaskError(c, err, idStr, fmt.Sprintf("Error occured while trying to retrive task with id: %s.", idStr))
		return
	}

	success(c, http.StatusOK, fmt.Sprintf("Task with id: %s successfully retrieved from the DB", idStr), task)
}

// Update handles PUT /tasks/:id with any subset of the task fields. The
// slug keeps its creation-time value even when the title changes.
func (h *TaskHandler) Update(c *gin.Context) {
	idStr := c.Param("id")
	id, ok := parseTaskID(c, idStr)
	if !ok {
		return
	}

	var req services.TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusUnprocessableEntity, fmt.Sprintf("Validation failed while trying to update task with id: %s.", idStr), err.Error())
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), id, req)
	if err != nil {
		if ve, ok := services.AsValidationError(err); ok {
			failure(c, http.StatusUnprocessableEntity, fmt.Sprintf("Validation failed while trying to update task with id: %s.", idStr), ve.Fields)
			return
		}
		h.renderTaskError(c, err, idStr, "An error occurred while updating the task with id:")
		return
	}

	success(c, http.StatusOK, fmt.Sprintf("Task with id %s successfully updated", idStr), task)
}

// Destroy handles DELETE /tasks/:id.
func (h *TaskHandler) Destroy(c *gin.Context) {
	idStr := c.Param("id")
	id, ok := parseTaskID(c, idStr)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), id); err != nil {
		h.renderTaskError(c, err, idStr, fmt.Sprintf("Error occured while trying to delete task with id: %s.", idStr))
		return
	}

	successMessage(c, http.StatusOK, fmt.Sprintf("Task with id: %s successfully deleted from the DB", idStr))
}

// Search handles GET /tasks/search/:fragment with a case-insensitive
// substring match on the title. An empty result is still a success.
func (h *TaskHandler) Search(c *gin.Context) {
	fragment := c.Param("fragment")

	tasks, err := h.taskService.SearchByTitle(c.Request.Context(), fragment)
	if err != nil {
		failure(c, http.StatusInternalServerError, "Unexpected error occurred while processing search request", err.Error())
		return
	}

	message := fmt.Sprintf("Tasks that match search criteria: '%s' successfully retrieved from the DB", fragment)
	if len(tasks) == 0 {
		message = fmt.Sprintf("No tasks found matching the search criteria: '%s'", fragment)
	}
	success(c, http.StatusOK, message, taskList(tasks))
}

// parseTaskID converts the path parameter; a non-numeric id behaves like a
// missing row, as upstream did.
func parseTaskID(c *gin.Context, idStr string) (uint, bool) {
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		failure(c, http.StatusNotFound, fmt.Sprintf("Task with id %s not found in the DB.", idStr), gorm.ErrRecordNotFound.Error())
		return 0, false
	}
	return uint(id), true
}

func (h *TaskHandler) renderTaskError(c *gin.Context, err error, idStr, internalMessage string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		failure(c, http.StatusNotFound, fmt.Sprintf("Task with id %s not found in the DB.", idStr), err.Error())
		return
	}
	failure(c, http.StatusInternalServerError, internalMessage, err.Error())
}
