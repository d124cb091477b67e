package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/services"
	"github.com/yukikurage/taskboard/internal/utils"
)

const taskResource = "task"

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns a page of tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params, err := utils.GetPaginationParams(c)
	if err != nil {
		fail(c, taskResource, opList, err)
		return
	}
	expand, ok := parseExpand(c, taskResource, opList, dto.TaskExpansions)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(params, expand)
	if err != nil {
		fail(c, taskResource, opList, err)
		return
	}

	succeed(taskResource, opList)
	c.JSON(http.StatusOK, dto.ToTaskResponses(tasks, expand))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := pathID(c, taskResource, opGet)
	if !ok {
		return
	}
	expand, ok := parseExpand(c, taskResource, opGet, dto.TaskExpansions)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id, expand)
	if err != nil {
		fail(c, taskResource, opGet, err)
		return
	}

	succeed(taskResource, opGet)
	c.JSON(http.StatusOK, dto.ToTaskResponse(*task, expand))
}

// CreateTask creates a task inside an existing project
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, taskResource, opCreate, &req) {
		return
	}

	task, err := h.taskService.CreateTask(req)
	if err != nil {
		fail(c, taskResource, opCreate, err)
		return
	}

	succeed(taskResource, opCreate)
	c.JSON(http.StatusCreated, dto.ToTaskResponse(*task, nil))
}

// UpdateTask applies a partial update
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c, taskResource, opUpdate)
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if !bindJSON(c, taskResource, opUpdate, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(id, req)
	if err != nil {
		fail(c, taskResource, opUpdate, err)
		return
	}

	succeed(taskResource, opUpdate)
	c.JSON(http.StatusOK, dto.ToTaskResponse(*task, nil))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c, taskResource, opDelete)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		fail(c, taskResource, opDelete, err)
		return
	}

	succeed(taskResource, opDelete)
	c.Status(http.StatusNoContent)
}
