package dto

import (
	"encoding/json"
	"time"

	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/models"
)

const taskTitleRules = "min=1,max=255"

// CreateTaskRequest is the payload accepted by POST /tasks.
type CreateTaskRequest struct {
	Title       string              `json:"title" binding:"required,max=255"`
	Description *string             `json:"description"`
	Status      models.TaskStatus   `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority    models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	ProjectID   uint64              `json:"project_id" binding:"required"`
	AssigneeID  *uint64             `json:"assignee_id"`
	DueDate     *Timestamp          `json:"due_date"`
}

// Validate checks the payload against its binding tags.
func (r *CreateTaskRequest) Validate() error {
	return validateStruct(r)
}

// UpdateTaskRequest is the partial payload accepted by PUT /tasks/:id.
// A task never moves to another project.
type UpdateTaskRequest struct {
	Title       Optional[string]              `json:"title"`
	Description Optional[string]              `json:"description"`
	Status      Optional[models.TaskStatus]   `json:"status"`
	Priority    Optional[models.TaskPriority] `json:"priority"`
	IsCompleted Optional[bool]                `json:"is_completed"`
	AssigneeID  Optional[uint64]              `json:"assignee_id"`
	DueDate     Optional[Timestamp]           `json:"due_date"`
}

func (r *UpdateTaskRequest) Validate() error {
	errs := &apierrors.ValidationError{}
	checkRequired(errs, "title", r.Title, taskTitleRules)
	checkNullable(errs, "description", r.Description, "")
	checkRequired(errs, "status", r.Status, enumTag(models.TaskStatuses))
	checkRequired(errs, "priority", r.Priority, enumTag(models.TaskPriorities))
	checkRequired(errs, "is_completed", r.IsCompleted, "")
	checkNullable(errs, "assignee_id", r.AssigneeID, "gt=0")
	checkNullable(errs, "due_date", r.DueDate, "")
	return errs.OrNil()
}

func (r *UpdateTaskRequest) Empty() bool {
	return !r.Title.Set && !r.Description.Set && !r.Status.Set && !r.Priority.Set &&
		!r.IsCompleted.Set && !r.AssigneeID.Set && !r.DueDate.Set
}

func (r UpdateTaskRequest) MarshalJSON() ([]byte, error) {
	m := fieldSet{}
	putOptional(m, "title", r.Title)
	putOptional(m, "description", r.Description)
	putOptional(m, "status", r.Status)
	putOptional(m, "priority", r.Priority)
	putOptional(m, "is_completed", r.IsCompleted)
	putOptional(m, "assignee_id", r.AssigneeID)
	putOptional(m, "due_date", r.DueDate)
	return json.Marshal(m)
}

// TaskResponse is the read shape of a task.
type TaskResponse struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	IsCompleted bool                `json:"is_completed"`
	ProjectID   uint64              `json:"project_id"`
	AssigneeID  *uint64             `json:"assignee_id"`
	DueDate     *time.Time          `json:"due_date"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`

	Project  *ProjectResponse `json:"project,omitempty"`
	Assignee *UserResponse    `json:"assignee,omitempty"`
}

func ToTaskResponse(task models.Task, expand Expand) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		IsCompleted: task.IsCompleted,
		ProjectID:   task.ProjectID,
		AssigneeID:  task.AssigneeID,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if expand.Has(ExpandProject) && task.Project.ID != 0 {
		project := ToProjectResponse(task.Project, nil)
		resp.Project = &project
	}
	if expand.Has(ExpandAssignee) && task.Assignee != nil {
		assignee := ToUserResponse(*task.Assignee, nil)
		resp.Assignee = &assignee
	}

	return resp
}

func ToTaskResponses(tasks []models.Task, expand Expand) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskResponse(t, expand)
	}
	return out
}
