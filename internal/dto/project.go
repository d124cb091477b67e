package dto

import (
	"encoding/json"
	"time"

	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/models"
)

const projectNameRules = "min=1,max=255"

// CreateProjectRequest is the payload accepted by POST /projects.
type CreateProjectRequest struct {
	Name        string               `json:"name" binding:"required,max=255"`
	Description *string              `json:"description"`
	Status      models.ProjectStatus `json:"status" binding:"omitempty,oneof=planning in_progress completed on_hold"`
	OwnerID     uint64               `json:"owner_id" binding:"required"`
}

// Validate checks the payload against its binding tags.
func (r *CreateProjectRequest) Validate() error {
	return validateStruct(r)
}

// UpdateProjectRequest is the partial payload accepted by PUT /projects/:id.
// The owner is fixed at creation.
type UpdateProjectRequest struct {
	Name        Optional[string]               `json:"name"`
	Description Optional[string]               `json:"description"`
	Status      Optional[models.ProjectStatus] `json:"status"`
}

func (r *UpdateProjectRequest) Validate() error {
	errs := &apierrors.ValidationError{}
	checkRequired(errs, "name", r.Name, projectNameRules)
	checkNullable(errs, "description", r.Description, "")
	checkRequired(errs, "status", r.Status, enumTag(models.ProjectStatuses))
	return errs.OrNil()
}

func (r *UpdateProjectRequest) Empty() bool {
	return !r.Name.Set && !r.Description.Set && !r.Status.Set
}

func (r UpdateProjectRequest) MarshalJSON() ([]byte, error) {
	m := fieldSet{}
	putOptional(m, "name", r.Name)
	putOptional(m, "description", r.Description)
	putOptional(m, "status", r.Status)
	return json.Marshal(m)
}

// ProjectResponse is the read shape of a project.
type ProjectResponse struct {
	ID          uint64               `json:"id"`
	Name        string               `json:"name"`
	Description *string              `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	OwnerID     uint64               `json:"owner_id"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`

	Owner *UserResponse  `json:"owner,omitempty"`
	Tasks []TaskResponse `json:"tasks,omitzero"`
}

func ToProjectResponse(project models.Project, expand Expand) ProjectResponse {
	resp := ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	// The owner row may be gone; users are deleted without cascading.
	if expand.Has(ExpandOwner) && project.Owner.ID != 0 {
		owner := ToUserResponse(project.Owner, nil)
		resp.Owner = &owner
	}
	if expand.Has(ExpandTasks) {
		resp.Tasks = make([]TaskResponse, len(project.Tasks))
		for i, t := range project.Tasks {
			resp.Tasks[i] = ToTaskResponse(t, nil)
		}
	}

	return resp
}

func ToProjectResponses(projects []models.Project, expand Expand) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		out[i] = ToProjectResponse(p, expand)
	}
	return out
}
