package dto

import (
	"encoding/json"
	"time"

	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/models"
)

const (
	usernameRules = "min=1,max=100"
	emailRules    = "email,max=255"
	fullNameRules = "min=1,max=255"
)

// CreateUserRequest is the payload accepted by POST /users.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	FullName string `json:"full_name" binding:"required,max=255"`
}

// Validate checks the payload against its binding tags.
func (r *CreateUserRequest) Validate() error {
	return validateStruct(r)
}

// UpdateUserRequest is the partial payload accepted by PUT /users/:id.
type UpdateUserRequest struct {
	Username Optional[string] `json:"username"`
	Email    Optional[string] `json:"email"`
	FullName Optional[string] `json:"full_name"`
	IsActive Optional[bool]   `json:"is_active"`
}

// Validate checks every supplied field.
func (r *UpdateUserRequest) Validate() error {
	errs := &apierrors.ValidationError{}
	checkRequired(errs, "username", r.Username, usernameRules)
	checkRequired(errs, "email", r.Email, emailRules)
	checkRequired(errs, "full_name", r.FullName, fullNameRules)
	checkRequired(errs, "is_active", r.IsActive, "")
	return errs.OrNil()
}

// Empty reports whether no field was supplied.
func (r *UpdateUserRequest) Empty() bool {
	return !r.Username.Set && !r.Email.Set && !r.FullName.Set && !r.IsActive.Set
}

// MarshalJSON emits only the supplied fields.
func (r UpdateUserRequest) MarshalJSON() ([]byte, error) {
	m := fieldSet{}
	putOptional(m, "username", r.Username)
	putOptional(m, "email", r.Email)
	putOptional(m, "full_name", r.FullName)
	putOptional(m, "is_active", r.IsActive)
	return json.Marshal(m)
}

// UserResponse is the read shape of a user.
type UserResponse struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Projects []ProjectResponse `json:"projects,omitzero"`
	Tasks    []TaskResponse    `json:"tasks,omitzero"`
}

// ToUserResponse converts a stored user. Relations are included only when
// requested by expand and preloaded by the caller.
func ToUserResponse(user models.User, expand Expand) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if expand.Has(ExpandProjects) {
		resp.Projects = make([]ProjectResponse, len(user.Projects))
		for i, p := range user.Projects {
			resp.Projects[i] = ToProjectResponse(p, nil)
		}
	}
	if expand.Has(ExpandTasks) {
		resp.Tasks = make([]TaskResponse, len(user.AssignedTasks))
		for i, t := range user.AssignedTasks {
			resp.Tasks[i] = ToTaskResponse(t, nil)
		}
	}

	return resp
}

// ToUserResponses converts a slice of users.
func ToUserResponses(users []models.User, expand Expand) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = ToUserResponse(u, expand)
	}
	return out
}
