package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yukikurage/taskboard/internal/dto"
)

func itemPath(collection string, id uint64) string {
	return collection + "/" + strconv.FormatUint(id, 10)
}

func expandQuery(expand []string) url.Values {
	if len(expand) == 0 {
		return nil
	}
	return url.Values{"expand": {strings.Join(expand, ",")}}
}

// Users

func (c *Client) ListUsers(ctx context.Context, opts ListOptions) ([]dto.UserResponse, error) {
	var out []dto.UserResponse
	err := c.do(ctx, http.MethodGet, "users/", opts.query(), nil, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id uint64, expand ...string) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, itemPath("users", id), expandQuery(expand), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodPost, "users/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id uint64, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodPut, itemPath("users", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, itemPath("users", id), nil, nil, nil)
}

// Projects

func (c *Client) ListProjects(ctx context.Context, opts ListOptions) ([]dto.ProjectResponse, error) {
	var out []dto.ProjectResponse
	err := c.do(ctx, http.MethodGet, "projects/", opts.query(), nil, &out)
	return out, err
}

func (c *Client) GetProject(ctx context.Context, id uint64, expand ...string) (*dto.ProjectResponse, error) {
	var out dto.ProjectResponse
	if err := c.do(ctx, http.MethodGet, itemPath("projects", id), expandQuery(expand), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	var out dto.ProjectResponse
	if err := c.do(ctx, http.MethodPost, "projects/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id uint64, req dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	var out dto.ProjectResponse
	if err := c.do(ctx, http.MethodPut, itemPath("projects", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, itemPath("projects", id), nil, nil, nil)
}

// Tasks

func (c *Client) ListTasks(ctx context.Context, opts ListOptions) ([]dto.TaskResponse, error) {
	var out []dto.TaskResponse
	err := c.do(ctx, http.MethodGet, "tasks/", opts.query(), nil, &out)
	return out, err
}

func (c *Client) GetTask(ctx context.Context, id uint64, expand ...string) (*dto.TaskResponse, error) {
	var out dto.TaskResponse
	if err := c.do(ctx, http.MethodGet, itemPath("tasks", id), expandQuery(expand), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	var out dto.TaskResponse
	if err := c.do(ctx, http.MethodPost, "tasks/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id uint64, req dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	var out dto.TaskResponse
	if err := c.do(ctx, http.MethodPut, itemPath("tasks", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, itemPath("tasks", id), nil, nil, nil)
}
