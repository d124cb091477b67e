package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/services"
	"github.com/yukikurage/taskboard/internal/utils"
	"go.uber.org/zap"
)

const projectResource = "project"

type ProjectHandler struct {
	projectService *services.ProjectService
	log            *zap.Logger
}

func NewProjectHandler(projectService *services.ProjectService, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		log:            log,
	}
}

// ListProjects returns a page of projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params, err := utils.GetPaginationParams(c)
	if err != nil {
		fail(c, projectResource, opList, err)
		return
	}
	expand, ok := parseExpand(c, projectResource, opList, dto.ProjectExpansions)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(params, expand)
	if err != nil {
		fail(c, projectResource, opList, err)
		return
	}

	succeed(projectResource, opList)
	c.JSON(http.StatusOK, dto.ToProjectResponses(projects, expand))
}

// GetProject returns a specific project by ID
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := pathID(c, projectResource, opGet)
	if !ok {
		return
	}
	expand, ok := parseExpand(c, projectResource, opGet, dto.ProjectExpansions)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(id, expand)
	if err != nil {
		fail(c, projectResource, opGet, err)
		return
	}

	succeed(projectResource, opGet)
	c.JSON(http.StatusOK, dto.ToProjectResponse(*project, expand))
}

// CreateProject creates a project owned by an existing user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(c, projectResource, opCreate, &req) {
		return
	}

	project, err := h.projectService.CreateProject(req)
	if err != nil {
		fail(c, projectResource, opCreate, err)
		return
	}

	succeed(projectResource, opCreate)
	c.JSON(http.StatusCreated, dto.ToProjectResponse(*project, nil))
}

// UpdateProject applies a partial update
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c, projectResource, opUpdate)
	if !ok {
		return
	}
	var req dto.UpdateProjectRequest
	if !bindJSON(c, projectResource, opUpdate, &req) {
		return
	}

	project, err := h.projectService.UpdateProject(id, req)
	if err != nil {
		fail(c, projectResource, opUpdate, err)
		return
	}

	succeed(projectResource, opUpdate)
	c.JSON(http.StatusOK, dto.ToProjectResponse(*project, nil))
}

// DeleteProject removes a project and its tasks
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c, projectResource, opDelete)
	if !ok {
		return
	}

	removed, err := h.projectService.DeleteProject(id)
	if err != nil {
		fail(c, projectResource, opDelete, err)
		return
	}
	h.log.Info("project deleted", zap.Uint64("project_id", id), zap.Int64("tasks_removed", removed))

	succeed(projectResource, opDelete)
	c.Status(http.StatusNoContent)
}
