package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/taskboard/internal/dto"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/models"
	"github.com/yukikurage/taskboard/internal/repository"
	"github.com/yukikurage/taskboard/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = apierrors.NewNotFound("Project not found")
	ErrOwnerNotFound   = apierrors.NewInvalidReference("Owner not found")
)

var projectRelations = map[string]string{
	dto.ExpandOwner: repository.PreloadProjectOwner,
	dto.ExpandTasks: repository.PreloadProjectTasks,
}

// ProjectService provides business logic for project operations.
type ProjectService struct {
	store repository.Store
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store repository.Store) *ProjectService {
	return &ProjectService{store: store}
}

// ListProjects returns a page of projects in id order.
func (s *ProjectService) ListProjects(params utils.PaginationParams, expand dto.Expand) ([]models.Project, error) {
	params, err := checkPage(params)
	if err != nil {
		return nil, err
	}

	projects, err := s.store.Projects().List(params, preloads(expand, projectRelations)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a single project. Its tasks come from the task
// repository rather than a preload.
func (s *ProjectService) GetProject(id uint64, expand dto.Expand) (*models.Project, error) {
	var relations []string
	if expand.Has(dto.ExpandOwner) {
		relations = append(relations, repository.PreloadProjectOwner)
	}

	project, err := s.store.Projects().FindByID(id, relations...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if expand.Has(dto.ExpandTasks) {
		project.Tasks, err = s.store.Tasks().ListByProject(id)
		if err != nil {
			return nil, fmt.Errorf("failed to list project tasks: %w", err)
		}
	}
	return project, nil
}

// CreateProject creates a project owned by an existing user.
func (s *ProjectService) CreateProject(req dto.CreateProjectRequest) (*models.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ProjectStatusPlanning
	}
	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		OwnerID:     req.OwnerID,
	}

	err := s.store.Transaction(func(tx repository.Store) error {
		exists, err := tx.Users().Exists(req.OwnerID)
		if err != nil {
			return fmt.Errorf("failed to find owner: %w", err)
		}
		if !exists {
			return ErrOwnerNotFound
		}
		if err := tx.Projects().Create(project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// UpdateProject applies the supplied fields of a partial payload.
func (s *ProjectService) UpdateProject(id uint64, req dto.UpdateProjectRequest) (*models.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *models.Project
	err := s.store.Transaction(func(tx repository.Store) error {
		project, err := tx.Projects().FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("failed to find project: %w", err)
		}
		if req.Empty() {
			updated = project
			return nil
		}

		changes := map[string]interface{}{}
		setOptional(changes, "name", req.Name)
		setOptional(changes, "description", req.Description)
		setOptional(changes, "status", req.Status)

		if err := tx.Projects().Update(id, changes); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}

		updated, err = tx.Projects().FindByID(id)
		if err != nil {
			return fmt.Errorf("failed to reload project: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProject removes a project together with its tasks and returns how
// many tasks went with it.
func (s *ProjectService) DeleteProject(id uint64) (int64, error) {
	var removed int64
	err := s.store.Transaction(func(tx repository.Store) error {
		exists, err := tx.Projects().Exists(id)
		if err != nil {
			return fmt.Errorf("failed to find project: %w", err)
		}
		if !exists {
			return ErrProjectNotFound
		}
		removed, err = tx.Projects().Delete(id)
		if err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
