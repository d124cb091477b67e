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
	ErrTaskNotFound         = apierrors.NewNotFound("Task not found")
	ErrTaskProjectNotFound  = apierrors.NewInvalidReference("Project not found")
	ErrTaskAssigneeNotFound = apierrors.NewInvalidReference("Assignee not found")
)

var taskRelations = map[string]string{
	dto.ExpandProject:  repository.PreloadTaskProject,
	dto.ExpandAssignee: repository.PreloadTaskAssignee,
}

// TaskService handles task business logic
type TaskService struct {
	store repository.Store
}

// NewTaskService creates a new TaskService
func NewTaskService(store repository.Store) *TaskService {
	return &TaskService{store: store}
}

// ListTasks returns a page of tasks in id order
func (s *TaskService) ListTasks(params utils.PaginationParams, expand dto.Expand) ([]models.Task, error) {
	params, err := checkPage(params)
	if err != nil {
		return nil, err
	}

	tasks, err := s.store.Tasks().List(params, preloads(expand, taskRelations)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task with the requested relations
func (s *TaskService) GetTask(id uint64, expand dto.Expand) (*models.Task, error) {
	task, err := s.store.Tasks().FindByID(id, preloads(expand, taskRelations)...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask creates a task inside an existing project
func (s *TaskService) CreateTask(req dto.CreateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate.TimePtr(),
	}
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}

	err := s.store.Transaction(func(tx repository.Store) error {
		exists, err := tx.Projects().Exists(req.ProjectID)
		if err != nil {
			return fmt.Errorf("failed to find project: %w", err)
		}
		if !exists {
			return ErrTaskProjectNotFound
		}
		if req.AssigneeID != nil {
			if err := ensureAssignee(tx, *req.AssigneeID); err != nil {
				return err
			}
		}

		if err := tx.Tasks().Create(task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask applies the supplied fields of a partial payload
func (s *TaskService) UpdateTask(id uint64, req dto.UpdateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *models.Task
	err := s.store.Transaction(func(tx repository.Store) error {
		task, err := tx.Tasks().FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to find task: %w", err)
		}
		if req.Empty() {
			updated = task
			return nil
		}

		if req.AssigneeID.Present() {
			if err := ensureAssignee(tx, req.AssigneeID.Value); err != nil {
				return err
			}
		}

		changes := map[string]interface{}{}
		setOptional(changes, "title", req.Title)
		setOptional(changes, "description", req.Description)
		setOptional(changes, "status", req.Status)
		setOptional(changes, "priority", req.Priority)
		setOptional(changes, "is_completed", req.IsCompleted)
		setOptional(changes, "assignee_id", req.AssigneeID)
		switch {
		case req.DueDate.Null:
			changes["due_date"] = nil
		case req.DueDate.Set:
			changes["due_date"] = req.DueDate.Value.Time
		}

		if err := tx.Tasks().Update(id, changes); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		updated, err = tx.Tasks().FindByID(id)
		if err != nil {
			return fmt.Errorf("failed to reload task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(id uint64) error {
	return s.store.Transaction(func(tx repository.Store) error {
		if _, err := tx.Tasks().FindByID(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to find task: %w", err)
		}

		if err := tx.Tasks().Delete(id); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
}

func ensureAssignee(tx repository.Store, userID uint64) error {
	exists, err := tx.Users().Exists(userID)
	if err != nil {
		return fmt.Errorf("failed to find assignee: %w", err)
	}
	if !exists {
		return ErrTaskAssigneeNotFound
	}
	return nil
}
