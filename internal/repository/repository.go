package repository

import (
	"github.com/yukikurage/taskboard/internal/models"
	"github.com/yukikurage/taskboard/internal/utils"
)

// Relation names accepted by the preload arguments below.
const (
	PreloadUserProjects      = "Projects"
	PreloadUserAssignedTasks = "AssignedTasks"
	PreloadProjectOwner      = "Owner"
	PreloadProjectTasks      = "Tasks"
	PreloadTaskProject       = "Project"
	PreloadTaskAssignee      = "Assignee"
)

// Store gives access to every repository and runs work inside a transaction.
type Store interface {
	Users() UserRepository
	Projects() ProjectRepository
	Tasks() TaskRepository

	// Transaction runs fn against a Store bound to a single database
	// transaction. The transaction commits when fn returns nil.
	Transaction(fn func(tx Store) error) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves users in id order
	List(params utils.PaginationParams, preload ...string) ([]models.User, error)

	// Update writes the given column values and bumps updated_at
	Update(id uint64, changes map[string]interface{}) error

	// Delete removes a user; owned projects and assigned tasks are kept
	Delete(id uint64) error

	// Exists reports whether a user with the ID exists
	Exists(id uint64) (bool, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List retrieves projects in id order
	List(params utils.PaginationParams, preload ...string) ([]models.Project, error)

	// Update writes the given column values and bumps updated_at
	Update(id uint64, changes map[string]interface{}) error

	// Delete removes a project together with all of its tasks and returns
	// the number of tasks removed
	Delete(id uint64) (int64, error)

	// Exists reports whether a project with the ID exists
	Exists(id uint64) (bool, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks in id order
	List(params utils.PaginationParams, preload ...string) ([]models.Task, error)

	// ListByProject retrieves every task of a project
	ListByProject(projectID uint64) ([]models.Task, error)

	// Update writes the given column values and bumps updated_at
	Update(id uint64, changes map[string]interface{}) error

	// Delete removes a task
	Delete(id uint64) error
}
