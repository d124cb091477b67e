package repository

import (
	"github.com/yukikurage/taskboard/internal/database"
	"github.com/yukikurage/taskboard/internal/models"
	"github.com/yukikurage/taskboard/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit("Project", "Assignee").Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	if !storable(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var task models.Task
	if err := withPreloads(r.db, preload).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves a page of tasks
func (r *GormTaskRepository) List(params utils.PaginationParams, preload ...string) ([]models.Task, error) {
	tasks := []models.Task{}
	err := withPreloads(r.db, preload).
		Scopes(database.Paginate(params)).
		Order("id").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByProject retrieves the tasks of one project
func (r *GormTaskRepository) ListByProject(projectID uint64) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.Where("project_id = ?", projectID).Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update applies column changes to a task
func (r *GormTaskRepository) Update(id uint64, changes map[string]interface{}) error {
	return r.db.Model(&models.Task{ID: id}).Updates(changes).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
