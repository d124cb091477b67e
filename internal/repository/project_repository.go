package repository

import (
	"github.com/yukikurage/taskboard/internal/database"
	"github.com/yukikurage/taskboard/internal/models"
	"github.com/yukikurage/taskboard/internal/utils"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Omit("Owner", "Tasks").Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	if !storable(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var project models.Project
	if err := withPreloads(r.db, preload).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves a page of projects
func (r *GormProjectRepository) List(params utils.PaginationParams, preload ...string) ([]models.Project, error) {
	projects := []models.Project{}
	err := withPreloads(r.db, preload).
		Scopes(database.Paginate(params)).
		Order("id").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update applies column changes to a project
func (r *GormProjectRepository) Update(id uint64, changes map[string]interface{}) error {
	return r.db.Model(&models.Project{ID: id}).Updates(changes).Error
}

// Delete deletes a project and all of its tasks in a transaction
func (r *GormProjectRepository) Delete(id uint64) (int64, error) {
	var removed int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Delete all tasks in the project
		result := tx.Where("project_id = ?", id).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected

		// Delete project
		return tx.Delete(&models.Project{}, id).Error
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Exists checks whether a project exists
func (r *GormProjectRepository) Exists(id uint64) (bool, error) {
	return exists(r.db, &models.Project{}, id)
}
