package repository

import (
	"github.com/yukikurage/taskboard/internal/database"
	"github.com/yukikurage/taskboard/internal/models"
	"github.com/yukikurage/taskboard/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	if !storable(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var user models.User
	if err := withPreloads(r.db, preload).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves a page of users
func (r *GormUserRepository) List(params utils.PaginationParams, preload ...string) ([]models.User, error) {
	users := []models.User{}
	err := withPreloads(r.db, preload).
		Scopes(database.Paginate(params)).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update applies column changes to a user
func (r *GormUserRepository) Update(id uint64, changes map[string]interface{}) error {
	return r.db.Model(&models.User{ID: id}).Updates(changes).Error
}

// Delete deletes a user
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Delete(&models.User{}, id).Error
}

// Exists checks whether a user exists
func (r *GormUserRepository) Exists(id uint64) (bool, error) {
	return exists(r.db, &models.User{}, id)
}
