package repository

import (
	"math"

	"gorm.io/gorm"
)

// GormStore is a GORM implementation of Store
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a new Store
func NewStore(db *gorm.DB) Store {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository {
	return NewUserRepository(s.db)
}

func (s *GormStore) Projects() ProjectRepository {
	return NewProjectRepository(s.db)
}

func (s *GormStore) Tasks() TaskRepository {
	return NewTaskRepository(s.db)
}

// Transaction runs fn inside a database transaction
func (s *GormStore) Transaction(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// withPreloads applies relation preloading; has-many children come back in id order.
func withPreloads(db *gorm.DB, preload []string) *gorm.DB {
	for _, p := range preload {
		db = db.Preload(p, func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id")
		})
	}
	return db
}

// storable reports whether id fits the signed BIGINT primary keys. Larger ids
// were never assigned and the SQL drivers refuse them as arguments.
func storable(id uint64) bool {
	return id <= math.MaxInt64
}

func exists(db *gorm.DB, model interface{}, id uint64) (bool, error) {
	if !storable(id) {
		return false, nil
	}
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
