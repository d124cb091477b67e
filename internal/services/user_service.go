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
	ErrUserNotFound     = apierrors.NewNotFound("User not found")
	ErrUsernameTaken    = apierrors.NewConflict("Username already registered")
	ErrEmailTaken       = apierrors.NewConflict("Email already registered")
	ErrUserIdentityUsed = apierrors.NewConflict("Username or email already registered")
)

var userRelations = map[string]string{
	dto.ExpandProjects: repository.PreloadUserProjects,
	dto.ExpandTasks:    repository.PreloadUserAssignedTasks,
}

// UserService handles user business logic
type UserService struct {
	store repository.Store
}

// NewUserService creates a new UserService
func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

// ListUsers returns a page of users in id order
func (s *UserService) ListUsers(params utils.PaginationParams, expand dto.Expand) ([]models.User, error) {
	params, err := checkPage(params)
	if err != nil {
		return nil, err
	}

	users, err := s.store.Users().List(params, preloads(expand, userRelations)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser returns a single user
func (s *UserService) GetUser(id uint64, expand dto.Expand) (*models.User, error) {
	user, err := s.store.Users().FindByID(id, preloads(expand, userRelations)...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateUser registers a new, active user
func (s *UserService) CreateUser(req dto.CreateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		IsActive: true,
	}

	err := s.store.Transaction(func(tx repository.Store) error {
		if err := ensureIdentityFree(tx.Users(), 0, &req.Username, &req.Email); err != nil {
			return err
		}
		if err := tx.Users().Create(user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUserIdentityUsed
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies the supplied fields of a partial payload
func (s *UserService) UpdateUser(id uint64, req dto.UpdateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *models.User
	err := s.store.Transaction(func(tx repository.Store) error {
		user, err := tx.Users().FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to find user: %w", err)
		}
		if req.Empty() {
			updated = user
			return nil
		}

		if err := ensureIdentityFree(tx.Users(), id, req.Username.Ptr(), req.Email.Ptr()); err != nil {
			return err
		}

		changes := map[string]interface{}{}
		setOptional(changes, "username", req.Username)
		setOptional(changes, "email", req.Email)
		setOptional(changes, "full_name", req.FullName)
		setOptional(changes, "is_active", req.IsActive)

		if err := tx.Users().Update(id, changes); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUserIdentityUsed
			}
			return fmt.Errorf("failed to update user: %w", err)
		}

		updated, err = tx.Users().FindByID(id)
		if err != nil {
			return fmt.Errorf("failed to reload user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes a user. Owned projects and assigned tasks keep their
// reference to the deleted id.
func (s *UserService) DeleteUser(id uint64) error {
	return s.store.Transaction(func(tx repository.Store) error {
		exists, err := tx.Users().Exists(id)
		if err != nil {
			return fmt.Errorf("failed to find user: %w", err)
		}
		if !exists {
			return ErrUserNotFound
		}
		if err := tx.Users().Delete(id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

// ensureIdentityFree checks that no other user holds the username or email.
// self is the id of the user being updated, 0 on create.
func ensureIdentityFree(users repository.UserRepository, self uint64, username, email *string) error {
	if username != nil {
		existing, err := users.FindByUsername(*username)
		if err := checkTaken(existing, err, self, ErrUsernameTaken); err != nil {
			return err
		}
	}
	if email != nil {
		existing, err := users.FindByEmail(*email)
		if err := checkTaken(existing, err, self, ErrEmailTaken); err != nil {
			return err
		}
	}
	return nil
}

func checkTaken(existing *models.User, err error, self uint64, taken error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check user identity: %w", err)
	case existing.ID != self:
		return taken
	default:
		return nil
	}
}
