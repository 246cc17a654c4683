package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/pkg/apperror"
	"github.com/sangkips/optica-api/pkg/utils"
	"github.com/sangkips/optica-api/pkg/validation"
)

// UserService manages the staff accounts of a store
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns the store's staff ordered by name
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	if _, err := tenantOf(ctx); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

// CreateUserInput represents the input for adding a staff member
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     enum.UserRole
}

// CreateUser adds a staff member to the current store
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.Required("email", input.Email, v)
	if len(input.Password) < 8 {
		v.Add("password", "must have at least 8 characters")
	}
	if input.Role == "" {
		input.Role = enum.UserRoleSeller
	}
	if !input.Role.IsValid() {
		v.Add("role", "must be owner, manager or seller")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    input.Email,
		Password: hashed,
		Role:     input.Role,
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserInput represents a partial staff update
type UpdateUserInput struct {
	ID     uuid.UUID
	Name   *string
	Role   *enum.UserRole
	Active *bool
}

// UpdateUser changes name, role or active flag
func (s *UserService) UpdateUser(ctx context.Context, actorID uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, apperror.NewFieldError("role", "must be owner, manager or seller")
		}
		user.Role = *input.Role
	}
	if input.Active != nil {
		if !*input.Active && user.ID == actorID {
			return nil, apperror.NewBadRequestError("You cannot deactivate your own account")
		}
		user.Active = *input.Active
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
