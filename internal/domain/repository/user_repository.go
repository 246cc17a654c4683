package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
)

// UserRepository defines the interface for user data operations.
// GetByEmail is not tenant scoped since it backs the login.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context) ([]entity.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
