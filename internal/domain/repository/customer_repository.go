package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, params *CustomerFilterParams) ([]entity.Customer, int64, error)
	All(ctx context.Context) ([]entity.Customer, error)
	// WithBirthDate returns customers that have a birth date on file.
	WithBirthDate(ctx context.Context) ([]entity.Customer, error)
}

// CustomerFilterParams contains filtering parameters for customer queries
type CustomerFilterParams struct {
	Pagination   *pagination.PaginationParams
	Search       string
	CreditStatus *enum.CreditStatus
}

// PrescriptionRepository has no update or delete: prescriptions are immutable.
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *entity.Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Prescription, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Prescription, error)
	All(ctx context.Context) ([]entity.Prescription, error)
}
