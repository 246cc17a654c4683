package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/sangkips/optica-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create inserts the order together with its items.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// UpdateStatus moves the order from one status to another and reports
	// false when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error)
	// AddPayment adds amount to paid_amount and re-derives payment_status in
	// one statement. It reports false when the sum would exceed the total.
	AddPayment(ctx context.Context, id uuid.UUID, amount money.Cents) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	All(ctx context.Context) ([]entity.Order, error)
	// ListUnpaid returns orders whose payment status is not paid.
	ListUnpaid(ctx context.Context) ([]entity.Order, error)
	CountByStatus(ctx context.Context) (map[enum.OrderStatus]int64, error)
	// Receivables sums total_amount - paid_amount of unpaid orders.
	Receivables(ctx context.Context) (money.Cents, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        *enum.OrderStatus
	PaymentStatus *enum.PaymentStatus
	CustomerID    *uuid.UUID
	StartDate     *entity.Date
	EndDate       *entity.Date
	SortBy        string
	SortOrder     string
}
