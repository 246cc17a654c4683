package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/sangkips/optica-api/pkg/pagination"
)

// FinancialTransactionRepository is append-only: there is no update or delete.
type FinancialTransactionRepository interface {
	Create(ctx context.Context, txn *entity.FinancialTransaction) error
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.FinancialTransaction, int64, error)
	All(ctx context.Context) ([]entity.FinancialTransaction, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.FinancialTransaction, error)
	Summarize(ctx context.Context, from, to *entity.Date) (*TransactionSummary, error)
}

// TransactionFilterParams contains filtering parameters for ledger queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       *enum.TransactionType
	Category   *enum.TransactionCategory
	Status     *enum.TransactionStatus
	OrderID    *uuid.UUID
	StartDate  *entity.Date
	EndDate    *entity.Date
}

// TransactionSummary aggregates ledger entries over a period.
type TransactionSummary struct {
	Income  money.Cents `json:"income"`
	Expense money.Cents `json:"expense"`
	Pending money.Cents `json:"pending"`
}

// Balance is paid income minus paid expense.
func (s TransactionSummary) Balance() money.Cents {
	return s.Income - s.Expense
}
