package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/sangkips/optica-api/pkg/pagination"
	"github.com/sangkips/optica-api/pkg/validation"
)

// FinanceService keeps the append-only cash ledger
type FinanceService struct {
	txnRepo   repository.FinancialTransactionRepository
	orderRepo repository.OrderRepository
	calendar  *Calendar
}

// NewFinanceService creates a new finance service
func NewFinanceService(txnRepo repository.FinancialTransactionRepository, orderRepo repository.OrderRepository, calendar *Calendar) *FinanceService {
	return &FinanceService{txnRepo: txnRepo, orderRepo: orderRepo, calendar: calendar}
}

// CreateTransactionInput represents a manual ledger entry
type CreateTransactionInput struct {
	UserID        uuid.UUID
	Date          *entity.Date
	Description   string
	Type          enum.TransactionType
	Category      enum.TransactionCategory
	Amount        money.Cents
	Status        enum.TransactionStatus
	PaymentMethod *enum.PaymentMethod
	OrderID       *uuid.UUID
}

// CreateTransaction appends an entry. Entries are never edited or removed.
func (s *FinanceService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.FinancialTransaction, error) {
	if _, err := tenantOf(ctx); err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = enum.TransactionStatusPaid
	}
	v := validation.Violations{}
	validation.Required("description", input.Description, v)
	validation.MaxLength("description", input.Description, 500, v)
	validation.PositiveAmount("amount", input.Amount, v)
	if !input.Type.IsValid() {
		v.Add("type", "must be in or out")
	}
	if !input.Category.IsValid() {
		v.Add("category", "is not a valid category")
	}
	if !input.Status.IsValid() {
		v.Add("status", "must be paid or pending")
	}
	if input.PaymentMethod != nil && !input.PaymentMethod.IsValid() {
		v.Add("payment_method", "is not a valid payment method")
	}
	if input.OrderID != nil {
		order, err := s.orderRepo.GetByID(ctx, *input.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			v.Add("order_id", "order not found")
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	date := s.calendar.Today()
	if input.Date != nil && !input.Date.IsZero() {
		date = *input.Date
	}
	txn := &entity.FinancialTransaction{
		Date:          date,
		Description:   strings.TrimSpace(input.Description),
		Type:          input.Type,
		Category:      input.Category,
		Amount:        input.Amount,
		Status:        input.Status,
		PaymentMethod: input.PaymentMethod,
		OrderID:       input.OrderID,
	}
	if input.UserID != uuid.Nil {
		userID := input.UserID
		txn.UserID = &userID
	}
	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactions lists ledger entries, newest first
func (s *FinanceService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.FinancialTransaction], error) {
	txns, total, err := s.txnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(txns, params.Pagination, total), nil
}

// Summary is the cash position over a period
type Summary struct {
	From    *entity.Date `json:"from,omitempty"`
	To      *entity.Date `json:"to,omitempty"`
	Income  money.Cents  `json:"income"`
	Expense money.Cents  `json:"expense"`
	Balance money.Cents  `json:"balance"`
	Pending money.Cents  `json:"pending"`
}

// Summarize totals paid income, paid expenses and pending entries in the
// inclusive date range; nil bounds are open.
func (s *FinanceService) Summarize(ctx context.Context, from, to *entity.Date) (*Summary, error) {
	sum, err := s.txnRepo.Summarize(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &Summary{
		From:    from,
		To:      to,
		Income:  sum.Income,
		Expense: sum.Expense,
		Balance: sum.Balance(),
		Pending: sum.Pending,
	}, nil
}
