package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	domainRepo "github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/pkg/money"
	"gorm.io/gorm"
)

type financialTransactionRepository struct {
	db *gorm.DB
}

// NewFinancialTransactionRepository creates a new ledger repository
func NewFinancialTransactionRepository(db *gorm.DB) domainRepo.FinancialTransactionRepository {
	return &financialTransactionRepository{db: db}
}

func (r *financialTransactionRepository) Create(ctx context.Context, txn *entity.FinancialTransaction) error {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return err
	}
	txn.TenantID = tenantID
	return conn(ctx, r.db).Omit("Order").Create(txn).Error
}

func (r *financialTransactionRepository) filtered(ctx context.Context, params *domainRepo.TransactionFilterParams) *gorm.DB {
	query := conn(ctx, r.db).Scopes(TenantScope(ctx)).Model(&entity.FinancialTransaction{})

	if params.Search != "" {
		query = query.Where("LOWER(description) LIKE ?", likePattern(params.Search))
	}
	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.OrderID != nil {
		query = query.Where("order_id = ?", *params.OrderID)
	}
	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}
	return query
}

func (r *financialTransactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.FinancialTransaction, int64, error) {
	var txns []entity.FinancialTransaction
	var total int64

	query := r.filtered(ctx, params)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("date DESC, created_at DESC").
		Find(&txns).Error

	return txns, total, err
}

func (r *financialTransactionRepository) All(ctx context.Context) ([]entity.FinancialTransaction, error) {
	var txns []entity.FinancialTransaction
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Order("date DESC, created_at DESC").
		Find(&txns).Error
	return txns, err
}

func (r *financialTransactionRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.FinancialTransaction, error) {
	var txns []entity.FinancialTransaction
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&txns).Error
	return txns, err
}

func (r *financialTransactionRepository) Summarize(ctx context.Context, from, to *entity.Date) (*domainRepo.TransactionSummary, error) {
	var rows []struct {
		Type   enum.TransactionType
		Status enum.TransactionStatus
		Total  int64
	}
	err := r.filtered(ctx, &domainRepo.TransactionFilterParams{StartDate: from, EndDate: to}).
		Select("type, status, COALESCE(SUM(amount), 0) AS total").
		Group("type, status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &domainRepo.TransactionSummary{}
	for _, row := range rows {
		switch {
		case row.Status == enum.TransactionStatusPending:
			summary.Pending += money.Cents(row.Total)
		case row.Type == enum.TransactionTypeIn:
			summary.Income += money.Cents(row.Total)
		default:
			summary.Expense += money.Cents(row.Total)
		}
	}
	return summary, nil
}
