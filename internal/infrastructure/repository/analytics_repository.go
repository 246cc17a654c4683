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

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// scoped filters on the tenant column of alias; joins make the plain
// TenantScope ambiguous.
func (r *analyticsRepository) scoped(ctx context.Context, alias string) *gorm.DB {
	db := conn(ctx, r.db)
	if skip, ok := ctx.Value(SkipTenantScopeKey).(bool); ok && skip {
		return db
	}
	tenantID, ok := GetTenantID(ctx)
	if !ok {
		return db.Where("1 = 0")
	}
	return db.Where(alias+".tenant_id = ?", tenantID)
}

func (r *analyticsRepository) DailyCashFlow(ctx context.Context, from, to entity.Date) ([]domainRepo.DailyCashFlow, error) {
	var rows []struct {
		Date  entity.Date
		Type  enum.TransactionType
		Total int64
	}
	err := r.scoped(ctx, "t").
		Table("financial_transactions t").
		Select("t.date AS date, t.type AS type, COALESCE(SUM(t.amount), 0) AS total").
		Where("t.status = ? AND t.date >= ? AND t.date <= ?", enum.TransactionStatusPaid, from, to).
		Group("t.date, t.type").
		Order("t.date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domainRepo.DailyCashFlow, 0, len(rows))
	for _, row := range rows {
		if n := len(out); n == 0 || !out[n-1].Date.Equal(row.Date.Time) {
			out = append(out, domainRepo.DailyCashFlow{Date: row.Date})
		}
		day := &out[len(out)-1]
		if row.Type == enum.TransactionTypeIn {
			day.Income += money.Cents(row.Total)
		} else {
			day.Expense += money.Cents(row.Total)
		}
	}
	return out, nil
}

func (r *analyticsRepository) SalesByCategory(ctx context.Context, from, to entity.Date) ([]domainRepo.CategorySales, error) {
	var rows []struct {
		Category enum.ProductCategory
		Quantity int
		Revenue  int64
	}
	err := r.scoped(ctx, "o").
		Table("order_items oi").
		Joins("JOIN orders o ON o.id = oi.order_id AND o.deleted_at IS NULL").
		Joins("JOIN products p ON p.id = oi.product_id").
		Select("p.category AS category, COALESCE(SUM(oi.quantity), 0) AS quantity, COALESCE(SUM(oi.line_total), 0) AS revenue").
		Where("o.date >= ? AND o.date <= ?", from, to).
		Group("p.category").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domainRepo.CategorySales, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRepo.CategorySales{
			Category: row.Category,
			Quantity: row.Quantity,
			Revenue:  money.Cents(row.Revenue),
		})
	}
	return out, nil
}

func (r *analyticsRepository) TopCustomers(ctx context.Context, limit int) ([]domainRepo.TopCustomer, error) {
	var rows []struct {
		CustomerID   uuid.UUID
		CustomerName string
		TotalSpent   int64
		OrderCount   int
	}
	err := r.scoped(ctx, "o").
		Table("orders o").
		Select("o.customer_id AS customer_id, MAX(o.customer_name) AS customer_name, COALESCE(SUM(o.total_amount), 0) AS total_spent, COUNT(o.id) AS order_count").
		Where("o.deleted_at IS NULL").
		Group("o.customer_id").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domainRepo.TopCustomer, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRepo.TopCustomer{
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			TotalSpent:   money.Cents(row.TotalSpent),
			OrderCount:   row.OrderCount,
		})
	}
	return out, nil
}
