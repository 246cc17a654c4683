package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	domainRepo "github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/pkg/money"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return err
	}
	order.TenantID = tenantID
	return conn(ctx, r.db).Omit("Customer").Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error) {
	result := conn(ctx, r.db).Session(&gorm.Session{SkipHooks: true}).
		Scopes(TenantScope(ctx)).
		Model(&entity.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AddPayment derives payment_status from the stored amounts, never from the
// caller's copy of the order.
func (r *orderRepository) AddPayment(ctx context.Context, id uuid.UUID, amount money.Cents) (bool, error) {
	result := conn(ctx, r.db).Session(&gorm.Session{SkipHooks: true}).
		Scopes(TenantScope(ctx)).
		Model(&entity.Order{}).
		Where("id = ? AND paid_amount + ? <= total_amount", id, amount).
		Updates(map[string]interface{}{
			"paid_amount": gorm.Expr("paid_amount + ?", amount),
			"payment_status": gorm.Expr(
				"CASE WHEN paid_amount + ? >= total_amount THEN ? WHEN paid_amount + ? > 0 THEN ? ELSE ? END",
				amount, string(enum.PaymentStatusPaid),
				amount, string(enum.PaymentStatusPartial),
				string(enum.PaymentStatusPending),
			),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Scopes(TenantScope(ctx)).Delete(&entity.Order{}, "id = ?", id).Error
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := conn(ctx, r.db).Scopes(TenantScope(ctx)).Model(&entity.Order{})

	if params.Search != "" {
		pattern := likePattern(params.Search)
		query = query.Where("LOWER(customer_name) LIKE ? OR LOWER(order_number) LIKE ?", pattern, pattern)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(orderClause(params.SortBy, params.SortOrder, "date",
			"date", "delivery_date", "total_amount", "customer_name", "created_at")).
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) All(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Preload("Items").
		Order("date DESC, created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListUnpaid(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Where("payment_status <> ?", enum.PaymentStatusPaid).
		Order("date ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) CountByStatus(ctx context.Context) (map[enum.OrderStatus]int64, error) {
	var rows []struct {
		Status enum.OrderStatus
		Count  int64
	}
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enum.OrderStatus]int64, len(rows))
	for _, st := range enum.OrderStatuses() {
		counts[st] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *orderRepository) Receivables(ctx context.Context) (money.Cents, error) {
	var sum int64
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Model(&entity.Order{}).
		Where("payment_status <> ?", enum.PaymentStatusPaid).
		Select("COALESCE(SUM(total_amount - paid_amount), 0)").
		Scan(&sum).Error
	return money.Cents(sum), err
}
