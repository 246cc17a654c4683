package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
)

// DailyCashFlow is the paid income and expense booked on one day
type DailyCashFlow struct {
	Date    entity.Date `json:"date"`
	Income  money.Cents `json:"income"`
	Expense money.Cents `json:"expense"`
}

// CategorySales is the POS revenue of one product category
type CategorySales struct {
	Category enum.ProductCategory `json:"category"`
	Quantity int                  `json:"quantity"`
	Revenue  money.Cents          `json:"revenue"`
}

// TopCustomer is a customer ranked by order totals
type TopCustomer struct {
	CustomerID   uuid.UUID   `json:"customer_id"`
	CustomerName string      `json:"customer_name"`
	TotalSpent   money.Cents `json:"total_spent"`
	OrderCount   int         `json:"order_count"`
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// DailyCashFlow returns one row per day in [from, to] that has paid entries
	DailyCashFlow(ctx context.Context, from, to entity.Date) ([]DailyCashFlow, error)

	// SalesByCategory aggregates sold order items by product category
	SalesByCategory(ctx context.Context, from, to entity.Date) ([]CategorySales, error)

	// TopCustomers returns customers by total order amount
	TopCustomers(ctx context.Context, limit int) ([]TopCustomer, error)
}
