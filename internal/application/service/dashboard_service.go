package service

import (
	"context"

	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/pkg/money"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	txnRepo       repository.FinancialTransactionRepository
	analyticsRepo repository.AnalyticsRepository
	customers     *CustomerService
	calendar      *Calendar
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	txnRepo repository.FinancialTransactionRepository,
	analyticsRepo repository.AnalyticsRepository,
	customers *CustomerService,
	calendar *Calendar,
) *DashboardService {
	return &DashboardService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		txnRepo:       txnRepo,
		analyticsRepo: analyticsRepo,
		customers:     customers,
		calendar:      calendar,
	}
}

// TopProduct is a product ranked by units sold
type TopProduct struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Category  enum.ProductCategory `json:"category"`
	SoldCount int                  `json:"sold_count"`
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	Today           entity.Date                `json:"today"`
	OrdersByStatus  map[enum.OrderStatus]int64 `json:"orders_by_status"`
	MonthIncome     money.Cents                `json:"month_income"`
	MonthExpense    money.Cents                `json:"month_expense"`
	MonthBalance    money.Cents                `json:"month_balance"`
	Receivables     money.Cents                `json:"receivables"`
	LowStockCount   int                        `json:"low_stock_count"`
	Birthdays       int                        `json:"birthdays"`
	TopProducts     []TopProduct               `json:"top_products"`
	TopCustomers    []repository.TopCustomer   `json:"top_customers"`
	CashFlow        []repository.DailyCashFlow `json:"cash_flow"`
	SalesByCategory []repository.CategorySales `json:"sales_by_category"`
}

// GetDashboardStats returns dashboard statistics for the current month
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	if _, err := tenantOf(ctx); err != nil {
		return nil, err
	}

	today := s.calendar.Today()
	monthStart := entity.NewDate(today.Year(), today.Month(), 1)
	stats := &DashboardStats{
		Today: today,
		OrdersByStatus: map[enum.OrderStatus]int64{
			enum.OrderStatusPending:         0,
			enum.OrderStatusSentToLab:       0,
			enum.OrderStatusReceivedAtStore: 0,
			enum.OrderStatusDelivered:       0,
		},
	}

	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for status, n := range counts {
		stats.OrdersByStatus[status] = n
	}

	month, err := s.txnRepo.Summarize(ctx, &monthStart, &today)
	if err != nil {
		return nil, err
	}
	stats.MonthIncome = month.Income
	stats.MonthExpense = month.Expense
	stats.MonthBalance = month.Balance()

	if stats.Receivables, err = s.orderRepo.Receivables(ctx); err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = len(lowStock)

	birthdays, err := s.customers.Birthdays(ctx, nil)
	if err != nil {
		return nil, err
	}
	stats.Birthdays = len(birthdays)

	top, err := s.productRepo.TopSelling(ctx, 5)
	if err != nil {
		return nil, err
	}
	stats.TopProducts = make([]TopProduct, 0, len(top))
	for _, p := range top {
		stats.TopProducts = append(stats.TopProducts, TopProduct{
			ID:        p.ID.String(),
			Name:      p.Name,
			Category:  p.Category,
			SoldCount: p.SoldCount,
		})
	}

	if stats.TopCustomers, err = s.analyticsRepo.TopCustomers(ctx, 5); err != nil {
		return nil, err
	}
	weekAgo := today.AddDays(-6)
	if stats.CashFlow, err = s.analyticsRepo.DailyCashFlow(ctx, weekAgo, today); err != nil {
		return nil, err
	}
	if stats.SalesByCategory, err = s.analyticsRepo.SalesByCategory(ctx, monthStart, today); err != nil {
		return nil, err
	}
	return stats, nil
}

