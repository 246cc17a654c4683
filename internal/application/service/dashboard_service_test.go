package service_test

import (
	"testing"
	"time"

	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)
	cart, a, _ := sale(t, f, 2, 5)
	c := f.customer(t, "Olga")
	seller := f.actor(f.seller)
	_, err := f.pos.AttachCustomer(f.ctx, seller, cart.ID, c.ID)
	require.NoError(t, err)
	_, err = f.pos.Checkout(f.ctx, seller, cart.ID, enum.PaymentMethodCash)
	require.NoError(t, err)

	f.order(t, c, date(2024, time.March, 12), 700, 100)

	stats, err := f.dashboard.GetDashboardStats(f.ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.OrdersByStatus[enum.OrderStatusPending])
	assert.EqualValues(t, 0, stats.OrdersByStatus[enum.OrderStatusDelivered])
	assert.Equal(t, money.FromUnits(350), stats.MonthIncome)
	assert.Equal(t, money.FromUnits(600), stats.Receivables)
	// A sold out, min stock 0
	assert.GreaterOrEqual(t, stats.LowStockCount, 1)

	require.NotEmpty(t, stats.TopProducts)
	assert.Equal(t, a.Name, stats.TopProducts[0].Name)
	assert.Equal(t, 2, stats.TopProducts[0].SoldCount)

	require.Len(t, stats.TopCustomers, 1)
	assert.Equal(t, money.FromUnits(950), stats.TopCustomers[0].TotalSpent)
	assert.Equal(t, 2, stats.TopCustomers[0].OrderCount)

	require.Len(t, stats.CashFlow, 1)
	assert.Equal(t, money.FromUnits(350), stats.CashFlow[0].Income)

	require.NotEmpty(t, stats.SalesByCategory)
	assert.Equal(t, enum.ProductCategoryFrame, stats.SalesByCategory[0].Category)
	assert.Equal(t, money.FromUnits(200), stats.SalesByCategory[0].Revenue)
}
