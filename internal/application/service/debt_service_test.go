package service_test

import (
	"testing"
	"time"

	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) order(t *testing.T, c *entity.Customer, on *entity.Date, total, paid int64) *entity.Order {
	t.Helper()
	o, err := f.orders.CreateOrder(f.ctx, &service.CreateOrderInput{
		CustomerID:   c.ID,
		Date:         on,
		TotalAmount:  money.FromUnits(total),
		PaidAmount:   money.FromUnits(paid),
		DeliveryDate: date(2024, time.April, 1),
	})
	require.NoError(t, err)
	return o
}

func TestDebtReport(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, "Lucia")

	recent := f.order(t, c, date(2024, time.March, 1), 300, 100)
	late := f.order(t, c, date(2024, time.February, 4), 1000, 0)
	f.order(t, c, date(2024, time.January, 2), 200, 200)

	report, err := f.debts.Report(f.ctx)
	require.NoError(t, err)
	require.Len(t, report.Debts, 2)

	first := report.Debts[0]
	assert.Equal(t, late.ID, first.OrderID)
	assert.Equal(t, "2024-03-05", first.DueDate.String())
	assert.Equal(t, 10, first.DaysOverdue)
	// 2% penalty plus 1% per 30 days: 20.00 + 3.33
	assert.Equal(t, "23.33", first.Interest.String())
	assert.Equal(t, "1023.33", first.AmountDue.String())

	second := report.Debts[1]
	assert.Equal(t, recent.ID, second.OrderID)
	assert.Zero(t, second.DaysOverdue)
	assert.Zero(t, second.Interest)

	assert.Equal(t, 2, report.Totals.Count)
	assert.Equal(t, 1, report.Totals.Overdue)
}

func TestDebtSlip(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, "Marcos")
	late := f.order(t, c, date(2024, time.February, 4), 1000, 0)
	paid := f.order(t, c, date(2024, time.March, 1), 100, 100)

	slip, err := f.debts.Slip(f.ctx, late.ID)
	require.NoError(t, err)
	require.Len(t, slip.Installments, 3)

	var sum money.Cents
	for i, inst := range slip.Installments {
		sum += inst.Amount
		assert.Equal(t, i+1, inst.Sequence)
		assert.Equal(t, entity.NewDate(2024, time.March, 15).AddDays(30*(i+1)), inst.DueDate)
	}
	assert.Equal(t, slip.AmountDue, sum)
	assert.Equal(t, late.OrderNumber+"/1", slip.Installments[0].Number)

	_, err = f.debts.Slip(f.ctx, paid.ID)
	assert.Equal(t, 409, appCode(t, err))
}

func TestEmailSlipWithoutAddress(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, "Sem Email")
	o := f.order(t, c, date(2024, time.March, 1), 100, 0)

	_, err := f.debts.EmailSlip(f.ctx, o.ID)
	assert.Equal(t, 422, appCode(t, err))
	assert.Equal(t, []string{"email"}, fieldsOf(err))
}
