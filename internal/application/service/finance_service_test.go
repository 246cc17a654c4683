package service_test

import (
	"testing"
	"time"

	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceSummary(t *testing.T) {
	f := newFixture(t)
	entries := []service.CreateTransactionInput{
		{Description: "Venda balcão", Type: enum.TransactionTypeIn, Category: enum.TransactionCategorySales, Amount: money.FromUnits(900)},
		{Description: "Aluguel", Type: enum.TransactionTypeOut, Category: enum.TransactionCategoryRent, Amount: money.FromUnits(400)},
		{Description: "Conta de luz", Type: enum.TransactionTypeOut, Category: enum.TransactionCategoryUtilities, Amount: money.FromUnits(120), Status: enum.TransactionStatusPending},
		{Description: "Venda antiga", Type: enum.TransactionTypeIn, Category: enum.TransactionCategorySales, Amount: money.FromUnits(1000), Date: date(2024, time.January, 5)},
	}
	for i := range entries {
		_, err := f.finance.CreateTransaction(f.ctx, &entries[i])
		require.NoError(t, err)
	}

	sum, err := f.finance.Summarize(f.ctx, date(2024, time.March, 1), date(2024, time.March, 31))
	require.NoError(t, err)
	assert.Equal(t, money.FromUnits(900), sum.Income)
	assert.Equal(t, money.FromUnits(400), sum.Expense)
	assert.Equal(t, money.FromUnits(500), sum.Balance)
	assert.Equal(t, money.FromUnits(120), sum.Pending)

	all, err := f.finance.Summarize(f.ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, money.FromUnits(1900), all.Income)
}

func TestCreateTransactionValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.finance.CreateTransaction(f.ctx, &service.CreateTransactionInput{})
	assert.Equal(t, 422, appCode(t, err))
	assert.ElementsMatch(t, []string{"description", "amount", "type", "category"}, fieldsOf(err))
}
