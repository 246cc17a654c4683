package service_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintReceiptOfPOSSale(t *testing.T) {
	f := newFixture(t)
	cart, _, _ := sale(t, f, 5, 5)
	c := f.customer(t, "Fernanda")
	seller := f.actor(f.seller)
	_, err := f.pos.AttachCustomer(f.ctx, seller, cart.ID, c.ID)
	require.NoError(t, err)
	result, err := f.pos.Checkout(f.ctx, seller, cart.ID, enum.PaymentMethodCash)
	require.NoError(t, err)

	receipt, outcome, err := f.printing.PrintReceipt(f.ctx, result.Order.ID)
	require.NoError(t, err)
	assert.True(t, outcome.Printed)
	assert.Equal(t, "Ótica Central", receipt.Header.StoreName)
	assert.Equal(t, "Vendedor", receipt.Seller)
	assert.Equal(t, enum.PaymentMethodCash.Label(), receipt.PaymentMethod)
	assert.Len(t, receipt.Items, 2)
	assert.Zero(t, receipt.Balance)

	jobs := f.paper.Jobs()
	require.Len(t, jobs, 1)
	assert.True(t, bytes.Contains(jobs[0], []byte("Fernanda")))
	assert.True(t, bytes.Contains(jobs[0], []byte("R$ 250,00")))
}

func TestPrintReceiptOfCounterOrder(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, "Gustavo")
	o := f.order(t, c, date(2024, time.March, 10), 480, 80)

	receipt, err := f.printing.Receipt(f.ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, receipt.Items, 1)
	assert.Contains(t, receipt.Items[0].Name, "Não informado")
	assert.Equal(t, "400.00", receipt.Balance.String())
}

func TestPrintSlip(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, "Irene")
	o := f.order(t, c, date(2024, time.March, 10), 300, 0)

	slip, outcome, err := f.printing.PrintSlip(f.ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, outcome.Printed)
	require.Len(t, slip.Installments, 3)

	jobs := f.paper.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, 3, bytes.Count(jobs[0], []byte("Parcela ")))
	assert.True(t, bytes.Contains(jobs[0], []byte(o.OrderNumber+"/3")))
}

func TestFormatReceiptFoldsAccents(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, "Conceição")
	o := f.order(t, c, date(2024, time.March, 10), 100, 100)

	receipt, err := f.printing.Receipt(f.ctx, o.ID)
	require.NoError(t, err)

	out := service.FormatReceipt(receipt, printer.PaperWidth(58))
	assert.True(t, bytes.Contains(out, []byte("Conceicao")))
	assert.True(t, bytes.Contains(out, []byte("Obrigado pela preferencia!")))
	assert.False(t, bytes.Contains(out, []byte("ç")))
}
