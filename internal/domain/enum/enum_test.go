package enum_test

import (
	"encoding/json"
	"testing"

	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivePaymentStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		paid  money.Cents
		total money.Cents
		want  enum.PaymentStatus
	}{
		{"nothing paid", 0, 25000, enum.PaymentStatusPending},
		{"one cent", 1, 25000, enum.PaymentStatusPartial},
		{"half", 12500, 25000, enum.PaymentStatusPartial},
		{"exact", 25000, 25000, enum.PaymentStatusPaid},
		{"overpaid", 30000, 25000, enum.PaymentStatusPaid},
		{"zero total", 0, 0, enum.PaymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, enum.DerivePaymentStatus(tt.paid, tt.total))
		})
	}
}

func TestOrderStatusOnlyMovesForward(t *testing.T) {
	t.Parallel()

	st := enum.OrderStatusPending
	var visited []enum.OrderStatus
	for {
		visited = append(visited, st)
		next, ok := st.Next()
		if !ok {
			assert.Equal(t, st, next)
			break
		}
		st = next
	}

	assert.Equal(t, enum.OrderStatuses(), visited)
	assert.True(t, st.IsTerminal())

	_, ok := enum.OrderStatus("cancelled").Next()
	assert.False(t, ok)
}

func TestOrderStatusLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Falta Enviar", enum.OrderStatusPending.Label())
	assert.Equal(t, "No Laboratório", enum.OrderStatusSentToLab.Label())
	assert.Equal(t, "Na Loja", enum.OrderStatusReceivedAtStore.Label())
	assert.Equal(t, "Entregue", enum.OrderStatusDelivered.Label())
}

func TestOrderStatusJSONAndScan(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(enum.OrderStatusSentToLab)
	require.NoError(t, err)
	assert.JSONEq(t, `"sent_to_lab"`, string(data))

	var st enum.OrderStatus
	require.NoError(t, json.Unmarshal([]byte(`"received_at_store"`), &st))
	assert.Equal(t, enum.OrderStatusReceivedAtStore, st)
	assert.Error(t, json.Unmarshal([]byte(`"Na Loja"`), &st))

	require.NoError(t, st.Scan([]byte("delivered")))
	assert.Equal(t, enum.OrderStatusDelivered, st)
	assert.Error(t, st.Scan("lost"))

	_, err = enum.OrderStatus("lost").Value()
	assert.Error(t, err)
}

func TestDescriptiveEnumsRejectUnknownCodes(t *testing.T) {
	t.Parallel()

	var method enum.PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(`"pix"`), &method))
	assert.Equal(t, "PIX", method.Label())
	assert.Error(t, json.Unmarshal([]byte(`"bitcoin"`), &method))

	var cat enum.ProductCategory
	assert.Error(t, json.Unmarshal([]byte(`"sunglasses"`), &cat))
	assert.False(t, enum.ProductCategoryService.Tracked())

	var role enum.UserRole
	require.NoError(t, json.Unmarshal([]byte(`"manager"`), &role))
	assert.True(t, role.CanAuthorizeDiscount())
	assert.False(t, enum.UserRoleSeller.CanAuthorizeDiscount())
}
