package entity_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(name string, price int64) *entity.Product {
	return &entity.Product{ID: uuid.New(), Code: "PRD-" + name, Name: name, SalePrice: money.FromUnits(price)}
}

func TestCartTotals(t *testing.T) {
	t.Parallel()

	a, b := product("A", 100), product("B", 50)
	cart := &entity.Cart{}
	cart.Add(a)
	cart.Add(b)
	cart.Add(a)

	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, money.FromUnits(250), cart.Subtotal())
	assert.Equal(t, money.FromUnits(250), cart.Total())
	assert.Equal(t, map[uuid.UUID]int{a.ID: 2, b.ID: 1}, cart.Quantities())
}

func TestCartAdjustNeverDropsBelowOne(t *testing.T) {
	t.Parallel()

	a := product("A", 100)
	cart := &entity.Cart{}
	cart.Add(a)

	changed, err := cart.Adjust(a.ID, -1)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, cart.Lines[0].Quantity)

	changed, err = cart.Adjust(a.ID, 3)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 4, cart.Lines[0].Quantity)

	_, err = cart.Adjust(uuid.New(), 1)
	assert.ErrorIs(t, err, entity.ErrProductNotInCart)
}

func TestCartAdjustRejectsHugeDelta(t *testing.T) {
	t.Parallel()

	a := product("A", 100)
	cart := &entity.Cart{}
	require.NoError(t, cart.Add(a))

	_, err := cart.Adjust(a.ID, 1<<62)
	assert.ErrorIs(t, err, entity.ErrQuantityTooLarge)
	_, err = cart.Adjust(a.ID, entity.MaxLineQuantity)
	assert.ErrorIs(t, err, entity.ErrQuantityTooLarge)
	assert.Equal(t, 1, cart.Lines[0].Quantity, "a rejected change keeps the line")
	assert.Equal(t, money.FromUnits(100), cart.Subtotal())

	changed, err := cart.Adjust(a.ID, -(1 << 62))
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = cart.Adjust(a.ID, entity.MaxLineQuantity-1)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.ErrorIs(t, cart.Add(a), entity.ErrQuantityTooLarge)
	assert.Equal(t, entity.MaxLineQuantity, cart.Lines[0].Quantity)
}

func TestCartAddRejectsTotalOutOfRange(t *testing.T) {
	t.Parallel()

	pricey := &entity.Product{ID: uuid.New(), Name: "Ouro", SalePrice: money.Max / 2}
	cart := &entity.Cart{}
	require.NoError(t, cart.Add(pricey))
	require.NoError(t, cart.Add(pricey))
	assert.ErrorIs(t, cart.Add(pricey), entity.ErrCartTooLarge)
	assert.Equal(t, 2, cart.Lines[0].Quantity)

	other := &entity.Product{ID: uuid.New(), Name: "Prata", SalePrice: 1}
	assert.ErrorIs(t, cart.Add(other), entity.ErrCartTooLarge)
	assert.Len(t, cart.Lines, 1)
}

func TestCartRemove(t *testing.T) {
	t.Parallel()

	a, b := product("A", 100), product("B", 50)
	cart := &entity.Cart{}
	cart.Add(a)
	cart.Add(b)

	require.NoError(t, cart.Remove(a.ID))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, b.ID, cart.Lines[0].ProductID)
	assert.ErrorIs(t, cart.Remove(a.ID), entity.ErrProductNotInCart)
}

func TestCartDiscount(t *testing.T) {
	t.Parallel()

	manager := uuid.New()
	cart := &entity.Cart{}
	cart.Add(product("A", 100))

	assert.ErrorIs(t, cart.ApplyDiscount(-1, manager), entity.ErrNegativeDiscount)
	assert.ErrorIs(t, cart.ApplyDiscount(money.FromUnits(101), manager), entity.ErrDiscountTooLarge)

	require.NoError(t, cart.ApplyDiscount(money.FromUnits(30), manager))
	assert.Equal(t, money.FromUnits(70), cart.Total())
	require.NotNil(t, cart.DiscountAuthorizedBy)
	assert.Equal(t, manager, *cart.DiscountAuthorizedBy)

	require.NoError(t, cart.ApplyDiscount(0, manager))
	assert.Nil(t, cart.DiscountAuthorizedBy)
}

func TestCartTotalNeverNegative(t *testing.T) {
	t.Parallel()

	a := product("A", 100)
	cart := &entity.Cart{}
	cart.Add(a)
	cart.Add(a)
	require.NoError(t, cart.ApplyDiscount(money.FromUnits(150), uuid.New()))

	_, err := cart.Adjust(a.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, money.Zero, cart.Total())
}

func TestCartCustomer(t *testing.T) {
	t.Parallel()

	cart := &entity.Cart{}
	c := &entity.Customer{ID: uuid.New(), Name: "Maria"}
	cart.AttachCustomer(c)
	require.NotNil(t, cart.CustomerID)
	assert.Equal(t, "Maria", cart.CustomerName)

	cart.DetachCustomer()
	assert.Nil(t, cart.CustomerID)
	assert.Empty(t, cart.CustomerName)
}
