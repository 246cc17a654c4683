package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	domainrepo "github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/internal/infrastructure/repository"
	"github.com/sangkips/optica-api/pkg/apperror"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sale builds the cart [(A,100,2),(B,50,1)].
func sale(t *testing.T, f *fixture, stockA, stockB int) (*entity.Cart, *entity.Product, *entity.Product) {
	t.Helper()
	a := f.product(t, "Armação A", enum.ProductCategoryFrame, 100, stockA)
	b := f.product(t, "Estojo B", enum.ProductCategoryAccessory, 50, stockB)

	actor := f.actor(f.seller)
	cart, err := f.pos.OpenCart(f.ctx, actor)
	require.NoError(t, err)
	_, err = f.pos.AddLine(f.ctx, actor, cart.ID, a.ID)
	require.NoError(t, err)
	_, err = f.pos.AddLine(f.ctx, actor, cart.ID, a.ID)
	require.NoError(t, err)
	cart, err = f.pos.AddLine(f.ctx, actor, cart.ID, b.ID)
	require.NoError(t, err)
	return cart, a, b
}

func TestCartTotals(t *testing.T) {
	f := newFixture(t)
	cart, a, _ := sale(t, f, 10, 10)

	assert.Equal(t, money.FromUnits(250), cart.Subtotal())
	assert.Equal(t, money.FromUnits(250), cart.Total())
	assert.Equal(t, 2, cart.Quantities()[a.ID])
}

func TestCheckoutSettlesSale(t *testing.T) {
	f := newFixture(t)
	cart, a, b := sale(t, f, 5, 3)
	c := f.customer(t, "Maria Silva")
	actor := f.actor(f.seller)

	_, err := f.pos.AttachCustomer(f.ctx, actor, cart.ID, c.ID)
	require.NoError(t, err)

	result, err := f.pos.Checkout(f.ctx, actor, cart.ID, enum.PaymentMethodPix)
	require.NoError(t, err)

	order := result.Order
	assert.Equal(t, enum.OrderStatusPending, order.Status)
	assert.Equal(t, enum.OrderSourcePOS, order.Source)
	assert.Equal(t, money.FromUnits(250), order.TotalAmount)
	assert.Equal(t, money.FromUnits(250), order.PaidAmount)
	assert.Equal(t, enum.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, c.ID, order.CustomerID)
	assert.Len(t, order.Items, 2)

	txn := result.Transaction
	assert.Equal(t, enum.TransactionTypeIn, txn.Type)
	assert.Equal(t, enum.TransactionCategorySales, txn.Category)
	assert.Equal(t, money.FromUnits(250), txn.Amount)
	assert.Equal(t, enum.TransactionStatusPaid, txn.Status)
	assert.Equal(t, "Venda PDV - Maria Silva", txn.Description)
	require.NotNil(t, txn.OrderID)
	assert.Equal(t, order.ID, *txn.OrderID)

	assert.Equal(t, 3, f.reload(t, a.ID).StockLevel)
	assert.Equal(t, 2, f.reload(t, b.ID).StockLevel)
	assert.Equal(t, 2, f.reload(t, a.ID).SoldCount)
	assert.Equal(t, 1, f.reload(t, b.ID).SoldCount)

	assert.EqualValues(t, 1, f.count(t, &entity.Order{}))
	assert.EqualValues(t, 1, f.count(t, &entity.FinancialTransaction{}))
	assert.EqualValues(t, 0, f.count(t, &entity.Cart{}))

	// two restock movements from creation plus two sale movements
	assert.EqualValues(t, 4, f.count(t, &entity.StockMovement{}))
}

func TestCheckoutWithoutCustomerWritesNothing(t *testing.T) {
	f := newFixture(t)
	cart, a, b := sale(t, f, 5, 3)

	_, err := f.pos.Checkout(f.ctx, f.actor(f.seller), cart.ID, enum.PaymentMethodCash)
	assert.Equal(t, 422, appCode(t, err))
	assert.Contains(t, fieldsOf(err), "customer_id")

	assert.EqualValues(t, 0, f.count(t, &entity.Order{}))
	assert.EqualValues(t, 0, f.count(t, &entity.FinancialTransaction{}))
	assert.EqualValues(t, 1, f.count(t, &entity.Cart{}))
	assert.Equal(t, 5, f.reload(t, a.ID).StockLevel)
	assert.Equal(t, 3, f.reload(t, b.ID).StockLevel)
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t)
	cart, a, b := sale(t, f, 1, 3)
	c := f.customer(t, "João")
	actor := f.actor(f.seller)
	_, err := f.pos.AttachCustomer(f.ctx, actor, cart.ID, c.ID)
	require.NoError(t, err)

	_, err = f.pos.Checkout(f.ctx, actor, cart.ID, enum.PaymentMethodCash)
	assert.Equal(t, 409, appCode(t, err))
	assert.Contains(t, err.Error(), "Armação A")

	assert.Equal(t, 1, f.reload(t, a.ID).StockLevel)
	assert.Equal(t, 3, f.reload(t, b.ID).StockLevel)
	assert.Zero(t, f.reload(t, b.ID).SoldCount)
	assert.EqualValues(t, 0, f.count(t, &entity.Order{}))
	assert.EqualValues(t, 0, f.count(t, &entity.FinancialTransaction{}))
	assert.EqualValues(t, 1, f.count(t, &entity.Cart{}))
}

func TestCheckoutSkipsStockForServices(t *testing.T) {
	f := newFixture(t)
	fitting := f.product(t, "Ajuste", enum.ProductCategoryService, 30, 0)
	c := f.customer(t, "Ana")
	actor := f.actor(f.seller)

	cart, err := f.pos.OpenCart(f.ctx, actor)
	require.NoError(t, err)
	_, err = f.pos.AddLine(f.ctx, actor, cart.ID, fitting.ID)
	require.NoError(t, err)
	_, err = f.pos.AttachCustomer(f.ctx, actor, cart.ID, c.ID)
	require.NoError(t, err)

	_, err = f.pos.Checkout(f.ctx, actor, cart.ID, enum.PaymentMethodDebit)
	require.NoError(t, err)

	got := f.reload(t, fitting.ID)
	assert.Zero(t, got.StockLevel)
	assert.Equal(t, 1, got.SoldCount)
}

func TestApplyDiscount(t *testing.T) {
	f := newFixture(t)
	cart, _, _ := sale(t, f, 5, 5)
	seller := f.actor(f.seller)

	t.Run("seller without PIN is refused", func(t *testing.T) {
		_, err := f.pos.ApplyDiscount(f.ctx, seller, cart.ID, money.FromUnits(20), "")
		assert.ErrorIs(t, err, apperror.ErrManagerApproval)
	})

	require.NoError(t, f.tenants.SetManagerPIN(f.ctx, "4321"))

	t.Run("seller with wrong PIN is refused", func(t *testing.T) {
		_, err := f.pos.ApplyDiscount(f.ctx, seller, cart.ID, money.FromUnits(20), "0000")
		assert.ErrorIs(t, err, apperror.ErrManagerApproval)
	})

	t.Run("seller with manager PIN", func(t *testing.T) {
		got, err := f.pos.ApplyDiscount(f.ctx, seller, cart.ID, money.FromUnits(20), "4321")
		require.NoError(t, err)
		assert.Equal(t, money.FromUnits(230), got.Total())
	})

	t.Run("owner needs no PIN", func(t *testing.T) {
		owned, err := f.pos.OpenCart(f.ctx, f.actor(f.owner))
		require.NoError(t, err)
		p := f.product(t, "Lente", enum.ProductCategoryLens, 300, 2)
		_, err = f.pos.AddLine(f.ctx, f.actor(f.owner), owned.ID, p.ID)
		require.NoError(t, err)
		got, err := f.pos.ApplyDiscount(f.ctx, f.actor(f.owner), owned.ID, money.FromUnits(50), "")
		require.NoError(t, err)
		assert.Equal(t, money.FromUnits(250), got.Total())
	})

	t.Run("discount above subtotal", func(t *testing.T) {
		_, err := f.pos.ApplyDiscount(f.ctx, seller, cart.ID, money.FromUnits(1000), "4321")
		assert.Equal(t, 422, appCode(t, err))
	})

	t.Run("clearing needs no PIN", func(t *testing.T) {
		got, err := f.pos.ApplyDiscount(f.ctx, seller, cart.ID, 0, "")
		require.NoError(t, err)
		assert.Equal(t, money.FromUnits(250), got.Total())
	})
}

func TestCheckoutAppliesDiscount(t *testing.T) {
	f := newFixture(t)
	cart, _, _ := sale(t, f, 5, 5)
	c := f.customer(t, "Carla")
	owner := f.actor(f.owner)

	// carts belong to the seller who opened them
	_, err := f.pos.GetCart(f.ctx, owner, cart.ID)
	assert.Equal(t, 404, appCode(t, err))

	seller := f.actor(f.seller)
	require.NoError(t, f.tenants.SetManagerPIN(f.ctx, "1234"))
	_, err = f.pos.ApplyDiscount(f.ctx, seller, cart.ID, money.FromUnits(25), "1234")
	require.NoError(t, err)
	_, err = f.pos.AttachCustomer(f.ctx, seller, cart.ID, c.ID)
	require.NoError(t, err)

	result, err := f.pos.Checkout(f.ctx, seller, cart.ID, enum.PaymentMethodCredit)
	require.NoError(t, err)
	assert.Equal(t, money.FromUnits(250), result.Subtotal)
	assert.Equal(t, money.FromUnits(25), result.Discount)
	assert.Equal(t, money.FromUnits(225), result.Order.TotalAmount)
	assert.Equal(t, money.FromUnits(225), result.Transaction.Amount)
}

func TestAdjustQuantityKeepsAtLeastOne(t *testing.T) {
	f := newFixture(t)
	cart, a, _ := sale(t, f, 5, 5)
	seller := f.actor(f.seller)

	got, err := f.pos.AdjustQuantity(f.ctx, seller, cart.ID, a.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantities()[a.ID])

	got, err = f.pos.AdjustQuantity(f.ctx, seller, cart.ID, a.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantities()[a.ID])

	got, err = f.pos.RemoveLine(f.ctx, seller, cart.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, money.FromUnits(50), got.Subtotal())
}

func TestSearchProducts(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"Ray-Ban 1", "Ray-Ban 2", "Ray-Ban 3", "Ray-Ban 4", "Ray-Ban 5", "Ray-Ban 6"} {
		f.product(t, name, enum.ProductCategoryFrame, 100, 1)
	}

	found, err := f.pos.SearchProducts(f.ctx, "ray")
	require.NoError(t, err)
	assert.Len(t, found, 5)

	empty, err := f.pos.SearchProducts(f.ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// staleCarts serves a cart as it was before it was checked out, the view a
// second request gets when it read the cart just before the first commit.
type staleCarts struct {
	domainrepo.CartRepository
	seen map[uuid.UUID]entity.Cart
}

func (s *staleCarts) GetByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	if c, ok := s.seen[id]; ok {
		return &c, nil
	}
	cart, err := s.CartRepository.GetByID(ctx, id)
	if err == nil && cart != nil {
		s.seen[id] = *cart
	}
	return cart, err
}

func TestCheckoutSameCartTwice(t *testing.T) {
	f := newFixture(t)
	cart, a, b := sale(t, f, 5, 3)
	c := f.customer(t, "Maria Silva")
	actor := f.actor(f.seller)
	_, err := f.pos.AttachCustomer(f.ctx, actor, cart.ID, c.ID)
	require.NoError(t, err)

	carts := &staleCarts{CartRepository: repository.NewCartRepository(f.db), seen: map[uuid.UUID]entity.Cart{}}
	pos := service.NewPOSService(
		carts,
		repository.NewProductRepository(f.db),
		repository.NewCustomerRepository(f.db),
		repository.NewOrderRepository(f.db),
		repository.NewFinancialTransactionRepository(f.db),
		repository.NewStockMovementRepository(f.db),
		f.tenants,
		repository.NewTransactor(f.db),
		f.calendar,
		5,
	)

	_, err = pos.Checkout(f.ctx, actor, cart.ID, enum.PaymentMethodPix)
	require.NoError(t, err)

	_, err = pos.Checkout(f.ctx, actor, cart.ID, enum.PaymentMethodPix)
	assert.Equal(t, http.StatusConflict, appCode(t, err))

	assert.EqualValues(t, 1, f.count(t, &entity.Order{}))
	assert.EqualValues(t, 1, f.count(t, &entity.FinancialTransaction{}))
	assert.Equal(t, 3, f.reload(t, a.ID).StockLevel)
	assert.Equal(t, 2, f.reload(t, b.ID).StockLevel)
	assert.Equal(t, 2, f.reload(t, a.ID).SoldCount)

	err = pos.DiscardCart(f.ctx, actor, cart.ID)
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}

func TestAdjustQuantityRejectsHugeDelta(t *testing.T) {
	f := newFixture(t)
	cart, a, _ := sale(t, f, 10, 10)
	actor := f.actor(f.seller)

	_, err := f.pos.AdjustQuantity(f.ctx, actor, cart.ID, a.ID, 1<<62)
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))
	assert.ElementsMatch(t, []string{"quantity"}, fieldsOf(err))

	got, err := f.pos.GetCart(f.ctx, actor, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantities()[a.ID])
	assert.Equal(t, money.FromUnits(250), got.Subtotal())
}
