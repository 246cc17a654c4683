package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/pkg/apperror"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/sangkips/optica-api/pkg/utils"
	"github.com/sangkips/optica-api/pkg/validation"
)

// Actor is the signed-in user performing an operation.
type Actor struct {
	UserID uuid.UUID
	Name   string
	Role   enum.UserRole
}

// POSService runs the point-of-sale: server-side carts and checkout.
type POSService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	txnRepo      repository.FinancialTransactionRepository
	movementRepo repository.StockMovementRepository
	tenants      *TenantService
	transactor   repository.Transactor
	calendar     *Calendar
	searchLimit  int
}

// NewPOSService creates a new point-of-sale service
func NewPOSService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	txnRepo repository.FinancialTransactionRepository,
	movementRepo repository.StockMovementRepository,
	tenants *TenantService,
	transactor repository.Transactor,
	calendar *Calendar,
	searchLimit int,
) *POSService {
	if searchLimit <= 0 {
		searchLimit = 5
	}
	return &POSService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		txnRepo:      txnRepo,
		movementRepo: movementRepo,
		tenants:      tenants,
		transactor:   transactor,
		calendar:     calendar,
		searchLimit:  searchLimit,
	}
}

// OpenCart starts a new empty sale for the actor
func (s *POSService) OpenCart(ctx context.Context, actor Actor) (*entity.Cart, error) {
	cart := &entity.Cart{UserID: actor.UserID, Lines: entity.CartLines{}}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart returns one of the actor's open carts
func (s *POSService) GetCart(ctx context.Context, actor Actor, cartID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.UserID != actor.UserID {
		return nil, apperror.NewNotFoundError("Cart")
	}
	return cart, nil
}

// ListCarts returns the actor's open carts, newest first
func (s *POSService) ListCarts(ctx context.Context, actor Actor) ([]entity.Cart, error) {
	return s.cartRepo.ListByUser(ctx, actor.UserID)
}

// DiscardCart drops an open sale without writing anything else
func (s *POSService) DiscardCart(ctx context.Context, actor Actor, cartID uuid.UUID) error {
	if _, err := s.GetCart(ctx, actor, cartID); err != nil {
		return err
	}
	removed, err := s.cartRepo.Delete(ctx, cartID)
	if err != nil {
		return err
	}
	if !removed {
		return apperror.NewNotFoundError("Cart")
	}
	return nil
}

// SearchProducts finds products by name, code or barcode
func (s *POSService) SearchProducts(ctx context.Context, query string) ([]entity.Product, error) {
	if strings.TrimSpace(query) == "" {
		return []entity.Product{}, nil
	}
	return s.productRepo.Search(ctx, query, s.searchLimit)
}

func (s *POSService) mutate(ctx context.Context, actor Actor, cartID uuid.UUID, fn func(*entity.Cart) error) (*entity.Cart, error) {
	cart, err := s.GetCart(ctx, actor, cartID)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, cartError(err)
	}
	// a line change can push an existing discount over the subtotal
	if cart.Discount > cart.Subtotal() {
		cart.Discount = cart.Subtotal()
	}
	if err := s.cartRepo.Update(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func cartError(err error) error {
	switch {
	case errors.Is(err, entity.ErrProductNotInCart):
		return apperror.NewNotFoundError("Product in cart")
	case errors.Is(err, entity.ErrProductNotForSale):
		return apperror.NewFieldError("product_id", err.Error())
	case errors.Is(err, entity.ErrNegativeDiscount), errors.Is(err, entity.ErrDiscountTooLarge):
		return apperror.NewFieldError("discount", err.Error())
	case errors.Is(err, entity.ErrQuantityTooLarge), errors.Is(err, entity.ErrCartTooLarge):
		return apperror.NewFieldError("quantity", err.Error())
	}
	return err
}

// AddLine puts one unit of a product in the cart
func (s *POSService) AddLine(ctx context.Context, actor Actor, cartID, productID uuid.UUID) (*entity.Cart, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return s.mutate(ctx, actor, cartID, func(c *entity.Cart) error {
		if product.SalePrice <= 0 {
			return entity.ErrProductNotForSale
		}
		return c.Add(product)
	})
}

// RemoveLine drops a product from the cart
func (s *POSService) RemoveLine(ctx context.Context, actor Actor, cartID, productID uuid.UUID) (*entity.Cart, error) {
	return s.mutate(ctx, actor, cartID, func(c *entity.Cart) error {
		return c.Remove(productID)
	})
}

// AdjustQuantity changes a line by delta; a change that would leave less
// than one unit is ignored.
func (s *POSService) AdjustQuantity(ctx context.Context, actor Actor, cartID, productID uuid.UUID, delta int) (*entity.Cart, error) {
	return s.mutate(ctx, actor, cartID, func(c *entity.Cart) error {
		_, err := c.Adjust(productID, delta)
		return err
	})
}

// AttachCustomer links the sale to a customer
func (s *POSService) AttachCustomer(ctx context.Context, actor Actor, cartID, customerID uuid.UUID) (*entity.Cart, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return s.mutate(ctx, actor, cartID, func(c *entity.Cart) error {
		c.AttachCustomer(customer)
		return nil
	})
}

func (s *POSService) DetachCustomer(ctx context.Context, actor Actor, cartID uuid.UUID) (*entity.Cart, error) {
	return s.mutate(ctx, actor, cartID, func(c *entity.Cart) error {
		c.DetachCustomer()
		return nil
	})
}

// ApplyDiscount sets the cart discount. Owners and managers authorize it
// themselves; sellers need the store's manager PIN. Clearing a discount
// needs no authorization.
func (s *POSService) ApplyDiscount(ctx context.Context, actor Actor, cartID uuid.UUID, amount money.Cents, pin string) (*entity.Cart, error) {
	if amount > 0 && !actor.Role.CanAuthorizeDiscount() {
		ok, err := s.tenants.VerifyManagerPIN(ctx, pin)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.ErrManagerApproval
		}
	}
	return s.mutate(ctx, actor, cartID, func(c *entity.Cart) error {
		return c.ApplyDiscount(amount, actor.UserID)
	})
}

// CheckoutResult is what a settled sale produced.
type CheckoutResult struct {
	Order       *entity.Order
	Transaction *entity.FinancialTransaction
	Subtotal    money.Cents
	Discount    money.Cents
}

// Checkout settles the cart in one database transaction: cart removal,
// stock decrement, order with items, sold counts and movements, ledger
// entry. Any failure rolls back everything. The cart row is removed first
// and must still exist, so only one of two concurrent checkouts wins.
func (s *POSService) Checkout(ctx context.Context, actor Actor, cartID uuid.UUID, method enum.PaymentMethod) (*CheckoutResult, error) {
	cart, err := s.GetCart(ctx, actor, cartID)
	if err != nil {
		return nil, err
	}

	v := validation.Violations{}
	if cart.CustomerID == nil {
		v.Add("customer_id", "a customer must be attached to the sale")
	}
	if cart.IsEmpty() {
		v.Add("lines", "the cart is empty")
	}
	if !method.IsValid() {
		v.Add("payment_method", "must be credit, debit, cash, pix or boleto")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, *cart.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewFieldError("customer_id", "customer not found")
	}

	result := &CheckoutResult{Subtotal: cart.Subtotal(), Discount: cart.Discount}
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		claimed, err := s.cartRepo.Delete(txCtx, cart.ID)
		if err != nil {
			return err
		}
		if !claimed {
			return apperror.NewConflictError("Cart was already checked out")
		}

		quantities := cart.Quantities()
		products, err := s.loadProducts(txCtx, quantities)
		if err != nil {
			return err
		}

		tracked := make(map[uuid.UUID]int, len(quantities))
		for id, qty := range quantities {
			if products[id].Category.Tracked() {
				tracked[id] = qty
			}
		}

		failed, err := s.productRepo.AtomicDecrementBatch(txCtx, tracked)
		if err != nil {
			return err
		}
		if len(failed) > 0 {
			names := make([]string, 0, len(failed))
			for _, id := range failed {
				names = append(names, products[id].Name)
			}
			return apperror.NewConflictError(fmt.Sprintf("Insufficient stock for: %s", strings.Join(names, ", ")))
		}

		order := s.buildOrder(cart, customer)
		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return err
		}

		if err := s.productRepo.IncrementSoldCount(txCtx, quantities); err != nil {
			return err
		}
		if err := s.recordSaleMovements(txCtx, actor, order, tracked); err != nil {
			return err
		}

		orderID := order.ID
		userID := actor.UserID
		txn := &entity.FinancialTransaction{
			Date:          order.Date,
			Description:   "Venda PDV - " + customer.Name,
			Type:          enum.TransactionTypeIn,
			Category:      enum.TransactionCategorySales,
			Amount:        order.TotalAmount,
			Status:        enum.TransactionStatusPaid,
			PaymentMethod: &method,
			OrderID:       &orderID,
			UserID:        &userID,
		}
		if err := s.txnRepo.Create(txCtx, txn); err != nil {
			return err
		}

		result.Order = order
		result.Transaction = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *POSService) loadProducts(ctx context.Context, quantities map[uuid.UUID]int) (map[uuid.UUID]entity.Product, error) {
	ids := make([]uuid.UUID, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	list, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	products := make(map[uuid.UUID]entity.Product, len(list))
	for _, p := range list {
		products[p.ID] = p
	}
	if len(products) != len(quantities) {
		return nil, apperror.NewConflictError("Some products in the cart are no longer available")
	}
	return products, nil
}

func (s *POSService) buildOrder(cart *entity.Cart, customer *entity.Customer) *entity.Order {
	today := s.calendar.Today()
	names := make([]string, 0, len(cart.Lines))
	items := make([]entity.OrderItem, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		names = append(names, l.Name)
		items = append(items, entity.OrderItem{
			ProductID:   l.ProductID,
			ProductCode: l.Code,
			ProductName: l.Name,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			LineTotal:   l.LineTotal(),
		})
	}

	order := &entity.Order{
		OrderNumber:  utils.GenerateOrderNumber(s.calendar.Now()),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Date:         today,
		Status:       enum.OrderStatusPending,
		FrameModel:   strings.Join(names, ", "),
		LensType:     entity.NotInformed,
		DeliveryDate: today,
		Source:       enum.OrderSourcePOS,
		Items:        items,
	}
	total := cart.Total()
	order.ApplyAmounts(total, total)
	return order
}

func (s *POSService) recordSaleMovements(ctx context.Context, actor Actor, order *entity.Order, sold map[uuid.UUID]int) error {
	if len(sold) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(sold))
	for id := range sold {
		ids = append(ids, id)
	}
	after, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	orderID := order.ID
	movements := make([]entity.StockMovement, 0, len(after))
	for _, p := range after {
		qty := sold[p.ID]
		movements = append(movements, entity.StockMovement{
			ProductID:   p.ID,
			OrderID:     &orderID,
			UserID:      actor.UserID,
			Kind:        enum.MovementKindSale,
			Quantity:    -qty,
			LevelBefore: p.StockLevel + qty,
			LevelAfter:  p.StockLevel,
			Note:        order.OrderNumber,
		})
	}
	return s.movementRepo.CreateBatch(ctx, movements)
}
