package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/pkg/money"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var (
	ErrNegativeDiscount  = errors.New("discount must not be negative")
	ErrDiscountTooLarge  = errors.New("discount must not exceed the subtotal")
	ErrProductNotInCart  = errors.New("product is not in the cart")
	ErrProductNotForSale = errors.New("product has no sale price")
	ErrQuantityTooLarge  = errors.New("line quantity is too large")
	ErrCartTooLarge      = errors.New("cart total is out of range")
)

// MaxLineQuantity caps the units of a single product in one cart.
const MaxLineQuantity = 999

// Cart is an open point-of-sale ticket kept on the server until checkout.
type Cart struct {
	ID                   uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	TenantID             uuid.UUID   `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID               uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID           *uuid.UUID  `gorm:"type:uuid" json:"customer_id,omitempty"`
	CustomerName         string      `gorm:"size:255" json:"customer_name,omitempty"`
	Lines                CartLines   `gorm:"not null" json:"lines"`
	Discount             money.Cents `gorm:"not null;default:0" json:"discount"`
	DiscountAuthorizedBy *uuid.UUID  `gorm:"type:uuid" json:"discount_authorized_by,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new cart
func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Lines == nil {
		c.Lines = CartLines{}
	}
	return nil
}

// TableName returns the table name for the Cart model
func (Cart) TableName() string {
	return "carts"
}

// CartLine is one product in a cart. The unit price is frozen when the
// product is first added.
type CartLine struct {
	ProductID uuid.UUID   `json:"product_id"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	UnitPrice money.Cents `json:"unit_price"`
	Quantity  int         `json:"quantity"`
}

func (l CartLine) LineTotal() money.Cents {
	return l.UnitPrice.Times(l.Quantity)
}

// CartLines is stored as a JSON column.
type CartLines []CartLine

func (l CartLines) Value() (driver.Value, error) {
	if l == nil {
		l = CartLines{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *CartLines) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func (CartLines) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

func (c *Cart) find(productID uuid.UUID) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts one unit of p in the cart, bumping the quantity when the product
// is already there. The cart is left unchanged on error.
func (c *Cart) Add(p *Product) error {
	if i := c.find(p.ID); i >= 0 {
		return c.setQuantity(i, c.Lines[i].Quantity+1)
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID: p.ID,
		Code:      p.Code,
		Name:      p.Name,
		UnitPrice: p.SalePrice,
		Quantity:  1,
	})
	if err := c.checkedSubtotal(); err != nil {
		c.Lines = c.Lines[:len(c.Lines)-1]
		return err
	}
	return nil
}

func (c *Cart) setQuantity(i, q int) error {
	if q > MaxLineQuantity {
		return ErrQuantityTooLarge
	}
	prev := c.Lines[i].Quantity
	c.Lines[i].Quantity = q
	if err := c.checkedSubtotal(); err != nil {
		c.Lines[i].Quantity = prev
		return err
	}
	return nil
}

func (c *Cart) checkedSubtotal() error {
	var sum money.Cents
	for _, l := range c.Lines {
		line, err := l.UnitPrice.MulChecked(l.Quantity)
		if err != nil {
			return ErrCartTooLarge
		}
		if sum, err = sum.AddChecked(line); err != nil {
			return ErrCartTooLarge
		}
	}
	return nil
}

func (c *Cart) Remove(productID uuid.UUID) error {
	i := c.find(productID)
	if i < 0 {
		return ErrProductNotInCart
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return nil
}

// Adjust changes a line quantity by delta. A change that would leave fewer
// than one unit is ignored; the result reports whether anything changed.
// Growing a line past MaxLineQuantity fails and leaves it as it was.
func (c *Cart) Adjust(productID uuid.UUID, delta int) (bool, error) {
	i := c.find(productID)
	if i < 0 {
		return false, ErrProductNotInCart
	}
	if delta > MaxLineQuantity {
		return false, ErrQuantityTooLarge
	}
	if delta == 0 || delta < 1-c.Lines[i].Quantity {
		return false, nil
	}
	if err := c.setQuantity(i, c.Lines[i].Quantity+delta); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cart) AttachCustomer(customer *Customer) {
	id := customer.ID
	c.CustomerID = &id
	c.CustomerName = customer.Name
}

func (c *Cart) DetachCustomer() {
	c.CustomerID = nil
	c.CustomerName = ""
}

func (c *Cart) Subtotal() money.Cents {
	var sum money.Cents
	for _, l := range c.Lines {
		sum += l.LineTotal()
	}
	return sum
}

// Total is the subtotal minus the discount, never below zero.
func (c *Cart) Total() money.Cents {
	total := c.Subtotal() - c.Discount
	if total < 0 {
		return 0
	}
	return total
}

// ApplyDiscount sets the discount. Authorization is checked by the caller.
func (c *Cart) ApplyDiscount(amount money.Cents, authorizedBy uuid.UUID) error {
	if amount < 0 {
		return ErrNegativeDiscount
	}
	if amount > c.Subtotal() {
		return ErrDiscountTooLarge
	}
	c.Discount = amount
	if amount == 0 {
		c.DiscountAuthorizedBy = nil
		return nil
	}
	c.DiscountAuthorizedBy = &authorizedBy
	return nil
}

// Quantities sums the units per product, for stock decrements.
func (c *Cart) Quantities() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(c.Lines))
	for _, l := range c.Lines {
		out[l.ProductID] += l.Quantity
	}
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
