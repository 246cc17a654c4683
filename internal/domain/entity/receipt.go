package entity

import "github.com/sangkips/optica-api/pkg/money"

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Document  string `json:"document,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	UnitPrice money.Cents `json:"unit_price"`
	Total     money.Cents `json:"total"`
}

// Receipt is composed from an order and its ledger entry at print time; it
// is not stored.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	OrderNumber   string        `json:"order_number"`
	Date          Date          `json:"date"`
	Seller        string        `json:"seller,omitempty"`
	Customer      string        `json:"customer"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Items         []ReceiptItem `json:"items"`
	Subtotal      money.Cents   `json:"subtotal"`
	Discount      money.Cents   `json:"discount"`
	Total         money.Cents   `json:"total"`
	Paid          money.Cents   `json:"paid"`
	Balance       money.Cents   `json:"balance"`
}
