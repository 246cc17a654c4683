package enum

import (
	"database/sql/driver"
	"fmt"
)

// OrderStatus is the fulfillment state of a service order. Values are stable
// identifiers; use Label for display text.
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusSentToLab       OrderStatus = "sent_to_lab"
	OrderStatusReceivedAtStore OrderStatus = "received_at_store"
	OrderStatusDelivered       OrderStatus = "delivered"
)

// orderFlow is the only allowed sequence; there are no branches or backward steps.
var orderFlow = []OrderStatus{
	OrderStatusPending,
	OrderStatusSentToLab,
	OrderStatusReceivedAtStore,
	OrderStatusDelivered,
}

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:         "Falta Enviar",
	OrderStatusSentToLab:       "No Laboratório",
	OrderStatusReceivedAtStore: "Na Loja",
	OrderStatusDelivered:       "Entregue",
}

// OrderStatuses returns the states in flow order.
func OrderStatuses() []OrderStatus {
	return append([]OrderStatus(nil), orderFlow...)
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// Label returns the pt-BR display text.
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Next returns the state that follows s. The second result is false for the
// terminal state and for unknown states, which cannot be advanced.
func (s OrderStatus) Next() (OrderStatus, bool) {
	for i, st := range orderFlow {
		if st == s && i+1 < len(orderFlow) {
			return orderFlow[i+1], true
		}
	}
	return s, false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	v, err := decodeCode(data, OrderStatus.IsValid, "order status")
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid order status %q", string(s))
	}
	return string(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	var str string
	switch v := value.(type) {
	case nil:
		*s = OrderStatusPending
		return nil
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", value)
	}
	st := OrderStatus(str)
	if !st.IsValid() {
		return fmt.Errorf("invalid order status %q in database", str)
	}
	*s = st
	return nil
}

// OrderSource tells where an order was created.
type OrderSource string

const (
	// OrderSourceCounter is a service order typed at the counter.
	OrderSourceCounter OrderSource = "counter"
	// OrderSourcePOS is a sale settled at the point-of-sale terminal.
	OrderSourcePOS OrderSource = "pos"
)
