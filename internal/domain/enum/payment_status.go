package enum

import (
	"database/sql/driver"
	"fmt"

	"github.com/sangkips/optica-api/pkg/money"
)

// PaymentStatus summarizes how much of an order has been paid. It is never
// chosen by a caller; it is always the result of DerivePaymentStatus.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentStatusPending: "Pendente",
	PaymentStatusPartial: "Parcial",
	PaymentStatusPaid:    "Pago",
}

// DerivePaymentStatus maps the paid and total amounts to a status:
// paid >= total is paid, 0 < paid < total is partial, otherwise pending.
func DerivePaymentStatus(paid, total money.Cents) PaymentStatus {
	switch {
	case paid >= total:
		return PaymentStatusPaid
	case paid > 0:
		return PaymentStatusPartial
	default:
		return PaymentStatusPending
	}
}

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	_, ok := paymentStatusLabels[s]
	return ok
}

func (s PaymentStatus) Label() string {
	if label, ok := paymentStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	v, err := decodeCode(data, PaymentStatus.IsValid, "payment status")
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid payment status %q", string(s))
	}
	return string(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	var str string
	switch v := value.(type) {
	case nil:
		*s = PaymentStatusPending
		return nil
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentStatus", value)
	}
	st := PaymentStatus(str)
	if !st.IsValid() {
		return fmt.Errorf("invalid payment status %q in database", str)
	}
	*s = st
	return nil
}
