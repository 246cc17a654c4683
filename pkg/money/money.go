package money

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is an exact monetary amount in the smallest currency unit.
// It is stored as a bigint column and travels on the wire as a decimal
// number with two fractional digits (e.g. 250.00).
type Cents int64

// Zero is the zero amount.
const Zero Cents = 0

// Max is the largest amount accepted anywhere: one trillion currency units.
// Keeping inputs below it leaves room for line totals and sums in int64.
const Max Cents = 100_000_000_000_000

// ErrOutOfRange is returned for amounts beyond Max in either direction.
var ErrOutOfRange = errors.New("money: amount out of range")

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(int64(Max))
)

// FromUnits builds an amount from whole currency units.
func FromUnits(units int64) Cents {
	return Cents(units * 100)
}

// FromDecimal converts a decimal amount to cents. Amounts with more than two
// fractional digits are rejected instead of being rounded.
func FromDecimal(d decimal.Decimal) (Cents, error) {
	shifted := d.Mul(hundred)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("money: %s has more than two decimal places", d.String())
	}
	if shifted.Abs().GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, d.String())
	}
	return Cents(shifted.IntPart()), nil
}

// Parse reads an amount such as "250", "250.5" or "1025.00".
func Parse(s string) (Cents, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	return FromDecimal(d)
}

// Round converts a decimal amount to cents rounding half away from zero.
func Round(d decimal.Decimal) Cents {
	return Cents(d.Round(2).Mul(hundred).IntPart())
}

// Decimal returns the amount as a decimal in currency units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String returns the amount with exactly two fractional digits.
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Times multiplies the amount by an integer quantity. Callers that take the
// quantity from input use MulChecked.
func (c Cents) Times(qty int) Cents {
	return c * Cents(qty)
}

// MulChecked multiplies by qty and fails with ErrOutOfRange when the result
// would exceed Max, before any int64 overflow can happen.
func (c Cents) MulChecked(qty int) (Cents, error) {
	if !c.InRange() {
		return 0, ErrOutOfRange
	}
	if c == 0 || qty == 0 {
		return 0, nil
	}
	a, q := int64(c), int64(qty)
	if a < 0 {
		a = -a
	}
	if q < -int64(Max) || q > int64(Max) {
		return 0, ErrOutOfRange
	}
	if q < 0 {
		q = -q
	}
	if q > int64(Max)/a {
		return 0, ErrOutOfRange
	}
	return c * Cents(qty), nil
}

// AddChecked adds two amounts and fails with ErrOutOfRange past Max.
func (c Cents) AddChecked(o Cents) (Cents, error) {
	if !c.InRange() || !o.InRange() {
		return 0, ErrOutOfRange
	}
	sum := c + o
	if !sum.InRange() {
		return 0, ErrOutOfRange
	}
	return sum, nil
}

// InRange reports whether -Max <= c <= Max.
func (c Cents) InRange() bool {
	return c >= -Max && c <= Max
}

// Percent applies a rate (0.02 for 2%) and rounds to the cent.
func (c Cents) Percent(rate decimal.Decimal) Cents {
	return Round(c.Decimal().Mul(rate))
}

// Split divides the amount into n parts that sum exactly to the original;
// the remainder cents are added to the last part.
func (c Cents) Split(n int) []Cents {
	if n <= 0 {
		return nil
	}
	parts := make([]Cents, n)
	base := c / Cents(n)
	for i := range parts {
		parts[i] = base
	}
	parts[n-1] += c - base*Cents(n)
	return parts
}

// BRL formats the amount for receipts, e.g. "R$ 1.025,00".
func (c Cents) BRL() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	units := strconv.FormatInt(int64(c)/100, 10)

	var b strings.Builder
	for i, r := range units {
		if i > 0 && (len(units)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), int64(c)%100)
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (c *Cents) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		*c = 0
		return nil
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
