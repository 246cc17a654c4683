// Package billing holds the receivables math: overdue interest on open
// orders and the installment slip ("carnê") offered to settle them.
package billing

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/shopspring/decimal"
)

// Terms are the store's credit terms.
type Terms struct {
	TermDays     int             // days after the order date before it is overdue
	PenaltyRate  decimal.Decimal // flat rate charged once overdue, 0.02 = 2%
	MonthlyRate  decimal.Decimal // pro-rata rate per 30 days overdue
	Installments int             // parts of a payment slip
}

func DefaultTerms() Terms {
	return Terms{
		TermDays:     30,
		PenaltyRate:  decimal.RequireFromString("0.02"),
		MonthlyRate:  decimal.RequireFromString("0.01"),
		Installments: 3,
	}
}

// Debt is one unpaid order as seen by the receivables report.
type Debt struct {
	OrderID      uuid.UUID          `json:"order_id"`
	OrderNumber  string             `json:"order_number"`
	CustomerID   uuid.UUID          `json:"customer_id"`
	CustomerName string             `json:"customer_name"`
	OrderDate    entity.Date        `json:"order_date"`
	DueDate      entity.Date        `json:"due_date"`
	DaysOverdue  int                `json:"days_overdue"`
	Total        money.Cents        `json:"total"`
	Paid         money.Cents        `json:"paid"`
	Interest     money.Cents        `json:"interest"`
	AmountDue    money.Cents        `json:"amount_due"`
	Status       enum.PaymentStatus `json:"payment_status"`
}

// Interest charged on total after daysOverdue days. Zero unless overdue.
func (t Terms) Interest(total money.Cents, daysOverdue int) money.Cents {
	if daysOverdue <= 0 {
		return 0
	}
	base := total.Decimal()
	penalty := base.Mul(t.PenaltyRate)
	monthly := base.Mul(t.MonthlyRate).Mul(decimal.NewFromInt(int64(daysOverdue))).Div(decimal.NewFromInt(30))
	return money.Round(penalty.Add(monthly))
}

// Assess computes the debt of a single order as of today.
func (t Terms) Assess(o *entity.Order, today entity.Date) Debt {
	due := o.Date.AddDays(t.TermDays)
	days := today.DaysSince(due)
	if days < 0 {
		days = 0
	}
	interest := t.Interest(o.TotalAmount, days)

	return Debt{
		OrderID:      o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		OrderDate:    o.Date,
		DueDate:      due,
		DaysOverdue:  days,
		Total:        o.TotalAmount,
		Paid:         o.PaidAmount,
		Interest:     interest,
		AmountDue:    o.TotalAmount + interest,
		Status:       o.PaymentStatus,
	}
}

// Report lists every order that is not fully paid, most overdue first.
func (t Terms) Report(orders []entity.Order, today entity.Date) []Debt {
	debts := make([]Debt, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		if enum.DerivePaymentStatus(o.PaidAmount, o.TotalAmount) == enum.PaymentStatusPaid {
			continue
		}
		debts = append(debts, t.Assess(o, today))
	}

	sort.SliceStable(debts, func(i, j int) bool {
		if debts[i].DaysOverdue != debts[j].DaysOverdue {
			return debts[i].DaysOverdue > debts[j].DaysOverdue
		}
		return debts[i].OrderDate.Before(debts[j].OrderDate)
	})
	return debts
}

// Totals aggregates a report.
type Totals struct {
	Count     int         `json:"count"`
	Overdue   int         `json:"overdue"`
	Total     money.Cents `json:"total"`
	Interest  money.Cents `json:"interest"`
	AmountDue money.Cents `json:"amount_due"`
}

func Summarize(debts []Debt) Totals {
	var s Totals
	for _, d := range debts {
		s.Count++
		if d.DaysOverdue > 0 {
			s.Overdue++
		}
		s.Total += d.Total
		s.Interest += d.Interest
		s.AmountDue += d.AmountDue
	}
	return s
}

// Installment is one part of a payment slip.
type Installment struct {
	Sequence int         `json:"sequence"`
	Number   string      `json:"number"`
	DueDate  entity.Date `json:"due_date"`
	Amount   money.Cents `json:"amount"`
}

// PaymentSlip splits the amount due of a debt into installments.
type PaymentSlip struct {
	OrderID      uuid.UUID     `json:"order_id"`
	OrderNumber  string        `json:"order_number"`
	CustomerName string        `json:"customer_name"`
	IssuedOn     entity.Date   `json:"issued_on"`
	AmountDue    money.Cents   `json:"amount_due"`
	Installments []Installment `json:"installments"`
}

// Slip builds the payment slip for d. Installment i falls due
// TermDays*i days after today; the last one absorbs the cent remainder.
func (t Terms) Slip(d Debt, today entity.Date) PaymentSlip {
	n := t.Installments
	if n < 1 {
		n = 1
	}
	parts := d.AmountDue.Split(n)
	installments := make([]Installment, n)
	for i, amount := range parts {
		seq := i + 1
		installments[i] = Installment{
			Sequence: seq,
			Number:   fmt.Sprintf("%s/%d", d.OrderNumber, seq),
			DueDate:  today.AddDays(t.TermDays * seq),
			Amount:   amount,
		}
	}

	return PaymentSlip{
		OrderID:      d.OrderID,
		OrderNumber:  d.OrderNumber,
		CustomerName: d.CustomerName,
		IssuedOn:     today,
		AmountDue:    d.AmountDue,
		Installments: installments,
	}
}
