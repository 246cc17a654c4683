package service

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/billing"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/pkg/apperror"
	"github.com/sangkips/optica-api/pkg/email"
)

// DebtService computes overdue interest on open orders and the installment
// slips offered to settle them. It never writes orders or ledger entries.
type DebtService struct {
	terms        billing.Terms
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	tenantRepo   repository.TenantRepository
	mailer       email.Sender
	calendar     *Calendar
}

// NewDebtService creates a new debt service. mailer may be nil.
func NewDebtService(
	terms billing.Terms,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	tenantRepo repository.TenantRepository,
	mailer email.Sender,
	calendar *Calendar,
) *DebtService {
	return &DebtService{
		terms:        terms,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		tenantRepo:   tenantRepo,
		mailer:       mailer,
		calendar:     calendar,
	}
}

// DebtReport is the receivables report as of a day
type DebtReport struct {
	Today  entity.Date    `json:"today"`
	Debts  []billing.Debt `json:"debts"`
	Totals billing.Totals `json:"totals"`
}

// Report lists every order not fully paid, most overdue first
func (s *DebtService) Report(ctx context.Context) (*DebtReport, error) {
	if _, err := tenantOf(ctx); err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListUnpaid(ctx)
	if err != nil {
		return nil, err
	}
	today := s.calendar.Today()
	debts := s.terms.Report(orders, today)
	return &DebtReport{Today: today, Debts: debts, Totals: billing.Summarize(debts)}, nil
}

// Slip builds the installment slip of an unpaid order
func (s *DebtService) Slip(ctx context.Context, orderID uuid.UUID) (*billing.PaymentSlip, error) {
	slip, _, err := s.slip(ctx, orderID)
	return slip, err
}

func (s *DebtService) slip(ctx context.Context, orderID uuid.UUID) (*billing.PaymentSlip, *entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, apperror.NewNotFoundError("Order")
	}
	if enum.DerivePaymentStatus(order.PaidAmount, order.TotalAmount) == enum.PaymentStatusPaid {
		return nil, nil, apperror.NewConflictError("Order is fully paid")
	}

	today := s.calendar.Today()
	slip := s.terms.Slip(s.terms.Assess(order, today), today)
	return &slip, order, nil
}

// EmailSlip sends the slip to the customer's e-mail address
func (s *DebtService) EmailSlip(ctx context.Context, orderID uuid.UUID) (*billing.PaymentSlip, error) {
	slip, order, err := s.slip(ctx, orderID)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.Email == nil || *customer.Email == "" {
		return nil, apperror.NewFieldError("email", "customer has no e-mail address")
	}
	if s.mailer == nil {
		return nil, apperror.NewAppError(http.StatusServiceUnavailable, "E-mail is not configured")
	}

	msg := email.SlipMessage{
		CustomerName: customer.Name,
		OrderNumber:  slip.OrderNumber,
		AmountDue:    slip.AmountDue.BRL(),
	}
	if tenant, err := s.tenantRepo.GetByID(ctx, order.TenantID); err == nil && tenant != nil {
		msg.StoreName = tenant.Name
	}
	for _, inst := range slip.Installments {
		msg.Installments = append(msg.Installments, email.SlipInstallment{
			Number:  inst.Number,
			DueDate: inst.DueDate.BR(),
			Amount:  inst.Amount.BRL(),
		})
	}

	if err := s.mailer.SendSlip(*customer.Email, msg); err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			return nil, apperror.NewAppError(http.StatusServiceUnavailable, "E-mail is not configured")
		}
		log.Printf("Warning: slip e-mail for %s failed: %v", slip.OrderNumber, err)
		return nil, apperror.NewAppError(http.StatusBadGateway, "Could not send the e-mail")
	}
	return slip, nil
}
