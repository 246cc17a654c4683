package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/pkg/apperror"
	"github.com/sangkips/optica-api/pkg/email"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/sangkips/optica-api/pkg/pagination"
	"github.com/sangkips/optica-api/pkg/utils"
	"github.com/sangkips/optica-api/pkg/validation"
)

// OrderService handles the service order lifecycle
type OrderService struct {
	orderRepo        repository.OrderRepository
	customerRepo     repository.CustomerRepository
	prescriptionRepo repository.PrescriptionRepository
	txnRepo          repository.FinancialTransactionRepository
	tenantRepo       repository.TenantRepository
	transactor       repository.Transactor
	mailer           email.Sender
	calendar         *Calendar
}

// NewOrderService creates a new order service. mailer may be nil.
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	prescriptionRepo repository.PrescriptionRepository,
	txnRepo repository.FinancialTransactionRepository,
	tenantRepo repository.TenantRepository,
	transactor repository.Transactor,
	mailer email.Sender,
	calendar *Calendar,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		customerRepo:     customerRepo,
		prescriptionRepo: prescriptionRepo,
		txnRepo:          txnRepo,
		tenantRepo:       tenantRepo,
		transactor:       transactor,
		mailer:           mailer,
		calendar:         calendar,
	}
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	UserID         uuid.UUID
	CustomerID     uuid.UUID
	Date           *entity.Date
	TotalAmount    money.Cents
	PaidAmount     money.Cents
	PaymentMethod  *enum.PaymentMethod
	PrescriptionID *uuid.UUID
	FrameModel     string
	FrameNotes     string
	LensType       string
	LensNotes      string
	DeliveryDate   *entity.Date
}

// CreateOrder validates every field at once and stores a pending order. A
// down payment is booked as a sales entry linked to the order.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if _, err := tenantOf(ctx); err != nil {
		return nil, err
	}

	v := validation.Violations{}
	validation.RequiredID("customer_id", input.CustomerID, v)
	validation.PositiveAmount("total_amount", input.TotalAmount, v)
	validation.NonNegativeAmount("paid_amount", input.PaidAmount, v)
	if input.PaidAmount > input.TotalAmount && input.TotalAmount > 0 {
		v.Add("paid_amount", "must not exceed the total amount")
	}
	if input.DeliveryDate == nil || input.DeliveryDate.IsZero() {
		v.Add("delivery_date", "is required")
	}
	if input.PaymentMethod != nil && !input.PaymentMethod.IsValid() {
		v.Add("payment_method", "is not a valid payment method")
	}

	var customer *entity.Customer
	if input.CustomerID != uuid.Nil {
		var err error
		customer, err = s.customerRepo.GetByID(ctx, input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			v.Add("customer_id", "customer not found")
		}
	}
	if input.PrescriptionID != nil && *input.PrescriptionID != uuid.Nil {
		prescription, err := s.prescriptionRepo.GetByID(ctx, *input.PrescriptionID)
		if err != nil {
			return nil, err
		}
		if prescription == nil || prescription.CustomerID != input.CustomerID {
			v.Add("prescription_id", "does not belong to the customer")
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	now := s.calendar.Now()
	date := s.calendar.Today()
	if input.Date != nil && !input.Date.IsZero() {
		date = *input.Date
	}

	order := &entity.Order{
		OrderNumber:  utils.GenerateOrderNumber(now),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Date:         date,
		Status:       enum.OrderStatusPending,
		FrameModel:   orDefault(input.FrameModel),
		FrameNotes:   input.FrameNotes,
		LensType:     orDefault(input.LensType),
		LensNotes:    input.LensNotes,
		DeliveryDate: *input.DeliveryDate,
		Source:       enum.OrderSourceCounter,
	}
	if input.PrescriptionID != nil && *input.PrescriptionID != uuid.Nil {
		order.PrescriptionID = input.PrescriptionID
	}
	order.ApplyAmounts(input.TotalAmount, input.PaidAmount)

	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return err
		}
		if order.PaidAmount == 0 {
			return nil
		}
		return s.book(txCtx, order, order.PaidAmount, input.PaymentMethod, input.UserID,
			fmt.Sprintf("Entrada %s - %s", order.OrderNumber, order.CustomerName))
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func orDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return entity.NotInformed
	}
	return strings.TrimSpace(s)
}

// GetOrder retrieves an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(orders, params.Pagination, total), nil
}

// AdvanceResult tells whether Advance moved the order.
type AdvanceResult struct {
	Order    *entity.Order
	Advanced bool
}

// AdvanceStatus moves an order exactly one step forward. Advancing a
// delivered order changes nothing and reports Advanced=false. Two concurrent
// advances of the same order move it once; the loser gets a conflict.
func (s *OrderService) AdvanceStatus(ctx context.Context, id uuid.UUID) (*AdvanceResult, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	from := order.Status
	if !order.Advance() {
		return &AdvanceResult{Order: order, Advanced: false}, nil
	}
	moved, err := s.orderRepo.UpdateStatus(ctx, order.ID, from, order.Status)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, apperror.NewConflictError("Order status changed meanwhile, reload and try again")
	}

	if order.Status == enum.OrderStatusReceivedAtStore {
		s.notifyReady(ctx, order)
	}
	return &AdvanceResult{Order: order, Advanced: true}, nil
}

// notifyReady e-mails the customer that the glasses arrived. Failures are
// logged and never affect the status change.
func (s *OrderService) notifyReady(ctx context.Context, order *entity.Order) {
	if s.mailer == nil {
		return
	}
	customer, err := s.customerRepo.GetByID(ctx, order.CustomerID)
	if err != nil || customer == nil || customer.Email == nil || *customer.Email == "" {
		return
	}
	storeName := ""
	if tenant, err := s.tenantRepo.GetByID(ctx, order.TenantID); err == nil && tenant != nil {
		storeName = tenant.Name
	}

	msg := email.OrderReadyMessage{
		StoreName:    storeName,
		CustomerName: customer.Name,
		OrderNumber:  order.OrderNumber,
	}
	if balance := order.Balance(); balance > 0 {
		msg.Balance = balance.BRL()
	}
	to := *customer.Email
	go func() {
		if err := s.mailer.SendOrderReady(to, msg); err != nil {
			log.Printf("Warning: order ready e-mail for %s not sent: %v", msg.OrderNumber, err)
		}
	}()
}

// RecordPaymentInput represents a payment towards an order balance
type RecordPaymentInput struct {
	OrderID       uuid.UUID
	UserID        uuid.UUID
	Amount        money.Cents
	PaymentMethod *enum.PaymentMethod
}

// RecordPayment adds to the paid amount, re-derives the payment status and
// books the ledger entry, all in one transaction. The increment happens in
// the database, so concurrent payments add up and can never overpay.
func (s *OrderService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Order, error) {
	v := validation.Violations{}
	validation.PositiveAmount("amount", input.Amount, v)
	if input.PaymentMethod != nil && !input.PaymentMethod.IsValid() {
		v.Add("payment_method", "is not a valid payment method")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	var order *entity.Order
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.GetOrder(txCtx, input.OrderID)
		if err != nil {
			return err
		}
		if input.Amount > order.Balance() {
			return apperror.NewFieldError("amount", fmt.Sprintf("must not exceed the outstanding balance of %s", order.Balance()))
		}

		applied, err := s.orderRepo.AddPayment(txCtx, order.ID, input.Amount)
		if err != nil {
			return err
		}
		if !applied {
			fresh, err := s.GetOrder(txCtx, order.ID)
			if err != nil {
				return err
			}
			return apperror.NewFieldError("amount", fmt.Sprintf("must not exceed the outstanding balance of %s", fresh.Balance()))
		}
		if err := s.book(txCtx, order, input.Amount, input.PaymentMethod, input.UserID,
			fmt.Sprintf("Pagamento %s - %s", order.OrderNumber, order.CustomerName)); err != nil {
			return err
		}
		order, err = s.GetOrder(txCtx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) book(ctx context.Context, order *entity.Order, amount money.Cents, method *enum.PaymentMethod, userID uuid.UUID, description string) error {
	orderID := order.ID
	txn := &entity.FinancialTransaction{
		Date:          s.calendar.Today(),
		Description:   description,
		Type:          enum.TransactionTypeIn,
		Category:      enum.TransactionCategorySales,
		Amount:        amount,
		Status:        enum.TransactionStatusPaid,
		PaymentMethod: method,
		OrderID:       &orderID,
	}
	if userID != uuid.Nil {
		txn.UserID = &userID
	}
	return s.txnRepo.Create(ctx, txn)
}

// DeleteOrder soft deletes an order
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetOrder(ctx, id); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, id)
}
