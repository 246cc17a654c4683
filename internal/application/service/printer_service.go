package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/billing"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/pkg/apperror"
	"github.com/sangkips/optica-api/pkg/printer"
)

// PrinterService composes receipts and slips and sends them to the thermal printer.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	width       int
	orderRepo   repository.OrderRepository
	txnRepo     repository.FinancialTransactionRepository
	tenantRepo  repository.TenantRepository
	userRepo    repository.UserRepository
	debts       *DebtService
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	printerType string,
	paperMM int,
	orderRepo repository.OrderRepository,
	txnRepo repository.FinancialTransactionRepository,
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
	debts *DebtService,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		width:       printer.PaperWidth(paperMM),
		orderRepo:   orderRepo,
		txnRepo:     txnRepo,
		tenantRepo:  tenantRepo,
		userRepo:    userRepo,
		debts:       debts,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Width:      s.width,
	}
}

// PrintOutcome tells whether the job reached the printer. Printing is
// best-effort: the document data is returned either way.
type PrintOutcome struct {
	Printed bool   `json:"printed"`
	Error   string `json:"error,omitempty"`
}

func (s *PrinterService) send(ctx context.Context, what string, data []byte) *PrintOutcome {
	if err := s.printer.Print(ctx, data); err != nil {
		log.Printf("Warning: printing %s failed: %v", what, err)
		return &PrintOutcome{Printed: false, Error: err.Error()}
	}
	return &PrintOutcome{Printed: s.GetStatus().Configured}
}

// Receipt composes the receipt of an order from the order, its items and
// its ledger entries.
func (s *PrinterService) Receipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	receipt := &entity.Receipt{
		OrderNumber: order.OrderNumber,
		Date:        order.Date,
		Customer:    order.CustomerName,
		Total:       order.TotalAmount,
		Paid:        order.PaidAmount,
		Balance:     order.Balance(),
	}
	if tenant, err := s.tenantRepo.GetByID(ctx, order.TenantID); err == nil && tenant != nil {
		receipt.Header = tenant.ReceiptHeader()
	}

	for _, item := range order.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.LineTotal,
		})
		receipt.Subtotal += item.LineTotal
	}
	if len(receipt.Items) == 0 {
		name := fmt.Sprintf("Óculos: %s / %s", order.FrameModel, order.LensType)
		receipt.Items = []entity.ReceiptItem{{Name: name, Quantity: 1, UnitPrice: order.TotalAmount, Total: order.TotalAmount}}
		receipt.Subtotal = order.TotalAmount
	}
	if receipt.Subtotal > order.TotalAmount {
		receipt.Discount = receipt.Subtotal - order.TotalAmount
	}

	txns, err := s.txnRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	for _, t := range txns {
		if t.PaymentMethod != nil && receipt.PaymentMethod == "" {
			receipt.PaymentMethod = t.PaymentMethod.Label()
		}
		if t.UserID != nil && receipt.Seller == "" {
			if user, err := s.userRepo.GetByID(ctx, *t.UserID); err == nil && user != nil {
				receipt.Seller = user.Name
			}
		}
	}
	return receipt, nil
}

// PrintReceipt composes and prints the receipt of an order.
func (s *PrinterService) PrintReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, *PrintOutcome, error) {
	receipt, err := s.Receipt(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return receipt, s.send(ctx, "receipt "+receipt.OrderNumber, FormatReceipt(receipt, s.width)), nil
}

// PrintSlip prints the installment slip of an unpaid order.
func (s *PrinterService) PrintSlip(ctx context.Context, orderID uuid.UUID) (*billing.PaymentSlip, *PrintOutcome, error) {
	slip, order, err := s.debts.slip(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	var header entity.ReceiptHeader
	if tenant, err := s.tenantRepo.GetByID(ctx, order.TenantID); err == nil && tenant != nil {
		header = tenant.ReceiptHeader()
	}
	return slip, s.send(ctx, "slip "+slip.OrderNumber, FormatSlip(header, slip, s.width)), nil
}

// TestPrint sends a short test page.
func (s *PrinterService) TestPrint(ctx context.Context) *PrintOutcome {
	doc := printer.NewDocument(s.width).
		Title("TESTE").
		Center("Impressora configurada").
		Rule('-').
		Pair("Largura", fmt.Sprintf("%d colunas", s.width)).
		Cut()
	return s.send(ctx, "test page", doc.Bytes())
}

func writeHeader(doc *printer.Document, h entity.ReceiptHeader) {
	doc.Title(h.StoreName)
	if h.Address != "" {
		doc.Center(h.Address)
	}
	if h.Phone != "" {
		doc.Center(h.Phone)
	}
	if h.Document != "" {
		doc.Center("CNPJ: " + h.Document)
	}
	doc.Rule('-')
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)
	writeHeader(doc, r.Header)

	doc.Pair("OS:", r.OrderNumber).
		Pair("Data:", r.Date.BR())
	if r.Seller != "" {
		doc.Pair("Vendedor:", r.Seller)
	}
	doc.Pair("Cliente:", r.Customer)
	if r.PaymentMethod != "" {
		doc.Pair("Pagamento:", r.PaymentMethod)
	}
	doc.Rule('-')

	for _, item := range r.Items {
		doc.Item(item.Quantity, item.Name, item.Total.BRL())
		if item.Quantity > 1 {
			doc.Linef("  %s cada", item.UnitPrice.BRL())
		}
	}
	doc.Rule('-')

	doc.Pair("Subtotal:", r.Subtotal.BRL())
	if r.Discount > 0 {
		doc.Pair("Desconto:", "-"+r.Discount.BRL())
	}
	doc.Bold(true).Pair("TOTAL:", r.Total.BRL()).Bold(false)
	doc.Pair("Pago:", r.Paid.BRL())
	if r.Balance > 0 {
		doc.Pair("A pagar:", r.Balance.BRL())
	}
	doc.Rule('-')

	doc.Barcode(r.OrderNumber).
		Center("Obrigado pela preferência!").
		Cut()
	return doc.Bytes()
}

// FormatSlip prints one tear-off stub per installment.
func FormatSlip(h entity.ReceiptHeader, slip *billing.PaymentSlip, width int) []byte {
	doc := printer.NewDocument(width)
	for _, inst := range slip.Installments {
		writeHeader(doc, h)
		doc.Center("CARNÊ DE PAGAMENTO").
			Pair("Documento:", inst.Number).
			Pair("Cliente:", slip.CustomerName).
			Pair("Emissão:", slip.IssuedOn.BR()).
			Pair("Vencimento:", inst.DueDate.BR()).
			Bold(true).Pair("Valor:", inst.Amount.BRL()).Bold(false).
			Pair(fmt.Sprintf("Parcela %d de %d", inst.Sequence, len(slip.Installments)), "").
			Rule('-').
			Barcode(inst.Number).
			Cut()
	}
	return doc.Bytes()
}
