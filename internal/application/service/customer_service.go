package service

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/pkg/apperror"
	"github.com/sangkips/optica-api/pkg/cep"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/sangkips/optica-api/pkg/pagination"
	"github.com/sangkips/optica-api/pkg/validation"
)

// AddressLookup resolves a Brazilian postal code.
type AddressLookup interface {
	Lookup(ctx context.Context, code string) (*cep.Address, error)
}

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo     repository.CustomerRepository
	prescriptionRepo repository.PrescriptionRepository
	addresses        AddressLookup
	calendar         *Calendar
}

// NewCustomerService creates a new customer service. addresses may be nil,
// which disables postal code enrichment.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	prescriptionRepo repository.PrescriptionRepository,
	addresses AddressLookup,
	calendar *Calendar,
) *CustomerService {
	return &CustomerService{
		customerRepo:     customerRepo,
		prescriptionRepo: prescriptionRepo,
		addresses:        addresses,
		calendar:         calendar,
	}
}

// CustomerInput represents the create and update customer input
type CustomerInput struct {
	Name         string
	Phone        string
	Email        *string
	CPF          string
	RG           string
	BirthDate    *entity.Date
	Gender       enum.Gender
	Profession   string
	Address      *entity.Address
	Notes        string
	CreditLimit  money.Cents
	CreditStatus enum.CreditStatus
}

func (in *CustomerInput) validate() error {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.MaxLength("name", in.Name, 255, v)
	validation.NonNegativeAmount("credit_limit", in.CreditLimit, v)
	if in.Gender != "" && !in.Gender.IsValid() {
		v.Add("gender", "must be M, F or O")
	}
	if in.CreditStatus != "" && !in.CreditStatus.IsValid() {
		v.Add("credit_status", "must be pending, approved or denied")
	}
	if in.Email != nil && *in.Email != "" && !strings.Contains(*in.Email, "@") {
		v.Add("email", "must be a valid e-mail address")
	}
	return v.Err()
}

func (in *CustomerInput) apply(c *entity.Customer) {
	c.Name = strings.TrimSpace(in.Name)
	c.Phone = in.Phone
	c.Email = in.Email
	if c.Email != nil && *c.Email == "" {
		c.Email = nil
	}
	c.CPF = in.CPF
	c.RG = in.RG
	c.BirthDate = in.BirthDate
	c.Gender = in.Gender
	c.Profession = in.Profession
	c.Address = in.Address
	c.Notes = in.Notes
	c.CreditLimit = in.CreditLimit
	if in.CreditStatus != "" {
		c.CreditStatus = in.CreditStatus
	}
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	if _, err := tenantOf(ctx); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	customer := &entity.Customer{}
	input.apply(customer)
	s.enrichAddress(ctx, customer.Address)

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer with prescriptions, newest first
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomer replaces the editable fields of a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	input.apply(customer)
	s.enrichAddress(ctx, customer.Address)

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCustomers lists customers matching search by name, phone, CPF or e-mail
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string, creditStatus *enum.CreditStatus) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, &repository.CustomerFilterParams{
		Pagination:   params,
		Search:       search,
		CreditStatus: creditStatus,
	})
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(customers, params, total), nil
}

// Birthdays returns the customers whose birthday is today. With a month it
// lists everyone born in that month instead, ordered by day then name.
func (s *CustomerService) Birthdays(ctx context.Context, month *time.Month) ([]entity.Customer, error) {
	if month != nil && (*month < time.January || *month > time.December) {
		return nil, apperror.NewFieldError("month", "must be between 1 and 12")
	}
	customers, err := s.customerRepo.WithBirthDate(ctx)
	if err != nil {
		return nil, err
	}
	today := s.calendar.Today()
	out := make([]entity.Customer, 0)
	for i := range customers {
		c := &customers[i]
		switch {
		case month == nil && c.HasBirthdayOn(today):
			out = append(out, *c)
		case month != nil && c.BirthDate != nil && !c.BirthDate.IsZero() && c.BirthDate.Month() == *month:
			out = append(out, *c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if di, dj := out[i].BirthDate.Day(), out[j].BirthDate.Day(); di != dj {
			return di < dj
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// LookupAddress resolves a postal code for address forms.
func (s *CustomerService) LookupAddress(ctx context.Context, code string) (*cep.Address, error) {
	if _, err := cep.Normalize(code); err != nil {
		return nil, apperror.NewFieldError("cep", "must have 8 digits")
	}
	if s.addresses == nil {
		return nil, apperror.NewNotFoundError("Address")
	}
	addr, err := s.addresses.Lookup(ctx, code)
	if err != nil {
		log.Printf("Warning: postal code lookup for %s failed: %v", code, err)
		return nil, apperror.NewNotFoundError("Address")
	}
	return addr, nil
}

// enrichAddress fills street, district, city and state from the postal code
// when the street is blank. Lookup failures leave the address untouched.
func (s *CustomerService) enrichAddress(ctx context.Context, addr *entity.Address) {
	if s.addresses == nil || addr == nil || strings.TrimSpace(addr.Street) != "" {
		return
	}
	digits, err := cep.Normalize(addr.ZipCode)
	if err != nil {
		return
	}
	found, err := s.addresses.Lookup(ctx, digits)
	if err != nil {
		log.Printf("Warning: postal code enrichment for %s skipped: %v", digits, err)
		return
	}
	addr.ZipCode = digits
	addr.Street = found.Street
	addr.Neighborhood = found.Neighborhood
	addr.City = found.City
	addr.State = found.State
	if addr.Complement == "" {
		addr.Complement = found.Complement
	}
}

// PrescriptionView is a prescription with its expiry flag for today.
type PrescriptionView struct {
	entity.Prescription
	Expired bool `json:"expired"`
}

// PrescriptionInput represents a new eye exam
type PrescriptionInput struct {
	Date       entity.Date
	DoctorName string
	OD         entity.EyePrescription
	OE         entity.EyePrescription
	Notes      string
}

// AddPrescription records a new exam for a customer. Prescriptions are
// never edited afterwards.
func (s *CustomerService) AddPrescription(ctx context.Context, customerID uuid.UUID, input *PrescriptionInput) (*PrescriptionView, error) {
	v := validation.Violations{}
	if input.Date.IsZero() {
		v.Add("date", "is required")
	}
	if input.OD == (entity.EyePrescription{}) {
		v.Add("od", "is required")
	}
	if input.OE == (entity.EyePrescription{}) {
		v.Add("oe", "is required")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	prescription := &entity.Prescription{
		CustomerID: customerID,
		Date:       input.Date,
		DoctorName: strings.TrimSpace(input.DoctorName),
		OD:         input.OD,
		OE:         input.OE,
		Notes:      input.Notes,
	}
	if err := s.prescriptionRepo.Create(ctx, prescription); err != nil {
		return nil, err
	}
	return s.view(prescription), nil
}

// ListPrescriptions returns a customer's exams, newest first
func (s *CustomerService) ListPrescriptions(ctx context.Context, customerID uuid.UUID) ([]PrescriptionView, error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	prescriptions, err := s.prescriptionRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]PrescriptionView, 0, len(prescriptions))
	for i := range prescriptions {
		out = append(out, *s.view(&prescriptions[i]))
	}
	return out, nil
}

// GetPrescription returns one exam of a customer
func (s *CustomerService) GetPrescription(ctx context.Context, customerID, prescriptionID uuid.UUID) (*PrescriptionView, error) {
	prescription, err := s.prescriptionRepo.GetByID(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if prescription == nil || prescription.CustomerID != customerID {
		return nil, apperror.NewNotFoundError("Prescription")
	}
	return s.view(prescription), nil
}

func (s *CustomerService) view(p *entity.Prescription) *PrescriptionView {
	return &PrescriptionView{Prescription: *p, Expired: p.IsExpired(s.calendar.Today())}
}
