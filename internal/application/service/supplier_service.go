package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/pkg/apperror"
	"github.com/sangkips/optica-api/pkg/confirm"
	"github.com/sangkips/optica-api/pkg/pagination"
	"github.com/sangkips/optica-api/pkg/validation"
)

// SupplierService handles supplier records. Deleting goes through a
// three-press confirmation gate per user and supplier.
type SupplierService struct {
	supplierRepo repository.SupplierRepository
	gate         *confirm.Gate
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository, gate *confirm.Gate) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo, gate: gate}
}

// SupplierInput represents the create and update supplier input
type SupplierInput struct {
	Name        string
	CNPJ        string
	ContactName string
	Phone       string
	Email       *string
}

func (in *SupplierInput) validate() error {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.MaxLength("name", in.Name, 255, v)
	validation.MaxLength("cnpj", in.CNPJ, 18, v)
	if in.Email != nil && *in.Email != "" && !strings.Contains(*in.Email, "@") {
		v.Add("email", "must be a valid e-mail address")
	}
	return v.Err()
}

func (in *SupplierInput) apply(sup *entity.Supplier) {
	sup.Name = strings.TrimSpace(in.Name)
	sup.CNPJ = in.CNPJ
	sup.ContactName = in.ContactName
	sup.Phone = in.Phone
	sup.Email = in.Email
	if sup.Email != nil && *sup.Email == "" {
		sup.Email = nil
	}
}

// CreateSupplier creates a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, input *SupplierInput) (*entity.Supplier, error) {
	if _, err := tenantOf(ctx); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	supplier := &entity.Supplier{}
	input.apply(supplier)
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// UpdateSupplier replaces the editable fields of a supplier
func (s *SupplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, input *SupplierInput) (*entity.Supplier, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(supplier)
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// ListSuppliers lists suppliers matching search
func (s *SupplierService) ListSuppliers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Supplier], error) {
	suppliers, total, err := s.supplierRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(suppliers, params, total), nil
}

// DeleteOutcome reports the gate stage after a delete press.
type DeleteOutcome struct {
	Stage   confirm.Stage `json:"stage"`
	Deleted bool          `json:"deleted"`
}

// PressDelete advances the confirmation gate of (user, supplier). The third
// press inside the window deletes the supplier.
func (s *SupplierService) PressDelete(ctx context.Context, userID, supplierID uuid.UUID) (*DeleteOutcome, error) {
	if _, err := s.GetSupplier(ctx, supplierID); err != nil {
		s.gate.Reset(gateKey(userID, supplierID))
		return nil, err
	}

	stage := s.gate.Press(gateKey(userID, supplierID))
	if stage != confirm.StageConfirmed {
		return &DeleteOutcome{Stage: stage}, nil
	}
	if err := s.supplierRepo.Delete(ctx, supplierID); err != nil {
		return nil, err
	}
	return &DeleteOutcome{Stage: confirm.StageConfirmed, Deleted: true}, nil
}

// DeleteStage reports the current gate stage without pressing.
func (s *SupplierService) DeleteStage(userID, supplierID uuid.UUID) confirm.Stage {
	return s.gate.Stage(gateKey(userID, supplierID))
}

// CancelDelete returns the gate to idle.
func (s *SupplierService) CancelDelete(userID, supplierID uuid.UUID) {
	s.gate.Reset(gateKey(userID, supplierID))
}

func gateKey(userID, supplierID uuid.UUID) string {
	return userID.String() + ":" + supplierID.String()
}
