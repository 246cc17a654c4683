package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/repository"
	infraRepo "github.com/sangkips/optica-api/internal/infrastructure/repository"
	"github.com/sangkips/optica-api/pkg/apperror"
	"github.com/sangkips/optica-api/pkg/utils"
	"github.com/sangkips/optica-api/pkg/validation"
)

// TenantService manages the store profile and the discount authorization PIN
type TenantService struct {
	tenantRepo repository.TenantRepository
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo repository.TenantRepository) *TenantService {
	return &TenantService{tenantRepo: tenantRepo}
}

// Current returns the store of the request context
func (s *TenantService) Current(ctx context.Context) (*entity.Tenant, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.ErrTenantRequired
	}
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Store")
	}
	return tenant, nil
}

// UpdateStoreInput carries the fields printed on receipt headers
type UpdateStoreInput struct {
	Name     *string
	Document *string
	Phone    *string
	Address  *string
}

// UpdateStore changes the store profile
func (s *TenantService) UpdateStore(ctx context.Context, input *UpdateStoreInput) (*entity.Tenant, error) {
	tenant, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperror.NewFieldError("name", "is required")
		}
		tenant.Name = strings.TrimSpace(*input.Name)
	}
	if input.Document != nil {
		tenant.Document = *input.Document
	}
	if input.Phone != nil {
		tenant.Phone = *input.Phone
	}
	if input.Address != nil {
		tenant.Address = *input.Address
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// SetManagerPIN stores the bcrypt hash of a 4 to 8 digit PIN
func (s *TenantService) SetManagerPIN(ctx context.Context, pin string) error {
	v := validation.Violations{}
	if len(pin) < 4 || len(pin) > 8 || strings.IndexFunc(pin, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
		v.Add("pin", "must have 4 to 8 digits")
	}
	if err := v.Err(); err != nil {
		return err
	}

	tenant, err := s.Current(ctx)
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(pin)
	if err != nil {
		return err
	}
	tenant.ManagerPINHash = hash
	return s.tenantRepo.Update(ctx, tenant)
}

// VerifyManagerPIN reports whether pin matches the store's PIN. A store
// without a PIN never verifies.
func (s *TenantService) VerifyManagerPIN(ctx context.Context, pin string) (bool, error) {
	tenant, err := s.Current(ctx)
	if err != nil {
		return false, err
	}
	if !tenant.HasManagerPIN() || pin == "" {
		return false, nil
	}
	return utils.CheckPasswordHash(pin, tenant.ManagerPINHash), nil
}

// tenantOf returns the tenant id carried by ctx.
func tenantOf(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return uuid.Nil, apperror.ErrTenantRequired
	}
	return tenantID, nil
}
