package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	domainRepo "github.com/sangkips/optica-api/internal/domain/repository"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return err
	}
	customer.TenantID = tenantID
	return conn(ctx, r.db).Omit("Prescriptions").Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Preload("Prescriptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC, created_at DESC")
		}).
		First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Model(&entity.Customer{}).
		Where("id = ?", customer.ID).
		Select("name", "phone", "email", "cpf", "rg", "birth_date", "gender", "profession",
			"address", "notes", "credit_limit", "credit_status").
		Updates(customer).Error
}

func (r *customerRepository) List(ctx context.Context, params *domainRepo.CustomerFilterParams) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := conn(ctx, r.db).Scopes(TenantScope(ctx)).Model(&entity.Customer{})

	if params.Search != "" {
		pattern := likePattern(params.Search)
		query = query.Where("LOWER(name) LIKE ? OR phone LIKE ? OR cpf LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern, pattern)
	}

	if params.CreditStatus != nil {
		query = query.Where("credit_status = ?", *params.CreditStatus)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) All(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepository) WithBirthDate(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Where("birth_date IS NOT NULL").
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

type prescriptionRepository struct {
	db *gorm.DB
}

// NewPrescriptionRepository creates a new prescription repository
func NewPrescriptionRepository(db *gorm.DB) domainRepo.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *entity.Prescription) error {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return err
	}
	prescription.TenantID = tenantID
	return conn(ctx, r.db).Create(prescription).Error
}

func (r *prescriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).First(&prescription, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &prescription, err
}

func (r *prescriptionRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Where("customer_id = ?", customerID).
		Order("date DESC, created_at DESC").
		Find(&prescriptions).Error
	return prescriptions, err
}

func (r *prescriptionRepository) All(ctx context.Context) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := conn(ctx, r.db).Scopes(TenantScope(ctx)).
		Order("date DESC, created_at DESC").
		Find(&prescriptions).Error
	return prescriptions, err
}
