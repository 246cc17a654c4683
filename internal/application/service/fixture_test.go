package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/billing"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/infrastructure/database"
	"github.com/sangkips/optica-api/internal/infrastructure/repository"
	"github.com/sangkips/optica-api/pkg/apperror"
	"github.com/sangkips/optica-api/pkg/confirm"
	"github.com/sangkips/optica-api/pkg/money"
	"github.com/sangkips/optica-api/pkg/printer"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedNow is 2024-03-15 10:00 in São Paulo.
var fixedNow = time.Date(2024, time.March, 15, 13, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	ctx      context.Context
	tenant   *entity.Tenant
	owner    *entity.User
	seller   *entity.User
	calendar *service.Calendar
	gateNow  time.Time
	paper    *printer.BufferPrinter

	tenants   *service.TenantService
	customers *service.CustomerService
	products  *service.ProductService
	orders    *service.OrderService
	pos       *service.POSService
	finance   *service.FinanceService
	debts     *service.DebtService
	suppliers *service.SupplierService
	snapshot  *service.SnapshotService
	printing  *service.PrinterService
	dashboard *service.DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	f := &fixture{db: db, gateNow: fixedNow}
	f.tenant = &entity.Tenant{Name: "Ótica Central", Slug: uuid.NewString(), Phone: "(11) 3333-4444"}
	require.NoError(t, db.Create(f.tenant).Error)
	f.ctx = repository.WithTenant(context.Background(), f.tenant.ID)

	f.owner = &entity.User{TenantID: f.tenant.ID, Name: "Dona", Email: uuid.NewString() + "@loja.test", Role: enum.UserRoleOwner, Active: true}
	f.seller = &entity.User{TenantID: f.tenant.ID, Name: "Vendedor", Email: uuid.NewString() + "@loja.test", Role: enum.UserRoleSeller, Active: true}
	require.NoError(t, db.Create(f.owner).Error)
	require.NoError(t, db.Create(f.seller).Error)

	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		loc = time.FixedZone("BRT", -3*60*60)
	}
	f.calendar = service.NewCalendar(loc).WithClock(func() time.Time { return fixedNow })

	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	txnRepo := repository.NewFinancialTransactionRepository(db)
	cartRepo := repository.NewCartRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	transactor := repository.NewTransactor(db)

	gate := confirm.NewGate(3*time.Second, confirm.WithClock(func() time.Time { return f.gateNow }))

	f.tenants = service.NewTenantService(tenantRepo)
	f.customers = service.NewCustomerService(customerRepo, prescriptionRepo, nil, f.calendar)
	f.products = service.NewProductService(productRepo, movementRepo, transactor)
	f.orders = service.NewOrderService(orderRepo, customerRepo, prescriptionRepo, txnRepo, tenantRepo, transactor, nil, f.calendar)
	f.pos = service.NewPOSService(cartRepo, productRepo, customerRepo, orderRepo, txnRepo, movementRepo, f.tenants, transactor, f.calendar, 5)
	f.finance = service.NewFinanceService(txnRepo, orderRepo, f.calendar)
	f.debts = service.NewDebtService(billing.DefaultTerms(), orderRepo, customerRepo, tenantRepo, nil, f.calendar)
	f.suppliers = service.NewSupplierService(supplierRepo, gate)
	f.snapshot = service.NewSnapshotService(customerRepo, prescriptionRepo, productRepo, orderRepo, txnRepo, supplierRepo)
	f.paper = printer.NewBufferPrinter()
	f.printing = service.NewPrinterService(f.paper, "buffer", 80, orderRepo, txnRepo, tenantRepo, userRepo, f.debts)
	f.dashboard = service.NewDashboardService(orderRepo, productRepo, txnRepo, analyticsRepo, f.customers, f.calendar)
	return f
}

func (f *fixture) actor(u *entity.User) service.Actor {
	return service.Actor{UserID: u.ID, Name: u.Name, Role: u.Role}
}

func (f *fixture) customer(t *testing.T, name string) *entity.Customer {
	t.Helper()
	c, err := f.customers.CreateCustomer(f.ctx, &service.CustomerInput{Name: name, Phone: "11 99999-0000"})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, name string, category enum.ProductCategory, price int64, stock int) *entity.Product {
	t.Helper()
	p, err := f.products.CreateProduct(f.ctx, f.owner.ID, &service.ProductInput{
		Name:      name,
		Category:  category,
		SalePrice: money.FromUnits(price),
	}, stock)
	require.NoError(t, err)
	return p
}

func (f *fixture) reload(t *testing.T, id uuid.UUID) *entity.Product {
	t.Helper()
	p, err := f.products.GetProduct(f.ctx, id)
	require.NoError(t, err)
	return p
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func date(y int, m time.Month, d int) *entity.Date {
	v := entity.NewDate(y, m, d)
	return &v
}

func appCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err), "expected an AppError, got %T: %v", err, err)
	return apperror.GetAppError(err).Code
}

func fieldsOf(err error) []string {
	if !apperror.IsAppError(err) {
		return nil
	}
	appErr := apperror.GetAppError(err)
	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}
