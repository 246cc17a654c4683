// Package bootstrap builds the application object graph from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/config"
	"github.com/sangkips/optica-api/internal/domain/billing"
	domainRepo "github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/internal/infrastructure/database"
	"github.com/sangkips/optica-api/internal/infrastructure/repository"
	"github.com/sangkips/optica-api/internal/presentation/http/handler"
	"github.com/sangkips/optica-api/internal/presentation/http/routes"
	"github.com/sangkips/optica-api/pkg/cep"
	"github.com/sangkips/optica-api/pkg/confirm"
	"github.com/sangkips/optica-api/pkg/email"
	"github.com/sangkips/optica-api/pkg/llm"
	"github.com/sangkips/optica-api/pkg/oauth"
	"github.com/sangkips/optica-api/pkg/printer"
	"github.com/sangkips/optica-api/pkg/utils"
	"gorm.io/gorm"
)

// Repositories groups the gorm repositories.
type Repositories struct {
	Tenant       domainRepo.TenantRepository
	User         domainRepo.UserRepository
	Customer     domainRepo.CustomerRepository
	Prescription domainRepo.PrescriptionRepository
	Product      domainRepo.ProductRepository
	Movement     domainRepo.StockMovementRepository
	Order        domainRepo.OrderRepository
	Transaction  domainRepo.FinancialTransactionRepository
	Supplier     domainRepo.SupplierRepository
	Cart         domainRepo.CartRepository
	Idempotency  domainRepo.IdempotencyRepository
	Analytics    domainRepo.AnalyticsRepository
	Transactor   domainRepo.Transactor
}

// Services groups the use cases.
type Services struct {
	Auth      *service.AuthService
	Tenant    *service.TenantService
	User      *service.UserService
	Customer  *service.CustomerService
	Advisor   *service.AdvisorService
	Product   *service.ProductService
	Order     *service.OrderService
	POS       *service.POSService
	Finance   *service.FinanceService
	Debt      *service.DebtService
	Supplier  *service.SupplierService
	Snapshot  *service.SnapshotService
	Printer   *service.PrinterService
	Dashboard *service.DashboardService
}

// App is the wired application.
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Repos    *Repositories
	Services *Services
	JWT      *utils.JWTManager
	Gate     *confirm.Gate
}

// Open connects to the database and wires every service. Background
// goroutines (confirmation gate sweeper) stop when ctx is cancelled.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg, db), nil
}

// New wires the application on an open database.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB) *App {
	repos := NewRepositories(db)
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.JWT.RefreshExpiryHours)

	gate := confirm.NewGate(cfg.POS.ConfirmWindow)
	go gate.Run(ctx, cfg.POS.ConfirmWindow*10)

	calendar := service.NewCalendar(cfg.App.Location())

	var addresses service.AddressLookup
	if cfg.CEP.BaseURL != "" {
		addresses = cep.NewClient(cfg.CEP.BaseURL, cfg.CEP.Timeout)
	}

	var mailer email.Sender
	if cfg.Email.SMTPHost != "" {
		mailer = email.NewEmailService(email.EmailConfig{
			SMTPHost:     cfg.Email.SMTPHost,
			SMTPPort:     cfg.Email.SMTPPort,
			SMTPUsername: cfg.Email.SMTPUsername,
			SMTPPassword: cfg.Email.SMTPPassword,
			FromName:     cfg.Email.FromName,
			FromEmail:    cfg.Email.FromEmail,
		})
	} else {
		log.Println("Warning: SMTP_HOST not set, e-mail notifications disabled")
	}

	generator, err := llm.NewGenerator(llm.Config{
		Provider: cfg.Advisor.Provider,
		Model:    cfg.Advisor.Model,
		APIKey:   cfg.Advisor.APIKey,
	})
	if err != nil {
		log.Printf("Warning: lens advisor disabled: %v", err)
		generator = nil
	}

	thermal, err := printer.NewFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermal = printer.NewNullPrinter()
	}

	var identities service.IdentityProvider
	if cfg.OAuth.GoogleClientID != "" {
		identities = oauth.NewGoogle(oauth.GoogleConfig{
			ClientID:     cfg.OAuth.GoogleClientID,
			ClientSecret: cfg.OAuth.GoogleClientSecret,
			RedirectURL:  cfg.OAuth.GoogleRedirectURL,
			StateSecret:  cfg.JWT.Secret,
		})
	}

	terms := billing.Terms{
		TermDays:     cfg.Debt.TermDays,
		PenaltyRate:  cfg.Debt.PenaltyRate,
		MonthlyRate:  cfg.Debt.MonthlyRate,
		Installments: cfg.Debt.Installments,
	}

	tenants := service.NewTenantService(repos.Tenant)
	customers := service.NewCustomerService(repos.Customer, repos.Prescription, addresses, calendar)
	debts := service.NewDebtService(terms, repos.Order, repos.Customer, repos.Tenant, mailer, calendar)

	services := &Services{
		Auth:     service.NewAuthService(repos.Tenant, repos.User, repos.Transactor, jwtManager, identities),
		Tenant:   tenants,
		User:     service.NewUserService(repos.User),
		Customer: customers,
		Advisor:  service.NewAdvisorService(generator, customers),
		Product:  service.NewProductService(repos.Product, repos.Movement, repos.Transactor),
		Order: service.NewOrderService(repos.Order, repos.Customer, repos.Prescription, repos.Transaction,
			repos.Tenant, repos.Transactor, mailer, calendar),
		POS: service.NewPOSService(repos.Cart, repos.Product, repos.Customer, repos.Order, repos.Transaction,
			repos.Movement, tenants, repos.Transactor, calendar, cfg.POS.SearchLimit),
		Finance:  service.NewFinanceService(repos.Transaction, repos.Order, calendar),
		Debt:     debts,
		Supplier: service.NewSupplierService(repos.Supplier, gate),
		Snapshot: service.NewSnapshotService(repos.Customer, repos.Prescription, repos.Product, repos.Order,
			repos.Transaction, repos.Supplier),
		Printer: service.NewPrinterService(thermal, cfg.Printer.Type, cfg.Printer.PaperMM, repos.Order,
			repos.Transaction, repos.Tenant, repos.User, debts),
		Dashboard: service.NewDashboardService(repos.Order, repos.Product, repos.Transaction, repos.Analytics,
			customers, calendar),
	}

	return &App{
		Config:   cfg,
		DB:       db,
		Repos:    repos,
		Services: services,
		JWT:      jwtManager,
		Gate:     gate,
	}
}

// NewRepositories builds every repository on db.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Tenant:       repository.NewTenantRepository(db),
		User:         repository.NewUserRepository(db),
		Customer:     repository.NewCustomerRepository(db),
		Prescription: repository.NewPrescriptionRepository(db),
		Product:      repository.NewProductRepository(db),
		Movement:     repository.NewStockMovementRepository(db),
		Order:        repository.NewOrderRepository(db),
		Transaction:  repository.NewFinancialTransactionRepository(db),
		Supplier:     repository.NewSupplierRepository(db),
		Cart:         repository.NewCartRepository(db),
		Idempotency:  repository.NewIdempotencyRepository(db),
		Analytics:    repository.NewAnalyticsRepository(db),
		Transactor:   repository.NewTransactor(db),
	}
}

// Router builds the gin engine. done stops router-owned goroutines.
func (a *App) Router(done <-chan struct{}) *gin.Engine {
	s := a.Services
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(s.Auth),
		Tenant:    handler.NewTenantHandler(s.Tenant),
		User:      handler.NewUserHandler(s.User),
		Customer:  handler.NewCustomerHandler(s.Customer, s.Advisor),
		Product:   handler.NewProductHandler(s.Product),
		Order:     handler.NewOrderHandler(s.Order, s.Printer),
		POS:       handler.NewPOSHandler(s.POS, s.Printer),
		Finance:   handler.NewFinanceHandler(s.Finance, s.Debt, s.Printer),
		Supplier:  handler.NewSupplierHandler(s.Supplier),
		Dashboard: handler.NewDashboardHandler(s.Dashboard, s.Snapshot),
		Printer:   handler.NewPrinterHandler(s.Printer),
	}
	return routes.Setup(handlers, &routes.Deps{
		JWTManager:      a.JWT,
		Cfg:             a.Config,
		TenantRepo:      a.Repos.Tenant,
		IdempotencyRepo: a.Repos.Idempotency,
		Done:            done,
	})
}

// TenantContext resolves a store by slug for CLI commands.
func (a *App) TenantContext(ctx context.Context, slug string) (context.Context, error) {
	tenant, err := a.Repos.Tenant.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, fmt.Errorf("store %q not found", slug)
	}
	return repository.WithTenant(ctx, tenant.ID), nil
}

// SweepIdempotencyKeys deletes expired idempotency keys every interval
// until ctx is cancelled.
func (a *App) SweepIdempotencyKeys(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.Repos.Idempotency.DeleteExpired(ctx)
			if err != nil {
				log.Printf("Warning: idempotency sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Removed %d expired idempotency keys", n)
			}
		}
	}
}

// Close releases the database connection.
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
