package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/optica-api/internal/config"
	"github.com/sangkips/optica-api/internal/domain/enum"
	domainRepo "github.com/sangkips/optica-api/internal/domain/repository"
	"github.com/sangkips/optica-api/internal/presentation/http/handler"
	"github.com/sangkips/optica-api/internal/presentation/http/middleware"
	"github.com/sangkips/optica-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Tenant    *handler.TenantHandler
	User      *handler.UserHandler
	Customer  *handler.CustomerHandler
	Product   *handler.ProductHandler
	Order     *handler.OrderHandler
	POS       *handler.POSHandler
	Finance   *handler.FinanceHandler
	Supplier  *handler.SupplierHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	TenantRepo      domainRepo.TenantRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
	// Done stops background goroutines owned by the router
	Done <-chan struct{}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := middleware.NewRateLimiter(
		middleware.RateLimiterConfigFor(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Window()),
		deps.Done,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "ok",
			"service":    deps.Cfg.App.Name,
			"rate_limit": rateLimiter.Stats(),
		})
	})

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		public.Use(rateLimiter.Middleware())
		registerAuthRoutes(public, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TenantMiddleware(deps.TenantRepo))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	managers := middleware.RequireRole(enum.UserRoleOwner, enum.UserRoleManager)

	protected.GET("/auth/me", h.Auth.Me)

	protected.GET("/dashboard", h.Dashboard.GetStats)
	protected.GET("/snapshot", h.Dashboard.Snapshot)

	store := protected.Group("/store")
	{
		store.GET("", h.Tenant.Get)
		store.PUT("", managers, h.Tenant.Update)
		store.PUT("/pin", middleware.RequireRole(enum.UserRoleOwner), h.Tenant.SetManagerPIN)
	}

	users := protected.Group("/users", managers)
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.PATCH("/:id", h.User.Update)
	}

	protected.GET("/addresses/:cep", h.Customer.LookupAddress)

	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/birthdays", h.Customer.Birthdays)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.GET("/:id/prescriptions", h.Customer.ListPrescriptions)
		customers.POST("/:id/prescriptions", h.Customer.AddPrescription)
		customers.GET("/:id/prescriptions/:pid", h.Customer.GetPrescription)
		customers.POST("/:id/prescriptions/:pid/recommendation", h.Customer.Advise)
	}

	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", managers, h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", managers, h.Product.Update)
		products.DELETE("/:id", managers, h.Product.Delete)
		products.POST("/:id/stock", managers, h.Product.AdjustStock)
		products.GET("/:id/movements", h.Product.Movements)
	}

	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.DELETE("/:id", managers, h.Order.Delete)
		orders.POST("/:id/advance", h.Order.Advance)
		orders.POST("/:id/payments", h.Order.RecordPayment)
		orders.GET("/:id/receipt", h.Order.Receipt)
		orders.POST("/:id/receipt/print", h.Order.PrintReceipt)
	}

	pos := protected.Group("/pos")
	{
		pos.GET("/products", h.POS.SearchProducts)
		pos.GET("/carts", h.POS.ListCarts)
		pos.POST("/carts", h.POS.OpenCart)
		pos.GET("/carts/:id", h.POS.GetCart)
		pos.DELETE("/carts/:id", h.POS.DiscardCart)
		pos.POST("/carts/:id/lines", h.POS.AddLine)
		pos.PATCH("/carts/:id/lines/:productId", h.POS.AdjustQuantity)
		pos.DELETE("/carts/:id/lines/:productId", h.POS.RemoveLine)
		pos.PUT("/carts/:id/customer", h.POS.AttachCustomer)
		pos.DELETE("/carts/:id/customer", h.POS.DetachCustomer)
		pos.PUT("/carts/:id/discount", h.POS.ApplyDiscount)
		pos.POST("/carts/:id/checkout", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			TTL:  deps.Cfg.POS.IdempotencyTTL,
		}), h.POS.Checkout)
	}

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Finance.ListTransactions)
		transactions.POST("", managers, h.Finance.CreateTransaction)
		transactions.GET("/summary", h.Finance.Summary)
	}

	debts := protected.Group("/debts")
	{
		debts.GET("", h.Finance.Debts)
		debts.GET("/:order_id/slip", h.Finance.Slip)
		debts.POST("/:order_id/slip/print", h.Finance.PrintSlip)
		debts.POST("/:order_id/slip/email", h.Finance.EmailSlip)
	}

	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", managers, h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", managers, h.Supplier.Update)
		suppliers.POST("/:id/delete", managers, h.Supplier.PressDelete)
		suppliers.GET("/:id/delete", managers, h.Supplier.DeleteStage)
		suppliers.DELETE("/:id/delete", managers, h.Supplier.CancelDelete)
	}

	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", managers, h.Printer.TestPrint)
		printer.POST("/print", h.Printer.Print)
	}
}
