package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ngocanhdo/bookstore-api/internal/config"
	domainRepo "github.com/ngocanhdo/bookstore-api/internal/domain/repository"
	"github.com/ngocanhdo/bookstore-api/internal/presentation/http/handler"
	"github.com/ngocanhdo/bookstore-api/internal/presentation/http/middleware"
	"github.com/ngocanhdo/bookstore-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Tenant      *handler.TenantHandler
	Product     *handler.ProductHandler
	Customer    *handler.CustomerHandler
	Display     *handler.DisplayHandler
	Transaction *handler.TransactionHandler
	Return      *handler.ReturnHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	TenantRepo      domainRepo.TenantRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		registerTenantRoutes(protected, h)

		// Store-scoped routes: everything below requires a resolved store
		store := protected.Group("")
		store.Use(middleware.TenantMiddleware(deps.TenantRepo))
		store.Use(middleware.RequireTenant())

		// Per-store rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		store.Use(rateLimiter.Middleware())

		registerProductRoutes(store, h)
		registerCustomerRoutes(store, h)
		registerDisplayRoutes(store, h)
		registerTransactionRoutes(store, h, deps)
		registerReturnRoutes(store, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerTenantRoutes(protected *gin.RouterGroup, h *Handlers) {
	tenants := protected.Group("/tenants")
	{
		tenants.POST("", h.Tenant.Create)
		tenants.GET("/mine", h.Tenant.ListMine)
		tenants.GET("/:id", h.Tenant.Get)
		tenants.POST("/:id/members", h.Tenant.AddMember)
	}
}

func registerProductRoutes(store *gin.RouterGroup, h *Handlers) {
	products := store.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", middleware.RequireRole("owner", "manager"), h.Product.Delete)
		products.POST("/:id/stock", middleware.RequireRole("owner", "manager"), h.Product.ReceiveStock)
		products.GET("/:id/inventory-logs", h.Product.ListInventoryLogs)
		products.GET("/:id/display-logs", h.Display.ListProductLogs)
	}

	categories := store.Group("/categories")
	{
		categories.POST("", middleware.RequireRole("owner", "manager"), h.Product.CreateCategory)
		categories.GET("", h.Product.ListCategories)
	}
}

func registerCustomerRoutes(store *gin.RouterGroup, h *Handlers) {
	customers := store.Group("/customers")
	{
		customers.POST("", h.Customer.Create)
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", middleware.RequireRole("owner", "manager"), h.Customer.Delete)
	}
}

func registerDisplayRoutes(store *gin.RouterGroup, h *Handlers) {
	shelves := store.Group("/shelves")
	{
		shelves.POST("", middleware.RequireRole("owner", "manager"), h.Display.CreateShelf)
		shelves.GET("", h.Display.ListShelves)
		shelves.GET("/:id", h.Display.GetShelf)
		shelves.POST("/:id/products", h.Display.PlaceOnShelf)
		shelves.POST("/:id/deactivate", middleware.RequireRole("owner", "manager"), h.Display.DeactivateShelf)
		shelves.GET("/:id/logs", h.Display.ListShelfLogs)
	}

	placements := store.Group("/placements")
	{
		placements.PUT("/:placementId/quantity", h.Display.AdjustQuantity)
		placements.POST("/:placementId/reduce", h.Display.ReduceQuantity)
		placements.POST("/:placementId/move", h.Display.Move)
		placements.DELETE("/:placementId", h.Display.RemoveFromShelf)
	}
}

func registerTransactionRoutes(store *gin.RouterGroup, h *Handlers, deps *Deps) {
	transactions := store.Group("/transactions")
	transactions.Use(middleware.Idempotency(deps.IdempotencyRepo))
	{
		transactions.POST("", h.Transaction.Create)
		transactions.POST("/estimate", h.Transaction.Estimate)
		transactions.GET("", h.Transaction.List)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.POST("/:id/details", h.Transaction.AddDetails)
		transactions.PATCH("/:id/details/:detailId", h.Transaction.UpdateDetail)
	}
}

func registerReturnRoutes(store *gin.RouterGroup, h *Handlers) {
	returns := store.Group("/returns")
	{
		returns.POST("", h.Return.Create)
		returns.GET("", h.Return.List)
		returns.GET("/:id", h.Return.Get)
		returns.POST("/:id/details", h.Return.AddDetail)
		returns.PATCH("/:id/details/:detailId", h.Return.UpdateDetail)
		returns.DELETE("/:id/details/:detailId", h.Return.DeleteDetail)
		returns.POST("/:id/approve", middleware.RequireRole("owner", "manager"), h.Return.Approve)
		returns.POST("/:id/reject", middleware.RequireRole("owner", "manager"), h.Return.Reject)
	}
}
