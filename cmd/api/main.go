package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ngocanhdo/bookstore-api/internal/application/service"
	"github.com/ngocanhdo/bookstore-api/internal/config"
	"github.com/ngocanhdo/bookstore-api/internal/infrastructure/cache"
	"github.com/ngocanhdo/bookstore-api/internal/infrastructure/database"
	"github.com/ngocanhdo/bookstore-api/internal/infrastructure/repository"
	"github.com/ngocanhdo/bookstore-api/internal/presentation/http/handler"
	"github.com/ngocanhdo/bookstore-api/internal/presentation/http/routes"
	"github.com/ngocanhdo/bookstore-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	inventoryLogRepo := repository.NewInventoryLogRepository(db)
	shelfRepo := repository.NewShelfRepository(db)
	displayProductRepo := repository.NewDisplayProductRepository(db)
	displayLogRepo := repository.NewDisplayLogRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	transactionDetailRepo := repository.NewTransactionDetailRepository(db)
	returnOrderRepo := repository.NewReturnOrderRepository(db)
	returnDetailRepo := repository.NewReturnOrderDetailRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	uow := repository.NewUnitOfWorkManager(db)

	// Initialize product cache
	productCache := cache.NewNoopProductCache()
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		productCache = cache.NewRedisProductCache(client, cfg.Redis.CacheTTL)
	}

	// Initialize services
	ledger := service.NewInventoryLedger(inventoryRepo, inventoryLogRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	tenantService := service.NewTenantService(tenantRepo, userRepo)
	productService := service.NewProductService(uow, productRepo, categoryRepo, inventoryRepo, productCache)
	customerService := service.NewCustomerService(customerRepo)
	displayService := service.NewDisplayService(uow, shelfRepo, displayProductRepo, displayLogRepo, productRepo, ledger)
	transactionService := service.NewTransactionService(uow, transactionRepo, transactionDetailRepo, productRepo, ledger, cfg.Tax.RatePercent)
	returnService := service.NewReturnService(uow, returnOrderRepo, returnDetailRepo, transactionRepo, customerRepo, productRepo, ledger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Tenant:      handler.NewTenantHandler(tenantService),
		Product:     handler.NewProductHandler(productService, ledger, inventoryLogRepo),
		Customer:    handler.NewCustomerHandler(customerService),
		Display:     handler.NewDisplayHandler(displayService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Return:      handler.NewReturnHandler(returnService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		TenantRepo:      tenantRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
