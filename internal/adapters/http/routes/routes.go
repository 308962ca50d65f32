package routes

import (
	"isuhub/internal/adapters/http/handlers"
	"isuhub/internal/adapters/http/middleware"
	"isuhub/internal/adapters/persistence/repositories"
	"isuhub/internal/config"
	"isuhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	memberRepo := repositories.NewMemberRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	standardRepo := repositories.NewProfessionStandardRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	// Initialize services
	authService := services.NewAuthService(memberRepo, accountRepo, refreshTokenRepo, cfg)
	accountService := services.NewAccountService(memberRepo, accountRepo)
	professionService := services.NewProfessionService(memberRepo, standardRepo)
	catalog := services.NewServiceCatalog(memberRepo, serviceRepo, standardRepo)
	transactionService := services.NewTransactionService(memberRepo, serviceRepo, accountRepo, transactionRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	accountHandler := handlers.NewAccountHandler(accountService)
	professionHandler := handlers.NewProfessionHandler(professionService)
	serviceHandler := handlers.NewServiceHandler(catalog)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Account routes (authenticated)
	accountRoutes := apiV1.Group("/accounts")
	accountRoutes.Use(middleware.AuthMiddleware(cfg))
	setupAccountRoutes(accountRoutes, accountHandler)

	// Profession routes (rates are public, changes are authenticated)
	professionRoutes := apiV1.Group("/professions")
	setupProfessionRoutes(professionRoutes, professionHandler, cfg)

	// Service catalog routes (listing is public, publishing is authenticated)
	serviceRoutes := apiV1.Group("/services")
	setupServiceRoutes(serviceRoutes, serviceHandler, cfg)

	// Transaction routes (authenticated)
	transactionRoutes := apiV1.Group("/transactions")
	transactionRoutes.Use(middleware.AuthMiddleware(cfg))
	setupTransactionRoutes(transactionRoutes, transactionHandler)

	// Admin routes (admin only)
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, accountHandler, professionHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (5 req/min/IP)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)

	// Protected routes
	router.Post("/logout", middleware.AuthMiddleware(cfg), handler.Logout)
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

// setupAccountRoutes configures ISU account routes
func setupAccountRoutes(router fiber.Router, handler *handlers.AccountHandler) {
	router.Get("/me", handler.GetBalance)
	router.Get("/:owner_id/history", handler.GetHistory)
}

// setupProfessionRoutes configures profession standard routes
func setupProfessionRoutes(router fiber.Router, handler *handlers.ProfessionHandler, cfg *config.Config) {
	// Public routes
	router.Get("/rates", handler.ListRates)
	router.Get("/:type/rate", handler.GetRate)

	// Protected routes
	router.Put("/:type/rate", middleware.AuthMiddleware(cfg), middleware.DeciderOrAdmin(), handler.UpdateRate)
	router.Get("/standards/mine", middleware.AuthMiddleware(cfg), handler.MyStandards)
	router.Get("/standards/:id/history", middleware.AuthMiddleware(cfg), handler.GetHistory)
}

// setupServiceRoutes configures service catalog routes
func setupServiceRoutes(router fiber.Router, handler *handlers.ServiceHandler, cfg *config.Config) {
	// Public routes
	router.Get("/", handler.List)

	// Protected routes (registered before /:id so "mine" is not swallowed)
	router.Get("/mine", middleware.AuthMiddleware(cfg), handler.Mine)
	router.Post("/", middleware.AuthMiddleware(cfg), handler.Publish)
	router.Delete("/:id", middleware.AuthMiddleware(cfg), handler.Cancel)

	// Public by ID
	router.Get("/:id", handler.Get)
}

// setupTransactionRoutes configures transaction lifecycle routes
func setupTransactionRoutes(router fiber.Router, handler *handlers.TransactionHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/pending", handler.Pending)
	router.Get("/:id", handler.Get)
	router.Post("/:id/confirm", handler.Confirm)
	router.Post("/:id/complete", handler.Complete)
	router.Post("/:id/cancel", handler.Cancel)
	router.Post("/:id/dispute", handler.Dispute)
}

// setupAdminRoutes configures admin-only routes
func setupAdminRoutes(router fiber.Router, accountHandler *handlers.AccountHandler, professionHandler *handlers.ProfessionHandler) {
	router.Post("/accounts/adjust", accountHandler.Adjust)
	router.Post("/deciders", professionHandler.AssignDecider)
	router.Delete("/deciders/:member_id", professionHandler.RevokeDecider)
}
