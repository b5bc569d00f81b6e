package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitpulse-core/internal/application/service"
	"gitpulse-core/internal/clerk"
	"gitpulse-core/internal/config"
	"gitpulse-core/internal/database"
	"gitpulse-core/internal/domain/events"
	"gitpulse-core/internal/domain/org"
	"gitpulse-core/internal/domain/repo"
	"gitpulse-core/internal/github"
	infraClerk "gitpulse-core/internal/infrastructure/clerk"
	infraGitHub "gitpulse-core/internal/infrastructure/github"
	"gitpulse-core/internal/infrastructure/persistence"
	"gitpulse-core/internal/middleware"
	"gitpulse-core/internal/presentation/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title GitPulse Core API
// @version 1.0
// @description GitHub organization and repository synchronization backend
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ClerkAuth
// @in header
// @name Authorization
// @description Clerk JWT token

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.Bootstrap(); err != nil {
		log.Fatalf("Failed to bootstrap database schema: %v", err)
	}

	// Initialize infrastructure layer
	// External service clients
	clerkClient := clerk.NewClient(&cfg.Clerk)
	githubClient := github.NewClient(&cfg.GitHub)

	// Infrastructure implementations of domain services
	identityService := infraClerk.NewClerkService(clerkClient)
	githubService := infraGitHub.NewGitHubService(githubClient)

	// Repository implementations
	accountRepository := persistence.NewAccountRepository(db)
	organizationRepository := persistence.NewOrganizationRepository(db)
	repositoryRepository := persistence.NewRepositoryRepository(db)

	// Domain event dispatcher with logging handlers
	dispatcher := events.NewDispatcher()
	registerEventLogging(dispatcher)

	// Initialize application layer
	// Application services (use cases)
	accountService := service.NewAccountService(accountRepository, identityService)
	syncService := service.NewSyncService(organizationRepository, repositoryRepository, githubService, dispatcher)
	enricher := service.NewDetailEnricher(githubService)
	catalogService := service.NewCatalogService(repositoryRepository, enricher, dispatcher)

	// Initialize presentation layer
	// HTTP handlers
	healthHandler := handlers.NewHealthHandler()
	githubHandler := handlers.NewGitHubHandler(syncService, accountService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, accountService)

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize auth middleware: %v", err)
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// Add middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint (no auth required)
		v1.GET("/health", healthHandler.Health)

		// GitHub routes
		githubRoutes := v1.Group("/github")
		githubRoutes.Use(authMiddleware.RequireAuth())
		{
			githubRoutes.GET("/orgs", githubHandler.ListOrganizations)
			githubRoutes.GET("/orgs/:org/repos", githubHandler.ListOrganizationRepositories)
			githubRoutes.POST("/sync", githubHandler.Sync)
		}

		// Catalog routes
		catalog := v1.Group("/catalog")
		catalog.Use(authMiddleware.RequireAuth())
		{
			catalog.GET("/repos", catalogHandler.GetCatalog)
			catalog.PATCH("/repos/:id/include", catalogHandler.ToggleInclusion)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// registerEventLogging attaches logging handlers for the domain events
// raised by sync and toggle passes
func registerEventLogging(dispatcher *events.Dispatcher) {
	dispatcher.Register(org.EventTypeOrganizationsSynced, func(ctx context.Context, event events.DomainEvent) error {
		if e, ok := event.(*org.OrganizationsSyncedEvent); ok {
			log.Printf("synced %d organizations for account %s", e.OrganizationCount, e.AccountID)
		}
		return nil
	})

	dispatcher.Register(repo.EventTypeRepositoriesSynced, func(ctx context.Context, event events.DomainEvent) error {
		if e, ok := event.(*repo.RepositoriesSyncedEvent); ok {
			log.Printf("synced %d repositories for account %s (%d anomalies)",
				e.RepositoryCount, e.AccountID, e.AnomalyCount)
		}
		return nil
	})

	dispatcher.Register(repo.EventTypeInclusionChanged, func(ctx context.Context, event events.DomainEvent) error {
		if e, ok := event.(*repo.InclusionChangedEvent); ok {
			log.Printf("repository %s inclusion set to %t", e.RepositoryID, e.Included)
		}
		return nil
	})
}
