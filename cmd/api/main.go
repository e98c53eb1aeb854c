package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plwgs/apparel_api/internal/cache"
	"github.com/plwgs/apparel_api/internal/config"
	"github.com/plwgs/apparel_api/internal/database"
	"github.com/plwgs/apparel_api/internal/handler"
	"github.com/plwgs/apparel_api/internal/middleware"
	"github.com/plwgs/apparel_api/internal/repository"
	"github.com/plwgs/apparel_api/internal/service"
)

// main is the application entrypoint for the catalog API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting apparel api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	productCache := cache.NewProductCache(redisClient)

	// 4. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	schemaRepo := repository.NewSchemaRepository(db)

	// 5. Initialize services
	imageSvc, err := service.NewImageService(&cfg.Cloudinary)
	if err != nil {
		log.Error().Err(err).Msg("image service initialization failed")
		fmt.Fprintf(os.Stderr, "image service initialization failed: %v\n", err)
		os.Exit(1)
	}
	if !cfg.Cloudinary.Configured() {
		log.Warn().Msg("Cloudinary not configured - image uploads will keep source URLs as-is")
	}

	pageSvc, err := service.NewStaticPageService(&cfg.Catalog)
	if err != nil {
		log.Error().Err(err).Msg("static page service initialization failed")
		fmt.Fprintf(os.Stderr, "static page service initialization failed: %v\n", err)
		os.Exit(1)
	}

	productSvc := service.NewProductService(productRepo, imageSvc, pageSvc, productCache)
	categorySvc := service.NewCategoryService(categoryRepo)
	reconcileSvc := service.NewReconcileService(categoryRepo)
	schemaSvc := service.NewSchemaService(schemaRepo)

	// 5a. Startup consistency pass: schema first, then categories.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 60*time.Second)
	if report, err := schemaSvc.EnsureSizePricingColumn(startupCtx); err != nil {
		log.Warn().Err(err).Msg("size pricing migration failed at startup - admin endpoint can retry it")
	} else {
		log.Info().
			Bool("column_added", report.ColumnAdded).
			Int64("rows_backfilled", report.RowsBackfilled).
			Msg("size pricing schema ensured")
	}
	if report, err := reconcileSvc.EnsureFallbackCategory(startupCtx); err != nil {
		log.Warn().Err(err).Msg("category reconciliation failed at startup - admin endpoint can retry it")
	} else {
		log.Info().
			Str("category", report.CategoryName).
			Bool("created", report.CategoryCreated).
			Int64("orphans_reassigned", report.OrphansReassigned).
			Msg("categories reconciled")
	}
	startupCancel()

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:       handler.NewHealthHandler(db),
		Product:      handler.NewProductHandler(productSvc),
		Category:     handler.NewCategoryHandler(categorySvc),
		CatalogAdmin: handler.NewCatalogAdminHandler(productSvc, reconcileSvc, schemaSvc),
	}

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers)

	// 8. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 10. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health       *handler.HealthHandler
	Product      *handler.ProductHandler
	Category     *handler.CategoryHandler
	CatalogAdmin *handler.CatalogAdminHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers) {
	router.GET("/api/health", handlers.Health.GetHealth)

	// Public storefront routes
	router.GET("/api/products", handlers.Product.ListProducts)
	router.GET("/api/products/public/:id", handlers.Product.GetProduct)
	router.GET("/api/categories", handlers.Category.ListCategories)

	// Admin routes
	admin := router.Group("/api/admin")
	{
		admin.POST("/products", handlers.CatalogAdmin.CreateProduct)
		admin.PUT("/products/:id", handlers.CatalogAdmin.UpdateProduct)
		admin.DELETE("/products/:id", handlers.CatalogAdmin.DeleteProduct)
		admin.POST("/products/:id/rebuild-page", handlers.CatalogAdmin.RebuildPage)

		admin.POST("/categories", handlers.Category.CreateCategory)
		admin.DELETE("/categories/:id", handlers.Category.DeleteCategory)

		admin.POST("/maintenance/reconcile-categories", handlers.CatalogAdmin.ReconcileCategories)
		admin.POST("/maintenance/size-pricing", handlers.CatalogAdmin.MigrateSizePricing)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
