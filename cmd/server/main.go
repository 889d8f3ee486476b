package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/smartbill/backend/internal/application/billing"
	catalogapp "github.com/smartbill/backend/internal/application/catalog"
	identityapp "github.com/smartbill/backend/internal/application/identity"
	reportapp "github.com/smartbill/backend/internal/application/report"
	"github.com/smartbill/backend/internal/domain/identity"
	"github.com/smartbill/backend/internal/infrastructure/auth"
	"github.com/smartbill/backend/internal/infrastructure/cache"
	"github.com/smartbill/backend/internal/infrastructure/config"
	"github.com/smartbill/backend/internal/infrastructure/logger"
	"github.com/smartbill/backend/internal/infrastructure/persistence"
	"github.com/smartbill/backend/internal/infrastructure/printing"
	"github.com/smartbill/backend/internal/infrastructure/storage"
	"github.com/smartbill/backend/internal/interfaces/http/handler"
	"github.com/smartbill/backend/internal/interfaces/http/middleware"
	"github.com/smartbill/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting SmartBill Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB, cfg.Report.TopProducts)
	billingScope := persistence.NewGormBillingTransactionScope(db.DB)

	// Dashboard cache (Redis when enabled, in-memory otherwise)
	reportCache := cache.NewReportCache(cfg.Redis, log)

	// Invoice PDF rendering and archival
	renderer := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		Timeout: cfg.Invoice.RenderTimeout,
		Logger:  log,
	})
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	archiver, err := storage.NewInvoiceArchiver(cfg.Storage, cfg.Invoice, log)
	if err != nil {
		log.Fatal("Failed to initialize invoice archiver", zap.Error(err))
	}

	// Auth infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	verifier := auth.NewUserInfoVerifier(cfg.Federated)

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, verifier,
		identityapp.AuthServiceConfig{AdminEmails: cfg.Federated.AdminEmails}, log)
	productService := catalogapp.NewProductService(productRepo, log)
	billingService := billingapp.NewBillingService(billingScope, billRepo,
		renderer, archiver, reportCache, cfg.Shop, log)
	dashboardService := reportapp.NewDashboardService(reportRepo, reportCache, cfg.Report, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	billingHandler := handler.NewBillingHandler(billingService)
	reportHandler := handler.NewReportHandler(dashboardService)
	healthHandler := handler.NewHealthHandler(db)

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware chain: request ID, panic recovery, request logging,
	// CORS, body size limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Probes outside API versioning
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/signup",
			"/api/v1/auth/login",
			"/api/v1/auth/federated",
		},
		Logger: log,
	}))

	// Public authentication routes
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/signup", authHandler.Signup)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/federated", authHandler.Federated)
	authRoutes.GET("/me", authHandler.Me)

	// Shop counter routes: any signed-in shop user
	shopRoutes := router.NewDomainGroup("shop", "/shop")
	shopRoutes.Use(middleware.RequireRoles(identity.RoleShop, identity.RoleAdmin))
	shopRoutes.GET("/products", productHandler.List)
	shopRoutes.GET("/products/:id", productHandler.Get)
	shopRoutes.POST("/bill", billingHandler.Create)
	shopRoutes.GET("/bill/:id", billingHandler.Get)
	shopRoutes.GET("/bill/:id/pdf", billingHandler.DownloadPDF)
	shopRoutes.GET("/history", billingHandler.MyHistory)
	shopRoutes.GET("/stats", reportHandler.MyStats)

	// Admin routes: catalog management and full analytics
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(middleware.RequireRoles(identity.RoleAdmin))
	adminRoutes.GET("/products", productHandler.List)
	adminRoutes.GET("/products/low-stock", productHandler.LowStock)
	adminRoutes.GET("/products/:id", productHandler.Get)
	adminRoutes.POST("/products", productHandler.Create)
	adminRoutes.PUT("/products/:id", productHandler.Update)
	adminRoutes.DELETE("/products/:id", productHandler.Delete)
	adminRoutes.GET("/sales", billingHandler.History)
	adminRoutes.GET("/sales/:id", billingHandler.Get)
	adminRoutes.GET("/sales/:id/pdf", billingHandler.DownloadPDF)
	adminRoutes.GET("/reports/dashboard", reportHandler.Dashboard)

	r.Register(authRoutes).
		Register(shopRoutes).
		Register(adminRoutes)
	r.Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
