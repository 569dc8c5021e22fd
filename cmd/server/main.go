package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accessapp "github.com/fieldserve/backend/internal/application/access"
	customerapp "github.com/fieldserve/backend/internal/application/customer"
	orderingapp "github.com/fieldserve/backend/internal/application/ordering"
	"github.com/fieldserve/backend/internal/domain/access"
	"github.com/fieldserve/backend/internal/domain/customer"
	"github.com/fieldserve/backend/internal/infrastructure/auth"
	"github.com/fieldserve/backend/internal/infrastructure/config"
	"github.com/fieldserve/backend/internal/infrastructure/idp"
	"github.com/fieldserve/backend/internal/infrastructure/logger"
	"github.com/fieldserve/backend/internal/infrastructure/mailer"
	"github.com/fieldserve/backend/internal/infrastructure/persistence"
	"github.com/fieldserve/backend/internal/infrastructure/telemetry"
	"github.com/fieldserve/backend/internal/interfaces/http/handler"
	"github.com/fieldserve/backend/internal/interfaces/http/middleware"
	"github.com/fieldserve/backend/internal/interfaces/http/router"
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
		Service:    "fieldserve-backend",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting FieldServe Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(); err != nil {
			log.Fatal("Failed to enable database tracing", zap.Error(err))
		}
		log.Info("Database query tracing enabled")
	}

	// Initialize repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	activationEmailRepo := persistence.NewGormActivationEmailRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	jobRepo := persistence.NewGormJobRepository(db.DB)
	securityEventRepo := persistence.NewGormSecurityEventRepository(db.DB)

	// Token blacklist backed by Redis, so revocations survive restarts
	blacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	jwtService := auth.NewJWTService(cfg.JWT, blacklist)

	// Identity provider
	identityProvider, err := idp.NewFirebaseProvider(context.Background(), cfg.Firebase)
	if err != nil {
		log.Fatal("Failed to initialize identity provider", zap.Error(err))
	}
	credentials := idp.NewCredentialGenerator()
	smtpMailer := mailer.NewSMTPMailer(cfg.Mail)

	// Fuzzy-match scoring bands come from config so they can be tuned
	// without a rebuild
	scoring := customer.Scoring{
		ExactScore:          cfg.Search.ExactScore,
		PrefixScore:         cfg.Search.PrefixScore,
		SubstringScore:      cfg.Search.SubstringScore,
		SimilarityWeight:    cfg.Search.SimilarityWeight,
		SimilarityThreshold: cfg.Search.SimilarityThreshold,
	}

	// Initialize application services
	provisioningService := customerapp.NewProvisioningService(customerRepo, addressRepo, identityProvider, credentials)
	searchService := customerapp.NewSearchService(customerRepo, identityProvider, scoring)
	activationService := customerapp.NewActivationService(
		customerRepo, activationEmailRepo, identityProvider, smtpMailer, cfg.Mail.ActivationRedirect,
	)
	intakeService := orderingapp.NewIntakeService(
		customerRepo, addressRepo, vehicleRepo, serviceRepo, orderRepo, jobRepo,
	)
	accessService := accessapp.NewAccessService(customerRepo, identityProvider, jwtService, securityEventRepo)

	// Initialize HTTP handlers
	customerHandler := handler.NewCustomerHandler(provisioningService, searchService, activationService)
	orderHandler := handler.NewOrderHandler(intakeService)
	authHandler := handler.NewAuthHandler(accessService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - Record request spans
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	requireAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Logger:     log,
	})
	optionalAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Optional:   true,
		Logger:     log,
	})
	requireStaff := middleware.RequireStaff(accessService)

	// Auth routes. Token exchange is public; logout and profile need a
	// valid token.
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/token", authHandler.ExchangeToken)
	authRoutes.POST("/logout", requireAuth, authHandler.Logout)
	authRoutes.GET("/me", requireAuth, authHandler.Profile)

	// Customer routes. Provisioning accepts both anonymous self-service
	// and authenticated staff callers; activation requests are always
	// anonymous. Lookup, listing, and search are staff-only.
	customerRoutes := router.NewDomainGroup("customer", "/customers")
	customerRoutes.POST("", optionalAuth, customerHandler.Provision)
	customerRoutes.POST("/activate", customerHandler.RequestActivation)
	customerRoutes.GET("", requireAuth, requireStaff, customerHandler.List)
	customerRoutes.GET("/search", requireAuth, requireStaff, customerHandler.Search)
	customerRoutes.GET("/close-matches", requireAuth, requireStaff, customerHandler.CloseMatches)
	customerRoutes.GET("/:id", requireAuth, requireStaff, customerHandler.Get)

	// Order routes. Customers submit and read their own orders; job
	// status changes are reserved for technicians.
	orderRoutes := router.NewDomainGroup("ordering", "/orders")
	orderRoutes.POST("", requireAuth, orderHandler.Submit)
	orderRoutes.GET("", requireAuth, orderHandler.List)
	orderRoutes.GET("/:id", requireAuth, orderHandler.Get)

	jobRoutes := router.NewDomainGroup("jobs", "/jobs")
	jobRoutes.PATCH("/:id/status",
		requireAuth,
		middleware.Require(accessService, access.TechnicianOnly),
		orderHandler.UpdateJobStatus,
	)

	// Service catalog is readable by any authenticated caller
	serviceRoutes := router.NewDomainGroup("services", "/services")
	serviceRoutes.GET("", requireAuth, orderHandler.ListServices)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(authRoutes).
		Register(customerRoutes).
		Register(orderRoutes).
		Register(jobRoutes).
		Register(serviceRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
