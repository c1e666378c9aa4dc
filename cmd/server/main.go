package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	identityapp "github.com/perfhub/backend/internal/application/identity"
	perfapp "github.com/perfhub/backend/internal/application/performance"
	"github.com/perfhub/backend/internal/infrastructure/auth"
	"github.com/perfhub/backend/internal/infrastructure/cache"
	"github.com/perfhub/backend/internal/infrastructure/config"
	"github.com/perfhub/backend/internal/infrastructure/event"
	"github.com/perfhub/backend/internal/infrastructure/logger"
	"github.com/perfhub/backend/internal/infrastructure/notification"
	"github.com/perfhub/backend/internal/infrastructure/persistence"
	"github.com/perfhub/backend/internal/interfaces/http/handler"
	"github.com/perfhub/backend/internal/interfaces/http/middleware"
	"github.com/perfhub/backend/internal/interfaces/http/router"
)

// version is injected at build time via -ldflags
var version = "dev"

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
		_ = logger.Sync(log)
	}()

	log.Info("Starting PerfHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

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

	// Redis backs the token blacklist and the analytics cache. When it is
	// unreachable, both fall back to in-process implementations so a cache
	// outage does not keep the service down.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	var blacklist auth.TokenBlacklist
	var analyticsCache perfapp.AnalyticsCache

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	redisErr := redisClient.Ping(pingCtx).Err()
	cancelPing()
	if redisErr != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist and analytics cache",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(redisErr),
		)
		blacklist = auth.NewInMemoryTokenBlacklist()
		analyticsCache = cache.NewInMemoryAnalyticsCache(cfg.Analytics.CacheTTL)
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		analyticsCache = cache.NewRedisAnalyticsCacheWithClient(redisClient, cfg.Analytics.CacheTTL)
		log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))
	}
	if !cfg.Analytics.CacheEnabled {
		analyticsCache = nil
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	departmentRepo := persistence.NewGormDepartmentRepository(db.DB)
	indicatorRepo := persistence.NewGormIndicatorRepository(db.DB)
	scoreRecordRepo := persistence.NewGormScoreRecordRepository(db.DB)
	indicatorTxScope := persistence.NewGormIndicatorTxScope(db.DB)

	// Initialize event bus and notification dispatch
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(notification.NewLogHandler(log))
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	notifier := notification.NewDispatcher(eventBus, log)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, departmentRepo)
	departmentService := identityapp.NewDepartmentService(departmentRepo)

	visibility := perfapp.NewVisibilityResolver(userRepo)
	indicatorService := perfapp.NewIndicatorService(indicatorRepo, indicatorTxScope)
	scoreService := perfapp.NewScoreService(scoreRecordRepo, indicatorRepo, userRepo, visibility, notifier, log)
	analyticsService := perfapp.NewAnalyticsService(
		scoreRecordRepo, indicatorRepo, userRepo, visibility,
		analyticsCache, cfg.Analytics.TrendMonths,
	)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(userService),
		Department: handler.NewDepartmentHandler(departmentService),
		Indicator:  handler.NewIndicatorHandler(indicatorService),
		Score:      handler.NewScoreHandler(scoreService),
		Analytics:  handler.NewAnalyticsHandler(analyticsService),
		System:     handler.NewSystemHandler(cfg.App.Name, version),

		// Credential endpoints get a tighter limit than general traffic.
		AuthLimiter: middleware.NewRateLimiter(10, time.Minute),
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first: request ID, tracing, panic recovery,
	// request logging, security headers, body limit, rate limit, CORS.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.App.Name,
		Enabled:     true,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodyBytes))
	engine.Use(middleware.RateLimit(middleware.NewRateLimiter(
		cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow,
	)))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health and readiness endpoints (outside API versioning)
	engine.GET("/health", healthHandler(db, log))
	engine.GET("/ready", healthHandler(db, log))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))

	for _, group := range router.BuildGroups(handlers) {
		r.Register(group)
	}
	r.Setup()

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
