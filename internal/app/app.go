package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Domains
	"github.com/mundipagg/gateway-core/internal/domain"
	"github.com/mundipagg/gateway-core/internal/domain/order"

	// Inbound adapters (HTTP handlers)
	healthhttp "github.com/mundipagg/gateway-core/internal/adapter/inbound/http/health"
	orderhttp "github.com/mundipagg/gateway-core/internal/adapter/inbound/http/order"
	subscriptionhttp "github.com/mundipagg/gateway-core/internal/adapter/inbound/http/subscription"
	webhookhttp "github.com/mundipagg/gateway-core/internal/adapter/inbound/http/webhook"

	// Outbound adapters
	"github.com/mundipagg/gateway-core/internal/adapter/outbound/mundipagg"
	"github.com/mundipagg/gateway-core/internal/adapter/outbound/notifier"
	"github.com/mundipagg/gateway-core/internal/adapter/outbound/postgres"
	redisadapter "github.com/mundipagg/gateway-core/internal/adapter/outbound/redis"
	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/outbound"

	// Shared infrastructure
	sharedcache "github.com/mundipagg/gateway-core/internal/shared/cache"
	"github.com/mundipagg/gateway-core/internal/shared/config"
	"github.com/mundipagg/gateway-core/internal/shared/database"
	"github.com/mundipagg/gateway-core/internal/shared/i18n"
	"github.com/mundipagg/gateway-core/internal/shared/logger"
	"github.com/mundipagg/gateway-core/internal/utils/metrics"
	"github.com/mundipagg/gateway-core/internal/utils/middleware"
)

// App wires the gateway service together.
type App struct {
	config    *config.Config
	db        *gorm.DB
	redis     goredis.UniversalClient
	router    *gin.Engine
	logger    *logger.Logger
	zapLogger *zap.Logger
	metrics   *metrics.Metrics

	domain *domain.Domain
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	zapLog, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init zap logger: %w", err)
	}

	app := &App{
		config:    cfg,
		logger:    log,
		zapLogger: zapLog,
		metrics:   metrics.New("mundipagg"),
	}

	if err := app.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("init infrastructure: %w", err)
	}

	app.initDomains()
	app.router = app.setupRouter()
	app.registerRoutes()

	return app, nil
}

// initInfrastructure opens the database and, when reachable, Redis.
func (a *App) initInfrastructure() error {
	db, err := database.New(&a.config.Database, a.config.Log.Level == "debug")
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	a.db = db

	// Redis only backs idempotency and rate limiting, so the service runs
	// without it.
	redisClient, err := sharedcache.NewRedisClient(&a.config.Redis)
	if err != nil {
		a.logger.Warn("Redis unavailable, idempotency and rate limiting disabled", "error", err)
	} else {
		a.redis = redisClient
	}

	return nil
}

// initDomains creates the outbound adapters and the domain services.
func (a *App) initDomains() {
	var customerNotifier outbound.CustomerNotifierPort
	if a.config.Notifier.SMTPHost != "" {
		customerNotifier = notifier.NewEmailNotifier(&a.config.Notifier, a.zapLogger)
	} else {
		customerNotifier = notifier.NewNoOpNotifier(a.zapLogger)
	}

	ports := &domain.OutboundPorts{
		Gateway:         mundipagg.NewClient(&a.config.Gateway, a.metrics, a.zapLogger),
		Transactor:      postgres.NewTransactor(a.db),
		Notifier:        customerNotifier,
		ChargeDB:        postgres.NewChargeAdapter(a.db),
		OrderDB:         postgres.NewOrderAdapter(a.db),
		PlatformOrderDB: postgres.NewPlatformOrderAdapter(a.db),
		SubscriptionDB:  postgres.NewSubscriptionAdapter(a.db),
		WebhookEventDB:  postgres.NewWebhookEventAdapter(a.db),
	}

	orderConfig := &order.Config{
		AntifraudEnabled: a.config.Module.AntifraudEnabled,
		ForceCreate:      a.config.Module.ForceCreateOrder,
		ModuleVersion:    a.config.Module.ModuleVersion,
		PlatformVersion:  a.config.Module.PlatformVersion,
		Recurrence:       model.RecurrenceConfig(a.config.Recurrence),
	}

	a.domain = domain.NewDomain(ports, orderConfig, i18n.New(a.config.Module.Locale), a.zapLogger)
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Apply global middleware
	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger))
	r.Use(middleware.Metrics(a.metrics))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	healthhttp.NewHealthHandler(a.healthChecks()).RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func (a *App) healthChecks() map[string]healthhttp.Check {
	checks := map[string]healthhttp.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := a.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if a.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return a.redis.Ping(ctx).Err()
		}
	}
	return checks
}

// registerRoutes registers all HTTP routes.
func (a *App) registerRoutes() {
	webhookhttp.NewWebhookHandler(a.domain.Webhook, a.metrics, a.zapLogger).
		RegisterRoutes(a.router, middleware.WebhookBasicAuth(a.config.Webhook.Username, a.config.Webhook.PasswordHash))

	var limiter outbound.RateLimiterPort
	if a.redis != nil {
		limiter = redisadapter.NewRateLimiter(a.redis)
	}

	// Store admin API, JWT protected
	v1 := a.router.Group("/api/v1")
	v1.Use(middleware.RequireAuth(middleware.NewHS256Validator(a.config.Auth.JWTSecret, a.config.Auth.Issuer)))
	v1.Use(middleware.RateLimitBySubject(limiter, a.config.RateLimit.Limit, a.config.RateLimit.Window))

	orderhttp.NewOrderHandler(a.domain.Order, a.metrics).
		RegisterRoutes(v1, middleware.Idempotency(a.redis, middleware.IdempotencyConfig{Logger: a.logger}))
	subscriptionhttp.NewSubscriptionHandler(a.domain.Subscription).RegisterRoutes(v1)
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Logger returns the application logger.
func (a *App) Logger() *logger.Logger {
	return a.logger
}

// Stop stops the application and releases resources.
func (a *App) Stop() {
	if a.zapLogger != nil {
		_ = a.zapLogger.Sync()
	}

	if a.redis != nil {
		_ = sharedcache.Close(a.redis)
	}

	if a.db != nil {
		_ = database.Close(a.db)
	}
}
