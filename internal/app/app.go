package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/auth"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/catalog"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/config"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/event"
	handler "github.com/vinyah/dinesh-pvc-pipes-sub001/internal/handler/http"
	redisrepo "github.com/vinyah/dinesh-pvc-pipes-sub001/internal/repository/redis"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/service"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/health"
	pkgkafka "github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/kafka"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/middleware"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize Redis client.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// The catalog is embedded; loading it can only fail on a bad fixture.
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded",
		slog.Int("categories", len(cat.Categories())),
	)

	// Build the dependency graph.
	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	cartRepo := redisrepo.NewCartRepository(rdb)
	checkoutRepo := redisrepo.NewCheckoutRepository(rdb, sessionTTL)
	userRepo := redisrepo.NewUserRepository(rdb)

	eventProducer := event.NewProducer(producer, logger)

	cartService := service.NewCartService(cartRepo, eventProducer, logger)
	checkoutService := service.NewCheckoutService(cartService, checkoutRepo, eventProducer, logger)
	catalogService := service.NewCatalogService(cat, logger)

	tokenExpiry := time.Duration(cfg.TokenExpiryHours) * time.Hour
	tokens := auth.NewTokenManager(cfg.JWTSecret, tokenExpiry)
	authenticator := service.NewDemoAuth(userRepo, tokens, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.CORSAllowedOrigins
	corsConfig.Environment = cfg.Environment

	// HTTP router.
	router := handler.NewRouter(
		cartService,
		checkoutService,
		catalogService,
		authenticator,
		healthHandler,
		corsConfig,
		logger,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Close Redis client.
	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
