package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"helpdesk-shopify-orders/internal/application"
	apiinfra "helpdesk-shopify-orders/internal/infrastructure/api"
	"helpdesk-shopify-orders/internal/infrastructure/cache"
	"helpdesk-shopify-orders/internal/infrastructure/config"
	"helpdesk-shopify-orders/internal/infrastructure/httpclient"
	"helpdesk-shopify-orders/internal/infrastructure/logging"
	"helpdesk-shopify-orders/internal/infrastructure/metrics"
	"helpdesk-shopify-orders/internal/infrastructure/repository"
	shopifyinfra "helpdesk-shopify-orders/internal/infrastructure/shopify"
	"helpdesk-shopify-orders/internal/ports"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	bootLogger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		bootLogger.Warn().Msg("Warning: .env file not found")
	}

	cfg, err := config.Load(".")
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := logging.New(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.Database)

	// Initialize repositories
	mailboxRepo := repository.NewMongoMailboxRepository(db)
	customerRepo := repository.NewMongoCustomerRepository(db)
	if err := customerRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to create customer indexes")
	}

	resultStore := newResultStore(ctx, cfg.Redis.URL, logger)
	defer resultStore.Close()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// Shopify infrastructure
	httpClient := httpclient.New(cfg.Shopify.ClientTimeout(), logger)
	orderClient := shopifyinfra.NewClient(httpClient, cfg.Shopify.UserAgent, appMetrics, logger)
	shopVerifier := shopifyinfra.NewShopVerifier(httpClient, logger)

	// Initialize application services
	credentialsService := application.NewCredentialsService(cfg.Shopify.GlobalCredentials(), logger)
	identityCache := application.NewIdentityCache(customerRepo, appMetrics, logger)
	lookupService := application.NewOrderLookupService(
		credentialsService,
		orderClient,
		identityCache,
		cfg.Shopify.MaxOrders,
		logger,
	)
	resultCache := application.NewResultCache(resultStore, appMetrics, logger)
	panelService := application.NewOrderPanelService(credentialsService, lookupService, resultCache, logger)
	settingsService := application.NewSettingsService(
		mailboxRepo,
		credentialsService,
		lookupService,
		shopVerifier,
		logger,
	)

	handler := apiinfra.NewHandler(panelService, settingsService, customerRepo, logger)
	router := apiinfra.NewRouter(handler, apiinfra.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins(),
		Gatherer:       registry,
		SwaggerFile:    "./docs/swagger.json",
	}, logger)

	if !credentialsService.AnyEnabled(nil) {
		logger.Info().Msg("Global Shopify credentials not configured; only mailbox settings will be used")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Starting API server")
		logger.Info().Msg("Swagger documentation available at http://localhost:" + cfg.Port + "/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

// newResultStore returns Redis when a URL is configured and reachable, the in-memory cache otherwise
func newResultStore(ctx context.Context, redisURL string, logger zerolog.Logger) ports.Cache {
	if redisURL == "" {
		logger.Info().Msg("REDIS_URL not set, using in-memory result cache")
		return cache.NewMemoryAdapter()
	}

	adapter, err := cache.NewRedisAdapter(redisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid REDIS_URL, using in-memory result cache")
		return cache.NewMemoryAdapter()
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := adapter.Ping(pingCtx); err != nil {
		logger.Warn().Err(err).Msg("Redis unreachable, using in-memory result cache")
		_ = adapter.Close()
		return cache.NewMemoryAdapter()
	}

	logger.Info().Msg("Using Redis result cache")
	return adapter
}
