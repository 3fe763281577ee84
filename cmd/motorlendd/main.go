package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/motorlend/motorlend/internal/application/usecase"
	"github.com/motorlend/motorlend/internal/domain/service"
	"github.com/motorlend/motorlend/internal/infrastructure/adapter"
	"github.com/motorlend/motorlend/internal/infrastructure/cache"
	"github.com/motorlend/motorlend/internal/infrastructure/config"
	"github.com/motorlend/motorlend/internal/infrastructure/kafka"
	pgRepo "github.com/motorlend/motorlend/internal/infrastructure/postgres"
	grpcPresentation "github.com/motorlend/motorlend/internal/presentation/grpc"
	"github.com/motorlend/motorlend/internal/presentation/rest"
	"github.com/motorlend/motorlend/pkg/auth"
	pkgkafka "github.com/motorlend/motorlend/pkg/kafka"
	"github.com/motorlend/motorlend/pkg/observability"
	pkgpostgres "github.com/motorlend/motorlend/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load and validate configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting motorlend",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdown(ctx) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Initialize metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without metrics", "error", err)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(dbCfg.DSN(), "file://migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Redis valuation cache.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close() //nolint:errcheck
	valuationCache := cache.NewRedisValuationCache(redisClient, cfg.Redis.TTL)

	// Wire infrastructure adapters.
	vehicleRepo := pgRepo.NewVehicleRepo(pool)
	valuationRepo := pgRepo.NewValuationRepo(pool)
	loanRepo := pgRepo.NewLoanRepo(pool)
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close() //nolint:errcheck
	publisher := kafka.NewKafkaEventPublisher(kafkaProducer, "motorlend-events", logger)
	vinDecoder := adapter.NewVinDecoderAdapter(adapter.VinDecoderConfig{
		BaseURL:      cfg.VinDecoder.BaseURL,
		APIKey:       cfg.VinDecoder.APIKey,
		Timeout:      cfg.VinDecoder.Timeout,
		MaxRetries:   cfg.VinDecoder.MaxRetries,
		RetryBackoff: 200 * time.Millisecond,
	}, nil)

	// Domain engines.
	valuationEngine := service.NewValuationEngine(cfg.Valuation)
	eligibilityEngine := service.NewEligibilityEngine()

	// Wire use cases.
	registerVehicleUC := usecase.NewRegisterVehicleUseCase(vehicleRepo, publisher)
	getVehicleUC := usecase.NewGetVehicleUseCase(vehicleRepo)
	requestValuationUC := usecase.NewRequestValuationUseCase(
		vehicleRepo, valuationRepo, publisher, vinDecoder, valuationCache, valuationEngine, logger,
	)
	getValuationUC := usecase.NewGetValuationUseCase(valuationRepo)
	createLoanUC := usecase.NewCreateLoanUseCase(
		vehicleRepo, valuationRepo, loanRepo, publisher, requestValuationUC, eligibilityEngine, cfg.Thresholds,
	)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo)
	updateLoanStatusUC := usecase.NewUpdateLoanStatusUseCase(loanRepo, publisher)
	checkEligibilityUC := usecase.NewCheckEligibilityUseCase(eligibilityEngine, cfg.Thresholds)
	loanStatisticsUC := usecase.NewLoanStatisticsUseCase(loanRepo)

	// JWT service.
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:        cfg.JWT.Secret,
		PublicKeyPEM:  cfg.JWT.PublicKeyPEM,
		PrivateKeyPEM: cfg.JWT.PrivateKeyPEM,
		Issuer:        cfg.JWT.Issuer,
		Expiration:    cfg.JWT.Expiration,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	handler := grpcPresentation.NewHandler(
		registerVehicleUC, getVehicleUC, requestValuationUC, getValuationUC,
		createLoanUC, getLoanUC, updateLoanStatusUC, checkEligibilityUC, loanStatisticsUC,
		logger,
	)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(logger, map[string]rest.Checker{
		"postgres": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
		"redis":    valuationCache.HealthCheck,
	})
	healthHandler.RegisterRoutes(mux)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("motorlend stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
