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

	"github.com/advancehub/underwriting-service/internal/application/usecase"
	"github.com/advancehub/underwriting-service/internal/domain/service"
	"github.com/advancehub/underwriting-service/internal/infrastructure/config"
	"github.com/advancehub/underwriting-service/internal/infrastructure/kafka"
	pgRepo "github.com/advancehub/underwriting-service/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/advancehub/underwriting-service/internal/presentation/grpc"
	"github.com/advancehub/underwriting-service/internal/presentation/rest"
	"github.com/advancehub/underwriting-service/pkg/auth"
	pkgkafka "github.com/advancehub/underwriting-service/pkg/kafka"
	"github.com/advancehub/underwriting-service/pkg/observability"
	pkgpostgres "github.com/advancehub/underwriting-service/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   getEnv("LOG_LEVEL", "info"),
		Format:  "json",
		Service: cfg.ServiceName,
	})
	slog.SetDefault(logger)

	logger.Info("starting underwriting-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"metrics_port", cfg.MetricsPort,
	)

	// Prometheus metrics exporter.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
		Port:        cfg.MetricsPort,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort exporter shutdown

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
	if migErr := pkgpostgres.RunMigrations(dbCfg.DSN(), "file://internal/infrastructure/persistence/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	dealRepo := pgRepo.NewDealRepo(pool)
	merchantRepo := pgRepo.NewMerchantRepo(pool)
	bankRepo := pgRepo.NewBankAnalysisRepo(pool)
	uccRepo := pgRepo.NewUCCFilingRepo(pool)
	brokerRepo := pgRepo.NewBrokerRepo(pool)
	historyRepo := pgRepo.NewStageHistoryRepo(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	// Domain services.
	policy := service.DefaultPricingPolicy().WithClampCustomOffers(cfg.Policy.ClampCustomOffers)
	scorer := service.NewRiskScorer()
	detector := service.NewStackingDetector()
	metrics := service.NewBankMetricsAnalyzer()
	calculator := service.NewOfferCalculator(policy)

	// Wire use cases.
	createUC := usecase.NewCreateDealUseCase(dealRepo, merchantRepo, brokerRepo, publisher)
	analyzeUC := usecase.NewAnalyzeDealUseCase(dealRepo, merchantRepo, bankRepo, uccRepo, brokerRepo,
		scorer, detector, metrics, calculator, logger)
	quoteUC := usecase.NewQuoteOfferUseCase(dealRepo, merchantRepo, bankRepo, uccRepo, brokerRepo,
		scorer, detector, calculator)
	decideUC := usecase.NewDecideDealUseCase(dealRepo, publisher, policy, logger)
	advanceUC := usecase.NewAdvanceDealStageUseCase(dealRepo, publisher, logger)
	getUC := usecase.NewGetDealUseCase(dealRepo, historyRepo)
	commentUC := usecase.NewAddDealCommentUseCase(dealRepo, historyRepo, logger)

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{
		Issuer: "advancehub-gateway",
	}
	switch {
	case os.Getenv("JWT_PUBLIC_KEY") != "":
		jwtCfg.PublicKeyPEM = os.Getenv("JWT_PUBLIC_KEY")
	case os.Getenv("JWT_PUBLIC_KEY_FILE") != "":
		keyData, loadErr := auth.LoadKeyFromFile(os.Getenv("JWT_PUBLIC_KEY_FILE"))
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtSecret := os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			jwtSecret = "test-e2e-secret" // Match gateway default for E2E tests
		}
		jwtCfg.Secret = jwtSecret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	handler := grpcPresentation.NewUnderwritingHandler(createUC, analyzeUC, quoteUC, decideUC, advanceUC, getUC, commentUC)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc)

	// HTTP server (health checks).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger)
	healthHandler.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server.
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metricsHandler)
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 3)

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

	go func() {
		logger.Info("metrics server starting", "port", cfg.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server error: %w", err)
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
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}

	logger.Info("underwriting-service stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
