package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bibbank/loan-origination/internal/application/usecase"
	"github.com/bibbank/loan-origination/internal/domain/port"
	"github.com/bibbank/loan-origination/internal/domain/service"
	"github.com/bibbank/loan-origination/internal/infrastructure/adapter"
	"github.com/bibbank/loan-origination/internal/infrastructure/config"
	"github.com/bibbank/loan-origination/internal/infrastructure/kafka"
	"github.com/bibbank/loan-origination/internal/infrastructure/metrics"
	grpcPresentation "github.com/bibbank/loan-origination/internal/presentation/grpc"
	"github.com/bibbank/loan-origination/internal/presentation/rest"
	"github.com/bibbank/loan-origination/pkg/auth"
	pkgkafka "github.com/bibbank/loan-origination/pkg/kafka"
	"github.com/bibbank/loan-origination/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Telemetry.LogLevel,
		Format:  cfg.Telemetry.LogFormat,
		Service: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting origination-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"store", cfg.Store,
		"kafka", cfg.Kafka.Enabled,
		"auth", cfg.Auth.Enabled,
	)

	// Initialize tracing.
	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			Insecure:    cfg.Telemetry.OTLPInsecure,
			SampleRatio: cfg.Telemetry.SampleRatio,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort flush
	recorder, err := metrics.NewRecorder(meterProvider.Meter("origination"))
	if err != nil {
		logger.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	// Application store.
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open application store", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer store.close()

	// Wire infrastructure adapters.
	book := adapter.NewStubCustomerBook()
	var identity port.IdentityVerifier = book
	if cfg.Identity.BaseURL != "" {
		crm := adapter.DefaultCRMConfig()
		crm.BaseURL = cfg.Identity.BaseURL
		crm.Timeout = cfg.Identity.Timeout
		crm.MaxRetries = cfg.Identity.MaxRetries
		identity = adapter.NewCRMIdentityClient(crm, nil, logger)
		logger.Info("identity checks via CRM", "base_url", crm.BaseURL)
	}

	var publisher port.EventPublisher = kafka.NewLogEventPublisher(logger)
	if cfg.Kafka.Enabled {
		producer, err := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers, ClientID: cfg.ServiceName})
		if err != nil {
			logger.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		defer func() { _ = producer.Close() }() //nolint:errcheck // flushed on shutdown
		publisher = kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)
	}

	evaluator := service.NewEligibilityEvaluator()
	verifier := service.NewAffordabilityVerifier()
	parser := service.NewIncomeDocumentParser()
	assembler := service.NewSanctionAssembler(nil)

	// Wire use cases.
	transitionUC := usecase.NewTransitionApplicationUseCase(
		store.repo, evaluator, verifier, assembler, identity, publisher, recorder, logger)
	useCases := grpcPresentation.UseCases{
		EvaluateEligibility:  usecase.NewEvaluateEligibilityUseCase(book, book, evaluator, recorder, logger),
		ParseIncome:          usecase.NewParseIncomeUseCase(parser, recorder, logger),
		StartApplication:     usecase.NewStartApplicationUseCase(book, book, store.repo, publisher, logger),
		Transition:           transitionUC,
		VerifyIncomeDocument: usecase.NewVerifyIncomeDocumentUseCase(store.repo, adapter.NewPlainTextExtractor(), parser, verifier, publisher, recorder, logger),
		VerifyAffordability:  usecase.NewVerifyAffordabilityUseCase(store.repo, verifier, publisher, recorder, logger),
		GenerateSanction:     usecase.NewGenerateSanctionUseCase(transitionUC),
		GetApplication:       usecase.NewGetApplicationUseCase(store.repo),
		ListApplications:     usecase.NewListApplicationsUseCase(store.repo),
	}

	// JWT service (validation-only: public key preferred, secret as fallback).
	var jwtSvc *auth.JWTService
	if cfg.Auth.Enabled {
		jwtSvc, err = newJWTService(cfg.Auth)
		if err != nil {
			logger.Error("failed to initialize JWT service", "error", err)
			os.Exit(1)
		}
	}

	// gRPC server.
	handler := grpcPresentation.NewOriginationHandler(useCases, cfg.Auth.Enabled, logger)
	grpcServer, err := grpcPresentation.NewServer(handler, grpcPresentation.ServerConfig{
		JWT:         jwtSvc,
		TLSCertFile: cfg.TLS.CertFile,
		TLSKeyFile:  cfg.TLS.KeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger)
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	rest.NewHealthHandler(cfg.ServiceName, map[string]rest.Pinger{"store": store.pinger}, metricsHandler, logger).
		RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.ListenAndServe(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	logger.Info("origination-service stopped")
}

func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Issuer: cfg.Issuer}
	if cfg.PublicKeyFile != "" {
		key, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load JWT public key: %w", err)
		}
		jwtCfg.PublicKeyPEM = string(key)
	} else {
		jwtCfg.Secret = cfg.JWTSecret
	}
	return auth.NewJWTService(jwtCfg)
}
