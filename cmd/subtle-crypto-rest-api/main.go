// cmd/subtle-crypto-rest-api/main.go
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

	v1 "github.com/MGTheTrain/subtle-crypto-adapter/internal/api/rest/v1"
	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"
	"github.com/MGTheTrain/subtle-crypto-adapter/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/subtle-crypto-adapter/internal/infrastructure/metrics"
	"github.com/MGTheTrain/subtle-crypto-adapter/internal/pkg/config"
	"github.com/MGTheTrain/subtle-crypto-adapter/internal/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv(config.ConfigPathEnv)
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	subtle   cryptoDomain.Subtle
	crypto   cryptoDomain.Crypto
	registry *prometheus.Registry
}

// initializeDependencies wires the platform engine, the adapter and its instrumentation
func initializeDependencies(log logger.Logger) (*appDependencies, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	subtle, err := cryptography.NewNativeSubtle(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create platform engine: %w", err)
	}

	adapter, err := cryptography.NewSubtleAdapter(subtle, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto adapter: %w", err)
	}

	instrumented, err := metrics.NewInstrumentedCrypto(adapter, registry)
	if err != nil {
		return nil, fmt.Errorf("failed to instrument crypto adapter: %w", err)
	}

	log.Info("Crypto adapter initialized successfully")
	return &appDependencies{
		subtle:   subtle,
		crypto:   instrumented,
		registry: registry,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", v1.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Type", v1.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	// Setup API, health and metrics routes
	v1.SetupRoutes(r, deps.crypto, deps.subtle, deps.registry, cfg.MaxRandomBytes)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal %v, initiating graceful shutdown", sig)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
