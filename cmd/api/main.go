package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-land-rentals/internal/adapter"
	"github.com/feral-file/ff-land-rentals/internal/api/middleware"
	"github.com/feral-file/ff-land-rentals/internal/api/server"
	"github.com/feral-file/ff-land-rentals/internal/config"
	"github.com/feral-file/ff-land-rentals/internal/domain"
	"github.com/feral-file/ff-land-rentals/internal/logger"
	"github.com/feral-file/ff-land-rentals/internal/rentals"
	"github.com/feral-file/ff-land-rentals/internal/signature"
	"github.com/feral-file/ff-land-rentals/internal/store"
	"github.com/feral-file/ff-land-rentals/internal/subgraph"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "land-rentals-api",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"chain": cfg.ChainID.String(),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Land Rentals API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)

	// Contracts
	overrides, err := cfg.Contracts.RentalsOverrides()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid contracts configuration", zap.Error(err))
	}
	contracts := domain.NewContractRegistry(overrides)

	// Subgraphs
	jsonAdapter := adapter.NewJSON()
	retry := adapter.DefaultRetryConfig
	retry.MaxRetries = cfg.Subgraphs.MaxRetries
	httpClient := adapter.NewHTTPClientWithRetry(cfg.Subgraphs.HTTPTimeout, retry)
	rentalsSubgraph := subgraph.NewRentals(subgraph.NewClient(httpClient, cfg.Subgraphs.RentalsURL, jsonAdapter))
	marketplaceSubgraph := subgraph.NewMarketplace(subgraph.NewClient(httpClient, cfg.Subgraphs.MarketplaceURL, jsonAdapter))

	component := rentals.NewComponent(
		rentals.Config{ChainID: cfg.ChainID, Network: cfg.Network},
		dataStore,
		signature.NewVerifier(contracts),
		rentalsSubgraph,
		marketplaceSubgraph,
		contracts,
		adapter.NewClock(),
	)

	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
		},
		CORS: middleware.CORSConfig{
			AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		},
	}
	srv := server.New(serverConfig, component)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
	}
	cancel()

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	logger.Info("API server stopped")
}
