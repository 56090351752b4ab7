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
	"github.com/feral-file/ff-land-rentals/internal/config"
	"github.com/feral-file/ff-land-rentals/internal/domain"
	"github.com/feral-file/ff-land-rentals/internal/logger"
	"github.com/feral-file/ff-land-rentals/internal/rentals"
	"github.com/feral-file/ff-land-rentals/internal/scheduler"
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
	cfg, err := config.LoadRentalsSyncConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Runs get their own context, canceled only after the tasks are stopped
	runCtx, cancelRuns := context.WithCancel(context.Background())
	defer cancelRuns()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "land-rentals-sync",
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
	logger.InfoCtx(runCtx, "Starting Land Rentals Sync")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(runCtx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(runCtx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(runCtx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)

	// Contracts
	overrides, err := cfg.Contracts.RentalsOverrides()
	if err != nil {
		logger.FatalCtx(runCtx, "Invalid contracts configuration", zap.Error(err))
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

	// One task per reconciliation job
	jobs := []struct {
		name   string
		config config.JobConfig
		job    scheduler.Job
	}{
		{name: string(domain.UpdateTypeMetadata), config: cfg.Sync.Metadata, job: component.UpdateMetadata},
		{name: string(domain.UpdateTypeRentals), config: cfg.Sync.Rentals, job: component.UpdateRentalsListings},
		{name: string(domain.UpdateTypeIndexes), config: cfg.Sync.Indexes, job: component.CancelRentalsListings},
	}

	tasks := make([]*scheduler.Task, 0, len(jobs))
	for _, j := range jobs {
		task, err := scheduler.NewTask(scheduler.TaskConfig{
			Name:       j.name,
			Schedule:   j.config.Schedule,
			RunOnStart: j.config.RunOnStart,
		}, j.job)
		if err != nil {
			logger.FatalCtx(runCtx, "Invalid sync schedule", zap.Error(err), zap.String("job", j.name))
		}
		tasks = append(tasks, task)
	}

	sched := scheduler.New(tasks...)
	if err := sched.Start(runCtx); err != nil {
		logger.FatalCtx(runCtx, "Failed to start the sync tasks", zap.Error(err))
	}

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	logger.InfoCtx(runCtx, "Received shutdown signal", zap.String("signal", sig.String()))

	// In-flight runs are allowed to finish within the stop timeout
	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.Sync.StopTimeout)
	defer stopCancel()

	if err := sched.Stop(stopCtx); err != nil {
		logger.ErrorCtx(stopCtx, err)
	}
	cancelRuns()

	logger.Info("Rentals sync stopped")
}
