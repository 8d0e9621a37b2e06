// Package app wires the service together: database, startup ingest, report
// manager, and the REST controller, with graceful shutdown.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nafysaa/Store-monitoring/internal/controllers/restserver"
	"github.com/nafysaa/Store-monitoring/internal/database"
	"github.com/nafysaa/Store-monitoring/internal/ingest"
	"github.com/nafysaa/Store-monitoring/internal/log"
	"github.com/nafysaa/Store-monitoring/internal/reports"
	"github.com/nafysaa/Store-monitoring/pkg/config"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return err
	}

	// Connect to the monitoring database and make sure the schema is current
	db := database.NewClient(cfg.Database.ConnectionString, a.logger)
	if err := db.Connect(); err != nil {
		return err
	}
	if err := db.Migrate(); err != nil {
		return err
	}

	// Reload the CSV data sets if an ingest section is configured
	if cfg.Ingest != nil {
		loader := ingest.NewLoader(db, *cfg.Ingest, a.logger)
		if err := loader.Run(); err != nil {
			return err
		}
	}

	// Initialize the report manager
	manager, err := reports.NewManager(ctx, &wg, db, cfg.Reports, a.logger)
	if err != nil {
		return err
	}

	// Initialize and start the REST server controller
	ctrl, err := restserver.NewController(ctx, &wg, cfg.HTTP, manager, a.logger)
	if err != nil {
		return err
	}
	if err := ctrl.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
