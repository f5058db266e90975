package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradebook/internal/config"
	"tradebook/internal/database"
	"tradebook/internal/events"
	"tradebook/internal/modules/cashflows"
	"tradebook/internal/modules/reports"
	"tradebook/internal/modules/settings"
	"tradebook/internal/modules/trades"
	"tradebook/internal/scheduler"
	"tradebook/internal/server"
	"tradebook/internal/storage"
	"tradebook/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet; fall back to a default one for the fatal.
		fallbackLog := logger.New(logger.Config{})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Tradebook")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	eventManager := events.NewManager(log)

	// Repositories over the local ledger
	tradeRepo := trades.NewRepository(db.Conn(), log)
	cashFlowRepo := cashflows.NewRepository(db.Conn(), log)
	settingsRepo := settings.NewRepository(db.Conn(), log)

	// Snapshot stores: local is always the store of record, remote optional
	localStore := storage.NewLocal(db, tradeRepo, cashFlowRepo, settingsRepo, log)
	var remoteStore storage.Store
	if cfg.RemoteEnabled() {
		remoteStore = storage.NewRemote(cfg.RemoteAPIURL, log)
	}
	fallbackStore := storage.NewFallback(remoteStore, localStore, log)
	mirror := storage.NewMirror(localStore, remoteStore, eventManager, log)

	// Handlers
	tradesHandler := trades.NewHandler(tradeRepo, eventManager, mirror, log)
	cashFlowsHandler := cashflows.NewHandler(cashFlowRepo, eventManager, mirror, log)
	settingsHandler := settings.NewHandler(settingsRepo, eventManager, mirror, log)
	reportsHandler := reports.NewHandler(reports.NewService(fallbackStore, log), eventManager, log)

	// Initialize scheduler
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	if cfg.RemoteEnabled() {
		if err := sched.AddJob(cfg.RemoteSyncSchedule, mirror); err != nil {
			log.Fatal().Err(err).Msg("Failed to register remote mirror job")
		}
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:             cfg.Port,
		Log:              log,
		DevMode:          cfg.DevMode,
		Trades:           tradesHandler,
		CashFlows:        cashFlowsHandler,
		Settings:         settingsHandler,
		Reports:          reportsHandler,
		DatabasePath:     cfg.DatabasePath,
		RemoteConfigured: cfg.RemoteEnabled(),
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
