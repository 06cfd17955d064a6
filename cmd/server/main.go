package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"woosync/internal/commons"
	"woosync/internal/config"
	"woosync/internal/infrastructure/logger"
	"woosync/internal/infrastructure/odoo"
	"woosync/internal/infrastructure/sqlite"
	"woosync/internal/infrastructure/woocommerce"
	ledgerrepo "woosync/internal/ledger/repository"
	"woosync/internal/reconcile"
	"woosync/internal/server"
	"woosync/internal/stocksync"
)

func main() {
	var cfg *config.Config
	var err error
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		cfg, err = commons.LoadConfig(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := sqlite.NewConnection(cfg.Storage)
	if err != nil {
		zapLogger.Fatal("opening ledger database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ledgerrepo.NewSQLiteProcessedOrderRepository(db).EnsureSchema(ctx); err != nil {
		cancel()
		zapLogger.Fatal("preparing ledger schema", zap.Error(err))
	}
	cancel()
	zapLogger.Info("ledger database ready", zap.String("path", cfg.Storage.Path))

	odooClient := odoo.NewClient(cfg.Odoo, zapLogger)
	erp := odoo.NewGateway(odooClient, zapLogger)

	webhookCtrl := reconcile.NewModule(db, erp, cfg.Webhook.Secret, zapLogger)

	if cfg.Sync.Schedule != "" {
		store := woocommerce.NewClient(cfg.Woo, zapLogger)
		syncJob := stocksync.NewModule(erp, store, cfg.Sync.BatchSize, zapLogger)

		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.Sync.Schedule, func() {
			runCtx, runCancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer runCancel()
			if err := syncJob.Run(runCtx); err != nil {
				zapLogger.Error("stock/price sync run failed", zap.Error(err))
			}
		})
		if err != nil {
			zapLogger.Fatal("invalid sync schedule", zap.String("schedule", cfg.Sync.Schedule), zap.Error(err))
		}
		scheduler.Start()
		defer scheduler.Stop()
		zapLogger.Info("stock/price sync scheduled", zap.String("schedule", cfg.Sync.Schedule))
	} else {
		zapLogger.Info("stock/price sync disabled")
	}

	router := server.NewRouter(webhookCtrl, zapLogger)
	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
