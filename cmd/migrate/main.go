package main

import (
	"context"
	"log"
	"time"

	"woosync/internal/config"
	"woosync/internal/infrastructure/sqlite"
	ledgerrepo "woosync/internal/ledger/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	db, err := sqlite.NewConnection(cfg.Storage)
	if err != nil {
		log.Fatalf("opening ledger database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := ledgerrepo.NewSQLiteProcessedOrderRepository(db).EnsureSchema(ctx); err != nil {
		log.Fatalf("preparing ledger schema: %v", err)
	}

	log.Printf("ledger database ready at %s", cfg.Storage.Path)
}
