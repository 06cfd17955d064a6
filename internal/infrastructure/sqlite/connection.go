package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"woosync/internal/config"
)

func NewConnection(cfg config.StorageConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.Path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// The ledger is a single local file; one writer avoids SQLITE_BUSY
	// under concurrent webhook deliveries.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}
