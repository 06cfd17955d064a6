package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteProcessedOrderRepository is the delivery ledger: one row per
// storefront order id that completed reconciliation. Append-only; rows
// are never updated or deleted.
type SQLiteProcessedOrderRepository struct {
	db *sql.DB
}

func NewSQLiteProcessedOrderRepository(db *sql.DB) *SQLiteProcessedOrderRepository {
	return &SQLiteProcessedOrderRepository{db: db}
}

func (r *SQLiteProcessedOrderRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS processed_orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			woo_order_id TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating processed_orders table: %w", err)
	}

	return nil
}

func (r *SQLiteProcessedOrderRepository) HasProcessed(ctx context.Context, orderID string) (bool, error) {
	query := `SELECT 1 FROM processed_orders WHERE woo_order_id = ?`

	var one int
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying processed order: %w", err)
	}

	return true, nil
}

// MarkProcessed inserts the ledger row. Duplicate and concurrent calls
// for the same order id are no-ops; the UNIQUE constraint plus
// INSERT OR IGNORE make the insert idempotent.
func (r *SQLiteProcessedOrderRepository) MarkProcessed(ctx context.Context, orderID string) error {
	query := `INSERT OR IGNORE INTO processed_orders (woo_order_id) VALUES (?)`

	if _, err := r.db.ExecContext(ctx, query, orderID); err != nil {
		return fmt.Errorf("marking order processed: %w", err)
	}

	return nil
}
