package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"woosync/internal/domain"
	apperrors "woosync/internal/errors"
)

type SnapshotSource interface {
	FetchStockPriceSnapshot(ctx context.Context, limit int) ([]domain.StockPriceRow, error)
}

type StorefrontCatalog interface {
	UpdateProductStockPrice(ctx context.Context, row domain.StockPriceRow) error
}

// SyncStockPriceUseCase is the scheduled batch job pushing ERP stock
// and price snapshots to the storefront.
type SyncStockPriceUseCase struct {
	snapshots  SnapshotSource
	storefront StorefrontCatalog
	batchSize  int
	logger     *zap.Logger
}

func NewSyncStockPriceUseCase(
	snapshots SnapshotSource,
	storefront StorefrontCatalog,
	batchSize int,
	logger *zap.Logger,
) *SyncStockPriceUseCase {
	return &SyncStockPriceUseCase{
		snapshots:  snapshots,
		storefront: storefront,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// Run fetches one snapshot batch and pushes every row independently.
// Per-row failures never abort the pass; if any row failed the run
// reports a single aggregate PartialBatchError after completing.
func (uc *SyncStockPriceUseCase) Run(ctx context.Context) error {
	rows, err := uc.snapshots.FetchStockPriceSnapshot(ctx, uc.batchSize)
	if err != nil {
		return fmt.Errorf("fetching stock/price snapshot: %w", err)
	}

	failed := 0
	for _, row := range rows {
		if err := uc.storefront.UpdateProductStockPrice(ctx, row); err != nil {
			failed++
			uc.logger.Warn("stock/price update failed",
				zap.String("sku", row.SKU), zap.Error(err))
			continue
		}
	}

	if failed > 0 {
		return apperrors.NewPartialBatchError(failed, len(rows))
	}

	uc.logger.Info("stock/price sync completed", zap.Int("rows", len(rows)))
	return nil
}
