package stocksync

import (
	"go.uber.org/zap"

	"woosync/internal/infrastructure/odoo"
	"woosync/internal/infrastructure/woocommerce"
	"woosync/internal/stocksync/usecase"
)

func NewModule(erp *odoo.Gateway, store *woocommerce.Client, batchSize int, logger *zap.Logger) *usecase.SyncStockPriceUseCase {
	return usecase.NewSyncStockPriceUseCase(erp, store, batchSize, logger)
}
