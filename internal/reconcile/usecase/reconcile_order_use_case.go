package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"woosync/internal/domain"
	"woosync/internal/dto"
	apperrors "woosync/internal/errors"
)

type ProcessedOrderLedger interface {
	HasProcessed(ctx context.Context, orderID string) (bool, error)
	MarkProcessed(ctx context.Context, orderID string) error
}

type PartnerDirectory interface {
	FindOrCreatePartner(ctx context.Context, order dto.WooOrder) (int64, error)
}

type ProductCatalog interface {
	EnsureProductBySKU(ctx context.Context, item dto.WooLineItem) (int64, error)
}

type SaleOrderWriter interface {
	CreateSaleOrder(ctx context.Context, partnerID int64, clientOrderRef string) (int64, error)
	AddSaleOrderLine(ctx context.Context, saleOrderID int64, line domain.SaleOrderLine) error
}

// ReconcileOrderUseCase turns one storefront order into Odoo records:
// partner, products, sale order header, lines, then the ledger row.
// The steps run strictly in that sequence; Odoo offers no multi-step
// transaction, so any remote failure aborts the run without a ledger
// write and the storefront's webhook redelivery drives the retry.
type ReconcileOrderUseCase struct {
	ledger     ProcessedOrderLedger
	partners   PartnerDirectory
	products   ProductCatalog
	saleOrders SaleOrderWriter
	locks      *keyedMutex
	logger     *zap.Logger
}

func NewReconcileOrderUseCase(
	ledger ProcessedOrderLedger,
	partners PartnerDirectory,
	products ProductCatalog,
	saleOrders SaleOrderWriter,
	logger *zap.Logger,
) *ReconcileOrderUseCase {
	return &ReconcileOrderUseCase{
		ledger:     ledger,
		partners:   partners,
		products:   products,
		saleOrders: saleOrders,
		locks:      newKeyedMutex(),
		logger:     logger,
	}
}

// Reconcile processes one delivered order. A redelivery of an already
// processed order returns AlreadyProcessed without any remote call.
//
// Known gap: a failure after the sale order header is created but
// before the ledger write leaves the header behind; the redelivery
// re-runs the whole sequence and can create a duplicate sale order.
// Partner and product creation are protected by their own
// search-before-create steps.
func (uc *ReconcileOrderUseCase) Reconcile(ctx context.Context, order dto.WooOrder) (*dto.ReconcileResult, error) {
	key := order.Key()
	unlock := uc.locks.Lock(key)
	defer unlock()

	processed, err := uc.ledger.HasProcessed(ctx, key)
	if err != nil {
		return nil, apperrors.NewInternalError("checking delivery ledger", err)
	}
	if processed {
		uc.logger.Info("order already processed, skipping", zap.String("orderId", key))
		return &dto.ReconcileResult{AlreadyProcessed: true}, nil
	}

	partnerID, err := uc.partners.FindOrCreatePartner(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("resolving partner: %w", err)
	}

	var lines []domain.SaleOrderLine
	for _, item := range order.LineItems {
		if item.SKU == "" {
			continue
		}

		productID, err := uc.products.EnsureProductBySKU(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("resolving product %q: %w", item.SKU, err)
		}
		if productID == 0 {
			uc.logger.Warn("unresolvable line item dropped",
				zap.String("orderId", key), zap.String("sku", item.SKU))
			continue
		}

		lines = append(lines, domain.SaleOrderLine{
			ProductID: productID,
			Qty:       item.Qty(),
			UnitPrice: item.UnitPrice(),
		})
	}

	saleOrderID, err := uc.saleOrders.CreateSaleOrder(ctx, partnerID, order.ClientOrderRef())
	if err != nil {
		return nil, fmt.Errorf("creating sale order: %w", err)
	}

	for _, line := range lines {
		if err := uc.saleOrders.AddSaleOrderLine(ctx, saleOrderID, line); err != nil {
			return nil, fmt.Errorf("adding sale order line: %w", err)
		}
	}

	if err := uc.ledger.MarkProcessed(ctx, key); err != nil {
		return nil, apperrors.NewInternalError("marking order processed", err)
	}

	uc.logger.Info("order reconciled",
		zap.String("orderId", key),
		zap.Int64("saleOrderId", saleOrderID),
		zap.Int("lineCount", len(lines)),
	)

	return &dto.ReconcileResult{SaleOrderID: saleOrderID, LineCount: len(lines)}, nil
}
