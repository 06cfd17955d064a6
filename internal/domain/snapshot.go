package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// StockPriceRow is one row of an ERP stock/price snapshot. Rows are
// ephemeral: read from Odoo, pushed to the storefront, never persisted.
type StockPriceRow struct {
	SKU   string
	Stock int
	Price decimal.Decimal
}

// NewStockPriceRow floors the available quantity and clamps it to zero.
func NewStockPriceRow(sku string, qtyAvailable float64, listPrice float64) StockPriceRow {
	stock := int(math.Floor(qtyAvailable))
	if stock < 0 {
		stock = 0
	}
	return StockPriceRow{
		SKU:   sku,
		Stock: stock,
		Price: decimal.NewFromFloat(listPrice),
	}
}
