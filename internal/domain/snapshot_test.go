package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewStockPriceRow_FloorsQuantity(t *testing.T) {
	row := NewStockPriceRow("SKU1", 7.9, 10.5)

	assert.Equal(t, "SKU1", row.SKU)
	assert.Equal(t, 7, row.Stock)
	assert.True(t, row.Price.Equal(decimal.RequireFromString("10.5")))
}

func TestNewStockPriceRow_ClampsNegativeQuantity(t *testing.T) {
	row := NewStockPriceRow("SKU1", -3.2, 0)

	assert.Equal(t, 0, row.Stock)
	assert.True(t, row.Price.IsZero())
}
