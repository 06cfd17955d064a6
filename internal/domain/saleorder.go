package domain

import "github.com/shopspring/decimal"

// SaleOrderLine is one resolvable line of a reconciled order, attached
// to the sale order header after it exists.
type SaleOrderLine struct {
	ProductID int64
	Qty       int
	UnitPrice decimal.Decimal
}
