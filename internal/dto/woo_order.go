package dto

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// WooOrder is the order payload delivered by a WooCommerce
// "order created" webhook. It is read-only: nothing here is ever
// written back to the storefront.
type WooOrder struct {
	ID        int64         `json:"id"`
	Number    string        `json:"number"`
	Billing   WooBilling    `json:"billing"`
	Customer  *WooCustomer  `json:"customer,omitempty"`
	LineItems []WooLineItem `json:"line_items"`
}

type WooBilling struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
}

type WooCustomer struct {
	Email string `json:"email"`
}

// WooLineItem carries mixed string/number price fields as WooCommerce
// sends them; decimal.Decimal accepts both JSON representations.
type WooLineItem struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

// Key is the canonical ledger key for this order.
func (o WooOrder) Key() string {
	return strconv.FormatInt(o.ID, 10)
}

// ClientOrderRef is the client-visible reference carried on the sale
// order: the storefront order number, falling back to the order id.
func (o WooOrder) ClientOrderRef() string {
	if o.Number != "" {
		return o.Number
	}
	return o.Key()
}

// CustomerEmail resolves the partner lookup email: billing email first,
// then the customer contact email, then empty.
func (o WooOrder) CustomerEmail() string {
	if o.Billing.Email != "" {
		return o.Billing.Email
	}
	if o.Customer != nil {
		return o.Customer.Email
	}
	return ""
}

// PartnerName derives a display name for a new partner record:
// first+last name, else company, else email, else a generic label.
func (o WooOrder) PartnerName() string {
	parts := make([]string, 0, 2)
	if o.Billing.FirstName != "" {
		parts = append(parts, o.Billing.FirstName)
	}
	if o.Billing.LastName != "" {
		parts = append(parts, o.Billing.LastName)
	}
	if name := strings.Join(parts, " "); name != "" {
		return name
	}
	if o.Billing.Company != "" {
		return o.Billing.Company
	}
	if email := o.CustomerEmail(); email != "" {
		return email
	}
	return "WooCommerce Customer"
}

// Qty coerces the delivered quantity to a positive integer, defaulting
// to 1 when absent or non-positive.
func (i WooLineItem) Qty() int {
	if i.Quantity < 1 {
		return 1
	}
	return i.Quantity
}

// UnitPrice is the explicit item price when set, otherwise the item
// total divided by quantity. Quantities below 1 count as 1 for the
// division only.
func (i WooLineItem) UnitPrice() decimal.Decimal {
	if !i.Price.IsZero() {
		return i.Price
	}
	return i.Total.Div(decimal.NewFromInt(int64(i.Qty())))
}
