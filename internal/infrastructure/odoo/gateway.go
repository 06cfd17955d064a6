package odoo

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"woosync/internal/domain"
	"woosync/internal/dto"
	apperrors "woosync/internal/errors"
)

type rpcCaller interface {
	ExecuteKw(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error)
}

// Gateway exposes the Odoo model operations the reconciler and the
// stock/price sync job need.
type Gateway struct {
	rpc    rpcCaller
	logger *zap.Logger
}

func NewGateway(client *Client, logger *zap.Logger) *Gateway {
	return &Gateway{rpc: client, logger: logger}
}

type idRecord struct {
	ID int64 `json:"id"`
}

func (g *Gateway) searchIDs(ctx context.Context, model string, filter []any, limit int) ([]int64, error) {
	raw, err := g.rpc.ExecuteKw(ctx, model, "search_read",
		[]any{filter, []string{"id"}},
		map[string]any{"limit": limit},
	)
	if err != nil {
		return nil, err
	}

	var records []idRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, apperrors.NewRemoteCallError(fmt.Sprintf("decoding %s search result", model), err)
	}

	ids := make([]int64, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	return ids, nil
}

func (g *Gateway) create(ctx context.Context, model string, vals map[string]any) (int64, error) {
	raw, err := g.rpc.ExecuteKw(ctx, model, "create", []any{vals}, nil)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, apperrors.NewRemoteCallError(fmt.Sprintf("decoding %s create result", model), err)
	}
	return id, nil
}

// FindOrCreatePartner resolves the Odoo partner for the order's billing
// contact by email, creating one on first sight. Partners are never
// updated once created.
func (g *Gateway) FindOrCreatePartner(ctx context.Context, order dto.WooOrder) (int64, error) {
	email := order.CustomerEmail()

	ids, err := g.searchIDs(ctx, "res.partner", []any{[]any{"email", "=", email}}, 1)
	if err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		return ids[0], nil
	}

	// Unset contact fields are omitted entirely so Odoo stores them as
	// null rather than empty strings.
	vals := map[string]any{
		"name":          order.PartnerName(),
		"email":         email,
		"customer_rank": 1,
	}
	if order.Billing.Phone != "" {
		vals["phone"] = order.Billing.Phone
	}
	if order.Billing.Address1 != "" {
		vals["street"] = order.Billing.Address1
	}
	if order.Billing.Address2 != "" {
		vals["street2"] = order.Billing.Address2
	}
	if order.Billing.City != "" {
		vals["city"] = order.Billing.City
	}
	if order.Billing.Postcode != "" {
		vals["zip"] = order.Billing.Postcode
	}

	return g.create(ctx, "res.partner", vals)
}

// EnsureProductBySKU resolves the sellable product variant for a line
// item by SKU, creating the product template on first sight and looking
// up its generated variant. Returns 0 for an empty SKU, or when no
// variant exists after template creation (the line is then dropped).
func (g *Gateway) EnsureProductBySKU(ctx context.Context, item dto.WooLineItem) (int64, error) {
	if item.SKU == "" {
		return 0, nil
	}

	ids, err := g.searchIDs(ctx, "product.product", []any{[]any{"default_code", "=", item.SKU}}, 1)
	if err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		return ids[0], nil
	}

	name := item.Name
	if name == "" {
		name = item.SKU
	}

	tmplID, err := g.create(ctx, "product.template", map[string]any{
		"name":         name,
		"default_code": item.SKU,
		"list_price":   item.Price.InexactFloat64(),
		"type":         "product",
	})
	if err != nil {
		return 0, err
	}

	// The template and its sellable variant are distinct records; Odoo
	// generates the variant, so it needs a second lookup.
	variants, err := g.searchIDs(ctx, "product.product", []any{[]any{"product_tmpl_id", "=", tmplID}}, 1)
	if err != nil {
		return 0, err
	}
	if len(variants) == 0 {
		g.logger.Warn("no variant generated for product template",
			zap.String("sku", item.SKU), zap.Int64("templateId", tmplID))
		return 0, nil
	}

	return variants[0], nil
}

// CreateSaleOrder creates the sale order header; lines are attached
// afterwards, one call each, since the header id is a precondition.
func (g *Gateway) CreateSaleOrder(ctx context.Context, partnerID int64, clientOrderRef string) (int64, error) {
	return g.create(ctx, "sale.order", map[string]any{
		"partner_id":       partnerID,
		"client_order_ref": clientOrderRef,
	})
}

func (g *Gateway) AddSaleOrderLine(ctx context.Context, saleOrderID int64, line domain.SaleOrderLine) error {
	_, err := g.create(ctx, "sale.order.line", map[string]any{
		"order_id":        saleOrderID,
		"product_id":      line.ProductID,
		"product_uom_qty": line.Qty,
		"price_unit":      line.UnitPrice.InexactFloat64(),
		"tax_id":          []any{},
		"name":            "From WooCommerce",
	})
	return err
}

type snapshotRecord struct {
	DefaultCode  string  `json:"default_code"`
	QtyAvailable float64 `json:"qty_available"`
	LstPrice     float64 `json:"lst_price"`
}

// FetchStockPriceSnapshot reads up to limit products with a SKU set,
// projecting SKU, available quantity and list price.
func (g *Gateway) FetchStockPriceSnapshot(ctx context.Context, limit int) ([]domain.StockPriceRow, error) {
	raw, err := g.rpc.ExecuteKw(ctx, "product.product", "search_read",
		[]any{
			[]any{[]any{"default_code", "!=", false}},
			[]string{"default_code", "qty_available", "lst_price"},
		},
		map[string]any{"limit": limit},
	)
	if err != nil {
		return nil, err
	}

	var records []snapshotRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, apperrors.NewRemoteCallError("decoding stock/price snapshot", err)
	}

	rows := make([]domain.StockPriceRow, len(records))
	for i, rec := range records {
		rows[i] = domain.NewStockPriceRow(rec.DefaultCode, rec.QtyAvailable, rec.LstPrice)
	}
	return rows, nil
}
