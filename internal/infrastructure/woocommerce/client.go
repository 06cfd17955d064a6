// Package woocommerce is a minimal client for the WooCommerce REST API,
// covering product lookup by SKU and stock/price updates.
package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"woosync/internal/config"
	"woosync/internal/domain"
	apperrors "woosync/internal/errors"
)

const (
	apiBasePath     = "/wp-json/wc/v3"
	maxResponseSize = 10 * 1024 * 1024
)

type Client struct {
	cfg        config.WooConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.WooConfig, logger *zap.Logger) *Client {
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type wooProduct struct {
	ID int64 `json:"id"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.URL+apiBasePath+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewRemoteCallError("woocommerce call failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return apperrors.NewRemoteCallError(fmt.Sprintf("woocommerce returned status %d", resp.StatusCode), nil)
	}

	if out != nil {
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
			return apperrors.NewRemoteCallError("decoding woocommerce response", err)
		}
	}

	return nil
}

func (c *Client) findProductBySKU(ctx context.Context, sku string) (int64, bool, error) {
	var products []wooProduct
	path := "/products?sku=" + url.QueryEscape(sku)
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return 0, false, err
	}
	if len(products) == 0 {
		return 0, false, nil
	}
	return products[0].ID, true, nil
}

// UpdateProductStockPrice pushes one snapshot row to the storefront.
// Unknown SKUs are skipped silently; the storefront catalog, not this
// job, decides which products exist.
func (c *Client) UpdateProductStockPrice(ctx context.Context, row domain.StockPriceRow) error {
	if row.SKU == "" {
		return nil
	}

	productID, found, err := c.findProductBySKU(ctx, row.SKU)
	if err != nil {
		return err
	}
	if !found {
		c.logger.Debug("sku not found on storefront, skipping", zap.String("sku", row.SKU))
		return nil
	}

	payload := map[string]any{
		"manage_stock":   true,
		"stock_quantity": row.Stock,
		"regular_price":  row.Price.String(),
		"status":         "publish",
	}

	return c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", productID), payload, nil)
}
