// Package odoo talks to an Odoo instance over its JSON-RPC endpoints:
// a one-time session authentication exchanging database/login/API key
// for a user id, then generic execute_kw calls against Odoo models.
package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"woosync/internal/config"
	apperrors "woosync/internal/errors"
)

// maxResponseSize limits the response body size to prevent memory
// exhaustion on a misbehaving remote.
const maxResponseSize = 10 * 1024 * 1024

type Client struct {
	cfg        config.OdooConfig
	httpClient *http.Client
	logger     *zap.Logger

	// session holds the authenticated user id; populated lazily on
	// first use and kept for the process lifetime. Odoo API-key
	// sessions do not expire, so there is no refresh path.
	mu            sync.Mutex
	uid           int64
	authenticated bool
}

func NewClient(cfg config.OdooConfig, logger *zap.Logger) *Client {
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

type rpcRequest struct {
	Jsonrpc string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int64  `json:"id"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func (c *Client) call(ctx context.Context, route string, params any) (json.RawMessage, error) {
	payload := rpcRequest{
		Jsonrpc: "2.0",
		Method:  "call",
		Params:  params,
		ID:      time.Now().UnixNano(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+route, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewRemoteCallError("odoo rpc call failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewRemoteCallError(fmt.Sprintf("odoo rpc returned status %d", resp.StatusCode), nil)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&rpcResp); err != nil {
		return nil, apperrors.NewRemoteCallError("decoding odoo rpc response", err)
	}

	if rpcResp.Error != nil {
		return nil, apperrors.NewRemoteCallError(fmt.Sprintf("odoo rpc error: %s", rpcResp.Error.Message), nil)
	}

	return rpcResp.Result, nil
}

func (c *Client) authenticate(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.authenticated {
		return c.uid, nil
	}

	params := map[string]any{
		"db":       c.cfg.Database,
		"login":    c.cfg.Login,
		"password": c.cfg.APIKey,
	}

	result, err := c.call(ctx, "/web/session/authenticate", params)
	if err != nil {
		return 0, err
	}

	var session struct {
		UID int64 `json:"uid"`
	}
	if err := json.Unmarshal(result, &session); err != nil {
		return 0, apperrors.NewRemoteCallError("decoding odoo session", err)
	}
	if session.UID == 0 {
		return 0, apperrors.NewRemoteCallError("odoo authentication rejected", nil)
	}

	c.uid = session.UID
	c.authenticated = true
	c.logger.Info("odoo session established", zap.Int64("uid", session.UID))

	return session.UID, nil
}

// ExecuteKw invokes method on an Odoo model with positional args and
// keyword kwargs, authenticating first if no session is held yet.
func (c *Client) ExecuteKw(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	uid, err := c.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	if kwargs == nil {
		kwargs = map[string]any{}
	}

	params := map[string]any{
		"service": "object",
		"method":  "execute_kw",
		"args":    []any{c.cfg.Database, uid, c.cfg.APIKey, model, method, args, kwargs},
	}

	return c.call(ctx, "/jsonrpc", params)
}
