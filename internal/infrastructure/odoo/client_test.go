package odoo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"woosync/internal/config"
	apperrors "woosync/internal/errors"
)

func newTestClient(url string) *Client {
	return NewClient(config.OdooConfig{
		URL:      url,
		Database: "testdb",
		Login:    "admin",
		APIKey:   "apikey",
		Timeout:  5 * time.Second,
	}, zap.NewNop())
}

func TestExecuteKw_AuthenticatesOncePerProcess(t *testing.T) {
	authCalls := 0
	execCalls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch r.URL.Path {
		case "/web/session/authenticate":
			authCalls++
			params := req.Params.(map[string]any)
			assert.Equal(t, "testdb", params["db"])
			assert.Equal(t, "admin", params["login"])
			assert.Equal(t, "apikey", params["password"])
			json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "result": map[string]any{"uid": 7}})
		case "/jsonrpc":
			execCalls++
			params := req.Params.(map[string]any)
			assert.Equal(t, "object", params["service"])
			assert.Equal(t, "execute_kw", params["method"])
			args := params["args"].([]any)
			assert.Equal(t, "testdb", args[0])
			assert.Equal(t, float64(7), args[1])
			assert.Equal(t, "apikey", args[2])
			assert.Equal(t, "res.partner", args[3])
			assert.Equal(t, "search_read", args[4])
			json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "result": []any{}})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	ctx := context.Background()

	_, err := client.ExecuteKw(ctx, "res.partner", "search_read", []any{}, nil)
	require.NoError(t, err)
	_, err = client.ExecuteKw(ctx, "res.partner", "search_read", []any{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, authCalls)
	assert.Equal(t, 2, execCalls)
}

func TestExecuteKw_RPCErrorBecomesRemoteCallError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/web/session/authenticate" {
			json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "result": map[string]any{"uid": 7}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"error":   map[string]any{"code": 200, "message": "Odoo Server Error"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.ExecuteKw(context.Background(), "sale.order", "create", []any{}, nil)
	require.Error(t, err)

	re, ok := apperrors.IsRemoteCallError(err)
	require.True(t, ok)
	assert.Contains(t, re.Message, "Odoo Server Error")
}

func TestExecuteKw_AuthenticationRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "result": map[string]any{"uid": 0}})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.ExecuteKw(context.Background(), "res.partner", "search_read", []any{}, nil)
	require.Error(t, err)

	_, ok := apperrors.IsRemoteCallError(err)
	assert.True(t, ok)
}

func TestExecuteKw_HTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/web/session/authenticate" {
			json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "result": map[string]any{"uid": 7}})
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.ExecuteKw(context.Background(), "res.partner", "search_read", []any{}, nil)
	require.Error(t, err)

	_, ok := apperrors.IsRemoteCallError(err)
	assert.True(t, ok)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient(config.OdooConfig{URL: "https://erp.example.com///"}, zap.NewNop())
	assert.Equal(t, "https://erp.example.com", client.cfg.URL)
}
