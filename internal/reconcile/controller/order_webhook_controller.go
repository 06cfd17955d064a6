package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"woosync/internal/dto"
	apperrors "woosync/internal/errors"
	"woosync/internal/signature"
)

const (
	signatureHeader = "X-WC-Webhook-Signature"

	// maxBodySize bounds the raw body read; WooCommerce order payloads
	// are far below this.
	maxBodySize = 2 * 1024 * 1024
)

type OrderReconciler interface {
	Reconcile(ctx context.Context, order dto.WooOrder) (*dto.ReconcileResult, error)
}

// OrderWebhookController accepts WooCommerce webhook deliveries. The
// signature is computed over the raw body bytes, so the body is read
// before any parsing; the parsed form is never re-serialized for
// verification.
type OrderWebhookController struct {
	reconciler OrderReconciler
	verifier   *signature.Verifier
	logger     *zap.Logger
}

func NewOrderWebhookController(reconciler OrderReconciler, verifier *signature.Verifier, logger *zap.Logger) *OrderWebhookController {
	return &OrderWebhookController{
		reconciler: reconciler,
		verifier:   verifier,
		logger:     logger,
	}
}

func (c *OrderWebhookController) OrderCreated(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	order, err := c.acceptDelivery(r)
	if err != nil {
		c.handleDeliveryError(w, logger, err)
		return
	}

	if order == nil {
		// Unsigned delivery probe; acknowledged without reconciling.
		logger.Info("unsigned delivery probe accepted")
		writeText(w, http.StatusOK, "ok")
		return
	}

	result, err := c.reconciler.Reconcile(r.Context(), *order)
	if err != nil {
		// Remote error details stay in the logs; the storefront only
		// sees a generic failure and will redeliver.
		logger.Error("order reconciliation failed",
			zap.String("orderId", order.Key()), zap.Error(err))
		writeText(w, http.StatusInternalServerError, "error")
		return
	}

	if result.AlreadyProcessed {
		logger.Info("duplicate delivery acknowledged", zap.String("orderId", order.Key()))
	}

	writeText(w, http.StatusOK, "ok")
}

// OrderUpdated acknowledges signed order-updated deliveries. Updates
// are not reconciled; only order creation flows into Odoo.
func (c *OrderWebhookController) OrderUpdated(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	_, err := c.acceptDelivery(r)
	if err != nil {
		c.handleDeliveryError(w, logger, err)
		return
	}

	writeText(w, http.StatusOK, "ok")
}

// acceptDelivery reads the raw body, applies the unsigned-ping
// exemption, verifies the signature and parses the payload, in that
// order. A nil order with nil error is an accepted delivery probe.
func (c *OrderWebhookController) acceptDelivery(r *http.Request) (*dto.WooOrder, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, apperrors.NewMalformedPayloadError("reading webhook body", err)
	}

	// WooCommerce sends an unsigned form-encoded ping when a webhook
	// is first registered.
	if isUnsignedPing(r) {
		return nil, nil
	}

	if !c.verifier.Verify(body, r.Header.Get(signatureHeader)) {
		return nil, apperrors.NewAuthenticationError("invalid webhook signature")
	}

	var order dto.WooOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, apperrors.NewMalformedPayloadError("invalid order payload", err)
	}

	return &order, nil
}

func (c *OrderWebhookController) handleDeliveryError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if _, ok := apperrors.IsAuthenticationError(err); ok {
		logger.Warn("webhook signature mismatch")
		writeText(w, http.StatusUnauthorized, "bad signature")
		return
	}

	if me, ok := apperrors.IsMalformedPayloadError(err); ok {
		logger.Warn("malformed delivery", zap.String("reason", me.Message), zap.Error(me.Cause))
		writeText(w, http.StatusBadRequest, "invalid payload")
		return
	}

	logger.Error("unexpected delivery error", zap.Error(err))
	writeText(w, http.StatusInternalServerError, "error")
}

func isUnsignedPing(r *http.Request) bool {
	return r.Header.Get(signatureHeader) == "" &&
		strings.Contains(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(message))
}
