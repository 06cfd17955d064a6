package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"woosync/internal/reconcile/controller"
)

func NewRouter(webhookCtrl *controller.OrderWebhookController, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/webhooks/woocommerce/order-created", webhookCtrl.OrderCreated)
	r.Post("/webhooks/woocommerce/order-updated", webhookCtrl.OrderUpdated)

	return r
}
