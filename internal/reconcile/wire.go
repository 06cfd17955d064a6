package reconcile

import (
	"database/sql"

	"go.uber.org/zap"

	"woosync/internal/infrastructure/odoo"
	ledgerrepo "woosync/internal/ledger/repository"
	"woosync/internal/reconcile/controller"
	"woosync/internal/reconcile/usecase"
	"woosync/internal/signature"
)

func NewModule(db *sql.DB, erp *odoo.Gateway, webhookSecret string, logger *zap.Logger) *controller.OrderWebhookController {
	ledger := ledgerrepo.NewSQLiteProcessedOrderRepository(db)

	uc := usecase.NewReconcileOrderUseCase(ledger, erp, erp, erp, logger)

	verifier := signature.NewVerifier(webhookSecret)

	return controller.NewOrderWebhookController(uc, verifier, logger)
}
