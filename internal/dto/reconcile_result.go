package dto

// ReconcileResult reports the outcome of one order reconciliation.
type ReconcileResult struct {
	// AlreadyProcessed is true when the delivery ledger short-circuited
	// the reconciliation; no remote calls were made.
	AlreadyProcessed bool
	SaleOrderID      int64
	LineCount        int
}
