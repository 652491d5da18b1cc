package ledger

import "github.com/shopspring/decimal"

// SeedBalance is a test helper that sets a wallet balance directly, bypassing
// validation and the audit log.
func SeedBalance(e *Engine, id string, amount decimal.Decimal) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if w, err := e.registry.Get(id); err == nil {
		w.Balance = amount
	}
}
