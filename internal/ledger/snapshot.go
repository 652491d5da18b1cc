package ledger

import (
	"fmt"

	"github.com/securevault/securevault/internal/wallet"
)

// Snapshot captures the complete ledger state: every wallet plus the full
// ordered audit log. It carries enough to reconstruct the engine losslessly.
type Snapshot struct {
	Wallets []wallet.Wallet
	Log     []Record
}

// Snapshot copies the current state out of the engine.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Wallets: make([]wallet.Wallet, 0, e.registry.Count()),
		Log:     make([]Record, len(e.log)),
	}
	for _, w := range e.registry.All() {
		snap.Wallets = append(snap.Wallets, *w)
	}
	copy(snap.Log, e.log)
	return snap
}

// FromSnapshot rebuilds an engine from persisted state. The snapshot must
// satisfy the ledger invariants: unique wallet ids and non-negative balances.
func FromSnapshot(snap Snapshot) (*Engine, error) {
	e := NewEngine()
	for _, w := range snap.Wallets {
		if w.Balance.IsNegative() {
			return nil, fmt.Errorf("wallet %q has negative balance %s", w.ID, w.Balance)
		}
		created, err := e.registry.Create(w.ID, w.Address, w.Kind)
		if err != nil {
			return nil, err
		}
		created.Balance = w.Balance
	}
	e.log = make([]Record, len(snap.Log))
	copy(e.log, snap.Log)
	return e, nil
}
