package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/securevault/securevault/internal/wallet"
)

// Engine applies validated, audited balance mutations on top of the wallet
// registry. One mutex guards the registry and the log together: every
// operation, including both halves of a transfer, runs as a single critical
// section, so readers never observe a partially applied transfer.
type Engine struct {
	mu       sync.Mutex
	registry *wallet.Registry
	log      []Record
	now      func() int64
}

// NewEngine builds an engine over an empty registry and an empty log.
func NewEngine() *Engine {
	return &Engine{
		registry: wallet.NewRegistry(),
		now:      func() int64 { return time.Now().Unix() },
	}
}

// CreateWallet registers a wallet and returns a snapshot of it.
func (e *Engine) CreateWallet(id, address string, kind wallet.Kind) (wallet.Wallet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, err := e.registry.Create(id, address, kind)
	if err != nil {
		return wallet.Wallet{}, err
	}
	return *w, nil
}

// Wallet returns a snapshot of the wallet with the given id.
func (e *Engine) Wallet(id string) (wallet.Wallet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, err := e.registry.Get(id)
	if err != nil {
		return wallet.Wallet{}, err
	}
	return *w, nil
}

// Wallets returns a snapshot of every registered wallet, in no particular order.
func (e *Engine) Wallets() []wallet.Wallet {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]wallet.Wallet, 0, e.registry.Count())
	for _, w := range e.registry.All() {
		out = append(out, *w)
	}
	return out
}

// WalletExists reports whether a wallet id is registered.
func (e *Engine) WalletExists(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Exists(id)
}

// WalletCount returns the number of registered wallets.
func (e *Engine) WalletCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Count()
}

// Deposit credits a wallet and appends one deposit record.
func (e *Engine) Deposit(id string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("deposit of %s: %w", amount, ErrInvalidAmount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	w, err := e.registry.Get(id)
	if err != nil {
		return err
	}

	w.Balance = w.Balance.Add(amount)
	e.log = append(e.log, Record{WalletID: id, Kind: Deposit, Amount: amount, Timestamp: e.now()})
	return nil
}

// Withdraw debits a wallet and appends one withdrawal record. The balance
// never goes below zero; a withdrawal of the exact balance is allowed.
func (e *Engine) Withdraw(id string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("withdrawal of %s: %w", amount, ErrInvalidAmount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	w, err := e.registry.Get(id)
	if err != nil {
		return err
	}
	if amount.GreaterThan(w.Balance) {
		return fmt.Errorf("withdrawal of %s from wallet %q: %w", amount, id, ErrInsufficientBalance)
	}

	w.Balance = w.Balance.Sub(amount)
	e.log = append(e.log, Record{WalletID: id, Kind: Withdrawal, Amount: amount, Timestamp: e.now()})
	return nil
}

// Transfer moves funds between two wallets as an atomic pair: a withdrawal on
// the source followed by a deposit on the destination, both carrying the same
// timestamp. All validation happens before either balance is touched, so a
// failed call leaves balances and the log exactly as they were.
func (e *Engine) Transfer(fromID, toID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("transfer of %s: %w", amount, ErrInvalidAmount)
	}
	if fromID == toID {
		return fmt.Errorf("transfer within wallet %q: %w", fromID, ErrSameWallet)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	from, err := e.registry.Get(fromID)
	if err != nil {
		return err
	}
	to, err := e.registry.Get(toID)
	if err != nil {
		return err
	}
	if amount.GreaterThan(from.Balance) {
		return fmt.Errorf("transfer of %s from wallet %q: %w", amount, fromID, ErrInsufficientBalance)
	}

	ts := e.now()
	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)
	e.log = append(e.log,
		Record{WalletID: fromID, Kind: Withdrawal, Amount: amount, Timestamp: ts},
		Record{WalletID: toID, Kind: Deposit, Amount: amount, Timestamp: ts},
	)
	return nil
}

// BalanceOf returns the current balance of a wallet.
func (e *Engine) BalanceOf(id string) (decimal.Decimal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, err := e.registry.Get(id)
	if err != nil {
		return decimal.Zero, err
	}
	return w.Balance, nil
}

// TotalBalance sums the balances of all registered wallets.
func (e *Engine) TotalBalance() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := decimal.Zero
	for _, w := range e.registry.All() {
		total = total.Add(w.Balance)
	}
	return total
}

// HistoryOf returns the audit records for one wallet in insertion order. A
// registered wallet with no activity yields an empty slice; an unregistered
// id is an error, keeping query and mutation paths consistent.
func (e *Engine) HistoryOf(id string) ([]Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.registry.Exists(id) {
		return nil, fmt.Errorf("wallet %q: %w", id, wallet.ErrNotFound)
	}
	var out []Record
	for _, rec := range e.log {
		if rec.WalletID == id {
			out = append(out, rec)
		}
	}
	if out == nil {
		out = []Record{}
	}
	return out, nil
}

// AllHistory returns a copy of the full audit log in insertion order.
func (e *Engine) AllHistory() []Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Record, len(e.log))
	copy(out, e.log)
	return out
}
