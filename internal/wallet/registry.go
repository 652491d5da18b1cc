package wallet

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrDuplicate occurs when creating a wallet whose id is already registered.
	ErrDuplicate = errors.New("wallet already exists")

	// ErrNotFound occurs when an operation references an unregistered wallet id.
	ErrNotFound = errors.New("wallet not found")
)

// Registry owns the wallet set and enforces id uniqueness. It is not safe for
// concurrent use on its own; the ledger engine serializes all access to it.
type Registry struct {
	wallets map[string]*Wallet
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{wallets: make(map[string]*Wallet)}
}

// Create registers a new wallet with a zero balance.
func (r *Registry) Create(id, address string, kind Kind) (*Wallet, error) {
	if _, exists := r.wallets[id]; exists {
		return nil, fmt.Errorf("wallet %q: %w", id, ErrDuplicate)
	}
	w := &Wallet{ID: id, Address: address, Kind: kind, Balance: decimal.Zero}
	r.wallets[id] = w
	return w, nil
}

// Get looks up a wallet by id.
func (r *Registry) Get(id string) (*Wallet, error) {
	w, ok := r.wallets[id]
	if !ok {
		return nil, fmt.Errorf("wallet %q: %w", id, ErrNotFound)
	}
	return w, nil
}

// Exists reports whether a wallet id is registered.
func (r *Registry) Exists(id string) bool {
	_, ok := r.wallets[id]
	return ok
}

// Count returns the number of registered wallets.
func (r *Registry) Count() int {
	return len(r.wallets)
}

// All returns the live wallet set keyed by id. Callers must not mutate the
// wallets; the view is consistent only while the engine lock is held.
func (r *Registry) All() map[string]*Wallet {
	return r.wallets
}
