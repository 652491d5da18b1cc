package wallet

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind classifies a wallet as operational (hot) or long-term storage (cold).
// The classification is reporting metadata only; core operations treat both
// kinds identically.
type Kind string

const (
	Hot  Kind = "hot"
	Cold Kind = "cold"
)

// ParseKind converts a wire value into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Hot, Cold:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown wallet kind %q", s)
	}
}

// Wallet is a labeled custody account. ID and Address are immutable after
// creation; Balance is mutated only by the ledger engine and never goes
// negative.
type Wallet struct {
	ID      string
	Address string
	Kind    Kind
	Balance decimal.Decimal
}
