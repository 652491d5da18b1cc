package ledger

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount occurs when a deposit, withdrawal or transfer amount is
	// zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientBalance occurs when a withdrawal or transfer exceeds the
	// source wallet's available balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSameWallet occurs when a transfer names the same wallet as source and
	// destination. A self-transfer would append a no-op record pair that
	// distorts the audit trail, so it is rejected outright.
	ErrSameWallet = errors.New("source and destination wallets are identical")
)

// RecordKind distinguishes the two balance-changing entry types.
type RecordKind string

const (
	Deposit    RecordKind = "deposit"
	Withdrawal RecordKind = "withdrawal"
)

// Record is one immutable audit log entry describing a single balance change
// on one wallet. A transfer produces two records: a withdrawal on the source
// followed by a deposit on the destination, sharing one timestamp.
type Record struct {
	WalletID  string          `json:"wallet_id"`
	Kind      RecordKind      `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp int64           `json:"timestamp"`
}
