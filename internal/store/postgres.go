package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/securevault/securevault/internal/ledger"
	"github.com/securevault/securevault/internal/wallet"
)

// PostgresStore persists ledger snapshots in PostgreSQL. Amounts are stored
// as text so the decimal representation round-trips exactly.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a snapshot store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the snapshot tables when they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const schema = `
        CREATE TABLE IF NOT EXISTS wallets (
            id TEXT PRIMARY KEY,
            address TEXT NOT NULL,
            kind TEXT NOT NULL,
            balance TEXT NOT NULL
        );
        CREATE TABLE IF NOT EXISTS records (
            id UUID PRIMARY KEY,
            position BIGINT NOT NULL UNIQUE,
            wallet_id TEXT NOT NULL,
            kind TEXT NOT NULL,
            amount TEXT NOT NULL,
            ts BIGINT NOT NULL
        );`
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Save replaces the persisted snapshot with the provided one, atomically.
func (s *PostgresStore) Save(ctx context.Context, snap ledger.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM records`); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM wallets`); err != nil {
		return err
	}

	for _, w := range snap.Wallets {
		if _, err := tx.Exec(ctx, `INSERT INTO wallets (id, address, kind, balance)
            VALUES ($1, $2, $3, $4)`, w.ID, w.Address, string(w.Kind), w.Balance.String()); err != nil {
			return fmt.Errorf("save wallet %s: %w", w.ID, err)
		}
	}

	for i, rec := range snap.Log {
		if _, err := tx.Exec(ctx, `INSERT INTO records (id, position, wallet_id, kind, amount, ts)
            VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), i, rec.WalletID, string(rec.Kind), rec.Amount.String(), rec.Timestamp); err != nil {
			return fmt.Errorf("save record %d: %w", i, err)
		}
	}

	return tx.Commit(ctx)
}

// Load reads the persisted snapshot. An empty database yields an empty snapshot.
func (s *PostgresStore) Load(ctx context.Context) (ledger.Snapshot, error) {
	var snap ledger.Snapshot

	rows, err := s.db.Query(ctx, `SELECT id, address, kind, balance FROM wallets`)
	if err != nil {
		return ledger.Snapshot{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var w wallet.Wallet
		var kind, balance string
		if err := rows.Scan(&w.ID, &w.Address, &kind, &balance); err != nil {
			return ledger.Snapshot{}, err
		}
		w.Kind = wallet.Kind(kind)
		if w.Balance, err = decimal.NewFromString(balance); err != nil {
			return ledger.Snapshot{}, fmt.Errorf("wallet %s balance: %w", w.ID, err)
		}
		snap.Wallets = append(snap.Wallets, w)
	}
	if err := rows.Err(); err != nil {
		return ledger.Snapshot{}, err
	}

	recRows, err := s.db.Query(ctx, `SELECT wallet_id, kind, amount, ts FROM records ORDER BY position`)
	if err != nil {
		return ledger.Snapshot{}, err
	}
	defer recRows.Close()
	for recRows.Next() {
		var rec ledger.Record
		var kind, amount string
		if err := recRows.Scan(&rec.WalletID, &kind, &amount, &rec.Timestamp); err != nil {
			return ledger.Snapshot{}, err
		}
		rec.Kind = ledger.RecordKind(kind)
		if rec.Amount, err = decimal.NewFromString(amount); err != nil {
			return ledger.Snapshot{}, fmt.Errorf("record amount: %w", err)
		}
		snap.Log = append(snap.Log, rec)
	}
	if err := recRows.Err(); err != nil {
		return ledger.Snapshot{}, err
	}

	return snap, nil
}
