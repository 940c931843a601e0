package store

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"walletcore/internal/models"
)

// WalletStore is the persistence layer for spec.md §3's Wallet
// relation: one row per (user id, asset type), balance mutated only
// inside the Ledger Engine's store-level transaction.
type WalletStore struct {
	db DB
}

func NewWalletStore(db DB) *WalletStore {
	return &WalletStore{db: db}
}

// EnsureExists implements the "auto-onboarding" behavior of spec.md
// §4.3 step 4 and §9: insert a zero-balance wallet if one doesn't
// already exist for (userID, assetTypeID), race-safely against a
// concurrent auto-onboard of the same pair.
func (s *WalletStore) EnsureExists(ctx context.Context, tx Execer, userID string, assetTypeID int32) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO wallets (user_id, asset_type_id, balance, version)
		VALUES ($1, $2, 0, 0)
		ON CONFLICT (user_id, asset_type_id) DO NOTHING
	`, userID, assetTypeID)
	return err
}

// GetForUpdate acquires an exclusive row lock on the wallet and
// returns its current balance and id. Callers must invoke this in
// ascending user_id order across the two wallets of an operation
// (internal/lockcoord.OrderUserIDs) to satisfy spec.md §4.1.
func (s *WalletStore) GetForUpdate(ctx context.Context, tx Getter, userID string, assetTypeID int32) (models.Wallet, error) {
	var row models.Wallet
	err := tx.GetContext(ctx, &row, `
		SELECT id, user_id, asset_type_id, balance, version, created_at, updated_at
		FROM wallets
		WHERE user_id = $1 AND asset_type_id = $2
		FOR UPDATE
	`, userID, assetTypeID)
	if err != nil {
		return models.Wallet{}, err
	}
	return row, nil
}

// UpdateBalance sets the new balance, increments the version counter,
// and stamps updated_at — spec.md §4.3 steps 8/9.
func (s *WalletStore) UpdateBalance(ctx context.Context, tx Execer, walletID int64, balance decimal.Decimal) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE wallets
		SET balance = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2
	`, balance, walletID)
	return err
}

// GetBalance is the Query Surface's getBalance: the current balance
// for (userID, assetTypeID), or zero if no wallet row exists yet.
// Uncontended — no locks acquired (spec.md §4.4).
func (s *WalletStore) GetBalance(ctx context.Context, userID string, assetTypeID int32) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.db.GetContext(ctx, &balance, `
		SELECT balance FROM wallets WHERE user_id = $1 AND asset_type_id = $2
	`, userID, assetTypeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, nil
		}
		return decimal.Decimal{}, err
	}
	return balance, nil
}

// ListAll returns every wallet, ordered by id. The reconciliation
// surface (OperatorStore.Reconcile) does not call it: it compares
// balances against ledger sums in a single SQL query.
func (s *WalletStore) ListAll(ctx context.Context) ([]models.Wallet, error) {
	var rows []models.Wallet
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, asset_type_id, balance, version, created_at, updated_at
		FROM wallets
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
