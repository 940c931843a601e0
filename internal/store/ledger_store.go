package store

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"walletcore/internal/models"
)

// LedgerStore writes and sums the append-only LedgerEntry relation
// (spec.md §3: "LedgerEntry... created in pairs, never updated, never
// deleted").
type LedgerStore struct {
	db DB
}

func NewLedgerStore(db DB) *LedgerStore {
	return &LedgerStore{db: db}
}

type LedgerEntryInput struct {
	TransactionID string
	WalletID      int64
	Side          models.LedgerSide
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
}

func (s *LedgerStore) Insert(ctx context.Context, tx Execer, entry LedgerEntryInput) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_entries (transaction_id, wallet_id, side, amount, balance_after)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.TransactionID, entry.WalletID, entry.Side, entry.Amount, entry.BalanceAfter)
	return err
}

// SumByWallet computes the algebraic sum (CREDIT positive, DEBIT
// negative) over every ledger entry for a wallet — the right-hand
// side of invariant I3 / testable property P2.
func (s *LedgerStore) SumByWallet(ctx context.Context, walletID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := s.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(CASE WHEN side = 'CREDIT' THEN amount ELSE -amount END), 0)
		FROM ledger_entries
		WHERE wallet_id = $1
	`, walletID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return sum, nil
}

// LatestBalanceAfter returns the balance_after of the chronologically
// latest ledger entry for a wallet — must equal Wallet.balance (I3,
// P4) at every externally observable instant.
func (s *LedgerStore) LatestBalanceAfter(ctx context.Context, walletID int64) (decimal.Decimal, bool, error) {
	var balance decimal.Decimal
	err := s.db.GetContext(ctx, &balance, `
		SELECT balance_after
		FROM ledger_entries
		WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, walletID)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Decimal{}, false, nil
		}
		return decimal.Decimal{}, false, err
	}
	return balance, true, nil
}

func (s *LedgerStore) CountByTransaction(ctx context.Context, transactionID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM ledger_entries WHERE transaction_id = $1
	`, transactionID)
	return count, err
}
