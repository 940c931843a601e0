package store

import (
	"context"
	"database/sql"
)

// OperatorStore backs the operator-only reconciliation surface,
// adapted from the teacher's AdminStore (admins/admin_roles tables):
// unlike the dropped banking-app admin concept, the only role this
// domain needs is "may view reconciliation reports".
type OperatorStore struct {
	db DB
}

func NewOperatorStore(db DB) *OperatorStore {
	return &OperatorStore{db: db}
}

func (s *OperatorStore) IsOperator(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM operators WHERE user_id = $1)`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (s *OperatorStore) Grant(ctx context.Context, tx Execer, userID string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO operators (user_id) VALUES ($1) ON CONFLICT DO NOTHING
	`, userID)
	return err
}

func (s *OperatorStore) HasAny(ctx context.Context) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM operators`)
	return count > 0, err
}

// WalletReconciliation is the per-wallet comparison of the stored
// balance against the sum of its ledger entries — testable properties
// P2 and P4. Adapted from the teacher's AccountBalanceSummary query in
// account_store.go.
type WalletReconciliation struct {
	WalletID          int64  `db:"wallet_id"`
	UserID            string `db:"user_id"`
	AssetCode         string `db:"asset_code"`
	StoredBalance     string `db:"stored_balance"`
	CalculatedBalance string `db:"calculated_balance"`
	Difference        string `db:"difference"`
}

func (s *OperatorStore) Reconcile(ctx context.Context) ([]WalletReconciliation, error) {
	var rows []WalletReconciliation
	err := s.db.SelectContext(ctx, &rows, `
		SELECT w.id AS wallet_id,
		       w.user_id,
		       a.code AS asset_code,
		       w.balance AS stored_balance,
		       COALESCE(SUM(CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE -l.amount END), 0) AS calculated_balance,
		       (w.balance - COALESCE(SUM(CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE -l.amount END), 0)) AS difference
		FROM wallets w
		JOIN asset_types a ON a.id = w.asset_type_id
		LEFT JOIN ledger_entries l ON l.wallet_id = w.id
		GROUP BY w.id, w.user_id, a.code, w.balance
		HAVING w.balance != COALESCE(SUM(CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE -l.amount END), 0)
		ORDER BY w.id
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
