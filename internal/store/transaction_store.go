package store

import (
	"context"

	"github.com/shopspring/decimal"

	"walletcore/internal/models"
)

// TransactionStore persists spec.md §3's Transaction relation. Rows
// are inserted once in PENDING and transitioned to COMPLETED in the
// same store-level transaction (spec.md §4.3 steps 7/10); no other
// column is ever updated (I7).
type TransactionStore struct {
	db DB
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

type TransactionInput struct {
	ID             string
	IdempotencyKey string
	Kind           models.TransactionKind
	UserID         string
	AssetTypeID    int32
	Amount         decimal.Decimal
	Metadata       string
}

func (s *TransactionStore) Create(ctx context.Context, tx Execer, input TransactionInput) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (id, idempotency_key, kind, user_id, asset_type_id, amount, status, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, 'PENDING', $7)
	`, input.ID, input.IdempotencyKey, input.Kind, input.UserID, input.AssetTypeID, input.Amount, input.Metadata)
	return err
}

func (s *TransactionStore) Complete(ctx context.Context, tx Execer, id string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE transactions SET status = 'COMPLETED', processed_at = NOW() WHERE id = $1
	`, id)
	return err
}

// GetByIdempotencyKey is the read half of the Idempotency Gate
// (spec.md §4.2 step 2), executed while the advisory lock for this
// key's participants is held.
func (s *TransactionStore) GetByIdempotencyKey(ctx context.Context, tx Getter, key string) (models.Transaction, error) {
	var row models.Transaction
	err := tx.GetContext(ctx, &row, `
		SELECT id, idempotency_key, kind, user_id, asset_type_id, amount, status, metadata, created_at, processed_at
		FROM transactions
		WHERE idempotency_key = $1
	`, key)
	if err != nil {
		return models.Transaction{}, err
	}
	return row, nil
}

func (s *TransactionStore) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	var row models.Transaction
	err := s.db.GetContext(ctx, &row, `
		SELECT id, idempotency_key, kind, user_id, asset_type_id, amount, status, metadata, created_at, processed_at
		FROM transactions
		WHERE id = $1
	`, id)
	if err != nil {
		return models.Transaction{}, err
	}
	return row, nil
}

// ListByUser is the Query Surface's listTransactions: rows for a
// single user, joined with the asset code, newest first, paginated
// (spec.md §4.4, §6 index on (user_id, created_at DESC)).
func (s *TransactionStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := s.db.SelectContext(ctx, &rows, `
		SELECT t.id, t.idempotency_key, t.kind, t.user_id, t.asset_type_id, a.code AS asset_code,
		       t.amount, t.status, t.metadata, t.created_at, t.processed_at
		FROM transactions t
		JOIN asset_types a ON a.id = t.asset_type_id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPending returns transactions stuck in PENDING — per spec.md §3's
// lifecycle note, a sign of an engine crash between insert and commit.
// Read-only; no HTTP route currently calls it.
func (s *TransactionStore) ListPending(ctx context.Context, olderThanSeconds int) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, idempotency_key, kind, user_id, asset_type_id, amount, status, metadata, created_at, processed_at
		FROM transactions
		WHERE status = 'PENDING' AND created_at < NOW() - ($1 || ' seconds')::interval
		ORDER BY created_at
	`, olderThanSeconds)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
