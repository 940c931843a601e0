package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"walletcore/internal/models"
	"walletcore/internal/store"
)

// checkIdempotency implements spec.md §4.2 steps 2-4. It runs inside
// the advisory-locked store transaction, after AdvisoryKey has been
// acquired and before any wallet row is touched.
//
// A non-nil, nil-error return means the caller may hand back the
// returned transaction unchanged: no wallet is touched, no ledger
// entry written. A nil, nil-error return means no prior attempt exists
// and the Ledger Engine should proceed. Any other outcome is an error.
func (e *Engine) checkIdempotency(ctx context.Context, tx store.Getter, key string) (*models.Transaction, error) {
	existing, err := e.transactions.GetByIdempotencyKey(ctx, tx, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, classifyPGError(err)
	}
	if existing.Status == models.StatusCompleted {
		return &existing, nil
	}
	return nil, fmt.Errorf("%w: transaction %s for key %q is %s", ErrIdempotencyConflict, existing.ID, key, existing.Status)
}
