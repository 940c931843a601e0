package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"walletcore/internal/models"
)

func TestTransactionStoreCreate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO transactions") || !strings.Contains(query, "'PENDING'") {
				t.Fatalf("unexpected query: %s", query)
			}
			if args[0] != "tx-1" || args[2] != models.KindTopUp {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewTransactionStore(stubDB{})
	err := store.Create(ctx, execer, TransactionInput{
		ID:             "tx-1",
		IdempotencyKey: "key-1",
		Kind:           models.KindTopUp,
		UserID:         "user-1",
		AssetTypeID:    1,
		Amount:         decimal.NewFromInt(50),
		Metadata:       "{}",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransactionStoreComplete(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "SET status = 'COMPLETED'") {
				t.Fatalf("unexpected query: %s", query)
			}
			if args[0] != "tx-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewTransactionStore(stubDB{})
	if err := store.Complete(ctx, execer, "tx-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransactionStoreGetByIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	getter := stubGetter{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "WHERE idempotency_key") {
				t.Fatalf("unexpected query: %s", query)
			}
			row := dest.(*models.Transaction)
			row.ID = "tx-1"
			row.Status = models.StatusCompleted
			return nil
		},
	}
	store := NewTransactionStore(stubDB{})
	row, err := store.GetByIdempotencyKey(ctx, getter, "key-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.ID != "tx-1" || row.Status != models.StatusCompleted {
		t.Fatalf("unexpected row: %#v", row)
	}
}
