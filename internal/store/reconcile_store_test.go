package store

import (
	"context"
	"strings"
	"testing"
)

func TestOperatorStoreIsOperator(t *testing.T) {
	ctx := context.Background()
	store := NewOperatorStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM operators") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*bool) = true
			return nil
		},
	})
	isOperator, err := store.IsOperator(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isOperator {
		t.Fatal("expected operator")
	}
}

func TestOperatorStoreReconcileQueryShape(t *testing.T) {
	ctx := context.Background()
	store := NewOperatorStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, _ ...any) error {
			if !strings.Contains(query, "HAVING w.balance !=") {
				t.Fatalf("unexpected query: %s", query)
			}
			return nil
		},
	})
	if _, err := store.Reconcile(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
