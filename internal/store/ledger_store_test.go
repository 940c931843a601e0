package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"walletcore/internal/models"
)

func TestLedgerStoreInsert(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO ledger_entries") {
				t.Fatalf("unexpected query: %s", query)
			}
			if args[2] != models.SideDebit {
				t.Fatalf("unexpected side: %#v", args[2])
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewLedgerStore(stubDB{})
	err := store.Insert(ctx, execer, LedgerEntryInput{
		TransactionID: "tx-1",
		WalletID:      1,
		Side:          models.SideDebit,
		Amount:        decimal.NewFromInt(50),
		BalanceAfter:  decimal.NewFromInt(0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLedgerStoreSumByWallet(t *testing.T) {
	ctx := context.Background()
	store := NewLedgerStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, _ ...any) error {
			if !strings.Contains(query, "SUM(CASE WHEN side") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*decimal.Decimal) = decimal.NewFromInt(150)
			return nil
		},
	})
	sum, err := store.SumByWallet(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("unexpected sum: %s", sum)
	}
}
