package store

import (
	"context"
	"strings"
	"testing"

	"walletcore/internal/models"
)

func TestAssetTypeStoreGetByIdentifierMatchesNameOrCode(t *testing.T) {
	ctx := context.Background()
	store := NewAssetTypeStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "name = $1 OR code = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			row := dest.(*models.AssetType)
			row.Code = "GOLD"
			row.Name = "Gold Coins"
			return nil
		},
	})
	asset, err := store.GetByIdentifier(ctx, "GOLD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if asset.Code != "GOLD" {
		t.Fatalf("unexpected asset: %#v", asset)
	}
}
