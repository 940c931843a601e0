package store

import (
	"context"

	"walletcore/internal/models"
)

// AssetTypeStore reads the provisioning-time AssetType rows. Per
// spec.md §4.4 these are read-only after provisioning, so this store
// exposes no mutation beyond a one-time Create. The provisioned rows
// themselves are inserted by migrations/0002_seed.sql, not through Create.
type AssetTypeStore struct {
	db DB
}

func NewAssetTypeStore(db DB) *AssetTypeStore {
	return &AssetTypeStore{db: db}
}

func (s *AssetTypeStore) Create(ctx context.Context, tx Execer, name, code string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO asset_types (name, code)
		VALUES ($1, $2)
		ON CONFLICT (code) DO NOTHING
	`, name, code)
	return err
}

// GetByIdentifier looks up an asset by either its canonical name or
// its short code, case-sensitive exact match (spec.md §4.4, §9 open
// question — preserved deliberately).
func (s *AssetTypeStore) GetByIdentifier(ctx context.Context, identifier string) (models.AssetType, error) {
	var row models.AssetType
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, code, created_at
		FROM asset_types
		WHERE name = $1 OR code = $1
	`, identifier)
	if err != nil {
		return models.AssetType{}, err
	}
	return row, nil
}

func (s *AssetTypeStore) GetByID(ctx context.Context, id int32) (models.AssetType, error) {
	var row models.AssetType
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, code, created_at
		FROM asset_types
		WHERE id = $1
	`, id)
	if err != nil {
		return models.AssetType{}, err
	}
	return row, nil
}

func (s *AssetTypeStore) List(ctx context.Context) ([]models.AssetType, error) {
	var rows []models.AssetType
	err := s.db.SelectContext(ctx, &rows, `SELECT id, name, code, created_at FROM asset_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
