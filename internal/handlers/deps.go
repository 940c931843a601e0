package handlers

import (
	"context"

	"walletcore/internal/models"
	"walletcore/internal/store"
)

type UserStore interface {
	Create(ctx context.Context, tx store.Execer, id, username, email, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (map[string]any, error)
	GetByUsername(ctx context.Context, username string) (map[string]any, error)
	GetByID(ctx context.Context, userID string) (map[string]any, error)
}

// WalletService is the subset of internal/wallet.Service the HTTP
// layer drives: the three operation kinds plus the Query Surface.
type WalletService interface {
	GetAssetType(ctx context.Context, identifier string) (models.AssetType, error)
	GetBalance(ctx context.Context, userID string, assetTypeID int32) (string, error)
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error)
	TopUp(ctx context.Context, userID, assetCode string, rawAmount any, idempotencyKey, metadata string) (models.Transaction, error)
	GrantBonus(ctx context.Context, userID, assetCode string, rawAmount any, idempotencyKey, metadata string) (models.Transaction, error)
	Spend(ctx context.Context, userID, assetCode string, rawAmount any, idempotencyKey, metadata string) (models.Transaction, error)
}

// OperatorStore backs the reconciliation surface's access control
// (adapted from the teacher's AdminStore — the only role this domain
// needs is "may view reconciliation reports").
type OperatorStore interface {
	IsOperator(ctx context.Context, userID string) (bool, error)
	Grant(ctx context.Context, tx store.Execer, userID string) error
	HasAny(ctx context.Context) (bool, error)
	Reconcile(ctx context.Context) ([]store.WalletReconciliation, error)
}

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
	List(ctx context.Context, limit, offset int) ([]map[string]any, error)
}
