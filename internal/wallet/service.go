// Package wallet is the Query Surface and operation façade of
// spec.md §4.4 and §6: it turns an asset code into an asset type id,
// picks the fromUser/toUser/ownerUser triple for the requested
// operation kind, and hands off to internal/ledger.Engine. Grounded on
// the teacher's internal/services package, which plays the same role
// for accounts and transfers.
package wallet

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"walletcore/internal/cache"
	"walletcore/internal/ledger"
	"walletcore/internal/models"
	"walletcore/internal/money"
)

// AssetTypeStore is the read surface internal/store.AssetTypeStore
// exposes for resolving a code or name to an id.
type AssetTypeStore interface {
	GetByIdentifier(ctx context.Context, identifier string) (models.AssetType, error)
}

// WalletStore is the uncontended read path of getBalance.
type WalletStore interface {
	GetBalance(ctx context.Context, userID string, assetTypeID int32) (decimal.Decimal, error)
}

// TransactionStore is the read path of listTransactions.
type TransactionStore interface {
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error)
}

// Engine is the subset of internal/ledger.Engine the façade drives.
type Engine interface {
	Execute(ctx context.Context, op ledger.Operation) (models.Transaction, error)
}

type Service struct {
	assetTypes   AssetTypeStore
	wallets      WalletStore
	transactions TransactionStore
	engine       Engine
	assetCache   *cache.AssetTypeCache
	balanceCache *cache.BalanceCache
}

func NewService(assetTypes AssetTypeStore, wallets WalletStore, transactions TransactionStore, engine Engine) *Service {
	return &Service{assetTypes: assetTypes, wallets: wallets, transactions: transactions, engine: engine}
}

// WithAssetCache fronts GetAssetType with the external, non-authoritative
// cache of spec.md §4.4. Optional: nil leaves every call on the direct
// store path.
func (s *Service) WithAssetCache(c *cache.AssetTypeCache) *Service {
	s.assetCache = c
	return s
}

// WithBalanceCache fronts GetBalance with the external balance cache and
// invalidates it after every committed TopUp/GrantBonus/Spend so a
// client reading its own write does not see a stale value past one hit.
func (s *Service) WithBalanceCache(c *cache.BalanceCache) *Service {
	s.balanceCache = c
	return s
}

// GetAssetType is the Query Surface's getAssetType (spec.md §4.4):
// case-sensitive exact match against either the canonical name or the
// short code.
func (s *Service) GetAssetType(ctx context.Context, identifier string) (models.AssetType, error) {
	if s.assetCache != nil {
		if asset, ok := s.assetCache.Get(ctx, identifier); ok {
			return asset, nil
		}
	}
	asset, err := s.assetTypes.GetByIdentifier(ctx, identifier)
	if err != nil {
		return models.AssetType{}, fmt.Errorf("%w: unknown asset %q", ledger.ErrInvalidArgument, identifier)
	}
	if s.assetCache != nil {
		s.assetCache.Set(ctx, identifier, asset)
	}
	return asset, nil
}

// GetBalance is the Query Surface's getBalance: uncontended, no locks
// acquired, zero if the wallet has never been onboarded. A balance
// cache hit is served as-is; spec.md §4.4 accepts staleness here as
// long as nothing feeds the cached value back into the Ledger Engine.
func (s *Service) GetBalance(ctx context.Context, userID string, assetTypeID int32) (string, error) {
	if s.balanceCache != nil {
		if cached, ok := s.balanceCache.Get(ctx, userID, assetTypeID); ok {
			return cached, nil
		}
	}
	balance, err := s.wallets.GetBalance(ctx, userID, assetTypeID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ledger.ErrInternal, err)
	}
	formatted := money.Format(balance)
	if s.balanceCache != nil {
		s.balanceCache.Set(ctx, userID, assetTypeID, formatted)
	}
	return formatted, nil
}

// ListTransactions is the Query Surface's listTransactions.
func (s *Service) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit must be positive and offset non-negative", ledger.ErrInvalidArgument)
	}
	return s.transactions.ListByUser(ctx, userID, limit, offset)
}

// TopUp resolves assetCode and drives a TOP_UP: value moves from the
// system wallet to the user's (spec.md §4.3 "Operation kinds").
func (s *Service) TopUp(ctx context.Context, userID, assetCode string, rawAmount any, idempotencyKey, metadata string) (models.Transaction, error) {
	return s.execute(ctx, models.KindTopUp, models.SystemUserID, userID, userID, assetCode, rawAmount, idempotencyKey, metadata)
}

// GrantBonus is identical to TopUp except for the kind recorded for
// audit classification.
func (s *Service) GrantBonus(ctx context.Context, userID, assetCode string, rawAmount any, idempotencyKey, metadata string) (models.Transaction, error) {
	return s.execute(ctx, models.KindBonus, models.SystemUserID, userID, userID, assetCode, rawAmount, idempotencyKey, metadata)
}

// Spend drives a SPEND: value moves from the user's wallet to the
// system's.
func (s *Service) Spend(ctx context.Context, userID, assetCode string, rawAmount any, idempotencyKey, metadata string) (models.Transaction, error) {
	return s.execute(ctx, models.KindSpend, userID, models.SystemUserID, userID, assetCode, rawAmount, idempotencyKey, metadata)
}

func (s *Service) execute(ctx context.Context, kind models.TransactionKind, fromUserID, toUserID, ownerUserID, assetCode string, rawAmount any, idempotencyKey, metadata string) (models.Transaction, error) {
	asset, err := s.GetAssetType(ctx, assetCode)
	if err != nil {
		return models.Transaction{}, err
	}
	amount, err := money.ParsePositive(rawAmount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %v", ledger.ErrInvalidArgument, err)
	}
	if idempotencyKey == "" {
		return models.Transaction{}, fmt.Errorf("%w: idempotency key is required", ledger.ErrInvalidArgument)
	}
	transaction, err := s.engine.Execute(ctx, ledger.Operation{
		Kind:           kind,
		FromUserID:     fromUserID,
		ToUserID:       toUserID,
		OwnerUserID:    ownerUserID,
		AssetTypeID:    asset.ID,
		AssetCode:      asset.Code,
		Amount:         amount,
		IdempotencyKey: idempotencyKey,
		Metadata:       metadata,
	})
	if err == nil && s.balanceCache != nil {
		s.balanceCache.Invalidate(ctx, fromUserID, asset.ID)
		s.balanceCache.Invalidate(ctx, toUserID, asset.ID)
	}
	return transaction, err
}
