package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"walletcore/internal/auth"
	"walletcore/internal/config"
	"walletcore/internal/db"
	"walletcore/internal/middleware"
	"walletcore/internal/models"
	"walletcore/internal/store"
	"walletcore/internal/websocket"
)

type fakeTxRunner struct {
	withTxFn func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.withTxFn != nil {
		return f.withTxFn(ctx, fn)
	}
	return fn(nil)
}

type stubUserStore struct {
	createFn        func(ctx context.Context, tx store.Execer, id, username, email, passwordHash string) error
	getByEmailFn    func(ctx context.Context, email string) (map[string]any, error)
	getByUsernameFn func(ctx context.Context, username string) (map[string]any, error)
	getByIDFn       func(ctx context.Context, userID string) (map[string]any, error)
}

func (s stubUserStore) Create(ctx context.Context, tx store.Execer, id, username, email, passwordHash string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, username, email, passwordHash)
}

func (s stubUserStore) GetByEmail(ctx context.Context, email string) (map[string]any, error) {
	if s.getByEmailFn == nil {
		return nil, nil
	}
	return s.getByEmailFn(ctx, email)
}

func (s stubUserStore) GetByUsername(ctx context.Context, username string) (map[string]any, error) {
	if s.getByUsernameFn == nil {
		return nil, nil
	}
	return s.getByUsernameFn(ctx, username)
}

func (s stubUserStore) GetByID(ctx context.Context, userID string) (map[string]any, error) {
	if s.getByIDFn == nil {
		return nil, nil
	}
	return s.getByIDFn(ctx, userID)
}

type stubWalletService struct {
	getAssetTypeFn     func(ctx context.Context, identifier string) (models.AssetType, error)
	getBalanceFn       func(ctx context.Context, userID string, assetTypeID int32) (string, error)
	listTransactionsFn func(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error)
	topUpFn            func(ctx context.Context, userID, assetCode string, rawAmount any, idempotencyKey, metadata string) (models.Transaction, error)
	grantBonusFn       func(ctx context.Context, userID, assetCode string, rawAmount any, idempotencyKey, metadata string) (models.Transaction, error)
	spendFn            func(ctx context.Context, userID, assetCode string, rawAmount any, idempotencyKey, metadata string) (models.Transaction, error)
}

func (s stubWalletService) GetAssetType(ctx context.Context, identifier string) (models.AssetType, error) {
	if s.getAssetTypeFn == nil {
		return models.AssetType{}, nil
	}
	return s.getAssetTypeFn(ctx, identifier)
}

func (s stubWalletService) GetBalance(ctx context.Context, userID string, assetTypeID int32) (string, error) {
	if s.getBalanceFn == nil {
		return "0.00", nil
	}
	return s.getBalanceFn(ctx, userID, assetTypeID)
}

func (s stubWalletService) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error) {
	if s.listTransactionsFn == nil {
		return nil, nil
	}
	return s.listTransactionsFn(ctx, userID, limit, offset)
}

func (s stubWalletService) TopUp(ctx context.Context, userID, assetCode string, rawAmount any, idempotencyKey, metadata string) (models.Transaction, error) {
	if s.topUpFn == nil {
		return models.Transaction{}, nil
	}
	return s.topUpFn(ctx, userID, assetCode, rawAmount, idempotencyKey, metadata)
}

func (s stubWalletService) GrantBonus(ctx context.Context, userID, assetCode string, rawAmount any, idempotencyKey, metadata string) (models.Transaction, error) {
	if s.grantBonusFn == nil {
		return models.Transaction{}, nil
	}
	return s.grantBonusFn(ctx, userID, assetCode, rawAmount, idempotencyKey, metadata)
}

func (s stubWalletService) Spend(ctx context.Context, userID, assetCode string, rawAmount any, idempotencyKey, metadata string) (models.Transaction, error) {
	if s.spendFn == nil {
		return models.Transaction{}, nil
	}
	return s.spendFn(ctx, userID, assetCode, rawAmount, idempotencyKey, metadata)
}

type stubOperatorStore struct {
	isOperatorFn func(ctx context.Context, userID string) (bool, error)
	grantFn      func(ctx context.Context, tx store.Execer, userID string) error
	hasAnyFn     func(ctx context.Context) (bool, error)
	reconcileFn  func(ctx context.Context) ([]store.WalletReconciliation, error)
}

func (s stubOperatorStore) IsOperator(ctx context.Context, userID string) (bool, error) {
	if s.isOperatorFn == nil {
		return false, nil
	}
	return s.isOperatorFn(ctx, userID)
}

func (s stubOperatorStore) Grant(ctx context.Context, tx store.Execer, userID string) error {
	if s.grantFn == nil {
		return nil
	}
	return s.grantFn(ctx, tx, userID)
}

func (s stubOperatorStore) HasAny(ctx context.Context) (bool, error) {
	if s.hasAnyFn == nil {
		return false, nil
	}
	return s.hasAnyFn(ctx)
}

func (s stubOperatorStore) Reconcile(ctx context.Context) ([]store.WalletReconciliation, error) {
	if s.reconcileFn == nil {
		return nil, nil
	}
	return s.reconcileFn(ctx)
}

type stubAuditStore struct {
	logFn  func(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
	listFn func(ctx context.Context, limit, offset int) ([]map[string]any, error)
}

func (s stubAuditStore) Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error {
	if s.logFn == nil {
		return nil
	}
	return s.logFn(ctx, tx, actorID, action, entityType, entityID, data)
}

func (s stubAuditStore) List(ctx context.Context, limit, offset int) ([]map[string]any, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, limit, offset)
}

func newTestHandler(txRunner db.TxRunner, users UserStore, wallet WalletService, operators OperatorStore, audit AuditStore) *Handler {
	cfg := config.Config{
		AppEnv:         "test",
		Port:           "0",
		DatabaseURL:    "",
		JWTSecret:      "secret",
		TokenTTL:       time.Minute,
		AllowedOrigins: "*",
	}
	return New(txRunner, cfg, users, wallet, operators, audit, websocket.NewHub())
}

func serveWithAuth(t *testing.T, handler http.HandlerFunc, userID string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.GenerateToken("secret", userID, time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	middleware.Auth("secret")(handler).ServeHTTP(rr, req)
	return rr
}
