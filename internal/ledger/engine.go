// Package ledger implements the Ledger Engine and Idempotency Gate of
// spec.md §4.2-§4.3: the double-entry core that every TOP_UP, BONUS,
// and SPEND operation passes through. It is grounded on
// internal/services.TransactionService.Transfer in the teacher repo —
// same shape (lock two rows in ascending order inside one store
// transaction, check balance, write a transaction row, write two
// ledger entries) — adapted to add the advisory-lock phase, the
// three-way idempotency branch, wallet auto-onboarding, and the
// per-operation lock/statement timeouts.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"walletcore/internal/db"
	"walletcore/internal/lockcoord"
	"walletcore/internal/models"
	"walletcore/internal/store"
	"walletcore/internal/websocket"
)

// WalletStore is the slice of internal/store.WalletStore the engine
// needs: auto-onboarding, row-level locking, and balance mutation.
type WalletStore interface {
	EnsureExists(ctx context.Context, tx store.Execer, userID string, assetTypeID int32) error
	GetForUpdate(ctx context.Context, tx store.Getter, userID string, assetTypeID int32) (models.Wallet, error)
	UpdateBalance(ctx context.Context, tx store.Execer, walletID int64, balance decimal.Decimal) error
}

// TransactionStore is the slice of internal/store.TransactionStore the
// engine needs to drive a Transaction through PENDING -> COMPLETED.
type TransactionStore interface {
	Create(ctx context.Context, tx store.Execer, input store.TransactionInput) error
	Complete(ctx context.Context, tx store.Execer, id string) error
	GetByIdempotencyKey(ctx context.Context, tx store.Getter, key string) (models.Transaction, error)
	GetByID(ctx context.Context, id string) (models.Transaction, error)
}

// LedgerStore is the append-only write half the engine needs.
type LedgerStore interface {
	Insert(ctx context.Context, tx store.Execer, entry store.LedgerEntryInput) error
}

// AuditStore records who did what; the engine logs one entry per
// completed operation, grounded on the teacher's AuditStore.Log call
// at the tail of Transfer.
type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
}

// BalanceHub fans out a post-commit balance change to any websocket
// client subscribed to that user.
type BalanceHub interface {
	BroadcastBalance(userID string, update websocket.BalanceUpdate)
}

// Engine is the Ledger Engine of spec.md §4.3.
type Engine struct {
	txRunner         db.TxRunner
	wallets          WalletStore
	transactions     TransactionStore
	ledger           LedgerStore
	audit            AuditStore
	hub              BalanceHub
	lockTimeout      time.Duration
	statementTimeout time.Duration
	log              *slog.Logger
}

func New(txRunner db.TxRunner, wallets WalletStore, transactions TransactionStore, ledger LedgerStore, audit AuditStore, hub BalanceHub) *Engine {
	return &Engine{
		txRunner:         txRunner,
		wallets:          wallets,
		transactions:     transactions,
		ledger:           ledger,
		audit:            audit,
		hub:              hub,
		lockTimeout:      5 * time.Second,
		statementTimeout: 10 * time.Second,
		log:              slog.Default(),
	}
}

// WithTimeouts overrides the default 5s/10s guardrails of spec.md
// §4.3 step 1. Intended for cmd/server wiring from internal/config.
func (e *Engine) WithTimeouts(lock, statement time.Duration) *Engine {
	e.lockTimeout = lock
	e.statementTimeout = statement
	return e
}

// WithLogger overrides the default slog.Default() sink for
// operation-outcome logs.
func (e *Engine) WithLogger(log *slog.Logger) *Engine {
	e.log = log
	return e
}

// Operation is the resolved input to Execute: the Query Surface
// façade (internal/wallet) has already turned an asset code into an
// asset type id and picked fromUser/toUser/ownerUser for the
// requested kind (spec.md §4.3 "Operation kinds").
type Operation struct {
	Kind           models.TransactionKind
	FromUserID     string
	ToUserID       string
	OwnerUserID    string
	AssetTypeID    int32
	AssetCode      string
	Amount         decimal.Decimal
	IdempotencyKey string
	Metadata       string
}

func (op Operation) validate() error {
	if !op.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}
	if op.FromUserID == op.ToUserID {
		return fmt.Errorf("%w: fromUser and toUser must differ", ErrInvalidArgument)
	}
	switch op.Kind {
	case models.KindTopUp, models.KindBonus, models.KindSpend:
	default:
		return fmt.Errorf("%w: unknown operation kind %q", ErrInvalidArgument, op.Kind)
	}
	if op.IdempotencyKey == "" {
		return fmt.Errorf("%w: idempotency key is required", ErrInvalidArgument)
	}
	return nil
}

// Execute runs the eleven-step procedure of spec.md §4.3 inside a
// single store-level transaction and returns the resulting Transaction
// (either newly completed, or the prior COMPLETED record the
// Idempotency Gate returned unchanged).
func (e *Engine) Execute(ctx context.Context, op Operation) (models.Transaction, error) {
	if err := op.validate(); err != nil {
		return models.Transaction{}, err
	}

	var (
		idempotentHit    *models.Transaction
		transactionID    string
		fromWalletID     int64
		toWalletID       int64
		fromBalanceAfter decimal.Decimal
		toBalanceAfter   decimal.Decimal
	)

	err := e.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		// Step 1: per-operation guardrail timeouts.
		if err := db.SetGuardrailTimeouts(ctx, tx, e.lockTimeout, e.statementTimeout); err != nil {
			return classifyPGError(err)
		}

		// Step 2: advisory lock on the participants, order-insensitive,
		// so a SPEND and a TOP_UP on the same (user, asset) collide.
		lockKey := lockcoord.AdvisoryKey(op.FromUserID, op.ToUserID, fmt.Sprint(op.AssetTypeID))
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, lockKey); err != nil {
			return classifyPGError(err)
		}

		// Step 3: idempotency gate.
		existing, err := e.checkIdempotency(ctx, tx, op.IdempotencyKey)
		if err != nil {
			return err
		}
		if existing != nil {
			idempotentHit = existing
			return nil
		}

		// Step 4: auto-onboard both wallets, in ascending user_id order.
		for _, userID := range lockcoord.OrderUserIDs(op.FromUserID, op.ToUserID) {
			if err := e.wallets.EnsureExists(ctx, tx, userID, op.AssetTypeID); err != nil {
				return classifyPGError(err)
			}
		}

		// Step 5: lock both wallet rows, ascending user_id order, then
		// map the locked rows back onto from/to by identity.
		locked := make(map[string]models.Wallet, 2)
		for _, userID := range lockcoord.OrderUserIDs(op.FromUserID, op.ToUserID) {
			wallet, err := e.wallets.GetForUpdate(ctx, tx, userID, op.AssetTypeID)
			if err != nil {
				return fmt.Errorf("%w: wallet row missing after auto-onboard: %v", ErrInternal, err)
			}
			locked[userID] = wallet
		}
		fromWallet := locked[op.FromUserID]
		toWallet := locked[op.ToUserID]

		// Step 6: balance check before any write.
		newFrom := fromWallet.Balance.Sub(op.Amount)
		if newFrom.IsNegative() {
			return ErrInsufficientFunds
		}

		// Step 7: insert the Transaction row, PENDING.
		transactionID = uuid.NewString()
		if err := e.transactions.Create(ctx, tx, store.TransactionInput{
			ID:             transactionID,
			IdempotencyKey: op.IdempotencyKey,
			Kind:           op.Kind,
			UserID:         op.OwnerUserID,
			AssetTypeID:    op.AssetTypeID,
			Amount:         op.Amount,
			Metadata:       op.Metadata,
		}); err != nil {
			return classifyPGError(err)
		}

		// Step 8: debit the source wallet.
		if err := e.wallets.UpdateBalance(ctx, tx, fromWallet.ID, newFrom); err != nil {
			return classifyPGError(err)
		}
		if err := e.ledger.Insert(ctx, tx, store.LedgerEntryInput{
			TransactionID: transactionID,
			WalletID:      fromWallet.ID,
			Side:          models.SideDebit,
			Amount:        op.Amount,
			BalanceAfter:  newFrom,
		}); err != nil {
			return classifyPGError(err)
		}

		// Step 9: credit the destination wallet.
		newTo := toWallet.Balance.Add(op.Amount)
		if err := e.wallets.UpdateBalance(ctx, tx, toWallet.ID, newTo); err != nil {
			return classifyPGError(err)
		}
		if err := e.ledger.Insert(ctx, tx, store.LedgerEntryInput{
			TransactionID: transactionID,
			WalletID:      toWallet.ID,
			Side:          models.SideCredit,
			Amount:        op.Amount,
			BalanceAfter:  newTo,
		}); err != nil {
			return classifyPGError(err)
		}

		// Step 10: complete the transaction.
		if err := e.transactions.Complete(ctx, tx, transactionID); err != nil {
			return classifyPGError(err)
		}

		if err := e.audit.Log(ctx, tx, op.OwnerUserID, string(op.Kind), "transaction", transactionID, op.Metadata); err != nil {
			return classifyPGError(err)
		}

		fromWalletID, toWalletID = fromWallet.ID, toWallet.ID
		fromBalanceAfter, toBalanceAfter = newFrom, newTo
		return nil
	})
	if err != nil {
		e.log.Warn("ledger operation failed", "kind", op.Kind, "asset_code", op.AssetCode, "error", err)
		return models.Transaction{}, err
	}

	if idempotentHit != nil {
		e.log.Info("ledger operation replayed from idempotency key", "kind", op.Kind, "transaction_id", idempotentHit.ID)
		return *idempotentHit, nil
	}

	committed, err := e.transactions.GetByID(ctx, transactionID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: transaction %s committed but could not be re-read: %v", ErrInternal, transactionID, err)
	}
	e.log.Info("ledger operation completed", "kind", op.Kind, "transaction_id", transactionID, "asset_code", op.AssetCode)

	if op.FromUserID != models.SystemUserID {
		e.hub.BroadcastBalance(op.FromUserID, websocket.BalanceUpdate{WalletID: fromWalletID, AssetCode: op.AssetCode, Balance: fromBalanceAfter.StringFixed(2)})
	}
	if op.ToUserID != models.SystemUserID {
		e.hub.BroadcastBalance(op.ToUserID, websocket.BalanceUpdate{WalletID: toWalletID, AssetCode: op.AssetCode, Balance: toBalanceAfter.StringFixed(2)})
	}

	return committed, nil
}
