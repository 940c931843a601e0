package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemUserID is the distinguished all-zeros identifier that owns the
// system wallet for every asset type — the monetary counterparty for
// issuance and retirement of value (spec.md §1, Glossary).
const SystemUserID = "00000000-0000-0000-0000-000000000000"

// User is the collaborator-layer identity a caller authenticates as.
// The core (internal/ledger, internal/wallet) never references this
// type: it operates on bare user id strings, per spec.md which treats
// userId as an opaque 128-bit identifier.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type AssetType struct {
	ID        int32     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Wallet struct {
	ID          int64           `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"user_id"`
	AssetTypeID int32           `db:"asset_type_id" json:"asset_type_id"`
	Balance     decimal.Decimal `db:"balance" json:"balance"`
	Version     int64           `db:"version" json:"version"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// TransactionKind is the classification of a value-movement event.
type TransactionKind string

const (
	KindTopUp TransactionKind = "TOP_UP"
	KindBonus TransactionKind = "BONUS"
	KindSpend TransactionKind = "SPEND"
)

// TransactionStatus is the lifecycle state of a Transaction, per the
// state machine in spec.md §4.3.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	// StatusFailed is reserved for future out-of-band reconciliation
	// tooling. No code path in this repository writes it — see
	// spec.md §7 and §9.
	StatusFailed TransactionStatus = "FAILED"
)

type Transaction struct {
	ID             string            `db:"id" json:"id"`
	IdempotencyKey string            `db:"idempotency_key" json:"idempotency_key"`
	Kind           TransactionKind   `db:"kind" json:"kind"`
	UserID         string            `db:"user_id" json:"user_id"`
	AssetTypeID    int32             `db:"asset_type_id" json:"asset_type_id"`
	AssetCode      string            `db:"asset_code" json:"asset_code,omitempty"`
	Amount         decimal.Decimal   `db:"amount" json:"amount"`
	Status         TransactionStatus `db:"status" json:"status"`
	Metadata       string            `db:"metadata" json:"metadata"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	ProcessedAt    *time.Time        `db:"processed_at" json:"processed_at,omitempty"`
}

// LedgerSide is which half of a double-entry pair a LedgerEntry
// represents.
type LedgerSide string

const (
	SideDebit  LedgerSide = "DEBIT"
	SideCredit LedgerSide = "CREDIT"
)

type LedgerEntry struct {
	ID            int64           `db:"id" json:"id"`
	TransactionID string          `db:"transaction_id" json:"transaction_id"`
	WalletID      int64           `db:"wallet_id" json:"wallet_id"`
	Side          LedgerSide      `db:"side" json:"side"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	BalanceAfter  decimal.Decimal `db:"balance_after" json:"balance_after"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}
