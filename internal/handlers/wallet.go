package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"walletcore/internal/middleware"
	"walletcore/internal/models"
)

var reqValidate = validator.New()

type walletOperationRequest struct {
	Amount         string `json:"amount" validate:"required"`
	IdempotencyKey string `json:"idempotency_key" validate:"required"`
	Metadata       string `json:"metadata"`
}

// GetAssetType serves GET /asset-types/{identifier}. The identifier is
// matched case-sensitively and exactly against either the asset's name
// or its code, so "gold" does not find the GOLD asset.
func (h *Handler) GetAssetType(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")
	asset, err := h.wallet.GetAssetType(r.Context(), identifier)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	assetCode := chi.URLParam(r, "assetCode")
	asset, err := h.wallet.GetAssetType(r.Context(), assetCode)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	balance, err := h.wallet.GetBalance(r.Context(), userID, asset.ID)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"asset_code": asset.Code,
		"balance":    balance,
	})
}

type walletOperation func(ctx context.Context, userID, assetCode string, rawAmount any, idempotencyKey, metadata string) (models.Transaction, error)

func (h *Handler) TopUp(w http.ResponseWriter, r *http.Request) {
	h.runOperation(w, r, h.wallet.TopUp)
}

func (h *Handler) GrantBonus(w http.ResponseWriter, r *http.Request) {
	h.runOperation(w, r, h.wallet.GrantBonus)
}

func (h *Handler) Spend(w http.ResponseWriter, r *http.Request) {
	h.runOperation(w, r, h.wallet.Spend)
}

func (h *Handler) runOperation(w http.ResponseWriter, r *http.Request, op walletOperation) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	assetCode := chi.URLParam(r, "assetCode")
	var req walletOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := reqValidate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "amount and idempotency_key are required")
		return
	}
	transaction, err := op(r.Context(), userID, assetCode, req.Amount, req.IdempotencyKey, req.Metadata)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, transaction)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	query := r.URL.Query()
	limit := parseIntParam(query.Get("limit"), 20)
	offset := parseIntParam(query.Get("offset"), 0)
	transactions, err := h.wallet.ListTransactions(r.Context(), userID, limit, offset)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

func parseIntParam(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
