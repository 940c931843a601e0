package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"walletcore/internal/ledger"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func valueToString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// respondLedgerError maps the internal/ledger error taxonomy (spec.md
// §7) onto HTTP status codes.
func respondLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidArgument):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		respondError(w, http.StatusBadRequest, "insufficient_funds")
	case errors.Is(err, ledger.ErrIdempotencyConflict):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrTransient):
		respondError(w, http.StatusServiceUnavailable, "try again")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
