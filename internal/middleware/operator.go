package middleware

import (
	"context"
	"net/http"
)

type OperatorStore interface {
	IsOperator(ctx context.Context, userID string) (bool, error)
}

// RequireOperator gates the reconciliation surface (spec.md §4.4) to
// users granted operator status, adapted from the teacher's
// RequireAdmin but without the role/super-admin distinction this
// domain has no use for.
func RequireOperator(operators OperatorStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			isOperator, err := operators.IsOperator(r.Context(), userID)
			if err != nil {
				http.Error(w, "unable to verify operator", http.StatusInternalServerError)
				return
			}
			if !isOperator {
				http.Error(w, "operator privileges required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
