package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubOperatorStore struct {
	isOperatorFn func(ctx context.Context, userID string) (bool, error)
}

func (s stubOperatorStore) IsOperator(ctx context.Context, userID string) (bool, error) {
	if s.isOperatorFn == nil {
		return false, nil
	}
	return s.isOperatorFn(ctx, userID)
}

func TestRequireOperatorRejectsUnauthenticated(t *testing.T) {
	handler := RequireOperator(stubOperatorStore{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be called")
	}))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRequireOperatorRejectsNonOperator(t *testing.T) {
	handler := RequireOperator(stubOperatorStore{
		isOperatorFn: func(context.Context, string) (bool, error) { return false, nil },
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be called")
	}))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, "user-1"))
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestRequireOperatorAllowsOperator(t *testing.T) {
	handler := RequireOperator(stubOperatorStore{
		isOperatorFn: func(context.Context, string) (bool, error) { return true, nil },
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, "user-1"))
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
