package handlers

import (
	"net/http"

	"walletcore/internal/config"
	"walletcore/internal/db"
	"walletcore/internal/middleware"
	"walletcore/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	txRunner  db.TxRunner
	cfg       config.Config
	users     UserStore
	wallet    WalletService
	operators OperatorStore
	audit     AuditStore
	hub       *websocket.Hub
}

func New(txRunner db.TxRunner, cfg config.Config, users UserStore, wallet WalletService, operators OperatorStore, audit AuditStore, hub *websocket.Hub) *Handler {
	return &Handler{
		txRunner:  txRunner,
		cfg:       cfg,
		users:     users,
		wallet:    wallet,
		operators: operators,
		audit:     audit,
		hub:       hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(middleware.Auth(h.cfg.JWTSecret)).Get("/me", h.Me)
	})

	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/asset-types/{identifier}", h.GetAssetType)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/wallets/{assetCode}/balance", h.GetBalance)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Post("/wallets/{assetCode}/topup", h.TopUp)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Post("/wallets/{assetCode}/bonus", h.GrantBonus)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Post("/wallets/{assetCode}/spend", h.Spend)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/transactions", h.ListTransactions)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/users/username/{username}", h.GetUserByUsername)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/users/email/{email}", h.GetUserByEmail)
	router.Get("/ws/balances", h.WSBalances)

	router.Route("/operator", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Use(middleware.RequireOperator(h.operators))
		r.Get("/reconcile", h.Reconcile)
		r.Get("/audit", h.ListAuditLogs)
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
