package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"walletcore/internal/cache"
	"walletcore/internal/config"
	"walletcore/internal/db"
	"walletcore/internal/handlers"
	"walletcore/internal/ledger"
	"walletcore/internal/logging"
	"walletcore/internal/store"
	"walletcore/internal/wallet"
	"walletcore/internal/websocket"
)

func main() {
	cfg := config.Load()

	logger, sync := logging.New(cfg.AppEnv == "production")
	defer sync()

	database, err := db.Connect(cfg.DatabaseURL, cfg.DBMaxOpenConns)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	users := store.NewUserStore(database)
	assetTypes := store.NewAssetTypeStore(database)
	wallets := store.NewWalletStore(database)
	transactions := store.NewTransactionStore(database)
	ledgerEntries := store.NewLedgerStore(database)
	operators := store.NewOperatorStore(database)
	audit := store.NewAuditStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()

	engine := ledger.New(txRunner, wallets, transactions, ledgerEntries, audit, hub).
		WithTimeouts(cfg.LockTimeout, cfg.StatementTimeout).
		WithLogger(logger)

	walletService := wallet.NewService(assetTypes, wallets, transactions, engine)

	ctx, cancelCache := context.WithTimeout(context.Background(), 5*time.Second)
	redisClient, err := cache.NewClient(ctx, cfg.RedisAddr)
	cancelCache()
	if err != nil {
		logger.Warn("redis unavailable, asset-type and balance reads will bypass the cache", "error", err)
	} else {
		defer redisClient.Close()
		walletService = walletService.
			WithAssetCache(cache.NewAssetTypeCache(redisClient, cfg.AssetCacheTTL)).
			WithBalanceCache(cache.NewBalanceCache(redisClient, cfg.BalanceCacheTTL))
	}

	handler := handlers.New(txRunner, cfg, users, walletService, operators, audit, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("wallet API listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
