package main

import (
	"context"
	"log"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"
	"github.com/pawclick/clicker-api/internal/chain"
	"github.com/pawclick/clicker-api/internal/config"
	"github.com/pawclick/clicker-api/internal/contracts"
	"github.com/pawclick/clicker-api/internal/executor"
	"github.com/pawclick/clicker-api/internal/game"
	"github.com/pawclick/clicker-api/internal/handlers"
	"github.com/pawclick/clicker-api/internal/kv"
	"github.com/pawclick/clicker-api/internal/logger"
	"github.com/pawclick/clicker-api/internal/provider/agw"
	"github.com/pawclick/clicker-api/internal/secrets"
	"github.com/pawclick/clicker-api/internal/server"
	"github.com/pawclick/clicker-api/internal/session"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.InitLogger(cfg.Stage)
	defer logger.Sync()
	logger.Info("Starting clicker API", zap.String("stage", cfg.Stage))

	ctx := context.Background()

	rpc, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		logger.Fatal("Failed to connect to chain RPC", zap.String("url", cfg.RPCURL), zap.Error(err))
	}
	defer rpc.Close()

	store, cleanup, err := buildSessionStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open session storage", zap.Error(err))
	}
	defer cleanup()

	contract := common.HexToAddress(cfg.ClickerAddress)
	contractABI := contracts.ClickerABI()
	chainID := big.NewInt(cfg.ChainID)

	gateway := agw.NewGatewayClient(cfg.WalletGatewayURL, cfg.WalletGatewayAPIKey, cfg.WalletGatewayTimeout)
	walletProvider := agw.NewProvider(gateway, rpc, chainID)

	entryPoints := make([]session.EntryPoint, 0, len(contracts.SessionEntryPoints()))
	for _, sig := range contracts.SessionEntryPoints() {
		entryPoints = append(entryPoints, session.EntryPoint{Target: contract, Signature: sig})
	}

	lifecycle := session.NewLifecycle(walletProvider, store, session.LifecycleConfig{
		Contract:    contract,
		ContractABI: contractABI,
		EntryPoints: entryPoints,
		TTL:         cfg.SessionTTL,
		FeeLimit:    cfg.SessionFeeLimit(),
	}, nil)

	reader := chain.NewReader(rpc, contract, contractABI)
	exec := executor.New(rpc, 2*time.Second)

	facade := game.NewFacade(lifecycle, reader, exec, nil, game.Config{
		Contract:        contract,
		ContractABI:     contractABI,
		AutoCreateDelay: cfg.SessionAutoCreateDelay,
		LeaderboardSize: cfg.LeaderboardSize,
	})

	pollCtx, stopPolling := context.WithCancel(ctx)
	defer stopPolling()
	facade.StartPolling(pollCtx, cfg.LeaderboardInterval)

	commonServices := handlers.NewCommonServices(handlers.CommonServicesConfig{Facade: facade})
	srv := server.New(cfg, commonServices)

	go func() {
		logger.Info("Listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	stopPolling()
	if err := server.Shutdown(srv, 10*time.Second); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// buildSessionStore opens the key-value cache and the configured secret
// backend for signer keys.
func buildSessionStore(ctx context.Context, cfg *config.Config) (*session.Store, func(), error) {
	kvStore, err := kv.OpenSQLite(cfg.SessionDBPath)
	if err != nil {
		return nil, nil, err
	}

	var secretStore secrets.Store
	switch cfg.SecretsBackend {
	case "awssm":
		secretStore, err = secrets.NewSecretsManagerStore(ctx, cfg.SecretsPrefix)
		if err != nil {
			kvStore.Close()
			return nil, nil, err
		}
	default:
		secretStore = secrets.NewKVStore(kvStore, cfg.SecretsPrefix)
	}

	cleanup := func() {
		if err := kvStore.Close(); err != nil {
			logger.Warn("Failed to close session storage", zap.Error(err))
		}
	}
	return session.NewStore(kvStore, secretStore, nil), cleanup, nil
}
