package config

import (
	"fmt"
	"math/big"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the API server. Values are
// sourced from environment variables; cmd/api loads a .env file first.
type Config struct {
	Stage      string `env:"STAGE" envDefault:"dev"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8000"`

	// Chain access
	RPCURL         string `env:"RPC_URL,required"`
	ChainID        int64  `env:"CHAIN_ID" envDefault:"11124"`
	ClickerAddress string `env:"CLICKER_ADDRESS" envDefault:"0x83d3e715a0230BE1A79D327e61cF5A08b7c4dc80"`

	// Wallet gateway (session registration/revocation)
	WalletGatewayURL     string        `env:"WALLET_GATEWAY_URL,required"`
	WalletGatewayAPIKey  string        `env:"WALLET_GATEWAY_API_KEY"`
	WalletGatewayTimeout time.Duration `env:"WALLET_GATEWAY_TIMEOUT" envDefault:"3m"`

	// Session policy knobs. The fee ceiling is deliberately configuration,
	// not a constant; the default matches 1 ETH of lifetime gas allowance.
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionFeeLimitWei string        `env:"SESSION_FEE_LIMIT_WEI" envDefault:"1000000000000000000"`

	// Optional auto-create of a session after connect; zero disables it.
	SessionAutoCreateDelay time.Duration `env:"SESSION_AUTO_CREATE_DELAY" envDefault:"0"`

	// Persistence for cached sessions
	SessionDBPath string `env:"SESSION_DB_PATH" envDefault:"sessions.db"`

	// Secret storage backend for session signer keys: "kv" or "awssm"
	SecretsBackend string `env:"SECRETS_BACKEND" envDefault:"kv"`
	SecretsPrefix  string `env:"SECRETS_PREFIX" envDefault:"clicker/session"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	LeaderboardSize     int           `env:"LEADERBOARD_SIZE" envDefault:"10"`
	LeaderboardInterval time.Duration `env:"LEADERBOARD_INTERVAL" envDefault:"30s"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if _, ok := new(big.Int).SetString(cfg.SessionFeeLimitWei, 10); !ok {
		return nil, fmt.Errorf("SESSION_FEE_LIMIT_WEI is not a decimal integer: %q", cfg.SessionFeeLimitWei)
	}
	return cfg, nil
}

// SessionFeeLimit returns the configured fee ceiling in wei.
func (c *Config) SessionFeeLimit() *big.Int {
	limit, _ := new(big.Int).SetString(c.SessionFeeLimitWei, 10)
	return limit
}
