package testcfg

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds test-specific configuration for checker acceptance tests
type Config struct {
	RPCEndpoint       string        `env:"CHECKER_TEST_RPC_ENDPOINT" envDefault:"https://api.mainnet-beta.solana.com"`
	HTTPClientTimeout time.Duration `env:"CHECKER_TEST_HTTP_CLIENT_TIMEOUT" envDefault:"30s"`
	Account           string        `env:"CHECKER_TEST_ACCOUNT" envDefault:"9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"`
}

// parseConfig wraps env.Parse to return (Config, error) for use with env.Must
func parseConfig() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}

// New loads test configuration from environment variables
func New() Config {
	return env.Must(parseConfig())
}
