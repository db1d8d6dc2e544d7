package testcfg

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds test-specific configuration for solclient acceptance tests
type Config struct {
	Endpoint    string        `env:"SOLCLIENT_TEST_ENDPOINT" envDefault:"https://api.devnet.solana.com"`
	HTTPTimeout time.Duration `env:"SOLCLIENT_TEST_HTTP_TIMEOUT" envDefault:"30s"`
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
