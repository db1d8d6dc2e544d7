package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration loaded from environment variables
type Config struct {
	HTTPPort          string        `env:"WEB_HTTP_PORT" envDefault:"8080"`
	HTTPHost          string        `env:"WEB_HTTP_HOST" envDefault:"localhost"`
	RPCEndpoint       string        `env:"WEB_RPC_ENDPOINT" envDefault:"https://api.mainnet-beta.solana.com"`
	ProgramID         string        `env:"WEB_PROGRAM_ID" envDefault:"DELeGGvXpWV2fqJUhqcF5ZSYMS4JTLjteaAMARRSaeSh"`
	HTTPClientTimeout time.Duration `env:"WEB_HTTP_CLIENT_TIMEOUT" envDefault:"30s"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	LogHumanFriendly  bool          `env:"LOG_HUMAN_FRIENDLY" envDefault:"false"`
}

// New loads all configuration from environment variables
func New() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}
	return cfg
}
