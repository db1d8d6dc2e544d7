package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration loaded from environment variables
type Config struct {
	RPCEndpoint         string        `env:"CHECKER_RPC_ENDPOINT" envDefault:"https://api.mainnet-beta.solana.com"`
	ProgramID           string        `env:"CHECKER_PROGRAM_ID" envDefault:"DELeGGvXpWV2fqJUhqcF5ZSYMS4JTLjteaAMARRSaeSh"`
	HTTPClientTimeout   time.Duration `env:"CHECKER_HTTP_CLIENT_TIMEOUT" envDefault:"30s"`
	ConfirmPollInterval time.Duration `env:"CHECKER_CONFIRM_POLL_INTERVAL" envDefault:"500ms"`
	MonitorInterval     time.Duration `env:"CHECKER_MONITOR_INTERVAL" envDefault:"30s"`
	MonitorAccounts     []string      `env:"CHECKER_MONITOR_ACCOUNTS" envSeparator:","`
	KeypairPath         string        `env:"CHECKER_KEYPAIR_PATH"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogHumanFriendly    bool          `env:"LOG_HUMAN_FRIENDLY" envDefault:"false"`
}

// New loads all configuration from environment variables
func New() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}
	return cfg
}
