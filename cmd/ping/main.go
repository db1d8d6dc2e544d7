package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"

	"github.com/solbound/delcheck/checker"
	"github.com/solbound/delcheck/checker/config"
	"github.com/solbound/delcheck/pkg/logger"
	"github.com/solbound/delcheck/pkg/solclient"
)

func main() {
	// Load configuration
	cfg := config.New()

	// Initialize logger and set as default
	log := logger.NewFromConfig(logger.Config{
		LogLevel:         cfg.LogLevel,
		LogHumanFriendly: cfg.LogHumanFriendly,
	})
	slog.SetDefault(log)

	// Prepare context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: ping <recipient-account>")
		os.Exit(2)
	}

	recipient, err := solana.PublicKeyFromBase58(os.Args[1])
	if err != nil {
		log.ErrorContext(ctx, "Invalid recipient account", slog.String("account", os.Args[1]), slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.KeypairPath == "" {
		log.ErrorContext(ctx, "CHECKER_KEYPAIR_PATH must point to a funded keypair file")
		os.Exit(1)
	}

	signer, err := checker.KeypairSignerFromFile(cfg.KeypairPath)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load keypair", slog.String("path", cfg.KeypairPath), slog.Any("error", err))
		os.Exit(1)
	}

	// HTTP client & RPC client
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	client := solclient.NewWithHTTP(httpClient, cfg.RPCEndpoint)

	pinger := checker.NewPinger(client,
		checker.WithConfirmPollInterval(cfg.ConfirmPollInterval),
	)

	log.InfoContext(ctx, "Sending ping transaction",
		slog.String("from", signer.PublicKey().String()),
		slog.String("to", recipient.String()),
	)

	sig, err := pinger.SendPing(ctx, signer.PublicKey(), recipient, signer)
	if err != nil {
		log.ErrorContext(ctx, "Ping failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.InfoContext(ctx, "Ping confirmed", slog.String("signature", sig.String()))
	fmt.Println(sig.String())
}
