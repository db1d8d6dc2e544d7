package main

import (
	"context"
	"encoding/json"
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

	accounts := os.Args[1:]
	if len(accounts) == 0 {
		fmt.Fprintln(os.Stderr, "usage: check <account> [account...]")
		os.Exit(2)
	}

	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		log.ErrorContext(ctx, "Invalid program ID", slog.String("programID", cfg.ProgramID), slog.Any("error", err))
		os.Exit(1)
	}

	// HTTP client & RPC client
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	client := solclient.NewWithHTTP(httpClient, cfg.RPCEndpoint)

	resolver := checker.NewResolver(client, checker.WithProgramID(programID))

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")

	// A single account reports lookup failures with a non-zero exit; a batch
	// renders per-account placeholders instead, matching the resolver contract.
	if len(accounts) == 1 {
		result, err := resolver.Resolve(ctx, accounts[0])
		if err != nil {
			log.ErrorContext(ctx, "Failed to resolve delegation", slog.String("account", accounts[0]), slog.Any("error", err))
			os.Exit(1)
		}
		if err := out.Encode(result); err != nil {
			log.ErrorContext(ctx, "Failed to encode result", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	results := resolver.ResolveMany(ctx, accounts)
	if err := out.Encode(results); err != nil {
		log.ErrorContext(ctx, "Failed to encode results", slog.Any("error", err))
		os.Exit(1)
	}
}
