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

	// Command-line accounts take precedence over the environment list
	accounts := os.Args[1:]
	if len(accounts) == 0 {
		accounts = cfg.MonitorAccounts
	}
	if len(accounts) == 0 {
		fmt.Fprintln(os.Stderr, "usage: monitor <account> [account...] (or set CHECKER_MONITOR_ACCOUNTS)")
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

	// Create monitor service
	monitor := checker.NewMonitor(
		resolver,
		accounts,
		checker.WithPollInterval(cfg.MonitorInterval),
	)

	// Start service
	log.InfoContext(ctx, "Starting delegation monitor",
		slog.Int("accounts", len(accounts)),
		slog.Duration("interval", cfg.MonitorInterval),
	)
	events, done := monitor.Start(ctx)

	// Subscribe to events for logging
	subCloser := setupEventLogging(ctx, events, log)
	defer subCloser()

	// Wait for shutdown
	<-done
	log.InfoContext(ctx, "Monitor stopped gracefully")
}

// setupEventLogging configures event handlers using slog directly
func setupEventLogging(ctx context.Context, events <-chan checker.Event, log *slog.Logger) func() {
	return checker.NewSubscriber(events,
		checker.OnMonitorStarted(func(event checker.MonitorStarted) {
			log.InfoContext(ctx, "Monitor started",
				slog.Int("accounts", len(event.Accounts)),
				slog.Duration("interval", event.Interval),
			)
		}),
		checker.OnCheckCompleted(func(event checker.CheckCompleted) {
			delegated := 0
			for _, result := range event.Results {
				if result.Delegated() {
					delegated++
				}
			}
			log.InfoContext(ctx, "Check cycle completed",
				slog.Int("checked", len(event.Results)),
				slog.Int("delegated", delegated),
			)
		}),
		checker.OnStatusChanged(func(event checker.StatusChanged) {
			log.InfoContext(ctx, "Delegation status changed",
				slog.String("account", event.Account),
				slog.String("from", string(event.From)),
				slog.String("to", string(event.To)),
			)
		}),
		checker.OnMonitorShutdown(func(event checker.MonitorShutdown) {
			log.InfoContext(ctx, "Monitor shutting down",
				slog.String("reason", event.Reason.Error()),
			)
		}),
	)
}
