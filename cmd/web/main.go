package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/solbound/delcheck/checker"
	"github.com/solbound/delcheck/pkg/logger"
	"github.com/solbound/delcheck/pkg/solclient"
	"github.com/solbound/delcheck/web/config"
	"github.com/solbound/delcheck/web/handler"
)

var (
	version = "dev"
	date    = "unknown"
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

	log.InfoContext(ctx, "Delegation Check Web API starting",
		slog.String("version", version),
		slog.String("date", date),
	)

	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		log.ErrorContext(ctx, "Invalid program ID", slog.String("programID", cfg.ProgramID), slog.Any("error", err))
		os.Exit(1)
	}

	// HTTP client & RPC client
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	client := solclient.NewWithHTTP(httpClient, cfg.RPCEndpoint)

	resolver := checker.NewResolver(client, checker.WithProgramID(programID))

	// Create HTTP server
	mux := http.NewServeMux()

	// Register handlers with the live resolver
	delegationsHandler := handler.NewDelegations(resolver)
	delegationsHandler.AddRoutes(mux)

	// Wrap with logging middleware
	loggedMux := logger.NewMiddleware(log)(mux)

	// Create server address
	addr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)

	server := &http.Server{
		Addr:    addr,
		Handler: loggedMux,
	}

	// Start server in a goroutine
	go func() {
		log.InfoContext(ctx, "Server started", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.ErrorContext(ctx, "Server failed to start", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.InfoContext(ctx, "Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(ctx, "Server forced to shutdown", slog.Any("error", err))
		os.Exit(1)
	}

	log.InfoContext(ctx, "Server exited gracefully")
}
