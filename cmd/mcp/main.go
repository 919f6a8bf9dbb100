package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ckobridge/internal/checkout"
	"ckobridge/internal/config"
	"ckobridge/internal/mcp"
	"ckobridge/internal/ops"
)

func main() {
	// Logs go to stderr; stdout carries the MCP protocol stream.
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Credentials are not checked here: a missing key surfaces as an
	// authentication error on the first tool call instead.
	cfg := config.LoadLenient()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Shutting down...")
		cancel()
	}()

	factory := checkout.NewFactory(cfg.Checkout)
	service := ops.New(factory, logger)

	logger.Info("Starting Checkout MCP server on stdio")
	server := mcp.NewServer(service)
	if err := server.Run(ctx); err != nil && err != context.Canceled {
		logger.Fatal("MCP server error", zap.Error(err))
	}
}
