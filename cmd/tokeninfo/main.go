package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"solana-token-info/internal/orchestrator"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		stop()
		os.Exit(1)
	}
}

// errorMessage turns a command error into the single line printed on stderr.
func errorMessage(err error) string {
	if errors.Is(err, orchestrator.ErrOnChain) {
		return "Failed to fetch token data, it's likely because the token address is invalid: " + err.Error()
	}
	return "Error: " + err.Error()
}
