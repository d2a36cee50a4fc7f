package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/platinummonkey/pkglint/pkg/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create root command
	rootCmd := cli.NewRootCommand()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// the report already describes the violations
		if !errors.Is(err, cli.ErrViolations) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
