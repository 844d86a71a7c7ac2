package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/px/internal/cli"
	pxerrors "github.com/matzehuels/px/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	c := cli.New(os.Stderr, cli.LogWarn)

	err := c.Execute(ctx, args)
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return 130 // Standard shell convention for SIGINT
	}
	// The package manager already reported its own failure.
	if code, ok := pxerrors.ExitCode(err); ok {
		return code
	}
	cli.PrintError("%s", cli.ErrorMessage(err))
	return 1
}
