// Package app is helper for blockpack command line tools.
package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Run wires a logger, runs f and maps its error to the exit code.
// Set BLOCKPACK_DEBUG for development log output.
func Run(f func(ctx context.Context, lg *zap.Logger) error) {
	cfg := zap.NewProductionConfig()
	if os.Getenv("BLOCKPACK_DEBUG") != "" {
		cfg = zap.NewDevelopmentConfig()
	}
	lg, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()
	if err := f(context.Background(), lg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(2)
	}
}
