package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/espbuild/appmatrix/cmd/matrixgen/commands"
	"github.com/rs/zerolog/log"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	// Create context that cancels on interrupt signals; watch mode relies
	// on this to stop cleanly.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("Received interrupt signal, shutting down...")
		cancel()
	}()

	if err := commands.Execute(ctx, Version, Commit, BuildDate); err != nil {
		log.Error().Err(err).Msg("Command execution failed")
		os.Exit(1)
	}
}
