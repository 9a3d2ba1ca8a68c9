package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/espbuild/appmatrix/cmd/appinfo/commands"
	"github.com/rs/zerolog/log"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := commands.Execute(ctx, Version, Commit, BuildDate); err != nil {
		// The validate command already printed its answer; everything
		// else is reported here.
		if !errors.Is(err, commands.ErrAppMissing) {
			log.Error().Err(err).Msg("Command execution failed")
		}
		os.Exit(1)
	}
}
