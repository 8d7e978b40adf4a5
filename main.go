package main

import (
	"context"
	"os/signal"
	"syscall"

	"participant_board/internal/app"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()
	log.Debug().Msg("Starting application")

	cfg := app.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("Participant board stopped with error")
	}
	log.Info().Msg("Participant board stopped gracefully")
}
