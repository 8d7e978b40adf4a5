package main

import (
	"context"
	"sync"

	"participant_board/internal/app"
	"participant_board/internal/config"

	"github.com/rs/zerolog/log"
)

// run starts the sync loop and the HTTP server and blocks until ctx is
// cancelled and both have stopped.
func run(ctx context.Context, cfg *config.Config) error {
	p, srv := app.InitializeBoard(ctx, cfg)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if p != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Run(ctx)
		}()
	}

	log.Info().
		Str("event", cfg.EventName).
		Bool("discontinued", cfg.Discontinued).
		Str("port", cfg.Port).
		Msg("Starting participant board")

	err := srv.ListenAndServe(ctx, ":"+cfg.Port)
	// stop the sync loop if the server failed on its own
	cancel()
	wg.Wait()
	return err
}
