package poller

import (
	"context"
	"errors"
	"time"

	"participant_board/internal/board"
	"participant_board/internal/roster"
	"participant_board/internal/sheets"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Source yields the full record set for one cycle
type Source interface {
	Fetch(ctx context.Context) ([]roster.Record, error)
}

// Poller drives the fetch-aggregate cycle on a fixed interval.
// At most one fetch is outstanding; ticks and manual refreshes that arrive
// while a fetch is running share its result.
type Poller struct {
	source   Source
	state    *board.State
	interval time.Duration
	group    singleflight.Group
	now      func() time.Time
}

func New(source Source, state *board.State, interval time.Duration) *Poller {
	return &Poller{
		source:   source,
		state:    state,
		interval: interval,
		now:      time.Now,
	}
}

// Run executes one cycle immediately and then one per tick until ctx is done
func (p *Poller) Run(ctx context.Context) {
	log.Info().Dur("interval", p.interval).Msg("Starting participant sync. Running immediately and then on every tick...")

	_ = p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Participant sync stopped")
			return
		case <-ticker.C:
			_ = p.Refresh(ctx)
		}
	}
}

// Refresh runs a cycle, or waits for the one already in flight
func (p *Poller) Refresh(ctx context.Context) error {
	_, err, shared := p.group.Do("cycle", func() (interface{}, error) {
		// a caller going away must not abort a fetch others are waiting on
		return nil, p.cycle(context.WithoutCancel(ctx))
	})
	if shared {
		log.Debug().Msg("Joined in-flight fetch")
	}
	return err
}

func (p *Poller) cycle(ctx context.Context) error {
	start := p.now()

	records, err := p.source.Fetch(ctx)
	if err != nil {
		p.state.RecordFailure(err, p.now())
		event := log.Error()
		if errors.Is(err, sheets.ErrShape) {
			event = log.Warn()
		}
		event.Err(err).Msg("Fetch cycle failed; keeping previous data")
		return err
	}

	summary := p.state.Replace(records, p.now())
	log.Info().
		Int("rows", len(records)).
		Int("valid", summary.ValidCount).
		Int("paid", summary.PaidCount).
		Int64("collected_pesos", summary.CollectedAmount.WholePesos()).
		Int64("potential_pesos", summary.PotentialAmount.WholePesos()).
		Dur("duration", p.now().Sub(start)).
		Msg("Fetch cycle complete")
	return nil
}
