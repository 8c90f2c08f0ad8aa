// Package expiry runs the booking expiry sweep on a fixed interval.
package expiry

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"eke/config"
	"eke/shared/clock"
)

// Sweeper is the slice of the booking service the worker drives.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) ([]string, error)
}

type Worker struct {
	sweeper  Sweeper
	clock    clock.Clock
	interval time.Duration
}

func New(sweeper Sweeper, cfg *config.Config, clk clock.Clock) *Worker {
	return &Worker{
		sweeper:  sweeper,
		clock:    clk,
		interval: time.Duration(cfg.Booking.SweepIntervalSeconds) * time.Second,
	}
}

// Run sweeps immediately, then on every tick until the context is cancelled.
// Sweep failures are logged and the loop keeps going; the conditional writes
// inside the sweep make overlapping runs harmless.
func (w *Worker) Run(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("expiry worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("expiry worker stopped")

			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	expired, err := w.sweeper.Sweep(ctx, w.clock.Now())
	if err != nil {
		log.Error().Err(err).Msg("booking expiry sweep failed")

		return
	}

	if len(expired) > 0 {
		log.Info().Int("expired", len(expired)).Msg("booking expiry sweep completed")
	}
}
