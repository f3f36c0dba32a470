package codes

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sportsfed/federation-api/internal/core/ports"
	"github.com/sportsfed/federation-api/internal/pkg/metrics"
)

const defaultSweepInterval = 5 * time.Minute

// Sweeper periodically evicts expired verification codes from a registry.
// Its lifetime is bound to the context passed to Start: cancel the context
// and the background goroutine stops.
type Sweeper struct {
	registry ports.CodeRegistry
	interval time.Duration
	log      zerolog.Logger
}

// NewSweeper creates a Sweeper. A non-positive interval falls back to 5 minutes.
func NewSweeper(registry ports.CodeRegistry, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Sweeper{registry: registry, interval: interval, log: log}
}

// Start launches the sweep loop. It returns immediately; the loop runs until
// ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.log.Debug().Msg("code sweeper stopped")
				return
			case <-ticker.C:
				removed, err := s.registry.Sweep(ctx)
				if err != nil {
					s.log.Warn().Err(err).Msg("code sweep failed")
					continue
				}
				if removed > 0 {
					metrics.CodesSweptTotal.Add(float64(removed))
					s.log.Debug().Int("removed", removed).Msg("expired codes swept")
				}
			}
		}
	}()
}
