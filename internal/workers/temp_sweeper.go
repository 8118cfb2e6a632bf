package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
)

// TempSweeper periodically removes temporary files abandoned by interrupted
// atomic writes.
type TempSweeper struct {
	sweeper  store.TempSweeper
	interval time.Duration
	maxAge   time.Duration
	logger   *logger.Logger
}

func NewTempSweeper(sweeper store.TempSweeper, interval, maxAge time.Duration, logger *logger.Logger) *TempSweeper {
	return &TempSweeper{
		sweeper:  sweeper,
		interval: interval,
		maxAge:   maxAge,
		logger:   logger,
	}
}

// Run sweeps once at startup and then on every tick until ctx is done.
func (t *TempSweeper) Run(ctx context.Context) {
	if t.interval <= 0 {
		t.logger.Warn().Msg("temp sweeper disabled: non-positive interval")
		return
	}

	t.sweep(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info().Msg("temp sweeper stopped")
			return
		case <-ticker.C:
			t.sweep(ctx)
		}
	}
}

func (t *TempSweeper) sweep(ctx context.Context) {
	removed, err := t.sweeper.SweepTempFiles(ctx, t.maxAge)
	if err != nil {
		t.logger.Err(err).Msg("error sweeping temporary files")
		return
	}
	if removed > 0 {
		t.logger.Info().Int("removed", removed).Msg("stale temporary files removed")
	}
}
