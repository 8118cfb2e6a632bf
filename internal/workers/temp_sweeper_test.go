package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestTempSweeper_Run_SweepsAtStartupAndOnTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	sweeper := mock.NewMockTempSweeper(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	sweeper.EXPECT().
		SweepTempFiles(gomock.Any(), time.Hour).
		DoAndReturn(func(context.Context, time.Duration) (int, error) {
			calls++
			if calls == 2 {
				cancel()
			}
			return 1, nil
		}).
		MinTimes(2)

	w := NewTempSweeper(sweeper, time.Millisecond, time.Hour, logger.Nop())

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestTempSweeper_Run_ErrorDoesNotStopWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	sweeper := mock.NewMockTempSweeper(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	sweeper.EXPECT().
		SweepTempFiles(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, time.Duration) (int, error) {
			calls++
			if calls == 3 {
				cancel()
			}
			return 0, errors.New("disk gone")
		}).
		MinTimes(3)

	w := NewTempSweeper(sweeper, time.Millisecond, time.Minute, logger.Nop())
	w.Run(ctx)

	assert.GreaterOrEqual(t, calls, 3)
}

func TestTempSweeper_Run_NonPositiveIntervalDisables(t *testing.T) {
	ctrl := gomock.NewController(t)
	sweeper := mock.NewMockTempSweeper(ctrl)

	w := NewTempSweeper(sweeper, 0, time.Minute, logger.Nop())

	// no SweepTempFiles call is expected
	w.Run(context.Background())
}
