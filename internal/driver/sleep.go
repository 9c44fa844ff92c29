package driver

import (
	"context"
	"time"
)

// Sleeper pauses between ticks.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper waits on a real timer and wakes early on cancellation.
type TimerSleeper struct{}

// Sleep blocks for d or until ctx is done.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoSleep returns immediately. Used for batch simulation and tests.
type NoSleep struct{}

// Sleep only reports cancellation.
func (NoSleep) Sleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
