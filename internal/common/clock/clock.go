package clock

import (
	"context"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/robalobadob/memory-buttons/internal/common/clock Clock
type Clock interface {
	Now() time.Time
	// Sleep suspends the caller for d. It returns ctx.Err() if the context
	// is done first.
	Sleep(ctx context.Context, d time.Duration) error
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}

// Sleep waits on a timer so a cancelled context releases the caller early.
func (c *DefaultClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Instant is a Clock whose Sleep returns immediately. Used to run whole
// rounds in tests and smoke checks.
type Instant struct{}

// Now returns the current time
func (Instant) Now() time.Time { return time.Now() }

// Sleep only reports context cancellation.
func (Instant) Sleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }
