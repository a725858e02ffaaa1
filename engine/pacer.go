package engine

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// Pacer approximates a target rate by sleeping whatever is left of the frame budget
// Frames that ran over budget are not made up for
type Pacer struct {
	clock    clock.Clock
	interval time.Duration
	last     time.Time
}

// NewPacer creates a pacer for interval, clk may be nil for the wall clock
func NewPacer(clk clock.Clock, interval time.Duration) *Pacer {
	if clk == nil {
		clk = clock.New()
	}
	return &Pacer{clock: clk, interval: interval}
}

// Remaining returns the sleep needed at now to complete the current budget
func (p *Pacer) Remaining(now time.Time) time.Duration {
	if p.last.IsZero() {
		return 0
	}
	if d := p.interval - now.Sub(p.last); d > 0 {
		return d
	}
	return 0
}

// Wait sleeps out the remaining budget and returns the time since the previous Wait
func (p *Pacer) Wait(ctx context.Context) (time.Duration, error) {
	if d := p.Remaining(p.clock.Now()); d > 0 {
		timer := p.clock.Timer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0, ctx.Err()
		case <-timer.C:
		}
	}

	now := p.clock.Now()
	var elapsed time.Duration
	if !p.last.IsZero() {
		elapsed = now.Sub(p.last)
	}
	p.last = now
	return elapsed, nil
}
