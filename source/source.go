// Package source provides depth frame producers behind one blocking interface
package source

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/lixenwraith/depthballs/depth"
)

// ErrExhausted is returned by a finite source after its last frame
var ErrExhausted = errors.New("frame source exhausted")

// FrameSource delivers depth frames in capture order
// Next blocks until a frame is available; any error is fatal to the consumer
type FrameSource interface {
	Next(ctx context.Context) (*depth.Frame, error)
	Close() error
}

// pacer spaces frames at a fixed interval, emulating sensor cadence
// The first frame is immediate; a consumer slower than the interval is never delayed further
type pacer struct {
	clock    clock.Clock
	interval time.Duration
	next     time.Time
}

func newPacer(clk clock.Clock, interval time.Duration) pacer {
	if clk == nil {
		clk = clock.New()
	}
	return pacer{clock: clk, interval: interval}
}

func (p *pacer) wait(ctx context.Context) error {
	now := p.clock.Now()
	if p.interval <= 0 {
		return ctx.Err()
	}
	if !p.next.IsZero() && now.Before(p.next) {
		timer := p.clock.Timer(p.next.Sub(now))
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
		now = p.next
	}
	p.next = now.Add(p.interval)
	return ctx.Err()
}
