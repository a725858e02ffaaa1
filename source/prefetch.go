package source

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/depthballs/depth"
)

type fetched struct {
	frame *depth.Frame
	err   error
}

// Prefetch moves acquisition of an inner source onto its own goroutine
// The hand-off channel is unbuffered, so at most one frame is held ahead and order is preserved
type Prefetch struct {
	src    FrameSource
	ch     chan fetched
	last   error // terminal producer error, visible once ch is closed
	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewPrefetch starts fetching from src until ctx ends, src fails, or Close is called
func NewPrefetch(ctx context.Context, src FrameSource) *Prefetch {
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	p := &Prefetch{
		src:    src,
		ch:     make(chan fetched),
		cancel: cancel,
		group:  g,
	}
	g.Go(func() error {
		defer close(p.ch)
		for {
			frame, err := src.Next(gctx)
			if err != nil {
				p.last = err
			}
			select {
			case p.ch <- fetched{frame: frame, err: err}:
			case <-gctx.Done():
				if p.last == nil {
					p.last = gctx.Err()
				}
				return gctx.Err()
			}
			if err != nil {
				return err
			}
		}
	})
	return p
}

// Next returns the oldest fetched frame, blocking until one arrives
func (p *Prefetch) Next(ctx context.Context) (*depth.Frame, error) {
	select {
	case r, ok := <-p.ch:
		if !ok {
			return nil, p.last
		}
		return r.frame, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the producer, waits for it, then closes the inner source
func (p *Prefetch) Close() error {
	p.cancel()
	err := p.group.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrExhausted) {
		err = nil
	}
	return multierr.Append(err, p.src.Close())
}
