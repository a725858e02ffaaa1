package source

import (
	"context"

	"github.com/lixenwraith/depthballs/depth"
)

// Filtered applies the sensor range threshold to every frame of an inner source
type Filtered struct {
	src    FrameSource
	lo, hi uint16
}

// NewFiltered wraps src, samples outside [lo, hi] become invalid
func NewFiltered(src FrameSource, lo, hi uint16) *Filtered {
	return &Filtered{src: src, lo: lo, hi: hi}
}

func (f *Filtered) Next(ctx context.Context) (*depth.Frame, error) {
	frame, err := f.src.Next(ctx)
	if err != nil {
		return nil, err
	}
	frame.Threshold(f.lo, f.hi)
	return frame, nil
}

func (f *Filtered) Close() error {
	return f.src.Close()
}
