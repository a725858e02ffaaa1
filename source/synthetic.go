package source

import (
	"context"
	"image"
	"math"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/lixenwraith/depthballs/depth"
	"github.com/lixenwraith/depthballs/vmath"
)

// SyntheticConfig describes the procedural scene
type SyntheticConfig struct {
	Width, Height int
	Interval      time.Duration
	WallDepth     uint16 // background distance
	BlobDepth     uint16 // moving foreground distance
	BlobRadius    int
	Seed          uint64
}

// Synthetic renders a far wall with a near blob sweeping a Lissajous path
// A column strip on the left is invalid, like the occlusion band of a stereo pair
type Synthetic struct {
	cfg   SyntheticConfig
	pace  pacer
	rng   *vmath.FastRand
	frame uint64
}

// NewSynthetic creates a synthetic source, clk may be nil for the wall clock
func NewSynthetic(cfg SyntheticConfig, clk clock.Clock) *Synthetic {
	return &Synthetic{
		cfg:  cfg,
		pace: newPacer(clk, cfg.Interval),
		rng:  vmath.NewFastRand(cfg.Seed),
	}
}

// Next waits for the frame interval then renders the next frame
func (s *Synthetic) Next(ctx context.Context) (*depth.Frame, error) {
	if err := s.pace.wait(ctx); err != nil {
		return nil, err
	}
	f := s.render(s.frame)
	s.frame++
	return f, nil
}

// BlobCenter returns the blob position for frame index n
func (s *Synthetic) BlobCenter(n uint64) image.Point {
	t := float64(n) / 30.0
	w, h := float64(s.cfg.Width), float64(s.cfg.Height)
	return image.Point{
		X: int(w/2 + w/3*math.Sin(t*0.7)),
		Y: int(h/2 + h/4*math.Sin(t*1.1+math.Pi/3)),
	}
}

func (s *Synthetic) render(n uint64) *depth.Frame {
	f := depth.NewFrame(s.cfg.Width, s.cfg.Height)
	f.Fill(s.cfg.WallDepth)

	// Occlusion strip with a little jitter
	strip := s.cfg.Width / 16
	f.FillRect(image.Rect(0, 0, strip+s.rng.Intn(4), s.cfg.Height), 0)

	c := s.BlobCenter(n)
	r := s.cfg.BlobRadius
	r2 := r * r
	for y := c.Y - r; y <= c.Y+r; y++ {
		for x := c.X - r; x <= c.X+r; x++ {
			dx, dy := x-c.X, y-c.Y
			if dx*dx+dy*dy > r2 || x < strip || x >= s.cfg.Width || y < 0 || y >= s.cfg.Height {
				continue
			}
			f.Set(x, y, s.cfg.BlobDepth)
		}
	}
	return f
}

func (s *Synthetic) Close() error {
	return nil
}
