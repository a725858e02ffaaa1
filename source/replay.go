package source

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/depthballs/depth"
)

// ReplayConfig selects a directory of recorded frames
type ReplayConfig struct {
	Dir      string
	Loop     bool
	Interval time.Duration
}

// Replay plays back 16-bit grayscale PNG frames from a directory in lexical order
type Replay struct {
	cfg    ReplayConfig
	paths  []string
	idx    int
	pace   pacer
	logger *zap.Logger
}

// NewReplay lists the frames of cfg.Dir, failing when there are none
func NewReplay(cfg ReplayConfig, clk clock.Clock, logger *zap.Logger) (*Replay, error) {
	paths, err := filepath.Glob(filepath.Join(cfg.Dir, "*.png"))
	if err != nil {
		return nil, errors.Wrapf(err, "list frames in %s", cfg.Dir)
	}
	if len(paths) == 0 {
		return nil, errors.Errorf("no png frames in %s", cfg.Dir)
	}
	logger.Info("replay opened", zap.String("dir", cfg.Dir), zap.Int("frames", len(paths)), zap.Bool("loop", cfg.Loop))
	return &Replay{
		cfg:    cfg,
		paths:  paths,
		pace:   newPacer(clk, cfg.Interval),
		logger: logger,
	}, nil
}

// Len returns the number of frames in one pass
func (r *Replay) Len() int {
	return len(r.paths)
}

// Next decodes the next frame, wrapping around when looping
func (r *Replay) Next(ctx context.Context) (*depth.Frame, error) {
	if r.idx >= len(r.paths) {
		if !r.cfg.Loop {
			return nil, ErrExhausted
		}
		r.idx = 0
	}
	if err := r.pace.wait(ctx); err != nil {
		return nil, err
	}
	path := r.paths[r.idx]
	r.idx++
	return ReadFrame(path)
}

func (r *Replay) Close() error {
	return nil
}

// ReadFrame decodes one 16-bit grayscale PNG depth frame, gray values are millimetres
func ReadFrame(path string) (*depth.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open frame")
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode frame %s", path)
	}
	frame, err := depth.FrameFromImage(img)
	return frame, errors.Wrapf(err, "frame %s", path)
}

// WriteFrame encodes a frame as a 16-bit grayscale PNG
func WriteFrame(path string, frame *depth.Frame) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create frame")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close frame")
		}
	}()
	if err := png.Encode(f, frame.Image()); err != nil {
		return errors.Wrapf(err, "encode frame %s", path)
	}
	return nil
}
