package physics

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/lixenwraith/depthballs/vmath"
)

// Ball is a dynamic circle spawned at the top of the world
type Ball struct {
	Radius float64
	Color  color.RGBA

	body  *cp.Body
	shape *cp.Shape
}

// Position returns the current center in world coordinates
func (b *Ball) Position() cp.Vector {
	return b.body.Position()
}

// Angle returns the body rotation in radians
func (b *Ball) Angle() float64 {
	return b.body.Angle()
}

// BallConfig controls spawning and culling
type BallConfig struct {
	Cadence              int // iterations between spawns
	Mass                 float64
	RadiusMin, RadiusMax int // inclusive
	SpawnXMin, SpawnXMax int // inclusive
	SpawnYMin, SpawnYMax int // inclusive
	FallCeiling          float64
	Material             Material
}

// BallLayer tracks every live ball; a ball leaves only through Cull or Reset
type BallLayer struct {
	world     *World
	cfg       BallConfig
	rng       *vmath.FastRand
	balls     []*Ball
	countdown int
	logger    *zap.Logger
}

// NewBallLayer creates an empty layer with the countdown armed at the cadence
func NewBallLayer(world *World, cfg BallConfig, rng *vmath.FastRand, logger *zap.Logger) *BallLayer {
	if cfg.Cadence < 1 {
		cfg.Cadence = 1
	}
	return &BallLayer{
		world:     world,
		cfg:       cfg,
		rng:       rng,
		countdown: cfg.Cadence,
		logger:    logger,
	}
}

// Spawn creates one ball with randomized radius, start position and color
func (l *BallLayer) Spawn() *Ball {
	radius := float64(l.rng.IntRange(l.cfg.RadiusMin, l.cfg.RadiusMax))
	body := cp.NewBody(l.cfg.Mass, cp.MomentForCircle(l.cfg.Mass, 0, radius, cp.Vector{}))
	body.SetPosition(cp.Vector{
		X: float64(l.rng.IntRange(l.cfg.SpawnXMin, l.cfg.SpawnXMax)),
		Y: float64(l.rng.IntRange(l.cfg.SpawnYMin, l.cfg.SpawnYMax)),
	})

	b := &Ball{
		Radius: radius,
		Color:  l.randomColor(),
		body:   body,
	}
	b.shape = l.world.addCircle(body, radius, l.cfg.Material)
	l.balls = append(l.balls, b)
	return b
}

func (l *BallLayer) randomColor() color.RGBA {
	c := colorful.Hsv(l.rng.Float64()*360, 0.5+0.5*l.rng.Float64(), 0.6+0.4*l.rng.Float64())
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Tick decrements the spawn countdown once; at zero a ball spawns and the countdown re-arms
// Returns true when a ball was spawned
func (l *BallLayer) Tick() bool {
	l.countdown--
	if l.countdown > 0 {
		return false
	}
	l.Spawn()
	l.countdown = l.cfg.Cadence
	return true
}

// Cull removes every ball below the fall ceiling from both the world and the set
// Returns the number removed
func (l *BallLayer) Cull() int {
	fallen := lo.Filter(l.balls, func(b *Ball, _ int) bool {
		return b.Position().Y > l.cfg.FallCeiling
	})
	if len(fallen) == 0 {
		return 0
	}
	for _, b := range fallen {
		l.world.removeCircle(b.shape)
	}
	l.balls = lo.Without(l.balls, fallen...)
	l.logger.Debug("balls culled", zap.Int("count", len(fallen)), zap.Int("remaining", len(l.balls)))
	return len(fallen)
}

// Reset removes every ball, returns the number removed
func (l *BallLayer) Reset() int {
	n := len(l.balls)
	for _, b := range l.balls {
		l.world.removeCircle(b.shape)
	}
	l.balls = nil
	if n > 0 {
		l.logger.Info("balls cleared", zap.Int("count", n))
	}
	return n
}

// Len returns the live ball count
func (l *BallLayer) Len() int {
	return len(l.balls)
}

// Balls returns the live balls in spawn order, the slice is a copy
func (l *BallLayer) Balls() []*Ball {
	return append([]*Ball(nil), l.balls...)
}
