// Package engine runs the frame loop: step, acquire, map, handle input, rebuild, draw, present, pace
package engine

import (
	"context"
	"image"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/depthballs/config"
	"github.com/lixenwraith/depthballs/depth"
	"github.com/lixenwraith/depthballs/input"
	"github.com/lixenwraith/depthballs/parameter"
	"github.com/lixenwraith/depthballs/physics"
	"github.com/lixenwraith/depthballs/render"
	"github.com/lixenwraith/depthballs/source"
	"github.com/lixenwraith/depthballs/status"
	"github.com/lixenwraith/depthballs/vmath"
)

// Presenter shows a finished surface with a HUD line
type Presenter interface {
	Present(img image.Image, hud string)
	Resize()
}

// EventSource yields pending input events without blocking
type EventSource interface {
	Drain() []tcell.Event
}

// Cues plays scene sounds; every method must be safe without a device
type Cues interface {
	PlaySpawn()
	PlayCapture()
	SetMuted(muted bool)
}

type silent struct{}

func (silent) PlaySpawn()    {}
func (silent) PlayCapture()  {}
func (silent) SetMuted(bool) {}

// Options carries the collaborators a Game does not own
type Options struct {
	Source    source.FrameSource
	Events    EventSource
	Presenter Presenter
	Cues      Cues // optional
	Clock     clock.Clock
	Registry  *status.Registry // optional
	Logger    *zap.Logger
}

// Game owns all run state; it is driven from a single goroutine
type Game struct {
	cfg        config.Config
	world      *physics.World
	obstacles  *physics.ObstacleLayer
	balls      *physics.BallLayer
	mapper     depth.Mapper
	controller *input.Controller
	surface    *render.Surface

	src       source.FrameSource
	events    EventSource
	presenter Presenter
	cues      Cues
	pacer     *Pacer
	fps       *FPSCounter
	registry  *status.Registry
	logger    *zap.Logger

	// cached metric pointers
	frames, ballCount, obstacleCount, spawned, culled, captures *atomic.Int64
	steps, shapes                                               *atomic.Int64
	fpsGauge                                                    *status.Gauge
	bandLabel, mirrorLabel, bgLabel                             *status.Label
}

// NewGame builds the world and every layer from cfg
func NewGame(cfg config.Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if opts.Source == nil || opts.Events == nil || opts.Presenter == nil {
		return nil, errors.New("game needs a source, an event source and a presenter")
	}
	keys, err := cfg.KeyTable()
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Cues == nil {
		opts.Cues = silent{}
	}
	if opts.Registry == nil {
		opts.Registry = status.NewRegistry()
	}

	seed := cfg.Ball.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	world := physics.NewWorld(cfg.WorldConfig())
	reg := opts.Registry
	g := &Game{
		cfg:        cfg,
		world:      world,
		obstacles:  physics.NewObstacleLayer(world, cfg.ObstacleConfig(), opts.Logger.Named("obstacles")),
		balls:      physics.NewBallLayer(world, cfg.BallConfig(), vmath.NewFastRand(seed), opts.Logger.Named("balls")),
		mapper:     depth.NewMapper(cfg.Obstacle.Granularity),
		controller: input.NewController(cfg.ControllerConfig(), keys, opts.Logger.Named("input")),
		surface:    render.NewSurface(cfg.World.Width, cfg.World.Height),
		src:        opts.Source,
		events:     opts.Events,
		presenter:  opts.Presenter,
		cues:       opts.Cues,
		pacer:      NewPacer(opts.Clock, cfg.FrameInterval()),
		fps:        NewFPSCounter(parameter.FPSWindow),
		registry:   reg,
		logger:     opts.Logger,

		frames:        reg.Ints.Get(status.KeyFrames),
		ballCount:     reg.Ints.Get(status.KeyBalls),
		obstacleCount: reg.Ints.Get(status.KeyObstacles),
		spawned:       reg.Ints.Get(status.KeySpawned),
		culled:        reg.Ints.Get(status.KeyCulled),
		captures:      reg.Ints.Get(status.KeyCaptures),
		steps:         reg.Ints.Get(status.KeySteps),
		shapes:        reg.Ints.Get(status.KeyShapes),
		fpsGauge:      reg.Floats.Get(status.KeyFPS),
		bandLabel:     reg.Labels.Get(status.KeyBand),
		mirrorLabel:   reg.Labels.Get(status.KeyMirror),
		bgLabel:       reg.Labels.Get(status.KeyBackground),
	}
	return g, nil
}

func (g *Game) Controller() *input.Controller {
	return g.controller
}

func (g *Game) Balls() *physics.BallLayer {
	return g.balls
}

func (g *Game) Obstacles() *physics.ObstacleLayer {
	return g.obstacles
}

func (g *Game) Registry() *status.Registry {
	return g.registry
}

// Run iterates until the controller stops, the context ends or an iteration fails
// The run flag is checked only at the top of each iteration
func (g *Game) Run(ctx context.Context) error {
	g.logger.Info("loop started", zap.Stringer("band", g.controller.Band()))
	for g.controller.Running() {
		if err := ctx.Err(); err != nil {
			g.logger.Info("loop cancelled")
			return nil
		}
		if err := g.Iterate(ctx); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				g.logger.Info("loop cancelled")
				return nil
			}
			return err
		}
	}
	g.logger.Info("loop stopped", g.registry.Fields()...)
	return nil
}

// Iterate runs one full loop iteration
func (g *Game) Iterate(ctx context.Context) error {
	g.world.Step()

	frame, err := g.src.Next(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch depth frame")
	}
	if g.controller.Mirror() {
		frame = frame.Mirror()
	}
	band := g.controller.Band()
	cells := g.mapper.Cells(frame, band)
	background := g.background(frame, band)

	effects := g.controller.Process(g.events.Drain())
	if effects.Has(input.EffectCapture) {
		g.capture()
	}
	if effects.Has(input.EffectClearBalls) {
		g.balls.Reset()
	}
	if effects.Has(input.EffectResize) {
		g.presenter.Resize()
	}
	if effects.Has(input.EffectMute) {
		g.cues.SetMuted(g.controller.Muted())
	}

	g.obstacles.Rebuild(cells)
	if g.balls.Tick() {
		g.spawned.Add(1)
		g.cues.PlaySpawn()
	}
	if n := g.balls.Cull(); n > 0 {
		g.culled.Add(int64(n))
	}

	g.surface.Clear()
	g.surface.DrawBackground(background)
	g.surface.DrawObstacles(g.obstacles.Obstacles())
	g.surface.DrawBalls(g.balls.Balls())

	g.publish()
	g.presenter.Present(g.surface.Image(), g.registry.HUD())

	elapsed, err := g.pacer.Wait(ctx)
	if err != nil {
		return errors.Wrap(err, "pace frame")
	}
	g.fps.Record(elapsed)
	return nil
}

func (g *Game) background(frame *depth.Frame, band depth.Band) image.Image {
	if g.controller.Mask() {
		return depth.Mask(frame, band)
	}
	return depth.Visualize(frame, band)
}

// capture saves the surface as last presented; failure is logged, the run goes on
func (g *Game) capture() {
	path := g.cfg.Screenshot
	if err := g.surface.Save(path); err != nil {
		g.logger.Warn("capture failed", zap.Error(err))
		return
	}
	g.captures.Add(1)
	g.cues.PlayCapture()
	g.logger.Info("surface captured", zap.String("path", path))
}

func (g *Game) publish() {
	g.frames.Add(1)
	g.ballCount.Store(int64(g.balls.Len()))
	g.obstacleCount.Store(int64(g.obstacles.Len()))
	g.steps.Store(int64(g.world.Ticks()))
	g.shapes.Store(int64(g.world.ShapeCount()))
	g.fpsGauge.Set(g.fps.FPS())
	g.bandLabel.Set(g.controller.Band().String())
	g.mirrorLabel.Set(onOff(g.controller.Mirror()))
	if g.controller.Mask() {
		g.bgLabel.Set("mask")
	} else {
		g.bgLabel.Set("depth")
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
