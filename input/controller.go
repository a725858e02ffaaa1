package input

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/depthballs/depth"
)

// Effect is a bitmask of side effects the loop must carry out after input processing
type Effect uint8

const (
	EffectCapture Effect = 1 << iota
	EffectClearBalls
	EffectResize
	EffectMute // mute flag changed
)

// Has reports whether every bit of e is set
func (f Effect) Has(e Effect) bool {
	return f&e == e
}

// ControllerConfig sets the band defaults and shift limits
type ControllerConfig struct {
	DefaultBand depth.Band
	ShiftStep   int // applied to both bounds
	ShiftFloor  int // down-shift only while Min > ShiftFloor
	ShiftCeil   int // up-shift only while Min < ShiftCeil
	Mirror      bool
}

// Controller owns the run flag, the active band, the mirror and mask flags
// A single instance is passed by pointer to every loop phase
type Controller struct {
	cfg     ControllerConfig
	keys    *KeyTable
	band    depth.Band
	mirror  bool
	mask    bool
	muted   bool
	running bool
	logger  *zap.Logger
}

// NewController creates a running controller with the default band
func NewController(cfg ControllerConfig, keys *KeyTable, logger *zap.Logger) *Controller {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Controller{
		cfg:     cfg,
		keys:    keys,
		band:    cfg.DefaultBand,
		mirror:  cfg.Mirror,
		running: true,
		logger:  logger,
	}
}

func (c *Controller) Band() depth.Band {
	return c.band
}

func (c *Controller) Mirror() bool {
	return c.mirror
}

// Mask reports whether the background shows the binary band mask
func (c *Controller) Mask() bool {
	return c.mask
}

// Muted reports whether sound cues are silenced
func (c *Controller) Muted() bool {
	return c.muted
}

func (c *Controller) Running() bool {
	return c.running
}

// Process handles a batch of pending events in arrival order and merges their effects
func (c *Controller) Process(events []tcell.Event) Effect {
	var fx Effect
	for _, ev := range events {
		fx |= c.Handle(ev)
	}
	return fx
}

// Handle maps one event to an action and applies it
// A nil event means the screen was finalised and stops the loop
func (c *Controller) Handle(ev tcell.Event) Effect {
	switch ev := ev.(type) {
	case nil:
		return c.Apply(ActionQuit)
	case *tcell.EventKey:
		return c.Apply(c.keys.Resolve(ev))
	case *tcell.EventResize:
		return c.Apply(ActionResize)
	}
	return 0
}

// Apply performs an action on controller state
// Band shifts keep width and are guarded so the band stays within 0 < Min < Max
func (c *Controller) Apply(a Action) Effect {
	switch a {
	case ActionQuit:
		c.running = false
		c.logger.Info("quit requested")
	case ActionCapture:
		return EffectCapture
	case ActionResize:
		return EffectResize
	case ActionMirrorOn:
		c.mirror = true
	case ActionMirrorOff:
		c.mirror = false
	case ActionBandDown:
		if c.band.Min > c.cfg.ShiftFloor {
			c.setBand(c.band.Shift(-c.cfg.ShiftStep))
		}
	case ActionBandUp:
		if c.band.Min < c.cfg.ShiftCeil {
			c.setBand(c.band.Shift(c.cfg.ShiftStep))
		}
	case ActionBandReset:
		c.setBand(c.cfg.DefaultBand)
	case ActionClearBalls:
		return EffectClearBalls
	case ActionToggleMask:
		c.mask = !c.mask
	case ActionToggleMute:
		c.muted = !c.muted
		return EffectMute
	}
	return 0
}

func (c *Controller) setBand(b depth.Band) {
	if !b.Valid() {
		// Unreachable with validated config
		c.logger.Warn("band change rejected", zap.Stringer("band", b))
		return
	}
	if b != c.band {
		c.logger.Info("band changed", zap.Stringer("from", c.band), zap.Stringer("to", b))
	}
	c.band = b
}
