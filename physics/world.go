// Package physics owns the rigid-body world and the two body sets that live in it:
// per-frame static obstacles and long-lived dynamic balls
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"
)

// ErrInvariant marks a lifecycle bug: removing something the world does not hold
var ErrInvariant = errors.New("physics invariant violated")

// WorldConfig holds the simulation constants fixed for one run
type WorldConfig struct {
	GravityX, GravityY float64
	TimeStep           float64 // seconds per step
	StepsPerFrame      int
}

// World wraps a Chipmunk space advanced by a fixed step
// Owned by the loop goroutine, no locking
type World struct {
	space *cp.Space
	cfg   WorldConfig
	ticks uint64
}

// NewWorld creates an empty space with gravity applied
func NewWorld(cfg WorldConfig) *World {
	if cfg.StepsPerFrame < 1 {
		cfg.StepsPerFrame = 1
	}
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: cfg.GravityX, Y: cfg.GravityY})
	return &World{space: space, cfg: cfg}
}

// Step advances the space StepsPerFrame times by the fixed time step
func (w *World) Step() {
	for i := 0; i < w.cfg.StepsPerFrame; i++ {
		w.space.Step(w.cfg.TimeStep)
		w.ticks++
	}
}

// Ticks returns the number of fixed steps taken so far
func (w *World) Ticks() uint64 {
	return w.ticks
}

// ShapeCount returns the number of shapes currently in the space
func (w *World) ShapeCount() int {
	n := 0
	w.space.EachShape(func(*cp.Shape) { n++ })
	return n
}

// addCircle inserts body and a circle shape centered on it
func (w *World) addCircle(body *cp.Body, radius float64, m Material) *cp.Shape {
	w.space.AddBody(body)
	shape := w.space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
	shape.SetElasticity(m.Elasticity)
	shape.SetFriction(m.Friction)
	return shape
}

// removeCircle takes shape and its body out of the space together
// Panics when either is absent, which can only happen through a lifecycle bug
func (w *World) removeCircle(shape *cp.Shape) {
	if shape == nil || !w.space.ContainsShape(shape) {
		panic(errors.Wrap(ErrInvariant, "remove shape not in space"))
	}
	body := shape.Body()
	if !w.space.ContainsBody(body) {
		panic(errors.Wrap(ErrInvariant, "remove body not in space"))
	}
	w.space.RemoveShape(shape)
	w.space.RemoveBody(body)
}
