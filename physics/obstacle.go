package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/lixenwraith/depthballs/depth"
)

// Obstacle is a static circle generated from one qualifying grid cell
// Valid only until the next Rebuild
type Obstacle struct {
	Cell     depth.Cell
	Position cp.Vector
	Radius   float64

	shape *cp.Shape
}

// ObstacleConfig places obstacles on the grid
type ObstacleConfig struct {
	Granularity int     // cell edge in surface pixels
	Offset      float64 // shift of the center inside the cell
	Material    Material
}

// ObstacleLayer holds the obstacle set of the current frame
type ObstacleLayer struct {
	world  *World
	cfg    ObstacleConfig
	radius float64
	items  []*Obstacle
	logger *zap.Logger
}

// NewObstacleLayer creates an empty layer bound to world
func NewObstacleLayer(world *World, cfg ObstacleConfig, logger *zap.Logger) *ObstacleLayer {
	return &ObstacleLayer{
		world:  world,
		cfg:    cfg,
		radius: float64(cfg.Granularity/2 - 1),
		logger: logger,
	}
}

// Position maps a grid cell to world coordinates
func (l *ObstacleLayer) Position(c depth.Cell) cp.Vector {
	f := float64(l.cfg.Granularity)
	return cp.Vector{
		X: float64(c.Col)*f + l.cfg.Offset,
		Y: float64(c.Row)*f + l.cfg.Offset,
	}
}

// Rebuild removes every obstacle of the previous frame, then adds one per distinct cell
// Returns the new obstacle count
func (l *ObstacleLayer) Rebuild(cells []depth.Cell) int {
	prev := len(l.items)
	l.Clear()

	cells = lo.Uniq(cells)
	l.items = make([]*Obstacle, 0, len(cells))
	for _, c := range cells {
		pos := l.Position(c)
		body := cp.NewStaticBody()
		body.SetPosition(pos)
		shape := l.world.addCircle(body, l.radius, l.cfg.Material)
		l.items = append(l.items, &Obstacle{
			Cell:     c,
			Position: pos,
			Radius:   l.radius,
			shape:    shape,
		})
	}
	if len(l.items) != prev {
		l.logger.Debug("obstacles rebuilt", zap.Int("previous", prev), zap.Int("count", len(l.items)))
	}
	return len(l.items)
}

// Clear removes every tracked obstacle from the world
func (l *ObstacleLayer) Clear() {
	for _, o := range l.items {
		l.world.removeCircle(o.shape)
		o.shape = nil
	}
	l.items = nil
}

// Len returns the current obstacle count
func (l *ObstacleLayer) Len() int {
	return len(l.items)
}

// Obstacles returns a snapshot of the current set for rendering
func (l *ObstacleLayer) Obstacles() []Obstacle {
	return lo.Map(l.items, func(o *Obstacle, _ int) Obstacle {
		return Obstacle{Cell: o.Cell, Position: o.Position, Radius: o.Radius}
	})
}
