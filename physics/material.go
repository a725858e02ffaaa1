package physics

import (
	"image/color"

	"github.com/lixenwraith/depthballs/parameter"
)

// Material defines surface response of a collider
type Material struct {
	Elasticity float64
	Friction   float64
}

// Materials - pre-defined, overridden per run by configuration

// ObstacleMaterial is applied to every depth-derived obstacle
var ObstacleMaterial = Material{
	Elasticity: parameter.ObstacleElasticity,
	Friction:   parameter.ObstacleFriction,
}

// BallMaterial is applied to every spawned ball
var BallMaterial = Material{
	Elasticity: parameter.BallElasticity,
	Friction:   parameter.BallFriction,
}

// ObstacleColor is a faint gray so the depth background stays visible
var ObstacleColor = color.NRGBA{R: 128, G: 128, B: 128, A: 20}
