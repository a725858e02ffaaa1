package parameter

import "time"

// Display surface
const (
	// SurfaceWidth is the world and drawing surface width in pixels
	SurfaceWidth = 640

	// SurfaceHeight is the world and drawing surface height in pixels
	SurfaceHeight = 400

	// ScreenshotFile is written to the working directory on capture
	ScreenshotFile = "bouncing_balls.png"
)

// Loop timing
const (
	// TimeStep is the fixed physics step in seconds
	TimeStep = 1.0 / 60.0

	// StepsPerFrame is the number of physics steps per loop iteration
	StepsPerFrame = 1

	// TargetFPS is the presentation rate the pacer approximates
	TargetFPS = 50

	// FPSWindow is the number of frame intervals averaged for the HUD
	FPSWindow = 10
)

// Gravity in surface pixels per second squared, y grows downward
const (
	GravityX = 0.0
	GravityY = 900.0
)

// Obstacles
const (
	// ObstacleGranularity is the edge length of one downsampling cell in pixels
	ObstacleGranularity = 40

	// ObstacleOffset shifts obstacle centers inside their cell
	ObstacleOffset = 0.0

	ObstacleElasticity = 0.95
	ObstacleFriction   = 0.9
)

// Balls
const (
	// SpawnCadence is the iteration count between two spawns
	SpawnCadence = 10

	BallMass        = 10.0
	BallRadiusMin   = 15
	BallRadiusMax   = 40
	BallSpawnXMin   = 10
	BallSpawnXMax   = 630
	BallSpawnYMin   = 0
	BallSpawnYMax   = 20
	BallElasticity  = 0.95
	BallFriction    = 0.9
	BallFallCeiling = 500.0 // balls with y beyond this are culled
)

// Active band in millimetres
const (
	BandDefaultMin = 500
	BandDefaultMax = 1000

	// BandShiftStep is applied to both bounds on shift actions
	BandShiftStep = 250

	// BandShiftFloor: down-shift allowed only while Min is strictly above it
	BandShiftFloor = 250

	// BandShiftCeiling: up-shift allowed only while Min is strictly below it
	BandShiftCeiling = 2000
)

// Sensor post-processing, samples outside the range are treated as invalid
const (
	SensorRangeMin = 200
	SensorRangeMax = 15000
)

// Frame sources
const (
	// SourceFrameInterval paces synthetic and replayed frames (sensor runs near 30 Hz)
	SourceFrameInterval = 33 * time.Millisecond

	// SyntheticWallDepth is the background distance of the synthetic scene
	SyntheticWallDepth = 2500

	// SyntheticBlobDepth is the distance of the moving foreground blob
	SyntheticBlobDepth = 750

	// SyntheticBlobRadius is the blob radius in pixels
	SyntheticBlobRadius = 70
)

// Input
const (
	// EventQueueSize is the buffered capacity between the poller and the loop
	EventQueueSize = 256
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "depthballs.log"
)
