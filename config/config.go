// Package config holds the run configuration, loaded from YAML over compiled defaults
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/depthballs/depth"
	"github.com/lixenwraith/depthballs/input"
	"github.com/lixenwraith/depthballs/parameter"
	"github.com/lixenwraith/depthballs/physics"
	"github.com/lixenwraith/depthballs/source"
)

// Source kinds
const (
	SourceSynthetic = "synthetic"
	SourceReplay    = "replay"
)

type WorldSection struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	GravityX      float64 `yaml:"gravity_x"`
	GravityY      float64 `yaml:"gravity_y"`
	TimeStep      float64 `yaml:"time_step"`
	StepsPerFrame int     `yaml:"steps_per_frame"`
	TargetFPS     int     `yaml:"target_fps"`
}

type ObstacleSection struct {
	Granularity int     `yaml:"granularity"`
	Offset      float64 `yaml:"offset"`
	Elasticity  float64 `yaml:"elasticity"`
	Friction    float64 `yaml:"friction"`
}

type BallSection struct {
	Cadence     int     `yaml:"cadence"`
	Mass        float64 `yaml:"mass"`
	RadiusMin   int     `yaml:"radius_min"`
	RadiusMax   int     `yaml:"radius_max"`
	SpawnXMin   int     `yaml:"spawn_x_min"`
	SpawnXMax   int     `yaml:"spawn_x_max"`
	SpawnYMin   int     `yaml:"spawn_y_min"`
	SpawnYMax   int     `yaml:"spawn_y_max"`
	FallCeiling float64 `yaml:"fall_ceiling"`
	Elasticity  float64 `yaml:"elasticity"`
	Friction    float64 `yaml:"friction"`
	Seed        uint64  `yaml:"seed"`
}

type BandSection struct {
	Default    depth.Band `yaml:"default"`
	ShiftStep  int        `yaml:"shift_step"`
	ShiftFloor int        `yaml:"shift_floor"`
	ShiftCeil  int        `yaml:"shift_ceiling"`
	Mirror     bool       `yaml:"mirror"`
}

type SourceSection struct {
	Kind       string        `yaml:"kind"`
	Interval   time.Duration `yaml:"interval"`
	RangeMin   uint16        `yaml:"range_min"`
	RangeMax   uint16        `yaml:"range_max"`
	ReplayDir  string        `yaml:"replay_dir"`
	Loop       bool          `yaml:"loop"`
	Prefetch   bool          `yaml:"prefetch"`
	WallDepth  uint16        `yaml:"wall_depth"`
	BlobDepth  uint16        `yaml:"blob_depth"`
	BlobRadius int           `yaml:"blob_radius"`
	Seed       uint64        `yaml:"seed"`
}

// Config is the full run configuration
type Config struct {
	World      WorldSection      `yaml:"world"`
	Obstacle   ObstacleSection   `yaml:"obstacle"`
	Ball       BallSection       `yaml:"ball"`
	Band       BandSection       `yaml:"band"`
	Source     SourceSection     `yaml:"source"`
	Keymap     map[string]string `yaml:"keymap"`
	Screenshot string            `yaml:"screenshot"`
	Audio      bool              `yaml:"audio"`
	Debug      bool              `yaml:"debug"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		World: WorldSection{
			Width:         parameter.SurfaceWidth,
			Height:        parameter.SurfaceHeight,
			GravityX:      parameter.GravityX,
			GravityY:      parameter.GravityY,
			TimeStep:      parameter.TimeStep,
			StepsPerFrame: parameter.StepsPerFrame,
			TargetFPS:     parameter.TargetFPS,
		},
		Obstacle: ObstacleSection{
			Granularity: parameter.ObstacleGranularity,
			Offset:      parameter.ObstacleOffset,
			Elasticity:  parameter.ObstacleElasticity,
			Friction:    parameter.ObstacleFriction,
		},
		Ball: BallSection{
			Cadence:     parameter.SpawnCadence,
			Mass:        parameter.BallMass,
			RadiusMin:   parameter.BallRadiusMin,
			RadiusMax:   parameter.BallRadiusMax,
			SpawnXMin:   parameter.BallSpawnXMin,
			SpawnXMax:   parameter.BallSpawnXMax,
			SpawnYMin:   parameter.BallSpawnYMin,
			SpawnYMax:   parameter.BallSpawnYMax,
			FallCeiling: parameter.BallFallCeiling,
			Elasticity:  parameter.BallElasticity,
			Friction:    parameter.BallFriction,
		},
		Band: BandSection{
			Default:    depth.Band{Min: parameter.BandDefaultMin, Max: parameter.BandDefaultMax},
			ShiftStep:  parameter.BandShiftStep,
			ShiftFloor: parameter.BandShiftFloor,
			ShiftCeil:  parameter.BandShiftCeiling,
		},
		Source: SourceSection{
			Kind:       SourceSynthetic,
			Interval:   parameter.SourceFrameInterval,
			RangeMin:   parameter.SensorRangeMin,
			RangeMax:   parameter.SensorRangeMax,
			WallDepth:  parameter.SyntheticWallDepth,
			BlobDepth:  parameter.SyntheticBlobDepth,
			BlobRadius: parameter.SyntheticBlobRadius,
		},
		Screenshot: parameter.ScreenshotFile,
		Audio:      true,
	}
}

// Load reads path over the defaults; an empty path yields the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Validate reports every inconsistent setting at once
func (c Config) Validate() error {
	var err error
	check := func(ok bool, msg string, args ...any) {
		if !ok {
			err = multierr.Append(err, errors.Errorf(msg, args...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world size %dx%d must be positive", c.World.Width, c.World.Height)
	check(c.World.TimeStep > 0, "time_step %v must be positive", c.World.TimeStep)
	check(c.World.StepsPerFrame >= 1, "steps_per_frame %d must be at least 1", c.World.StepsPerFrame)
	check(c.World.TargetFPS > 0, "target_fps %d must be positive", c.World.TargetFPS)

	check(c.Obstacle.Granularity >= 2, "obstacle granularity %d must be at least 2", c.Obstacle.Granularity)

	check(c.Ball.Cadence >= 1, "ball cadence %d must be at least 1", c.Ball.Cadence)
	check(c.Ball.Mass > 0, "ball mass %v must be positive", c.Ball.Mass)
	check(c.Ball.RadiusMin > 0 && c.Ball.RadiusMin <= c.Ball.RadiusMax,
		"ball radius range %d..%d invalid", c.Ball.RadiusMin, c.Ball.RadiusMax)
	check(c.Ball.SpawnXMin <= c.Ball.SpawnXMax, "spawn x range %d..%d invalid", c.Ball.SpawnXMin, c.Ball.SpawnXMax)
	check(c.Ball.SpawnYMin <= c.Ball.SpawnYMax, "spawn y range %d..%d invalid", c.Ball.SpawnYMin, c.Ball.SpawnYMax)

	check(c.Band.Default.Valid(), "default band %s invalid", c.Band.Default)
	check(c.Band.ShiftStep > 0, "band shift_step %d must be positive", c.Band.ShiftStep)
	check(c.Band.ShiftFloor >= c.Band.ShiftStep,
		"band shift_floor %d below shift_step %d would allow a non-positive min", c.Band.ShiftFloor, c.Band.ShiftStep)
	check(c.Band.ShiftCeil > c.Band.ShiftFloor, "band shift_ceiling %d must exceed shift_floor %d", c.Band.ShiftCeil, c.Band.ShiftFloor)

	check(c.Source.Kind == SourceSynthetic || c.Source.Kind == SourceReplay, "unknown source kind %q", c.Source.Kind)
	check(c.Source.Kind != SourceReplay || c.Source.ReplayDir != "", "replay source needs replay_dir")
	check(c.Source.Interval >= 0, "source interval %v must not be negative", c.Source.Interval)
	check(c.Source.RangeMin < c.Source.RangeMax, "sensor range %d..%d invalid", c.Source.RangeMin, c.Source.RangeMax)

	check(c.Screenshot != "", "screenshot path must not be empty")

	if len(c.Keymap) > 0 {
		if kerr := input.DefaultKeyTable().Apply(c.Keymap); kerr != nil {
			err = multierr.Append(err, kerr)
		}
	}
	return err
}

// FrameInterval is the loop period derived from the target rate
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.World.TargetFPS)
}

func (c Config) WorldConfig() physics.WorldConfig {
	return physics.WorldConfig{
		GravityX:      c.World.GravityX,
		GravityY:      c.World.GravityY,
		TimeStep:      c.World.TimeStep,
		StepsPerFrame: c.World.StepsPerFrame,
	}
}

func (c Config) ObstacleConfig() physics.ObstacleConfig {
	return physics.ObstacleConfig{
		Granularity: c.Obstacle.Granularity,
		Offset:      c.Obstacle.Offset,
		Material:    physics.Material{Elasticity: c.Obstacle.Elasticity, Friction: c.Obstacle.Friction},
	}
}

func (c Config) BallConfig() physics.BallConfig {
	return physics.BallConfig{
		Cadence:     c.Ball.Cadence,
		Mass:        c.Ball.Mass,
		RadiusMin:   c.Ball.RadiusMin,
		RadiusMax:   c.Ball.RadiusMax,
		SpawnXMin:   c.Ball.SpawnXMin,
		SpawnXMax:   c.Ball.SpawnXMax,
		SpawnYMin:   c.Ball.SpawnYMin,
		SpawnYMax:   c.Ball.SpawnYMax,
		FallCeiling: c.Ball.FallCeiling,
		Material:    physics.Material{Elasticity: c.Ball.Elasticity, Friction: c.Ball.Friction},
	}
}

func (c Config) ControllerConfig() input.ControllerConfig {
	return input.ControllerConfig{
		DefaultBand: c.Band.Default,
		ShiftStep:   c.Band.ShiftStep,
		ShiftFloor:  c.Band.ShiftFloor,
		ShiftCeil:   c.Band.ShiftCeil,
		Mirror:      c.Band.Mirror,
	}
}

// KeyTable returns the default bindings with the keymap overrides applied
func (c Config) KeyTable() (*input.KeyTable, error) {
	keys := input.DefaultKeyTable()
	if err := keys.Apply(c.Keymap); err != nil {
		return nil, err
	}
	return keys, nil
}

func (c Config) SyntheticConfig() source.SyntheticConfig {
	return source.SyntheticConfig{
		Width:      c.World.Width,
		Height:     c.World.Height,
		Interval:   c.Source.Interval,
		WallDepth:  c.Source.WallDepth,
		BlobDepth:  c.Source.BlobDepth,
		BlobRadius: c.Source.BlobRadius,
		Seed:       c.Source.Seed,
	}
}

func (c Config) ReplayConfig() source.ReplayConfig {
	return source.ReplayConfig{
		Dir:      c.Source.ReplayDir,
		Loop:     c.Source.Loop,
		Interval: c.Source.Interval,
	}
}
