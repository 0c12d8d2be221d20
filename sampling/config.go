// Package sampling generates start/goal pairs whose straight-line path clears every obstacle zone.
package sampling

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/rtreach/evaltools/spatialmath"
)

const (
	// DefaultResolution is the number of evenly spaced points tested along each candidate segment.
	DefaultResolution = 100
	// DefaultMaxAttempts is the number of candidate pairs drawn for one accepted pair before the
	// configuration is declared infeasible.
	DefaultMaxAttempts = 10000
)

// Obstacle is a point obstacle. Its zones (a square of half-width Width/2 and the vehicle footprint)
// are derived from the sampler Config and centered on it.
type Obstacle struct {
	Center r2.Point
}

// NewObstacle returns an obstacle centered at (x, y).
func NewObstacle(x, y float64) Obstacle {
	return Obstacle{Center: r2.Point{X: x, Y: y}}
}

// Config is everything the sampler needs. There is no package level state.
type Config struct {
	Obstacles []Obstacle

	// Width is the side of the square zone around every obstacle.
	Width float64
	// VehicleWidth and VehicleHeight are the full extents of the vehicle footprint zone.
	VehicleWidth  float64
	VehicleHeight float64

	StartBounds   spatialmath.Bounds
	GoalBounds    spatialmath.Bounds
	VehicleBounds spatialmath.Bounds

	// Resolution defaults to DefaultResolution when zero.
	Resolution int
	// MaxAttempts defaults to DefaultMaxAttempts when zero.
	MaxAttempts int
}

func (cfg Config) resolution() int {
	if cfg.Resolution == 0 {
		return DefaultResolution
	}
	return cfg.Resolution
}

func (cfg Config) maxAttempts() int {
	if cfg.MaxAttempts == 0 {
		return DefaultMaxAttempts
	}
	return cfg.MaxAttempts
}

// Validate returns every problem with the config combined into one error.
func (cfg Config) Validate() error {
	var err error
	if cfg.Width < 0 {
		err = multierr.Append(err, errors.Errorf("obstacle width must be non-negative, got %v", cfg.Width))
	}
	if cfg.VehicleWidth < 0 || cfg.VehicleHeight < 0 {
		err = multierr.Append(err, errors.Errorf("vehicle footprint must be non-negative, got %vx%v",
			cfg.VehicleWidth, cfg.VehicleHeight))
	}
	if cfg.Resolution < 0 {
		err = multierr.Append(err, errors.Errorf("resolution must be positive, got %d", cfg.Resolution))
	}
	if cfg.MaxAttempts < 0 {
		err = multierr.Append(err, errors.Errorf("max attempts must be positive, got %d", cfg.MaxAttempts))
	}
	if bErr := cfg.StartBounds.Validate(); bErr != nil {
		err = multierr.Append(err, errors.Wrap(bErr, "start bounds"))
	}
	if bErr := cfg.GoalBounds.Validate(); bErr != nil {
		err = multierr.Append(err, errors.Wrap(bErr, "goal bounds"))
	}
	if bErr := cfg.VehicleBounds.Validate(); bErr != nil {
		err = multierr.Append(err, errors.Wrap(bErr, "vehicle bounds"))
	}
	return err
}
