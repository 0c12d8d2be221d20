// Package config defines the dataset generator configuration: vehicle presets, JSON files, and
// their conversion into a sampler config.
package config

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/rtreach/evaltools/sampling"
	"github.com/rtreach/evaltools/spatialmath"
)

// GeneratorConfig describes one dataset generation run.
type GeneratorConfig struct {
	Vehicle       string             `json:"vehicle"`
	N             int                `json:"n"`
	Output        string             `json:"output"`
	Obstacles     [][]float64        `json:"obstacles"`
	ObstacleWidth float64            `json:"obstacle_width"`
	VehicleWidth  float64            `json:"vehicle_width"`
	VehicleHeight float64            `json:"vehicle_height"`
	StartBounds   spatialmath.Bounds `json:"start_bounds"`
	GoalBounds    spatialmath.Bounds `json:"goal_bounds"`
	VehicleBounds spatialmath.Bounds `json:"vehicle_bounds"`
	Resolution    int                `json:"resolution,omitempty"`
	MaxAttempts   int                `json:"max_attempts,omitempty"`
	// RandomSeed makes runs reproducible. When unset the sampler seeds from the clock.
	RandomSeed *int64 `json:"random_seed,omitempty"`

	ConfigFilePath string `json:"-"`
}

// Validate ensures all parts of the config are valid. Every problem found is reported.
func (cfg *GeneratorConfig) Validate(path string) error {
	var err error
	if cfg.Vehicle == "" {
		err = multierr.Append(err, NewFieldRequiredError(path, "vehicle"))
	} else if _, ok := presetFootprints[cfg.Vehicle]; !ok {
		err = multierr.Append(err, NewValidationError(path+".vehicle", NewUnknownPresetError(cfg.Vehicle)))
	}
	if cfg.N < 0 {
		err = multierr.Append(err, NewValidationError(path+".n", errors.Errorf("must be non-negative, got %d", cfg.N)))
	}
	if cfg.Output == "" {
		err = multierr.Append(err, NewFieldRequiredError(path, "output"))
	}
	for i, o := range cfg.Obstacles {
		if len(o) != 2 {
			err = multierr.Append(err, NewValidationError(
				pathIndex(path+".obstacles", i), errors.Errorf("obstacle must be [x, y], got %v", o)))
		}
	}
	if cfg.ObstacleWidth < 0 {
		err = multierr.Append(err, NewValidationError(path+".obstacle_width",
			errors.Errorf("must be non-negative, got %v", cfg.ObstacleWidth)))
	}
	if cfg.VehicleWidth < 0 {
		err = multierr.Append(err, NewValidationError(path+".vehicle_width",
			errors.Errorf("must be non-negative, got %v", cfg.VehicleWidth)))
	}
	if cfg.VehicleHeight < 0 {
		err = multierr.Append(err, NewValidationError(path+".vehicle_height",
			errors.Errorf("must be non-negative, got %v", cfg.VehicleHeight)))
	}
	for _, b := range []struct {
		field  string
		bounds spatialmath.Bounds
	}{
		{"start_bounds", cfg.StartBounds},
		{"goal_bounds", cfg.GoalBounds},
		{"vehicle_bounds", cfg.VehicleBounds},
	} {
		if bErr := b.bounds.Validate(); bErr != nil {
			err = multierr.Append(err, NewValidationError(path+"."+b.field, bErr))
		}
	}
	if cfg.Resolution < 0 {
		err = multierr.Append(err, NewValidationError(path+".resolution",
			errors.Errorf("must be non-negative, got %d", cfg.Resolution)))
	}
	if cfg.MaxAttempts < 0 {
		err = multierr.Append(err, NewValidationError(path+".max_attempts",
			errors.Errorf("must be non-negative, got %d", cfg.MaxAttempts)))
	}
	return err
}

// SamplerConfig converts the config into the sampler's configuration. Validate first.
func (cfg *GeneratorConfig) SamplerConfig() sampling.Config {
	obstacles := make([]sampling.Obstacle, 0, len(cfg.Obstacles))
	for _, o := range cfg.Obstacles {
		if len(o) != 2 {
			continue
		}
		obstacles = append(obstacles, sampling.NewObstacle(o[0], o[1]))
	}
	return sampling.Config{
		Obstacles:     obstacles,
		Width:         cfg.ObstacleWidth,
		VehicleWidth:  cfg.VehicleWidth,
		VehicleHeight: cfg.VehicleHeight,
		StartBounds:   cfg.StartBounds,
		GoalBounds:    cfg.GoalBounds,
		VehicleBounds: cfg.VehicleBounds,
		Resolution:    cfg.Resolution,
		MaxAttempts:   cfg.MaxAttempts,
	}
}

// SamplerOptions returns the sampler options implied by the config, currently only the seed.
func (cfg *GeneratorConfig) SamplerOptions() []sampling.Option {
	if cfg.RandomSeed == nil {
		return nil
	}
	return []sampling.Option{sampling.WithSeed(*cfg.RandomSeed)}
}

func pathIndex(path string, i int) string {
	return fmt.Sprintf("%s.%d", path, i)
}
