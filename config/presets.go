package config

import (
	"sort"

	"github.com/samber/lo"

	"github.com/rtreach/evaltools/spatialmath"
)

// Vehicle preset names.
const (
	Bicycle    = "bicycle"
	Quadcopter = "quadcopter"
)

// DefaultVehicle is the preset used when a config does not name one.
const DefaultVehicle = Bicycle

type footprint struct {
	width, height float64
}

var presetFootprints = map[string]footprint{
	Bicycle:    {width: 0.7, height: 0.5},
	Quadcopter: {width: 0.52, height: 0.52},
}

// corridorObstacles are the two obstacle columns at x = 2 leaving a gap around y = 0.
func corridorObstacles() [][]float64 {
	return [][]float64{
		{2, 0.7}, {2, 1.4}, {2, 1.9}, {2, 2.4},
		{2, -0.7}, {2, -1.4}, {2, -1.9}, {2, -2.4},
	}
}

// Preset returns a fresh copy of the named vehicle's generator config.
func Preset(name string) (GeneratorConfig, error) {
	fp, ok := presetFootprints[name]
	if !ok {
		return GeneratorConfig{}, NewUnknownPresetError(name)
	}
	return GeneratorConfig{
		Vehicle:       name,
		N:             1000,
		Output:        "eval_input_data/" + name + "/corr_dataset.csv",
		Obstacles:     corridorObstacles(),
		ObstacleWidth: 0.5,
		VehicleWidth:  fp.width,
		VehicleHeight: fp.height,
		StartBounds:   spatialmath.SquareBounds(-0.5, 0.5),
		GoalBounds:    spatialmath.NewBounds(3.5, 4.5, -0.5, 0.5),
		VehicleBounds: spatialmath.SquareBounds(-0.5, 0.5),
	}, nil
}

// PresetNames lists the known presets in alphabetical order.
func PresetNames() []string {
	names := lo.Keys(presetFootprints)
	sort.Strings(names)
	return names
}
