package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/rtreach/evaltools/logging"
	"github.com/rtreach/evaltools/sampling"
	"github.com/rtreach/evaltools/spatialmath"
	"github.com/rtreach/evaltools/utils"
)

func TestPresets(t *testing.T) {
	test.That(t, PresetNames(), test.ShouldResemble, []string{Bicycle, Quadcopter})

	bike, err := Preset(Bicycle)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bike.VehicleWidth, test.ShouldEqual, 0.7)
	test.That(t, bike.VehicleHeight, test.ShouldEqual, 0.5)
	test.That(t, bike.Output, test.ShouldEqual, "eval_input_data/bicycle/corr_dataset.csv")
	test.That(t, bike.N, test.ShouldEqual, 1000)
	test.That(t, bike.Obstacles, test.ShouldHaveLength, 8)
	test.That(t, bike.Validate("bicycle"), test.ShouldBeNil)

	quad, err := Preset(Quadcopter)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, quad.VehicleWidth, test.ShouldEqual, 0.52)
	test.That(t, quad.VehicleHeight, test.ShouldEqual, 0.52)
	test.That(t, quad.Output, test.ShouldEqual, "eval_input_data/quadcopter/corr_dataset.csv")

	// presets are independent copies
	bike.Obstacles[0][0] = 100
	again, err := Preset(Bicycle)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, again.Obstacles[0][0], test.ShouldEqual, 2.0)

	_, err = Preset("tricycle")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown vehicle preset "tricycle"`)
}

func TestFromReaderInheritsPreset(t *testing.T) {
	logger := logging.NewTestLogger(t)
	doc := `{"vehicle": "quadcopter", "n": 25, "random_seed": 7, "goal_bounds": [[3, 4], [-1, 1]]}`
	cfg, err := FromReader("inline.json", strings.NewReader(doc), logger)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, cfg.Vehicle, test.ShouldEqual, Quadcopter)
	test.That(t, cfg.N, test.ShouldEqual, 25)
	test.That(t, cfg.VehicleWidth, test.ShouldEqual, 0.52)
	test.That(t, cfg.GoalBounds, test.ShouldResemble, spatialmath.NewBounds(3, 4, -1, 1))
	test.That(t, cfg.StartBounds, test.ShouldResemble, spatialmath.SquareBounds(-0.5, 0.5))
	test.That(t, *cfg.RandomSeed, test.ShouldEqual, int64(7))
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, "inline.json")
	test.That(t, cfg.SamplerOptions(), test.ShouldHaveLength, 1)

	cfg, err = FromReader("", strings.NewReader(`{}`), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Vehicle, test.ShouldEqual, DefaultVehicle)
	test.That(t, cfg.RandomSeed, test.ShouldBeNil)
	test.That(t, cfg.SamplerOptions(), test.ShouldBeEmpty)

	// any int64 is a seed, negative included
	cfg, err = FromReader("", strings.NewReader(`{"random_seed": -5}`), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, *cfg.RandomSeed, test.ShouldEqual, int64(-5))
	test.That(t, cfg.SamplerOptions(), test.ShouldHaveLength, 1)
}

func TestFromReaderErrors(t *testing.T) {
	logger := logging.NewTestLogger(t)

	_, err := FromReader("", strings.NewReader(`{"n": `), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to decode generator config")

	_, err = FromReader("", strings.NewReader(`{"vehicle": "boat"}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown vehicle preset "boat"`)

	_, err = FromReader("", strings.NewReader(`{"start_bounds": [[1, 2]]}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bounds must be")
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg, err := Preset(Bicycle)
	test.That(t, err, test.ShouldBeNil)
	cfg.N = -1
	cfg.Output = ""
	cfg.Obstacles = append(cfg.Obstacles, []float64{1})
	cfg.VehicleHeight = -0.5
	cfg.GoalBounds = spatialmath.NewBounds(4.5, 3.5, -0.5, 0.5)

	err = cfg.Validate("generator")
	test.That(t, err, test.ShouldNotBeNil)
	msg := err.Error()
	test.That(t, msg, test.ShouldContainSubstring, `error validating "generator.n"`)
	test.That(t, msg, test.ShouldContainSubstring, `"output" is required`)
	test.That(t, msg, test.ShouldContainSubstring, `error validating "generator.obstacles.8"`)
	test.That(t, msg, test.ShouldContainSubstring, `error validating "generator.vehicle_height"`)
	test.That(t, msg, test.ShouldContainSubstring, `error validating "generator.goal_bounds"`)
	test.That(t, msg, test.ShouldNotContainSubstring, "start_bounds")
}

func TestSamplerConfig(t *testing.T) {
	cfg, err := Preset(Bicycle)
	test.That(t, err, test.ShouldBeNil)
	cfg.MaxAttempts = 50

	sc := cfg.SamplerConfig()
	test.That(t, sc.Obstacles, test.ShouldHaveLength, 8)
	test.That(t, sc.Obstacles[0], test.ShouldResemble, sampling.Obstacle{Center: r2.Point{X: 2, Y: 0.7}})
	test.That(t, sc.Obstacles[7], test.ShouldResemble, sampling.Obstacle{Center: r2.Point{X: 2, Y: -2.4}})
	test.That(t, sc.Width, test.ShouldEqual, 0.5)
	test.That(t, sc.VehicleWidth, test.ShouldEqual, 0.7)
	test.That(t, sc.MaxAttempts, test.ShouldEqual, 50)
	test.That(t, sc.Validate(), test.ShouldBeNil)
}

func TestReadExpandsEnvironment(t *testing.T) {
	t.Setenv("RTREACH_SAMPLES", "12")
	path := filepath.Join(t.TempDir(), "generator.json")
	err := os.WriteFile(path, []byte(`{"vehicle": "bicycle", "n": ${RTREACH_SAMPLES}, "output": "out.csv"}`), 0o600)
	test.That(t, err, test.ShouldBeNil)

	cfg, err := Read(path, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.N, test.ShouldEqual, 12)
	test.That(t, cfg.Output, test.ShouldEqual, "out.csv")
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, path)

	_, err = Read(filepath.Join(t.TempDir(), "missing.json"), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestShippedConfigs(t *testing.T) {
	logger := logging.NewTestLogger(t)

	bike, err := Read(utils.ResolveFile("etc/configs/bicycle.json"), logger)
	test.That(t, err, test.ShouldBeNil)
	preset, err := Preset(Bicycle)
	test.That(t, err, test.ShouldBeNil)
	bike.ConfigFilePath = ""
	test.That(t, *bike, test.ShouldResemble, preset)

	t.Setenv("RTREACH_DATA_DIR", "/tmp/rtreach")
	quad, err := Read(utils.ResolveFile("etc/configs/quadcopter_seeded.json"), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, quad.Output, test.ShouldEqual, "/tmp/rtreach/quadcopter/corr_dataset.csv")
	test.That(t, quad.N, test.ShouldEqual, 200)
	test.That(t, quad.MaxAttempts, test.ShouldEqual, 5000)
	test.That(t, *quad.RandomSeed, test.ShouldEqual, int64(2024))
	test.That(t, quad.VehicleWidth, test.ShouldEqual, 0.52)
}
