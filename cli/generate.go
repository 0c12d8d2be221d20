package cli

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/rtreach/evaltools/config"
	"github.com/rtreach/evaltools/dataset"
	"github.com/rtreach/evaltools/logging"
	"github.com/rtreach/evaltools/sampling"
)

// GenerateAction samples a start/goal dataset and writes it as CSV.
func GenerateAction(c *cli.Context) error {
	logger := loggerFrom(c)

	var cfgs []*config.GeneratorConfig
	if c.Bool(generateFlagAll) {
		if c.IsSet(generalFlagConfig) || c.IsSet(generalFlagVehicle) || c.IsSet(generalFlagOutput) {
			return errors.Errorf("--%s generates every preset to its default output, it cannot be combined with "+
				"--%s, --%s or --%s", generateFlagAll, generalFlagConfig, generalFlagVehicle, generalFlagOutput)
		}
		for _, name := range config.PresetNames() {
			cfg, err := config.Preset(name)
			if err != nil {
				return err
			}
			cfgs = append(cfgs, &cfg)
		}
	} else {
		cfg, err := loadGeneratorConfig(c, logger)
		if err != nil {
			return err
		}
		cfgs = append(cfgs, cfg)
	}

	for _, cfg := range cfgs {
		if c.IsSet(generateFlagN) {
			cfg.N = c.Int(generateFlagN)
		}
		if c.IsSet(generalFlagOutput) {
			cfg.Output = c.Path(generalFlagOutput)
		}
		if c.IsSet(generateFlagSeed) {
			seed := c.Int64(generateFlagSeed)
			cfg.RandomSeed = &seed
		}
		if err := cfg.Validate("generator"); err != nil {
			return err
		}

		rows, err := generateDataset(c, cfg, logger.Sublogger(cfg.Vehicle))
		if err != nil {
			return err
		}
		printf(c.App.Writer, "Wrote %d %s samples to %s", len(rows), cfg.Vehicle, cfg.Output)
	}
	return nil
}

func generateDataset(c *cli.Context, cfg *config.GeneratorConfig, logger logging.Logger) ([]dataset.Row, error) {
	sampler, err := sampling.NewSampler(cfg.SamplerConfig(), logger, cfg.SamplerOptions()...)
	if err != nil {
		return nil, err
	}
	rows, err := sampler.GenerateDataset(c.Context, cfg.N)
	if err != nil {
		if sampling.IsInfeasibleConfigError(err) {
			warningf(c.App.ErrWriter, "the %s configuration leaves no collision-free path between the start and goal "+
				"bounds, check the obstacle layout", cfg.Vehicle)
		}
		return nil, err
	}
	if err := dataset.WriteFile(cfg.Output, rows); err != nil {
		return nil, err
	}
	return rows, nil
}
