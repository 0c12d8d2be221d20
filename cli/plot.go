package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/rtreach/evaltools/dataset"
	"github.com/rtreach/evaltools/traces"
	"github.com/rtreach/evaltools/viz"
)

// PlotTrajectoryAction renders one or two state trajectories to a PNG.
func PlotTrajectoryAction(c *cli.Context) error {
	states, err := traces.ReadStatesFile(c.Path(plotFlagStates))
	if err != nil {
		return err
	}
	var fallback []traces.State
	if path := c.Path(plotFlagStates2); path != "" {
		if fallback, err = traces.ReadStatesFile(path); err != nil {
			return err
		}
	}

	scene, err := viz.TrajectoryFigure(states, fallback)
	if err != nil {
		return err
	}
	return savePlot(c, scene)
}

// PlotReachAction renders two reach tubes to a PNG.
func PlotReachAction(c *cli.Context) error {
	primary, err := traces.ReadTubeFile(c.Path(plotFlagRects1))
	if err != nil {
		return err
	}
	subgoal, err := traces.ReadTubeFile(c.Path(plotFlagRects2))
	if err != nil {
		return err
	}

	scene, err := viz.ReachFigure(primary, subgoal)
	if err != nil {
		return err
	}
	return savePlot(c, scene)
}

// PlotDatasetAction renders a generated dataset with the obstacles and bounds it was sampled from.
func PlotDatasetAction(c *cli.Context) error {
	logger := loggerFrom(c)
	rows, err := dataset.ReadFile(c.Path(plotFlagDataset))
	if err != nil {
		return err
	}
	cfg, err := loadGeneratorConfig(c, logger)
	if err != nil {
		return err
	}

	scene, err := viz.DatasetFigure(rows, cfg.SamplerConfig(), logger)
	if err != nil {
		return err
	}
	return savePlot(c, scene)
}

func savePlot(c *cli.Context, scene *viz.Scene) error {
	output := c.Path(generalFlagOutput)
	if err := scene.SavePNG(output); err != nil {
		return err
	}
	printf(c.App.Writer, "Saved plot to %s", output)
	return nil
}
