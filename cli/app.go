// Package cli contains the rtreach command line: dataset generation, experiment statistics, and
// plotting.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"github.com/rtreach/evaltools/evalstats"
	"github.com/rtreach/evaltools/logging"
)

const (
	// Flags.
	generalFlagConfig   = "config"
	generalFlagDebug    = "debug"
	generalFlagLogLevel = "log-level"
	generalFlagOutput   = "output"
	generalFlagVehicle  = "vehicle"

	generateFlagAll  = "all"
	generateFlagN    = "n"
	generateFlagSeed = "seed"

	statsFlagTotalTime = "total-time"
	statsFlagHistogram = "histogram"

	plotFlagStates  = "states"
	plotFlagStates2 = "states2"
	plotFlagRects1  = "rects1"
	plotFlagRects2  = "rects2"
	plotFlagDataset = "dataset"

	loggerMetadataKey = "logger"
)

var app = &cli.App{
	Name:            "rtreach",
	Usage:           "generate evaluation datasets and inspect experiment output",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging, same as --log-level debug",
		},
		&cli.StringFlag{
			Name:  generalFlagLogLevel,
			Value: "info",
			Usage: "minimum log level: debug, info, warn or error",
		},
	},
	Before: func(c *cli.Context) error {
		level, err := logging.LevelFromString(c.String(generalFlagLogLevel))
		if err != nil {
			return err
		}
		if c.Bool(generalFlagDebug) {
			level = logging.DEBUG
		}
		logger := logging.NewLogger("rtreach")
		logger.SetLevel(level)
		if c.App.Metadata == nil {
			c.App.Metadata = map[string]interface{}{}
		}
		c.App.Metadata[loggerMetadataKey] = logger
		logging.ReplaceGlobal(logger)
		return nil
	},
	After: func(c *cli.Context) error {
		return loggerFrom(c).Sync()
	},
	Commands: []*cli.Command{
		{
			Name:  "generate",
			Usage: "sample start/goal pairs whose straight path clears every obstacle and write them as CSV",
			UsageText: "rtreach generate [--vehicle bicycle|quadcopter | --config FILE | --all] " +
				"[--n N] [--output PATH] [--seed S]",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:    generalFlagConfig,
					Aliases: []string{"c"},
					Usage:   "load generator configuration from `FILE`",
				},
				&cli.StringFlag{
					Name:  generalFlagVehicle,
					Usage: "vehicle preset to generate for (bicycle or quadcopter)",
				},
				&cli.BoolFlag{
					Name:  generateFlagAll,
					Usage: "generate a dataset for every vehicle preset",
				},
				&cli.IntFlag{
					Name:  generateFlagN,
					Usage: "number of samples",
				},
				&cli.PathFlag{
					Name:    generalFlagOutput,
					Aliases: []string{"o"},
					Usage:   "CSV `PATH` to write",
				},
				&cli.Int64Flag{
					Name:  generateFlagSeed,
					Usage: "random seed for a reproducible dataset",
				},
			},
			Action: GenerateAction,
		},
		{
			Name:      "stats",
			Usage:     "summarize evaluation output CSVs",
			ArgsUsage: "FILE [FILE...]",
			Flags: []cli.Flag{
				&cli.Float64Flag{
					Name:  statsFlagTotalTime,
					Value: evalstats.DefaultTotalTime,
					Usage: "experiment time limit in seconds, runs taking longer timed out",
				},
				&cli.PathFlag{
					Name:  statsFlagHistogram,
					Usage: "also plot the time-to-goal histogram of a single CSV to `PATH` (.png, .svg or .pdf)",
				},
			},
			Action: StatsAction,
		},
		{
			Name:  "plot-traj",
			Usage: "plot one or two state trajectories through the corridor",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     plotFlagStates,
					Aliases:  []string{"s1"},
					Required: true,
					Usage:    "states CSV of the primary trajectory",
				},
				&cli.PathFlag{
					Name:    plotFlagStates2,
					Aliases: []string{"s2"},
					Usage:   "states CSV of the fallback trajectory",
				},
				&cli.PathFlag{
					Name:     generalFlagOutput,
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "PNG `PATH` to write",
				},
			},
			Action: PlotTrajectoryAction,
		},
		{
			Name:  "plot-reach",
			Usage: "plot two reach tubes between the circular obstacles",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     plotFlagRects1,
					Aliases:  []string{"r1"},
					Required: true,
					Usage:    "reach tube CSV of the primary controller",
				},
				&cli.PathFlag{
					Name:     plotFlagRects2,
					Aliases:  []string{"r2"},
					Required: true,
					Usage:    "reach tube CSV of the subgoal search",
				},
				&cli.PathFlag{
					Name:     generalFlagOutput,
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "PNG `PATH` to write",
				},
			},
			Action: PlotReachAction,
		},
		{
			Name:  "plot-dataset",
			Usage: "plot a generated dataset over its obstacles and sampling boxes",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     plotFlagDataset,
					Required: true,
					Usage:    "dataset CSV to plot",
				},
				&cli.PathFlag{
					Name:    generalFlagConfig,
					Aliases: []string{"c"},
					Usage:   "generator configuration the dataset was made with",
				},
				&cli.StringFlag{
					Name:  generalFlagVehicle,
					Usage: "vehicle preset the dataset was made with, when no config is given",
				},
				&cli.PathFlag{
					Name:     generalFlagOutput,
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "PNG `PATH` to write",
				},
			},
			Action: PlotDatasetAction,
		},
		{
			Name:   "version",
			Usage:  "print version info for this program",
			Action: VersionAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
