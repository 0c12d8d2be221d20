package cli

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/rtreach/evaltools/evalstats"
)

// StatsAction prints a summary table for every evaluation output CSV given as an argument.
func StatsAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("expected at least one evaluation output CSV")
	}
	totalTime := c.Float64(statsFlagTotalTime)
	histogram := c.Path(statsFlagHistogram)
	if histogram != "" && c.NArg() > 1 {
		return errors.Errorf("--%s takes a single evaluation output CSV, got %d", statsFlagHistogram, c.NArg())
	}

	for i, path := range c.Args().Slice() {
		records, err := evalstats.ReadRecordsFile(path)
		if err != nil {
			return err
		}
		summary, err := evalstats.Summarize(records, totalTime)
		if err != nil {
			return errors.Wrapf(err, "summarizing %q", path)
		}
		if i > 0 {
			printf(c.App.Writer, "")
		}
		printf(c.App.Writer, "%s", path)
		if err := summary.Render(c.App.Writer); err != nil {
			return err
		}
		loggerFrom(c).Debugw("summarized experiment", "path", path, "runs", summary.Runs)

		if histogram != "" {
			if err := evalstats.SaveTTGHistogram(records, totalTime, histogram); err != nil {
				return err
			}
			printf(c.App.Writer, "Saved histogram to %s", histogram)
		}
	}
	return nil
}
