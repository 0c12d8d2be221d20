package evalstats

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rtreach/evaltools/utils"
)

// histogramBins is the number of TTG buckets.
const histogramBins = 20

// SaveTTGHistogram plots the time-to-goal distribution of runs that reached the goal within
// totalTime. The image format follows the path's extension.
func SaveTTGHistogram(records []ExperimentRecord, totalTime float64, path string) (err error) {
	reached := reachedTTGs(records, totalTime)
	if len(reached) == 0 {
		return errors.New("no run reached the goal, nothing to plot")
	}

	p := plot.New()
	p.Title.Text = "Time to Goal"
	p.X.Label.Text = "TTG (s)"
	p.Y.Label.Text = "runs"
	hist, err := plotter.NewHist(plotter.Values(reached), histogramBins)
	if err != nil {
		return err
	}
	p.Add(hist)

	writer, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, utils.Extension(path))
	if err != nil {
		return err
	}
	f, err := utils.CreateWithParents(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	_, err = writer.WriteTo(f)
	return errors.Wrapf(err, "saving %q", path)
}
