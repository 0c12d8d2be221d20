// Package evalstats summarizes the per-run output CSVs of an evaluation experiment.
package evalstats

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// DefaultTotalTime is the experiment time limit in seconds. Runs with a larger TTG timed out.
const DefaultTotalTime = 100.0

// noGoal marks a run that never reached the goal.
const noGoal = -1.0

// ExperimentRecord is one row of an evaluation output CSV. Flag columns are 1 when set. Empty
// cells decode as NaN and are left out of every statistic.
type ExperimentRecord struct {
	TTG                   float64 `mapstructure:"TTG"`
	Collision             float64 `mapstructure:"Collision"`
	NoSubgoal             float64 `mapstructure:"No Subgoal"`
	AvgSubgoalComputeTime float64 `mapstructure:"Avg Subgoal Compute Time"`
	MaxSubgoalComputeTime float64 `mapstructure:"Max Subgoal Compute Time"`
	DeadlineViolations    float64 `mapstructure:"Deadline Violations"`
}

// ReadRecords decodes an evaluation output CSV. Columns are matched by header name, extra columns
// are ignored and every ExperimentRecord column is required.
func ReadRecords(r io.Reader) ([]ExperimentRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	all, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, errors.New("empty csv, expected a header")
	}
	header := lo.Map(all[0], func(name string, _ int) string { return strings.TrimSpace(name) })

	records := make([]ExperimentRecord, 0, len(all)-1)
	for i, row := range all[1:] {
		raw := make(map[string]interface{}, len(header))
		for j, name := range header {
			raw[name] = strings.TrimSpace(row[j])
		}

		var rec ExperimentRecord
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook:       emptyCellToNaN,
			WeaklyTypedInput: true,
			ErrorUnset:       true,
			Result:           &rec,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, errors.Wrapf(err, "line %d", i+2)
		}
		records = append(records, rec)
	}
	return records, nil
}

// emptyCellToNaN marks a blank numeric cell as missing.
func emptyCellToNaN(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Float64 {
		return data, nil
	}
	if s, ok := data.(string); ok && s == "" {
		return math.NaN(), nil
	}
	return data, nil
}

// ReadRecordsFile decodes the evaluation output CSV at path.
func ReadRecordsFile(path string) ([]ExperimentRecord, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck
	defer f.Close()
	records, err := ReadRecords(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	return records, nil
}

// Summary aggregates an experiment. Means over an empty set are NaN.
type Summary struct {
	Runs      int
	TotalTime float64

	// MeanTTG and MedianTTG cover runs that reached the goal before TotalTime.
	MeanTTG   float64
	MedianTTG float64
	Timeouts  int

	Collisions         int
	NoSubgoal          int
	DeadlineViolations int

	// Subgoal compute times are in microseconds.
	AvgSubgoalComputeTime float64
	MaxSubgoalComputeTime float64
}

// Summarize computes the experiment summary for the given time limit.
func Summarize(records []ExperimentRecord, totalTime float64) (Summary, error) {
	if totalTime <= 0 || math.IsNaN(totalTime) {
		return Summary{}, errors.Errorf("total time must be positive, got %v", totalTime)
	}

	reached := reachedTTGs(records, totalTime)
	flagged := func(get func(ExperimentRecord) float64) int {
		return lo.CountBy(records, func(r ExperimentRecord) bool { return get(r) == 1 })
	}

	s := Summary{
		Runs:      len(records),
		TotalTime: totalTime,
		Timeouts:  lo.CountBy(records, func(r ExperimentRecord) bool { return r.TTG > totalTime }),
		Collisions: flagged(func(r ExperimentRecord) float64 {
			return r.Collision
		}),
		NoSubgoal: flagged(func(r ExperimentRecord) float64 {
			return r.NoSubgoal
		}),
		DeadlineViolations: flagged(func(r ExperimentRecord) float64 {
			return r.DeadlineViolations
		}),
	}

	var err error
	if s.MeanTTG, err = orNaN(stats.Mean(reached)); err != nil {
		return Summary{}, err
	}
	if s.MedianTTG, err = orNaN(stats.Median(reached)); err != nil {
		return Summary{}, err
	}
	avg := present(records, func(r ExperimentRecord) float64 { return r.AvgSubgoalComputeTime })
	if s.AvgSubgoalComputeTime, err = orNaN(stats.Mean(avg)); err != nil {
		return Summary{}, err
	}
	maxes := present(records, func(r ExperimentRecord) float64 { return r.MaxSubgoalComputeTime })
	if s.MaxSubgoalComputeTime, err = orNaN(stats.Max(maxes)); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// reachedTTGs returns the TTG of every run that reached the goal strictly before totalTime.
func reachedTTGs(records []ExperimentRecord, totalTime float64) []float64 {
	return lo.FilterMap(records, func(r ExperimentRecord, _ int) (float64, bool) {
		return r.TTG, r.TTG != noGoal && r.TTG < totalTime
	})
}

// present returns the non-missing values of one column.
func present(records []ExperimentRecord, get func(ExperimentRecord) float64) []float64 {
	return lo.FilterMap(records, func(r ExperimentRecord, _ int) (float64, bool) {
		v := get(r)
		return v, !math.IsNaN(v)
	})
}

func orNaN(v float64, err error) (float64, error) {
	if errors.Is(err, stats.ErrEmptyInput) {
		return math.NaN(), nil
	}
	return v, err
}

// String renders the summary as a table.
func (s Summary) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Runs", s.Runs},
		{"Mean TTG", fmt.Sprintf("%.4f s", s.MeanTTG)},
		{"Median TTG", fmt.Sprintf("%.4f s", s.MedianTTG)},
		{fmt.Sprintf("Timeouts (> %g s)", s.TotalTime), s.Timeouts},
		{"Collisions", s.Collisions},
		{"No Subgoal", s.NoSubgoal},
		{"Avg Subgoal Compute Time", fmt.Sprintf("%.2f us", s.AvgSubgoalComputeTime)},
		{"Max Subgoal Compute Time", fmt.Sprintf("%.2f us", s.MaxSubgoalComputeTime)},
		{"Deadline Violations", s.DeadlineViolations},
	})
	return t.Render()
}

// Render writes the summary table to w.
func (s Summary) Render(w io.Writer) error {
	_, err := fmt.Fprintln(w, s.String())
	return err
}
