// Package traces reads the CSV logs written by the planner and controller runs: sampled vehicle
// states and reach tube rectangles.
package traces

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// State is one sampled vehicle state, Dims[k] holds column dimK.
type State struct {
	Dims []float64
}

// X returns dim0.
func (s State) X() float64 {
	return s.Dims[0]
}

// Y returns dim1.
func (s State) Y() float64 {
	return s.Dims[1]
}

// Point returns (dim0, dim1).
func (s State) Point() r2.Point {
	return r2.Point{X: s.X(), Y: s.Y()}
}

// Heading returns dim3 in radians, or 0 for models without a heading dimension.
func (s State) Heading() float64 {
	if len(s.Dims) < 4 {
		return 0
	}
	return s.Dims[3]
}

// TubeRect is one axis-aligned reach set over-approximation.
type TubeRect struct {
	Min  r2.Point
	Max  r2.Point
	Time float64
}

// Rect returns the rectangle as an r2.Rect.
func (t TubeRect) Rect() r2.Rect {
	return r2.RectFromPoints(t.Min, t.Max)
}

// table is a CSV file keyed by header name.
type table struct {
	columns map[string]int
	records [][]string
}

func readTable(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	all, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, errors.New("empty csv, expected a header")
	}
	columns := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		columns[strings.TrimSpace(name)] = i
	}
	return &table{columns: columns, records: all[1:]}, nil
}

func (t *table) require(names ...string) error {
	for _, name := range names {
		if _, ok := t.columns[name]; !ok {
			return errors.Errorf("missing column %q", name)
		}
	}
	return nil
}

func (t *table) float(row int, name string) (float64, error) {
	v, err := cast.ToFloat64E(strings.TrimSpace(t.records[row][t.columns[name]]))
	if err != nil {
		return 0, errors.Wrapf(err, "line %d, column %q", row+2, name)
	}
	return v, nil
}

// dimColumns returns the dimK column names ordered by K. The dims must run dim0..dimK without gaps
// so that a state's slice index is its dimension.
func (t *table) dimColumns() ([]string, error) {
	type dim struct {
		name string
		k    int
	}
	var dims []dim
	for name := range t.columns {
		if !strings.HasPrefix(name, "dim") {
			continue
		}
		k, err := strconv.Atoi(strings.TrimPrefix(name, "dim"))
		if err != nil || k < 0 {
			continue
		}
		dims = append(dims, dim{name: name, k: k})
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i].k < dims[j].k })
	names := make([]string, len(dims))
	for i, d := range dims {
		if d.k != i {
			return nil, errors.Errorf("missing column %q", "dim"+strconv.Itoa(i))
		}
		names[i] = d.name
	}
	return names, nil
}

// ReadStates parses a states CSV. The header must contain dim0 and dim1 and any further dims without
// gaps, other columns are ignored.
func ReadStates(r io.Reader) ([]State, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require("dim0", "dim1"); err != nil {
		return nil, err
	}
	dims, err := t.dimColumns()
	if err != nil {
		return nil, err
	}

	states := make([]State, 0, len(t.records))
	for row := range t.records {
		s := State{Dims: make([]float64, len(dims))}
		for i, name := range dims {
			if s.Dims[i], err = t.float(row, name); err != nil {
				return nil, err
			}
		}
		states = append(states, s)
	}
	return states, nil
}

// ReadStatesFile parses the states CSV at path.
func ReadStatesFile(path string) ([]State, error) {
	var states []State
	err := withFile(path, func(r io.Reader) (err error) {
		states, err = ReadStates(r)
		return err
	})
	return states, err
}

// ReadTube parses a reach tube CSV with columns min0, min1, max0, max1 and an optional time.
func ReadTube(r io.Reader) ([]TubeRect, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require("min0", "min1", "max0", "max1"); err != nil {
		return nil, err
	}
	_, hasTime := t.columns["time"]

	rects := make([]TubeRect, 0, len(t.records))
	for row := range t.records {
		var v [4]float64
		for i, name := range []string{"min0", "min1", "max0", "max1"} {
			if v[i], err = t.float(row, name); err != nil {
				return nil, err
			}
		}
		rect := TubeRect{Min: r2.Point{X: v[0], Y: v[1]}, Max: r2.Point{X: v[2], Y: v[3]}}
		if hasTime {
			if rect.Time, err = t.float(row, "time"); err != nil {
				return nil, err
			}
		}
		rects = append(rects, rect)
	}
	return rects, nil
}

// ReadTubeFile parses the reach tube CSV at path.
func ReadTubeFile(path string) ([]TubeRect, error) {
	var rects []TubeRect
	err := withFile(path, func(r io.Reader) (err error) {
		rects, err = ReadTube(r)
		return err
	})
	return rects, err
}

func withFile(path string, fn func(io.Reader) error) error {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	//nolint:errcheck
	defer f.Close()
	return errors.Wrapf(fn(f), "reading %q", path)
}
