package spatialmath

import (
	"encoding/json"
	"math/rand"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Bounds is a sampling box given as one closed interval per axis.
type Bounds struct {
	X r1.Interval
	Y r1.Interval
}

// NewBounds returns the box [xmin, xmax] x [ymin, ymax].
func NewBounds(xmin, xmax, ymin, ymax float64) Bounds {
	return Bounds{X: r1.Interval{Lo: xmin, Hi: xmax}, Y: r1.Interval{Lo: ymin, Hi: ymax}}
}

// SquareBounds returns the box [lo, hi] x [lo, hi].
func SquareBounds(lo, hi float64) Bounds {
	return NewBounds(lo, hi, lo, hi)
}

// Validate checks that neither interval is inverted.
func (b Bounds) Validate() error {
	var err error
	if b.X.Lo > b.X.Hi {
		err = multierr.Append(err, NewBadBoundsError("x", b.X.Lo, b.X.Hi))
	}
	if b.Y.Lo > b.Y.Hi {
		err = multierr.Append(err, NewBadBoundsError("y", b.Y.Lo, b.Y.Hi))
	}
	return err
}

// Sample draws a point uniformly from the box, independently per axis, x first.
func (b Bounds) Sample(rng *rand.Rand) r2.Point {
	x := b.X.Lo + rng.Float64()*(b.X.Hi-b.X.Lo)
	y := b.Y.Lo + rng.Float64()*(b.Y.Hi-b.Y.Lo)
	return r2.Point{X: x, Y: y}
}

// Rect returns the box as an r2.Rect.
func (b Bounds) Rect() r2.Rect {
	return r2.Rect{X: b.X, Y: b.Y}
}

// MarshalJSON encodes the bounds as [[xmin, xmax], [ymin, ymax]].
func (b Bounds) MarshalJSON() ([]byte, error) {
	return json.Marshal([2][2]float64{{b.X.Lo, b.X.Hi}, {b.Y.Lo, b.Y.Hi}})
}

// UnmarshalJSON decodes bounds written as [[xmin, xmax], [ymin, ymax]].
func (b *Bounds) UnmarshalJSON(data []byte) error {
	var raw [][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 || len(raw[0]) != 2 || len(raw[1]) != 2 {
		return errors.Errorf("bounds must be [[xmin, xmax], [ymin, ymax]], got %v", raw)
	}
	*b = NewBounds(raw[0][0], raw[0][1], raw[1][0], raw[1][1])
	return nil
}
