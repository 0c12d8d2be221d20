package spatialmath

import (
	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats"
)

// Interpolate returns n evenly spaced points on the segment from `from` to `to`, inclusive of both
// endpoints. n == 1 returns just `from`; n <= 0 returns nil.
func Interpolate(from, to r2.Point, n int) []r2.Point {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []r2.Point{from}
	}

	xs := floats.Span(make([]float64, n), from.X, to.X)
	ys := floats.Span(make([]float64, n), from.Y, to.Y)
	// Pin the endpoints so a segment ending exactly on a boundary is tested against that boundary.
	xs[n-1], ys[n-1] = to.X, to.Y

	pts := make([]r2.Point, n)
	for i := range pts {
		pts[i] = r2.Point{X: xs[i], Y: ys[i]}
	}
	return pts
}

// SegmentBounds returns the smallest rect holding the segment from `from` to `to`.
func SegmentBounds(from, to r2.Point) r2.Rect {
	return r2.RectFromPoints(from, to)
}
