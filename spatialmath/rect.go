// Package spatialmath defines the 2D geometry shared by the dataset generator and the renderers.
package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Rect is an axis-aligned rectangle defined by its center and half size. Containment is
// inclusive: a point on the boundary is inside.
type Rect struct {
	center   r2.Point
	halfSize r2.Point
	label    string
}

// NewRect instantiates a new Rect from a center and half extents.
func NewRect(center, halfSize r2.Point, label string) (Rect, error) {
	// Zero extents are allowed, they describe a segment or a point.
	if halfSize.X < 0 || halfSize.Y < 0 {
		return Rect{}, NewBadRectDimensionsError(halfSize)
	}
	return Rect{center: center, halfSize: halfSize, label: label}, nil
}

// NewRectFromDims instantiates a new Rect from a center and full width/height.
func NewRectFromDims(center, dims r2.Point, label string) (Rect, error) {
	return NewRect(center, dims.Mul(0.5), label)
}

// String returns a human readable string that represents the rect.
func (r Rect) String() string {
	return fmt.Sprintf("Type: Rect | Center: X:%.2f, Y:%.2f | Dims: X:%.2f, Y:%.2f",
		r.center.X, r.center.Y, 2*r.halfSize.X, 2*r.halfSize.Y)
}

// Center returns the center of the rect.
func (r Rect) Center() r2.Point {
	return r.center
}

// HalfSize returns the half extents of the rect.
func (r Rect) HalfSize() r2.Point {
	return r.halfSize
}

// Label returns the label of this rect.
func (r Rect) Label() string {
	return r.label
}

// Bounds returns the closed interval on each axis, computed as center ∓ half size.
func (r Rect) Bounds() r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: r.center.X - r.halfSize.X, Hi: r.center.X + r.halfSize.X},
		Y: r1.Interval{Lo: r.center.Y - r.halfSize.Y, Hi: r.center.Y + r.halfSize.Y},
	}
}

// ContainsPoint reports whether p lies inside the rect or on its boundary.
func (r Rect) ContainsPoint(p r2.Point) bool {
	return r.Bounds().ContainsPoint(p)
}

// Translate returns a copy of the rect moved by offset.
func (r Rect) Translate(offset r2.Point) Rect {
	return Rect{center: r.center.Add(offset), halfSize: r.halfSize, label: r.label}
}
