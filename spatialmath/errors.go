package spatialmath

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// NewBadRectDimensionsError returns an error indicating that a rect was given negative extents.
func NewBadRectDimensionsError(halfSize r2.Point) error {
	return errors.Errorf("invalid dimensions for rect: half size (%v, %v) must be non-negative", halfSize.X, halfSize.Y)
}

// NewBadBoundsError returns an error indicating that an interval has min greater than max.
func NewBadBoundsError(axis string, lo, hi float64) error {
	return errors.Errorf("invalid %s bounds: min %v is greater than max %v", axis, lo, hi)
}
