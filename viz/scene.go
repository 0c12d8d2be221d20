// Package viz renders planning scenes (obstacles, trajectories, reach tubes, sampled datasets)
// to PNG images.
package viz

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/rtreach/evaltools/dataset"
	"github.com/rtreach/evaltools/spatialmath"
	"github.com/rtreach/evaltools/traces"
	"github.com/rtreach/evaltools/utils"
)

// DefaultPixelsPerMeter is the scale used by the stock figures.
const DefaultPixelsPerMeter = 200

// margin is the pixel border around the plot area holding the title and axis labels.
const margin = 50

// MarkerKind selects the glyph drawn by AddMarker.
type MarkerKind int

// Marker glyphs.
const (
	Dot MarkerKind = iota
	Star
)

type layer func(dc *gg.Context)

// Scene is a 2D world window drawn in insertion order: later additions cover earlier ones.
type Scene struct {
	window r2.Rect
	scale  float64
	title  string
	layers []layer
}

// NewScene returns an empty scene showing window at the given scale. Y points up.
func NewScene(window r2.Rect, pixelsPerMeter float64) (*Scene, error) {
	if window.IsEmpty() || window.X.Length() == 0 || window.Y.Length() == 0 {
		return nil, errors.Errorf("scene window must have positive area, got %v", window)
	}
	if pixelsPerMeter <= 0 {
		return nil, errors.Errorf("pixels per meter must be positive, got %v", pixelsPerMeter)
	}
	return &Scene{window: window, scale: pixelsPerMeter}, nil
}

// SetTitle sets the caption drawn above the plot.
func (s *Scene) SetTitle(title string) {
	s.title = title
}

// Size returns the image size in pixels.
func (s *Scene) Size() (int, int) {
	w := int(math.Ceil(s.window.X.Length()*s.scale)) + 2*margin
	h := int(math.Ceil(s.window.Y.Length()*s.scale)) + 2*margin
	return w, h
}

// ToPixel maps a world point to image coordinates.
func (s *Scene) ToPixel(p r2.Point) (float64, float64) {
	return margin + (p.X-s.window.X.Lo)*s.scale, margin + (s.window.Y.Hi-p.Y)*s.scale
}

func (s *Scene) add(l layer) {
	s.layers = append(s.layers, l)
}

func (s *Scene) fillRect(dc *gg.Context, bounds r2.Rect) {
	x, y := s.ToPixel(r2.Point{X: bounds.X.Lo, Y: bounds.Y.Hi})
	dc.DrawRectangle(x, y, bounds.X.Length()*s.scale, bounds.Y.Length()*s.scale)
}

// AddObstacle draws a filled rect with a black edge.
func (s *Scene) AddObstacle(rect spatialmath.Rect, fill colorful.Color) {
	bounds := rect.Bounds()
	s.add(func(dc *gg.Context) {
		s.fillRect(dc, bounds)
		dc.SetColor(WithAlpha(fill, 0.5))
		dc.FillPreserve()
		dc.SetColor(Black)
		dc.SetLineWidth(1)
		dc.Stroke()
	})
}

// AddOutline draws the border of bounds with a dashed line.
func (s *Scene) AddOutline(bounds r2.Rect, c colorful.Color) {
	s.add(func(dc *gg.Context) {
		s.fillRect(dc, bounds)
		dc.SetColor(c)
		dc.SetLineWidth(1)
		dc.SetDash(4, 3)
		dc.Stroke()
		dc.SetDash()
	})
}

// AddCircle draws a filled circle with a black edge.
func (s *Scene) AddCircle(center r2.Point, radius float64, fill colorful.Color) {
	s.add(func(dc *gg.Context) {
		x, y := s.ToPixel(center)
		dc.DrawCircle(x, y, radius*s.scale)
		dc.SetColor(WithAlpha(fill, 0.5))
		dc.FillPreserve()
		dc.SetColor(Black)
		dc.SetLineWidth(1)
		dc.Stroke()
	})
}

// AddTube draws every reach tube rect filled without an edge.
func (s *Scene) AddTube(rects []traces.TubeRect, fill colorful.Color) {
	s.add(func(dc *gg.Context) {
		dc.SetColor(WithAlpha(fill, 0.5))
		for _, r := range rects {
			s.fillRect(dc, r.Rect())
			dc.Fill()
		}
	})
}

// AddTrajectory draws the vehicle footprint, given by its half extents and rotated by the state's
// heading, at every stride-th state and optionally at the last one. Each drawn state also gets a
// black center dot.
func (s *Scene) AddTrajectory(states []traces.State, halfExtents r2.Point, stride int, includeLast bool, fill colorful.Color) {
	if stride < 1 {
		stride = 1
	}
	var picked []traces.State
	for i := 0; i < len(states); i += stride {
		picked = append(picked, states[i])
	}
	if includeLast && len(states) > 0 && (len(states)-1)%stride != 0 {
		picked = append(picked, states[len(states)-1])
	}

	s.add(func(dc *gg.Context) {
		for _, st := range picked {
			x, y := s.ToPixel(st.Point())
			dc.Push()
			// image y points down, so a counter-clockwise world rotation is negative here
			dc.RotateAbout(-st.Heading(), x, y)
			w, h := halfExtents.X*s.scale, halfExtents.Y*s.scale
			dc.DrawRectangle(x-w, y-h, 2*w, 2*h)
			dc.SetColor(WithAlpha(fill, 0.5))
			dc.Fill()
			dc.Pop()

			dc.DrawCircle(x, y, 2.5)
			dc.SetColor(Black)
			dc.Fill()
		}
	})
}

// AddLine draws a straight black line, dashed when requested.
func (s *Scene) AddLine(from, to r2.Point, dashed bool) {
	s.add(func(dc *gg.Context) {
		x1, y1 := s.ToPixel(from)
		x2, y2 := s.ToPixel(to)
		dc.SetColor(Black)
		dc.SetLineWidth(1.5)
		if dashed {
			dc.SetDash(6, 4)
		}
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		dc.SetDash()
	})
}

// AddMarker draws a glyph of the given pixel size at p.
func (s *Scene) AddMarker(p r2.Point, kind MarkerKind, size float64, c colorful.Color) {
	s.add(func(dc *gg.Context) {
		x, y := s.ToPixel(p)
		switch kind {
		case Star:
			drawStar(dc, x, y, size/2)
		default:
			dc.DrawCircle(x, y, size/2)
		}
		dc.SetColor(c)
		dc.Fill()
	})
}

// AddPairs draws each dataset row as a thin segment from start to goal with colored endpoints and
// a cross at the vehicle position.
func (s *Scene) AddPairs(rows []dataset.Row) {
	s.add(func(dc *gg.Context) {
		dc.SetLineWidth(0.5)
		dc.SetColor(WithAlpha(Gray, 0.4))
		for _, row := range rows {
			x1, y1 := s.ToPixel(row.Start)
			x2, y2 := s.ToPixel(row.Goal)
			dc.DrawLine(x1, y1, x2, y2)
			dc.Stroke()
		}
		for _, row := range rows {
			x, y := s.ToPixel(row.Start)
			dc.DrawCircle(x, y, 2)
			dc.SetColor(Green)
			dc.Fill()

			x, y = s.ToPixel(row.Goal)
			dc.DrawCircle(x, y, 2)
			dc.SetColor(Red)
			dc.Fill()

			x, y = s.ToPixel(row.Vehicle)
			dc.SetColor(WithAlpha(Blue, 0.6))
			dc.DrawLine(x-2, y, x+2, y)
			dc.DrawLine(x, y-2, x, y+2)
			dc.Stroke()
		}
	})
}

// Render draws the scene onto a white canvas with axes.
func (s *Scene) Render() image.Image {
	return s.draw().Image()
}

func (s *Scene) draw() *gg.Context {
	w, h := s.Size()
	dc := gg.NewContext(w, h)
	dc.SetColor(White)
	dc.Clear()

	// plot area clip so shapes outside the window do not cover the labels
	dc.DrawRectangle(margin, margin, float64(w-2*margin), float64(h-2*margin))
	dc.Clip()
	for _, l := range s.layers {
		l(dc)
	}
	dc.ResetClip()

	s.drawAxes(dc)
	return dc
}

func (s *Scene) drawAxes(dc *gg.Context) {
	w, h := s.Size()
	dc.SetColor(Black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(margin, margin, float64(w-2*margin), float64(h-2*margin))
	dc.Stroke()

	setFontSize(dc, 10)
	step := tickStep(s.window.X.Length(), 10)
	for v := math.Ceil(s.window.X.Lo/step) * step; v <= s.window.X.Hi+1e-9; v += step {
		x, y := s.ToPixel(r2.Point{X: v, Y: s.window.Y.Lo})
		dc.DrawLine(x, y, x, y+4)
		dc.Stroke()
		dc.DrawStringAnchored(formatTick(v), x, y+6, 0.5, 1)
	}
	step = tickStep(s.window.Y.Length(), 10)
	for v := math.Ceil(s.window.Y.Lo/step) * step; v <= s.window.Y.Hi+1e-9; v += step {
		x, y := s.ToPixel(r2.Point{X: s.window.X.Lo, Y: v})
		dc.DrawLine(x-4, y, x, y)
		dc.Stroke()
		dc.DrawStringAnchored(formatTick(v), x-6, y, 1, 0.5)
	}

	setFontSize(dc, 11)
	dc.DrawStringAnchored("x(m)", float64(w)/2, float64(h)-8, 0.5, 0)
	dc.Push()
	dc.RotateAbout(-math.Pi/2, 10, float64(h)/2)
	dc.DrawStringAnchored("y(m)", 10, float64(h)/2, 0.5, 1)
	dc.Pop()

	if s.title != "" {
		setFontSize(dc, 13)
		dc.DrawStringAnchored(s.title, float64(w)/2, margin/2, 0.5, 0.5)
	}
}

func formatTick(v float64) string {
	if math.Abs(v) < 1e-9 {
		v = 0
	}
	return fmt.Sprintf("%g", math.Round(v*100)/100)
}

// WritePNG encodes the rendered scene to w.
func (s *Scene) WritePNG(w io.Writer) error {
	return s.draw().EncodePNG(w)
}

// SavePNG renders the scene to path, creating parent directories as needed.
func (s *Scene) SavePNG(path string) (err error) {
	f, err := utils.CreateWithParents(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return errors.Wrapf(s.WritePNG(f), "saving %q", path)
}
