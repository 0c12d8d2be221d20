package viz

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/goregular"
)

var font *truetype.Font

// init sets up the fonts we want to use.
func init() {
	var err error
	font, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// Named colors used by the figures.
var (
	Black      = mustParseHex("#000000")
	White      = mustParseHex("#ffffff")
	Gray       = mustParseHex("#808080")
	Blue       = mustParseHex("#0000ff")
	Green      = mustParseHex("#008000")
	Red        = mustParseHex("#ff0000")
	Gold       = mustParseHex("#ffd700")
	LightPink  = mustParseHex("#ffb6c1")
	LightGreen = mustParseHex("#90ee90")
)

// mustParseHex is colorful.Hex that panics on a malformed hex string.
func mustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with the given opacity in [0, 1].
func WithAlpha(c colorful.Color, alpha float64) color.Color {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(255 * math.Max(0, math.Min(1, alpha))))}
}

func setFontSize(dc *gg.Context, size float64) {
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: size}))
}

// drawStar traces a five pointed star centered at (x, y) with outer radius r.
func drawStar(dc *gg.Context, x, y, r float64) {
	const points = 5
	inner := r * 0.4
	for i := 0; i < 2*points; i++ {
		radius := r
		if i%2 == 1 {
			radius = inner
		}
		angle := -math.Pi/2 + float64(i)*math.Pi/points
		px, py := x+radius*math.Cos(angle), y+radius*math.Sin(angle)
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.ClosePath()
}

// tickStep picks a round axis step giving at most maxTicks intervals over length.
func tickStep(length float64, maxTicks int) float64 {
	for _, step := range []float64{0.1, 0.2, 0.25, 0.5, 1, 2, 5, 10, 20, 50, 100} {
		if length/step <= float64(maxTicks) {
			return step
		}
	}
	return math.Pow(10, math.Ceil(math.Log10(length/float64(maxTicks))))
}
