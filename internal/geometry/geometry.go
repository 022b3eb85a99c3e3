// Package geometry converts resolved shape parameters into polygons in
// raster pixel space. Spires stand on row y = 0 and lightning hangs from
// row y = h; the compositor's final 180° rotation puts the baseline at the
// bottom of the frame.
package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// Point is a position in pixel space.
type Point struct {
	X, Y float64
}

// Polygon is an ordered list of points, implicitly closed by the fill.
type Polygon []Point

// Rotate180 applies the point transform (x, y) -> (w-x, h-y).
func (p Polygon) Rotate180(w, h float64) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = Point{X: w - pt.X, Y: h - pt.Y}
	}
	return out
}

// WiggleScaling selects how the horizontal apex wiggle is converted to pixels.
type WiggleScaling int

const (
	// WiggleFixed multiplies x_wiggle by FixedWiggleX pixels.
	WiggleFixed WiggleScaling = iota
	// WiggleCanvas multiplies x_wiggle by the canvas width.
	WiggleCanvas
)

func (w WiggleScaling) String() string {
	switch w {
	case WiggleFixed:
		return "fixed"
	case WiggleCanvas:
		return "canvas"
	default:
		return fmt.Sprintf("WiggleScaling(%d)", int(w))
	}
}

// ParseWiggleScaling accepts "fixed" (or empty) and "canvas".
func ParseWiggleScaling(s string) (WiggleScaling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fixed":
		return WiggleFixed, nil
	case "canvas":
		return WiggleCanvas, nil
	default:
		return WiggleFixed, fmt.Errorf("unknown wiggle scaling %q", s)
	}
}

// Wiggle and jitter constants carried over without a documented rationale.
const (
	BaseWiggleFactor = 0.25 // share of the base width added per unit of base wiggle
	FixedWiggleX     = 50.0 // px per unit of x wiggle in WiggleFixed mode
	WiggleY          = 25.0 // px per unit of y wiggle
	ZigJitter        = 10.0 // px offset between the two points of a zig
)

// ErrNoZigs is returned for lightning with a non-positive zig count.
var ErrNoZigs = errors.New("zig count must be positive")
