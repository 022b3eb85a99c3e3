package compositor

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Palette of the baseline animation.
var (
	BackgroundColor = MustParseColor("#00AF50")
	SpireColor      = MustParseColor("#81007F")
	LightningColor  = MustParseColor("#FFFF00")
)

// Spire fills use fixed saturation and lightness; only the hue moves.
const (
	SpireSaturation = 0.5
	SpireLightness  = 0.5
)

// HSL converts hue in degrees and saturation/lightness in [0, 1] to an
// opaque RGBA color.
func HSL(hue int, s, l float64) color.RGBA {
	h := ((hue % 360) + 360) % 360
	r, g, b := colorful.Hsl(float64(h), s, l).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// SpireFill returns the spire color for the frame hue shifted by a per-layer
// offset in degrees.
func SpireFill(hue, shift int) color.RGBA {
	return HSL(hue+shift, SpireSaturation, SpireLightness)
}

// ParseColor accepts "#rrggbb", "#rgb", "hsl(h, s%, l%)" and SVG color names.
func ParseColor(s string) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return color.RGBA{}, fmt.Errorf("empty color")
	case strings.HasPrefix(v, "#"):
		c, err := colorful.Hex(expandShortHex(v))
		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	case strings.HasPrefix(v, "hsl(") && strings.HasSuffix(v, ")"):
		return parseHSL(s, v[4:len(v)-1])
	}

	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}

// MustParseColor is ParseColor for package-level constants.
func MustParseColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func expandShortHex(v string) string {
	if len(v) != 4 {
		return v
	}
	return string([]byte{'#', v[1], v[1], v[2], v[2], v[3], v[3]})
}

func parseHSL(orig, body string) (color.RGBA, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("color %q: want hsl(h, s%%, l%%)", orig)
	}

	hue, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: hue: %w", orig, err)
	}
	var sl [2]float64
	for i, p := range parts[1:] {
		p = strings.TrimSuffix(strings.TrimSpace(p), "%")
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: %w", orig, err)
		}
		sl[i] = f / 100
	}
	return HSL(int(hue), sl[0], sl[1]), nil
}
