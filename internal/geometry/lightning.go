package geometry

import "fmt"

// Lightning is a zig-zag bolt hanging from row y = h of the raster.
type Lightning struct {
	Length          float64 // fraction of canvas height per unit of (wiggle+1)
	Angle           float64 // degrees; kept for scene compatibility, not used
	Zigs            int
	BaseWidth       float64 // fraction of canvas width
	StartHorizontal float64 // fraction of canvas width
	Wiggle          float64
}

// DefaultLightning returns the baseline bolt.
func DefaultLightning() Lightning {
	return Lightning{
		Length:          0.3,
		Angle:           45,
		Zigs:            7,
		BaseWidth:       0.25,
		StartHorizontal: 0.75,
		Wiggle:          1,
	}
}

// Polygon returns the 4*Zigs points of the bolt in emission order: a
// descending pass from the tip back to the top, then an ascending pass.
func (l Lightning) Polygon(w, h int) (Polygon, error) {
	if l.Zigs <= 0 {
		return nil, fmt.Errorf("lightning: %w (got %d)", ErrNoZigs, l.Zigs)
	}

	fw, fh := float64(w), float64(h)
	zigs := float64(l.Zigs)
	center := l.StartHorizontal * fw
	baseW := l.BaseWidth * fw
	length := l.Length * (l.Wiggle + 1)

	poly := make(Polygon, 0, 4*l.Zigs)
	for z := l.Zigs; z >= 1; z-- {
		fz := float64(z)
		x := center - (baseW/2)*fz/zigs
		y := fz * length * fh / zigs
		poly = append(poly, Point{X: x, Y: fh - y}, Point{X: x + ZigJitter, Y: fh - y})
	}
	for z := 0; z < l.Zigs; z++ {
		fz := float64(z - 1)
		x := center + (baseW/2)*fz/zigs
		y := fz * length * fh / zigs
		poly = append(poly, Point{X: x, Y: fh - y}, Point{X: x - ZigJitter, Y: fh - y})
	}

	return poly, nil
}
