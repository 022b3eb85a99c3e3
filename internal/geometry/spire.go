package geometry

// Spire is a tapering spike: two base points on the baseline and an apex.
// All fields are resolved real numbers; fractions are relative to the canvas.
type Spire struct {
	Height     float64 // apex height, fraction of canvas height
	BaseWidth  float64 // fraction of canvas width
	BaseCenter float64 // fraction of canvas width
	BaseWiggle float64
	XWiggle    float64
	YWiggle    float64
	Scaling    WiggleScaling
}

// DefaultSpire returns the baseline spire with unit wiggles.
func DefaultSpire() Spire {
	return Spire{
		Height:     0.75,
		BaseWidth:  0.5,
		BaseCenter: 0.5,
		BaseWiggle: 1,
		XWiggle:    1,
		YWiggle:    1,
	}
}

// Polygon returns [left base, apex, right base] for a w x h canvas.
func (s Spire) Polygon(w, h int) Polygon {
	fw, fh := float64(w), float64(h)

	base := s.BaseWidth + s.BaseWiggle*s.BaseWidth*BaseWiggleFactor
	left := Point{X: (s.BaseCenter - base/2) * fw, Y: 0}
	right := Point{X: (s.BaseCenter + base/2) * fw, Y: 0}

	kx := FixedWiggleX
	if s.Scaling == WiggleCanvas {
		kx = fw
	}
	apex := Point{
		X: s.BaseCenter*fw + s.XWiggle*kx,
		Y: s.Height*fh + s.YWiggle*WiggleY,
	}

	return Polygon{left, apex, right}
}
