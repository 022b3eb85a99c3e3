package geometry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPoint(t *testing.T, want, got Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
}

func TestSpireStill(t *testing.T) {
	s := Spire{
		Height:     0.75,
		BaseWidth:  0.3,
		BaseCenter: 0.5,
	}

	poly := s.Polygon(150, 100)
	require.Len(t, poly, 3)
	assertPoint(t, Point{52.5, 0}, poly[0])
	assertPoint(t, Point{75, 75}, poly[1])
	assertPoint(t, Point{97.5, 0}, poly[2])
}

func TestSpireWiggles(t *testing.T) {
	s := DefaultSpire()
	s.BaseWiggle = 0.4
	s.XWiggle = -0.5
	s.YWiggle = 0.2

	poly := s.Polygon(200, 100)
	base := 0.5 + 0.4*0.5*0.25
	assertPoint(t, Point{(0.5 - base/2) * 200, 0}, poly[0])
	assertPoint(t, Point{100 - 25, 75 + 5}, poly[1])
	assertPoint(t, Point{(0.5 + base/2) * 200, 0}, poly[2])

	s.Scaling = WiggleCanvas
	poly = s.Polygon(200, 100)
	assertPoint(t, Point{100 - 100, 80}, poly[1])
}

func TestSpireBaseline(t *testing.T) {
	tests := []Spire{
		DefaultSpire(),
		{Height: 0.2, BaseWidth: 0.1, BaseCenter: 0.2, BaseWiggle: -1, XWiggle: 0.3, YWiggle: -0.6},
		{Height: 0.9, BaseWidth: 0.8, BaseCenter: 0.9, BaseWiggle: 1, XWiggle: 1, YWiggle: 1, Scaling: WiggleCanvas},
	}

	for _, s := range tests {
		poly := s.Polygon(320, 240)
		require.Len(t, poly, 3)
		assert.Equal(t, 0.0, poly[0].Y)
		assert.Equal(t, 0.0, poly[2].Y)
		assert.LessOrEqual(t, poly[0].X, poly[2].X)
	}
}

func TestLightningPointCount(t *testing.T) {
	for _, zigs := range []int{1, 3, 7, 15} {
		l := DefaultLightning()
		l.Zigs = zigs
		poly, err := l.Polygon(150, 100)
		require.NoError(t, err)
		assert.Len(t, poly, 4*zigs)
	}
}

func TestLightningShape(t *testing.T) {
	poly, err := DefaultLightning().Polygon(150, 100)
	require.NoError(t, err)

	// tip of the descending pass: z = 7
	assertPoint(t, Point{93.75, 40}, poly[0])
	assertPoint(t, Point{103.75, 40}, poly[1])

	// first point of the ascending pass: z = 0, offset index -1
	step := 0.6 * 100 / 7
	assertPoint(t, Point{112.5 - 18.75/7, 100 + step}, poly[28-14])
	assertPoint(t, Point{112.5 - 18.75/7 - 10, 100 + step}, poly[28-13])
}

func TestLightningRejectsNoZigs(t *testing.T) {
	for _, zigs := range []int{0, -3} {
		l := DefaultLightning()
		l.Zigs = zigs
		poly, err := l.Polygon(150, 100)
		assert.Nil(t, poly)
		assert.True(t, errors.Is(err, ErrNoZigs), "zigs=%d: %v", zigs, err)
	}
}

func TestRotate180(t *testing.T) {
	p := Polygon{{0, 0}, {10, 5}}
	r := p.Rotate180(150, 100)
	assert.Equal(t, Polygon{{150, 100}, {140, 95}}, r)
	assert.Equal(t, p, r.Rotate180(150, 100))
}

func TestParseWiggleScaling(t *testing.T) {
	tests := []struct {
		in      string
		want    WiggleScaling
		wantErr bool
	}{
		{"", WiggleFixed, false},
		{"fixed", WiggleFixed, false},
		{"Canvas", WiggleCanvas, false},
		{"width", WiggleFixed, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWiggleScaling(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.String())
		})
	}
}
