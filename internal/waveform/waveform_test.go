package waveform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSineEval(t *testing.T) {
	d := Def{Name: "w", Kind: Sine, Frequency: 1}

	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{0.25, 0.5},
		{0.5, 0},
		{0.75, -0.5},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, d.Eval(tt.t), 1e-9, "t=%.2f", tt.t)
	}

	shifted := Def{Name: "p", Kind: Sine, Frequency: 1, Phase: math.Pi / 2}
	assert.InDelta(t, 0.5, shifted.Eval(0), 1e-9)
}

func TestSineStaysInHalfAmplitude(t *testing.T) {
	d := Def{Name: "fast", Kind: Sine, Frequency: 13, Phase: 0.3}
	for i := 0; i < 500; i++ {
		v := d.Eval(Time(i, 500))
		if v < -0.5 || v > 0.5 {
			t.Fatalf("value %f out of range at frame %d", v, i)
		}
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Def{Name: "a", Kind: Sine}.Validate())
	assert.Error(t, Def{Name: "b", Kind: "square"}.Validate())
	assert.Error(t, Def{Name: "c"}.Validate())
}

func TestTimeRange(t *testing.T) {
	for _, frames := range []int{1, 7, 100} {
		for i := 0; i < frames; i++ {
			tt := Time(i, frames)
			require.GreaterOrEqual(t, tt, 0.0)
			require.Less(t, tt, 1.0)
		}
	}
}

func TestResolverFallback(t *testing.T) {
	table := Table{
		"slow": {Name: "slow", Kind: Sine, Frequency: 1},
	}
	r := NewResolver(table, 0.25)

	v, ok := r.Lookup("slow")
	require.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-9)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, Neutral, r.Value("missing"))
	assert.Equal(t, Neutral, r.Value(""))
	assert.InDelta(t, 0.5, r.Value("slow"), 1e-9)
}

func TestResolverBuiltins(t *testing.T) {
	r := NewResolver(nil, 0.125)

	v, ok := r.Lookup(Osc2)
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 1e-9) // sin(2 * 0.125 * 2pi) = sin(pi/2)

	assert.InDelta(t, math.Sin(6*0.125*2*math.Pi), r.Value(Osc6), 1e-9)
	assert.InDelta(t, math.Sin(7*0.125*2*math.Pi), r.Value(Osc7), 1e-9)

	// declared waveforms shadow built-ins
	r = NewResolver(Table{Osc2: {Name: Osc2, Kind: Sine, Frequency: 0}}, 0.125)
	assert.InDelta(t, 0, r.Value(Osc2), 1e-9)
}

func TestHueRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		h := At(Time(i, 1000)).Hue()
		if h < 0 || h >= 360 {
			t.Fatalf("hue %d out of range at frame %d", h, i)
		}
	}
	// peak of the primary oscillator wraps to 0 instead of 360
	assert.Equal(t, 0, Oscillators{N2: 1}.Hue())
	assert.Equal(t, 180, Oscillators{N2: 0}.Hue())
}

func TestTableNames(t *testing.T) {
	tb := Table{"b": {}, "a": {}, "c": {}}
	assert.Equal(t, []string{"a", "b", "c"}, tb.Names())
}
