package waveform

import "math"

// Built-in oscillator names. They are always available to triggers and
// scaled parameters, even when a scene declares no waveforms.
const (
	Osc2 = "osc2"
	Osc6 = "osc6"
	Osc7 = "osc7"
)

// Oscillators holds the three fixed full-amplitude sine waves at 2x, 6x and
// 7x the loop frequency, all starting at phase 0.
type Oscillators struct {
	N2 float64
	N6 float64
	N7 float64
}

// At computes the built-in oscillators for normalized time t.
func At(t float64) Oscillators {
	return Oscillators{
		N2: math.Sin(2 * t * 2 * math.Pi),
		N6: math.Sin(6 * t * 2 * math.Pi),
		N7: math.Sin(7 * t * 2 * math.Pi),
	}
}

// Lookup returns the named built-in value.
func (o Oscillators) Lookup(name string) (float64, bool) {
	switch name {
	case Osc2:
		return o.N2, true
	case Osc6:
		return o.N6, true
	case Osc7:
		return o.N7, true
	}
	return 0, false
}

// Hue maps the primary oscillator onto an integer hue in [0, 360).
func (o Oscillators) Hue() int {
	return int(360*(o.N2+1)/2) % 360
}

// Resolver evaluates waveform references for a single frame.
type Resolver struct {
	T     float64
	Table Table
	Osc   Oscillators
}

// NewResolver prepares the per-frame lookup for normalized time t.
func NewResolver(table Table, t float64) Resolver {
	return Resolver{T: t, Table: table, Osc: At(t)}
}

// Lookup resolves name against the declared table first, then the
// built-in oscillators.
func (r Resolver) Lookup(name string) (float64, bool) {
	if d, ok := r.Table.Lookup(name); ok {
		return d.Eval(r.T), true
	}
	return r.Osc.Lookup(name)
}

// Value resolves name, falling back to Neutral when the name is empty or
// unknown. The fallback silently disables the modulation instead of failing.
func (r Resolver) Value(name string) float64 {
	if name == "" {
		return Neutral
	}
	v, ok := r.Lookup(name)
	if !ok {
		return Neutral
	}
	return v
}
