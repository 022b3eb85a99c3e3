package waveform

import (
	"fmt"
	"math"
	"sort"
)

// Kind names a periodic function family.
type Kind string

const (
	Sine Kind = "sine"
)

// Neutral is returned for waveform names that cannot be resolved.
// Callers multiply it by a configured scale, so an unknown reference
// degrades to "full scale, no modulation".
const Neutral = 1.0

// Def describes one named oscillator of a scene.
type Def struct {
	Name      string  `yaml:"-"`
	Kind      Kind    `yaml:"kind"`
	Frequency float64 `yaml:"frequency"` // cycles per full loop
	Phase     float64 `yaml:"phase"`     // radians
}

// Validate reports definitions the evaluator cannot handle.
func (d Def) Validate() error {
	switch d.Kind {
	case Sine:
		return nil
	default:
		return fmt.Errorf("waveform %q: unsupported kind %q", d.Name, d.Kind)
	}
}

// Eval returns the value at normalized time t in [0, 1). The amplitude is
// halved, so sine waveforms stay within [-0.5, 0.5].
func (d Def) Eval(t float64) float64 {
	switch d.Kind {
	case Sine:
		return math.Sin(d.Frequency*t*2*math.Pi+d.Phase) / 2
	default:
		return Neutral
	}
}

// Table is the read-only lookup of declared waveforms shared by all frames.
type Table map[string]Def

// Lookup returns the definition registered under name.
func (tb Table) Lookup(name string) (Def, bool) {
	d, ok := tb[name]
	return d, ok
}

// Names returns the declared names in sorted order.
func (tb Table) Names() []string {
	names := make([]string, 0, len(tb))
	for n := range tb {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Time converts a frame index into the normalized loop position i/frames.
func Time(i, frames int) float64 {
	return float64(i) / float64(frames)
}
