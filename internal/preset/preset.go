// Package preset holds the named animations that ship with the binary.
// The library is built once at startup and never changes afterwards.
package preset

import (
	"fmt"
	"sort"

	"github.com/ivlev/spiredance/internal/scene"
	"github.com/ivlev/spiredance/internal/source"
	"github.com/ivlev/spiredance/internal/waveform"
)

// Canvas overrides the frame count and size of a preset. Zero fields keep
// the preset's own values.
type Canvas struct {
	Frames int
	Width  int
	Height int
}

// Apply overrides the frame count and canvas of sc.
func (c Canvas) Apply(sc *scene.Scene) {
	sc.FrameCount, sc.Width, sc.Height = c.apply(sc.FrameCount, sc.Width, sc.Height)
}

func (c Canvas) apply(frames, width, height int) (int, int, int) {
	if c.Frames != 0 {
		frames = c.Frames
	}
	if c.Width != 0 {
		width = c.Width
	}
	if c.Height != 0 {
		height = c.Height
	}
	return frames, width, height
}

// Preset is one named animation. Scene-backed presets can be dumped as a
// scene file; choreographies exist only as code.
type Preset struct {
	Name        string
	Description string

	scene func() *scene.Scene
	build func(c Canvas) (source.Source, error)
}

// Scene returns a fresh copy of the preset's scene, or false for presets
// that are not expressible as one.
func (p Preset) Scene(c Canvas) (*scene.Scene, bool) {
	if p.scene == nil {
		return nil, false
	}
	sc := p.scene()
	c.Apply(sc)
	return sc, true
}

// Source builds the frame source of the preset.
func (p Preset) Source(c Canvas) (source.Source, error) {
	if sc, ok := p.Scene(c); ok {
		src, err := source.NewSceneSource(p.Name, sc)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	return p.build(c)
}

// Library maps preset names to presets.
type Library struct {
	presets map[string]Preset
}

// NewLibrary собирает встроенные пресеты.
func NewLibrary() *Library {
	l := &Library{presets: make(map[string]Preset)}
	l.add(Preset{
		Name:        "default",
		Description: "одна неподвижная игла, цвет по кругу",
		scene:       scene.Default,
	})
	l.add(Preset{
		Name:        "pulse",
		Description: "две иглы на волнах и молния по порогу",
		scene:       pulseScene,
	})
	l.add(Preset{
		Name:        DemoName,
		Description: "четыре иглы и три накапливающиеся молнии, три кадра на тик",
		build: func(c Canvas) (source.Source, error) {
			frames, w, h := c.apply(scene.DefaultFrames, scene.DefaultWidth, scene.DefaultHeight)
			d, err := NewDemo(frames, w, h)
			if err != nil {
				return nil, err
			}
			return d, nil
		},
	})
	return l
}

func (l *Library) add(p Preset) {
	l.presets[p.Name] = p
}

// Get returns the preset called name.
func (l *Library) Get(name string) (Preset, error) {
	p, ok := l.presets[name]
	if !ok {
		return Preset{}, &scene.ConfigError{
			Source: "preset",
			Err:    fmt.Errorf("unknown preset %q (known: %v)", name, l.Names()),
		}
	}
	return p, nil
}

// Names returns the preset names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.presets))
	for n := range l.presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var builtin = NewLibrary()

// Get looks name up in the built-in library.
func Get(name string) (Preset, error) { return builtin.Get(name) }

// Names lists the built-in presets.
func Names() []string { return builtin.Names() }

func pulseScene() *scene.Scene {
	left := scene.DefaultSpireSpec()
	left.BaseCenter = scene.Literal(0.3)
	left.BaseWidth = scene.Literal(0.2)
	left.Height = scene.Literal(0.6)
	left.BaseWiggle = scene.Scaled(1, "sway")
	left.XWiggle = scene.Scaled(0.5, "sway")
	left.YWiggle = scene.Scaled(1, "breath")

	right := left
	right.BaseCenter = scene.Literal(0.7)
	right.XWiggle = scene.Scaled(-0.5, "sway")
	right.HueShift = 180

	bolt := scene.DefaultLightningSpec()
	bolt.StartHorizontal = scene.Literal(0.5)
	bolt.Wiggle = scene.Scaled(1, "osc6")
	bolt.Zigs = 6
	bolt.When = []scene.Trigger{{Waveform: "breath", Above: 0.3}}

	return &scene.Scene{
		FrameCount: scene.DefaultFrames,
		Width:      scene.DefaultWidth,
		Height:     scene.DefaultHeight,
		Waveforms: map[string]waveform.Def{
			"sway":   {Kind: waveform.Sine, Frequency: 2},
			"breath": {Kind: waveform.Sine, Frequency: 1, Phase: 0.5},
		},
		Shapes: []scene.ShapeSpec{scene.Spire(left), scene.Spire(right), scene.Lightning(bolt)},
	}
}
