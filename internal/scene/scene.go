// Package scene holds the declarative description of one animation: canvas,
// frame count, ordered shapes and the named waveforms driving them.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/spiredance/internal/compositor"
	"github.com/ivlev/spiredance/internal/geometry"
	"github.com/ivlev/spiredance/internal/waveform"
)

// Defaults used when a scene or the command line leaves them out.
const (
	DefaultFrames = 100
	DefaultWidth  = 150
	DefaultHeight = 100
)

// Scene is the complete description of an animation request. It is not
// modified during generation.
type Scene struct {
	FrameCount    int                     `yaml:"frame_count"`
	Width         int                     `yaml:"width"`
	Height        int                     `yaml:"height"`
	WiggleScaling string                  `yaml:"wiggle_scaling,omitempty"` // fixed | canvas
	Background    string                  `yaml:"background,omitempty"`
	Flash         string                  `yaml:"flash,omitempty"`
	Waveforms     map[string]waveform.Def `yaml:"waveforms,omitempty"`
	Shapes        []ShapeSpec             `yaml:"shapes"`
}

// sceneFile also accepts the bare "spires" list of the legacy request body.
type sceneFile struct {
	Scene  `yaml:",inline"`
	Spires []spireEntry `yaml:"spires,omitempty"`
}

type spireEntry struct{ SpireSpec }

func (e *spireEntry) UnmarshalYAML(node *yaml.Node) error {
	if err := checkFields(node, spireFields); err != nil {
		return err
	}
	spec := DefaultSpireSpec()
	if err := node.Decode(&spec); err != nil {
		return err
	}
	e.SpireSpec = spec
	return nil
}

// Mode describes how a scene drives its parameters.
type Mode string

const (
	// ModeLiteral: every parameter is a constant.
	ModeLiteral Mode = "literal"
	// ModeDeclarative: at least one parameter is scaled by a waveform.
	ModeDeclarative Mode = "declarative"
)

// Default returns the baseline scene: one still spire.
func Default() *Scene {
	spire := DefaultSpireSpec()
	spire.BaseWiggle = Literal(0)
	spire.XWiggle = Literal(0)
	spire.YWiggle = Literal(0)
	spire.BaseWidth = Literal(0.3)
	spire.BaseCenter = Literal(0.5)

	return &Scene{
		FrameCount: DefaultFrames,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Shapes:     []ShapeSpec{Spire(spire)},
	}
}

// Parse decodes a YAML or JSON scene. Missing canvas fields take the
// defaults; missing shape fields take the shape defaults.
func Parse(data []byte) (*Scene, error) {
	f := sceneFile{Scene: Scene{
		FrameCount: DefaultFrames,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
	}}

	if err := checkCanvas(data); err != nil {
		return nil, &ConfigError{Err: err}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, &ConfigError{Err: err}
	}

	sc := f.Scene
	for _, s := range f.Spires {
		sc.Shapes = append(sc.Shapes, Spire(s.SpireSpec))
	}
	for name, d := range sc.Waveforms {
		d.Name = name
		sc.Waveforms[name] = d
	}
	return &sc, nil
}

// Read loads a scene file.
func Read(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(data)
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			ce.Source = filepath.Base(path)
		}
		return nil, err
	}
	return sc, nil
}

// Marshal encodes the scene as YAML.
func Marshal(sc *Scene) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write saves the scene as a YAML file.
func Write(sc *Scene, path string) error {
	data, err := Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Mode reports whether any parameter is driven by a waveform.
func (s *Scene) Mode() Mode {
	for _, sh := range s.Shapes {
		var params []Param
		switch {
		case sh.Spire != nil:
			params = sh.Spire.params()
		case sh.Lightning != nil:
			params = sh.Lightning.params()
		}
		for _, p := range params {
			if p.Kind == ParamScaled {
				return ModeDeclarative
			}
		}
	}
	return ModeLiteral
}

// Validate checks the scene before any frame is generated.
func (s *Scene) Validate() error {
	_, err := s.Compile()
	return err
}

// Plan is a validated scene with its colors, waveform table and wiggle
// policy resolved.
type Plan struct {
	FrameCount int
	Width      int
	Height     int
	Mode       Mode
	Scaling    geometry.WiggleScaling
	Backdrop   compositor.Backdrop
	Table      waveform.Table
	Shapes     []PlannedShape
}

// PlannedShape is a shape with its fixed fill resolved. Fill is nil for
// spires that follow the frame hue.
type PlannedShape struct {
	ShapeSpec
	Fill *color.RGBA
}

// Compile validates the scene and resolves everything that does not change
// between frames.
func (s *Scene) Compile() (*Plan, error) {
	if s.FrameCount <= 0 {
		return nil, &InvalidParameterError{Param: "frame_count", Value: s.FrameCount, Reason: "must be positive"}
	}
	if s.Width <= 0 {
		return nil, &InvalidParameterError{Param: "width", Value: s.Width, Reason: "must be positive"}
	}
	if s.Height <= 0 {
		return nil, &InvalidParameterError{Param: "height", Value: s.Height, Reason: "must be positive"}
	}

	scaling, err := geometry.ParseWiggleScaling(s.WiggleScaling)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	backdrop := compositor.DefaultBackdrop()
	if s.Background != "" {
		if backdrop.Default, err = compositor.ParseColor(s.Background); err != nil {
			return nil, &ConfigError{Err: fmt.Errorf("background: %w", err)}
		}
	}
	if s.Flash != "" {
		if backdrop.Flash, err = compositor.ParseColor(s.Flash); err != nil {
			return nil, &ConfigError{Err: fmt.Errorf("flash: %w", err)}
		}
	}

	table := make(waveform.Table, len(s.Waveforms))
	for name, d := range s.Waveforms {
		d.Name = name
		if err := d.Validate(); err != nil {
			return nil, &ConfigError{Err: err}
		}
		table[name] = d
	}

	plan := &Plan{
		FrameCount: s.FrameCount,
		Width:      s.Width,
		Height:     s.Height,
		Mode:       s.Mode(),
		Scaling:    scaling,
		Backdrop:   backdrop,
		Table:      table,
		Shapes:     make([]PlannedShape, 0, len(s.Shapes)),
	}

	for i, sh := range s.Shapes {
		ps := PlannedShape{ShapeSpec: sh}
		var colorName string
		switch sh.Type() {
		case TypeSpire:
			colorName = sh.Spire.Color
		case TypeLightning:
			if sh.Lightning.Zigs <= 0 {
				return nil, &InvalidParameterError{
					Param:  fmt.Sprintf("shapes[%d].zig_count", i),
					Value:  sh.Lightning.Zigs,
					Reason: "must be positive",
				}
			}
			c := compositor.LightningColor
			ps.Fill = &c
			colorName = sh.Lightning.Color
		default:
			return nil, configErr("shapes[%d]: must be exactly one of spire or lightning", i)
		}

		if colorName != "" {
			c, err := compositor.ParseColor(colorName)
			if err != nil {
				return nil, configErr("shapes[%d]: %w", i, err)
			}
			ps.Fill = &c
		}
		plan.Shapes = append(plan.Shapes, ps)
	}

	return plan, nil
}
