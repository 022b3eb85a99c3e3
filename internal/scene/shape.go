package scene

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/spiredance/internal/geometry"
	"github.com/ivlev/spiredance/internal/waveform"
)

// Shape type names used in scene files.
const (
	TypeSpire     = "spire"
	TypeLightning = "lightning"
)

// SpireSpec describes one spire layer.
type SpireSpec struct {
	Height     Param  `yaml:"spire_height"`
	BaseWidth  Param  `yaml:"spire_base_width"`
	BaseCenter Param  `yaml:"spire_base_center"`
	BaseWiggle Param  `yaml:"base_wiggle"`
	XWiggle    Param  `yaml:"x_wiggle"`
	YWiggle    Param  `yaml:"y_wiggle"`
	HueShift   int    `yaml:"hue_shift,omitempty"` // degrees added to the frame hue
	Color      string `yaml:"color,omitempty"`     // fixed fill instead of the frame hue
}

// DefaultSpireSpec mirrors geometry.DefaultSpire: wiggles default to 1.
func DefaultSpireSpec() SpireSpec {
	d := geometry.DefaultSpire()
	return SpireSpec{
		Height:     Literal(d.Height),
		BaseWidth:  Literal(d.BaseWidth),
		BaseCenter: Literal(d.BaseCenter),
		BaseWiggle: Literal(d.BaseWiggle),
		XWiggle:    Literal(d.XWiggle),
		YWiggle:    Literal(d.YWiggle),
	}
}

// Geometry resolves the parameters for one frame.
func (s SpireSpec) Geometry(r waveform.Resolver, scaling geometry.WiggleScaling) geometry.Spire {
	return geometry.Spire{
		Height:     s.Height.Resolve(r),
		BaseWidth:  s.BaseWidth.Resolve(r),
		BaseCenter: s.BaseCenter.Resolve(r),
		BaseWiggle: s.BaseWiggle.Resolve(r),
		XWiggle:    s.XWiggle.Resolve(r),
		YWiggle:    s.YWiggle.Resolve(r),
		Scaling:    scaling,
	}
}

func (s SpireSpec) params() []Param {
	return []Param{s.Height, s.BaseWidth, s.BaseCenter, s.BaseWiggle, s.XWiggle, s.YWiggle}
}

// Trigger gates a lightning layer: it holds while the named waveform is
// strictly above the threshold.
type Trigger struct {
	Waveform string  `yaml:"waveform"`
	Above    float64 `yaml:"above"`
}

// LightningSpec describes one lightning layer.
type LightningSpec struct {
	Length          Param     `yaml:"length"`
	Angle           float64   `yaml:"angle"`
	Zigs            int       `yaml:"zig_count"`
	BaseWidth       Param     `yaml:"base_width"`
	StartHorizontal Param     `yaml:"start_horizontal"`
	Wiggle          Param     `yaml:"wiggle"`
	Color           string    `yaml:"color,omitempty"`
	When            []Trigger `yaml:"when,omitempty"`
}

func DefaultLightningSpec() LightningSpec {
	d := geometry.DefaultLightning()
	return LightningSpec{
		Length:          Literal(d.Length),
		Angle:           d.Angle,
		Zigs:            d.Zigs,
		BaseWidth:       Literal(d.BaseWidth),
		StartHorizontal: Literal(d.StartHorizontal),
		Wiggle:          Literal(d.Wiggle),
	}
}

// Geometry resolves the parameters for one frame.
func (l LightningSpec) Geometry(r waveform.Resolver) geometry.Lightning {
	return geometry.Lightning{
		Length:          l.Length.Resolve(r),
		Angle:           l.Angle,
		Zigs:            l.Zigs,
		BaseWidth:       l.BaseWidth.Resolve(r),
		StartHorizontal: l.StartHorizontal.Resolve(r),
		Wiggle:          l.Wiggle.Resolve(r),
	}
}

// Visible reports whether every trigger holds for the frame. Unknown
// waveform names resolve to the neutral value like any other reference.
func (l LightningSpec) Visible(r waveform.Resolver) bool {
	for _, tr := range l.When {
		if !(r.Value(tr.Waveform) > tr.Above) {
			return false
		}
	}
	return true
}

func (l LightningSpec) params() []Param {
	return []Param{l.Length, l.BaseWidth, l.StartHorizontal, l.Wiggle}
}

// ShapeSpec holds exactly one of the two shape variants.
type ShapeSpec struct {
	Spire     *SpireSpec
	Lightning *LightningSpec
}

func Spire(s SpireSpec) ShapeSpec         { return ShapeSpec{Spire: &s} }
func Lightning(l LightningSpec) ShapeSpec { return ShapeSpec{Lightning: &l} }

// Type returns the scene-file type name of the variant.
func (s ShapeSpec) Type() string {
	switch {
	case s.Spire != nil && s.Lightning == nil:
		return TypeSpire
	case s.Lightning != nil && s.Spire == nil:
		return TypeLightning
	}
	return ""
}

func (s *ShapeSpec) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}

	switch head.Type {
	case TypeSpire:
		if err := checkFields(node, spireFields, "type"); err != nil {
			return err
		}
		spec := DefaultSpireSpec()
		if err := node.Decode(&spec); err != nil {
			return err
		}
		*s = Spire(spec)
	case TypeLightning:
		if err := checkFields(node, lightningFields, "type"); err != nil {
			return err
		}
		if err := checkInts(node, "zig_count"); err != nil {
			return err
		}
		if err := checkTriggers(node); err != nil {
			return err
		}
		spec := DefaultLightningSpec()
		if err := node.Decode(&spec); err != nil {
			return err
		}
		*s = Lightning(spec)
	case "":
		return fmt.Errorf("line %d: shape without type", node.Line)
	default:
		return fmt.Errorf("line %d: unknown shape type %q", node.Line, head.Type)
	}
	return nil
}

func (s ShapeSpec) MarshalYAML() (interface{}, error) {
	switch s.Type() {
	case TypeSpire:
		return struct {
			Type      string `yaml:"type"`
			SpireSpec `yaml:",inline"`
		}{TypeSpire, *s.Spire}, nil
	case TypeLightning:
		return struct {
			Type          string `yaml:"type"`
			LightningSpec `yaml:",inline"`
		}{TypeLightning, *s.Lightning}, nil
	}
	return nil, fmt.Errorf("shape must hold exactly one variant")
}
