package scene

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/spiredance/internal/waveform"
)

// ParamKind tags the variant held by a Param.
type ParamKind int

const (
	ParamLiteral ParamKind = iota
	ParamScaled
)

// Param is a shape parameter: either a literal constant or a scale applied
// to a waveform that is evaluated once per frame.
//
// In scene files a literal is a plain number. A scaled value is written as
// {scale: 0.5, waveform: slow} or as a pair [0.5, slow]; a missing or null
// waveform means "no modulation" and resolves to the scale itself.
type Param struct {
	Kind     ParamKind
	Value    float64 // literal value or scale
	Waveform string
}

func Literal(v float64) Param {
	return Param{Kind: ParamLiteral, Value: v}
}

func Scaled(scale float64, name string) Param {
	return Param{Kind: ParamScaled, Value: scale, Waveform: name}
}

// Resolve evaluates the parameter for one frame.
func (p Param) Resolve(r waveform.Resolver) float64 {
	if p.Kind == ParamLiteral {
		return p.Value
	}
	return p.Value * r.Value(p.Waveform)
}

func (p Param) String() string {
	if p.Kind == ParamLiteral {
		return fmt.Sprintf("%g", p.Value)
	}
	return fmt.Sprintf("%g*%s", p.Value, p.Waveform)
}

type scaledParam struct {
	Scale    *float64 `yaml:"scale"`
	Waveform string   `yaml:"waveform,omitempty"`
}

func (p *Param) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("line %d: parameter must be a number: %w", node.Line, err)
		}
		*p = Literal(v)
		return nil

	case yaml.MappingNode:
		if err := checkFields(node, scaledFields); err != nil {
			return err
		}
		var sp scaledParam
		if err := node.Decode(&sp); err != nil {
			return err
		}
		scale := 1.0
		if sp.Scale != nil {
			scale = *sp.Scale
		}
		*p = Scaled(scale, sp.Waveform)
		return nil

	case yaml.SequenceNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: scaled parameter must be [scale, waveform]", node.Line)
		}
		var scale float64
		if err := node.Content[0].Decode(&scale); err != nil {
			return fmt.Errorf("line %d: scale must be a number: %w", node.Line, err)
		}
		var name string
		if n := node.Content[1]; !(n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null") {
			if err := n.Decode(&name); err != nil {
				return err
			}
		}
		*p = Scaled(scale, name)
		return nil
	}
	return fmt.Errorf("line %d: unsupported parameter syntax", node.Line)
}

func (p Param) MarshalYAML() (interface{}, error) {
	if p.Kind == ParamLiteral {
		return p.Value, nil
	}
	return scaledParam{Scale: &p.Value, Waveform: p.Waveform}, nil
}
