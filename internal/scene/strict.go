package scene

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// node.Decode внутри UnmarshalYAML не наследует KnownFields декодера,
// поэтому ключи фигур и целочисленные поля проверяются по дереву узлов.

var (
	spireFields     = fieldNames(SpireSpec{})
	lightningFields = fieldNames(LightningSpec{})
	triggerFields   = fieldNames(Trigger{})
	scaledFields    = fieldNames(scaledParam{})
)

// fieldNames собирает yaml-имена полей структуры.
func fieldNames(v any) map[string]bool {
	names := make(map[string]bool)
	t := reflect.TypeOf(v)
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			continue
		}
		names[name] = true
	}
	return names
}

// checkFields отклоняет ключи отображения, которых нет в allowed.
func checkFields(node *yaml.Node, allowed map[string]bool, extra ...string) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if allowed[key.Value] || contains(extra, key.Value) {
			continue
		}
		return fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
	}
	return nil
}

// checkTriggers проверяет ключи каждого условия в списке when.
func checkTriggers(node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "when" || node.Content[i+1].Kind != yaml.SequenceNode {
			continue
		}
		for _, tr := range node.Content[i+1].Content {
			if err := checkFields(tr, triggerFields); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkInts требует целое значение у перечисленных ключей: yaml.v3 молча
// отбрасывает дробную часть при декодировании в int.
func checkInts(node *yaml.Node, keys ...string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if !contains(keys, key.Value) {
			continue
		}
		if val.Kind != yaml.ScalarNode || val.ShortTag() != "!!int" {
			return fmt.Errorf("line %d: %s must be an integer, got %q", val.Line, key.Value, val.Value)
		}
	}
	return nil
}

// checkCanvas проверяет целочисленные поля корня документа.
func checkCanvas(data []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	return checkInts(root.Content[0], "frame_count", "width", "height")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
