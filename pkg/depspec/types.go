package depspec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Dependencies is a name to version constraint mapping
// that remembers the order in which names were added.
type Dependencies struct {
	keys   []string
	values map[string]string
}

func NewDependencies() *Dependencies {
	return &Dependencies{values: map[string]string{}}
}

// Set records a constraint. Setting an existing name replaces
// its constraint but keeps its original position.
func (d *Dependencies) Set(name, constraint string) {
	if d.values == nil {
		d.values = map[string]string{}
	}
	if _, ok := d.values[name]; !ok {
		d.keys = append(d.keys, name)
	}
	d.values[name] = constraint
}

func (d *Dependencies) Get(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d.values[name]
	return v, ok
}

// Keys returns the names in insertion order.
func (d *Dependencies) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

func (d *Dependencies) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Map returns an unordered copy.
func (d *Dependencies) Map() map[string]string {
	out := make(map[string]string, d.Len())
	for _, k := range d.Keys() {
		out[k] = d.values[k]
	}
	return out
}

// Clone returns a deep copy so that entries built from the
// same record do not share state.
func (d *Dependencies) Clone() *Dependencies {
	out := NewDependencies()
	for _, k := range d.Keys() {
		out.Set(k, d.values[k])
	}
	return out
}

func (d *Dependencies) MarshalYAML() (any, error) {
	node := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}
	for _, k := range d.Keys() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: d.values[k]},
		)
	}
	return node, nil
}

func (d *Dependencies) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("dependencies must be a mapping, got kind %d at line %d", value.Kind, value.Line)
	}
	d.keys = nil
	d.values = map[string]string{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		d.Set(value.Content[i].Value, value.Content[i+1].Value)
	}
	return nil
}
