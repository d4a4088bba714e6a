// Package workflow models a block-based workflow graph and derives the
// selectable output handles that upstream blocks expose to downstream
// configuration UIs.
package workflow

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BlockTypeStarter marks the designated entry-point block of a workflow.
// Starter blocks never contribute output handles.
const BlockTypeStarter = "starter"

// Block is one node in the workflow graph.
type Block struct {
	ID      string                 `yaml:"id"`
	Name    string                 `yaml:"name"`
	Type    string                 `yaml:"type"`
	Outputs map[string]OutputValue `yaml:"outputs,omitempty"`
}

// Edge is a directed connection between two blocks. Cycles are allowed.
type Edge struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// ValueKind discriminates the two shapes an output declaration can take.
type ValueKind int

const (
	ValueLeaf ValueKind = iota
	ValueMapping
)

// OutputValue is one node in a block's declared output tree: either a
// leaf field (with a type descriptor such as "string") or a mapping of
// named children. Mapping children keep declaration order so flattening
// and display stay stable across loads.
type OutputValue struct {
	Kind     ValueKind
	Type     string
	Keys     []string
	Children map[string]OutputValue
}

// Leaf returns a leaf output value with the given type descriptor.
func Leaf(typ string) OutputValue {
	return OutputValue{Kind: ValueLeaf, Type: typ}
}

// MapPair is one ordered entry of a mapping output value.
type MapPair struct {
	Key   string
	Value OutputValue
}

// Mapping returns a mapping output value preserving the given pair order.
func Mapping(pairs ...MapPair) OutputValue {
	v := OutputValue{Kind: ValueMapping, Children: make(map[string]OutputValue, len(pairs))}
	for _, p := range pairs {
		if _, dup := v.Children[p.Key]; dup {
			continue
		}
		v.Keys = append(v.Keys, p.Key)
		v.Children[p.Key] = p.Value
	}
	return v
}

// UnmarshalYAML decodes a scalar as a leaf and a mapping as ordered
// children. yaml.v3 parses JSON documents too, so the same decoder serves
// workflow files and database columns.
func (v *OutputValue) UnmarshalYAML(node *yaml.Node) error {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.ScalarNode:
		*v = Leaf(node.Value)
		return nil
	case yaml.SequenceNode:
		// Arrays are opaque: selectable as a whole, not per element.
		*v = Leaf("array")
		return nil
	case yaml.MappingNode:
		out := OutputValue{Kind: ValueMapping, Children: make(map[string]OutputValue, len(node.Content)/2)}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			var child OutputValue
			if err := child.UnmarshalYAML(node.Content[i+1]); err != nil {
				return err
			}
			if _, dup := out.Children[key]; dup {
				continue
			}
			out.Keys = append(out.Keys, key)
			out.Children[key] = child
		}
		*v = out
		return nil
	default:
		return fmt.Errorf("output value: unsupported node kind %d at line %d", node.Kind, node.Line)
	}
}

// MarshalYAML emits leaves as their type descriptor and mappings in
// declaration order.
func (v OutputValue) MarshalYAML() (interface{}, error) {
	if v.Kind == ValueLeaf {
		return v.Type, nil
	}
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range v.Keys {
		child := v.Children[key]
		childVal, err := child.MarshalYAML()
		if err != nil {
			return nil, err
		}
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		valNode := &yaml.Node{}
		if err := valNode.Encode(childVal); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// DecodeValue decodes a standalone YAML or JSON document into an output
// value. Database rows store block outputs this way.
func DecodeValue(data []byte, v *OutputValue) error {
	return yaml.Unmarshal(data, v)
}

// DecodeOutputs decodes a block's full outputs mapping from a YAML or
// JSON document, as stored in database rows.
func DecodeOutputs(data []byte) (map[string]OutputValue, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var out map[string]OutputValue
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode outputs: %w", err)
	}
	return out, nil
}

// Store is a read-only snapshot source for a workflow graph. Concrete
// implementations live in internal/database (sqlite) and in this package
// (in-memory, YAML-loaded).
type Store interface {
	Blocks() ([]Block, error)
	Edges() ([]Edge, error)
}

// MemoryStore is a Store over in-memory slices. The zero value is an
// empty workflow.
type MemoryStore struct {
	blocks []Block
	edges  []Edge
}

// NewMemoryStore copies the given slices into a read-only store.
func NewMemoryStore(blocks []Block, edges []Edge) *MemoryStore {
	return &MemoryStore{
		blocks: append([]Block(nil), blocks...),
		edges:  append([]Edge(nil), edges...),
	}
}

// Blocks returns the block snapshot in insertion order.
func (s *MemoryStore) Blocks() ([]Block, error) {
	if s == nil {
		return nil, nil
	}
	return append([]Block(nil), s.blocks...), nil
}

// Edges returns the edge snapshot in insertion order.
func (s *MemoryStore) Edges() ([]Edge, error) {
	if s == nil {
		return nil, nil
	}
	return append([]Edge(nil), s.edges...), nil
}
