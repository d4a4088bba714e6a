package workflow

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML shape of a workflow definition.
type File struct {
	Name   string  `yaml:"name,omitempty"`
	Blocks []Block `yaml:"blocks"`
	Edges  []Edge  `yaml:"edges,omitempty"`
}

// LoadFile reads a YAML workflow definition into a memory store. Blocks
// without an id are assigned one so handle ids stay well formed; edges
// referencing unknown blocks are kept (they simply never match during
// traversal).
func LoadFile(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("workflow: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML workflow document.
func Parse(data []byte) (*MemoryStore, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("workflow: parse: %w", err)
	}
	for i := range f.Blocks {
		if f.Blocks[i].ID == "" {
			f.Blocks[i].ID = uuid.NewString()
		}
	}
	return NewMemoryStore(f.Blocks, f.Edges), nil
}
