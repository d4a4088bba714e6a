package workflow

// Handle is a selectable reference to one leaf field a block produces.
// Its ID is unique per (block, path) pair and survives re-resolution as
// long as the block and field still exist.
type Handle struct {
	ID        string
	BlockID   string
	BlockName string
	BlockType string
	Path      string
	LeafType  string
}

// HandleID builds the composite identifier for a block field.
func HandleID(blockID, path string) string {
	return blockID + "_" + path
}

// Label is the text shown for the handle inside its block group.
func (h Handle) Label() string {
	return h.Path
}

// FlattenBlock derives the output handles a single block contributes.
// Starter blocks contribute none regardless of their declared outputs,
// and blocks without a "response" output contribute none.
func FlattenBlock(b Block) []Handle {
	if b.Type == BlockTypeStarter {
		return nil
	}
	resp, ok := b.Outputs["response"]
	if !ok {
		return nil
	}
	var out []Handle
	flattenValue(resp, "response", func(path, leafType string) {
		out = append(out, Handle{
			ID:        HandleID(b.ID, path),
			BlockID:   b.ID,
			BlockName: b.Name,
			BlockType: b.Type,
			Path:      path,
			LeafType:  leafType,
		})
	})
	return out
}

// flattenValue walks the output tree depth-first in declaration order,
// emitting one entry per leaf with its dot-joined path.
func flattenValue(v OutputValue, prefix string, emit func(path, leafType string)) {
	if v.Kind == ValueLeaf {
		emit(prefix, v.Type)
		return
	}
	for _, key := range v.Keys {
		child, ok := v.Children[key]
		if !ok {
			continue
		}
		flattenValue(child, prefix+"."+key, emit)
	}
}
