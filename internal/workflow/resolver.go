package workflow

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

// Group is one dropdown section: all output handles owned by blocks
// sharing a display name. Name collisions merge silently; the group keeps
// the id/type/distance of the first block that claimed the name.
type Group struct {
	BlockID   string
	BlockName string
	BlockType string
	Distance  int
	Handles   []Handle
}

// Resolver derives the grouped, ordered output-handle list from a
// read-only workflow store snapshot.
type Resolver struct {
	store Store
}

// NewResolver wraps a store. A nil store resolves to an empty result
// rather than an error, mirroring the "no workflow selected" state.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the output groups ordered by descending distance from
// the starter block; ties keep block discovery order.
func (r *Resolver) Resolve() ([]Group, error) {
	if r == nil || r.store == nil {
		return nil, nil
	}
	blocks, err := r.store.Blocks()
	if err != nil {
		return nil, fmt.Errorf("resolve outputs: load blocks: %w", err)
	}
	edges, err := r.store.Edges()
	if err != nil {
		return nil, fmt.Errorf("resolve outputs: load edges: %w", err)
	}

	dist := Distances(blocks, edges)

	var groups []Group
	indexByName := make(map[string]int)
	for _, b := range blocks {
		handles := FlattenBlock(b)
		if len(handles) == 0 {
			continue
		}
		idx, ok := indexByName[b.Name]
		if !ok {
			idx = len(groups)
			indexByName[b.Name] = idx
			groups = append(groups, Group{
				BlockID:   b.ID,
				BlockName: b.Name,
				BlockType: b.Type,
				Distance:  dist[b.ID],
			})
		}
		groups[idx].Handles = append(groups[idx].Handles, handles...)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Distance > groups[j].Distance
	})
	return groups, nil
}

// Handles returns the flat handle list in group order.
func (r *Resolver) Handles() ([]Handle, error) {
	groups, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	var out []Handle
	for _, g := range groups {
		out = append(out, g.Handles...)
	}
	return out, nil
}

// FlattenGroups collapses resolved groups back to the flat handle list.
func FlattenGroups(groups []Group) []Handle {
	var out []Handle
	for _, g := range groups {
		out = append(out, g.Handles...)
	}
	return out
}

// FindHandle resolves a handle id against the flat list.
func FindHandle(handles []Handle, id string) (Handle, bool) {
	if id == "" {
		return Handle{}, false
	}
	for _, h := range handles {
		if h.ID == id {
			return h, true
		}
	}
	return Handle{}, false
}

// SelectedLabel returns the display label for the selected handle id, or
// the placeholder when nothing is selected or the handle no longer
// exists (upstream block deleted, output renamed).
func SelectedLabel(handles []Handle, id, placeholder string) string {
	if h, ok := FindHandle(handles, id); ok {
		return h.BlockName + "." + h.Path
	}
	return placeholder
}

// NearestHandle suggests the closest surviving handle for a stale id by
// edit distance, for a "did you mean" hint. Reports false on an empty
// list or when nothing comes reasonably close.
func NearestHandle(handles []Handle, id string) (Handle, bool) {
	if id == "" || len(handles) == 0 {
		return Handle{}, false
	}
	best := -1
	bestDist := 0
	for i, h := range handles {
		d := levenshtein.ComputeDistance(h.ID, id)
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	longest := len(id)
	if l := len(handles[best].ID); l > longest {
		longest = l
	}
	if longest == 0 || float64(bestDist)/float64(longest) >= 0.6 {
		return Handle{}, false
	}
	return handles[best], true
}
