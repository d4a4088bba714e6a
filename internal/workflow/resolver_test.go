package workflow

import (
	"errors"
	"testing"
)

func textOutputs() map[string]OutputValue {
	return map[string]OutputValue{
		"response": Mapping(MapPair{Key: "text", Value: Leaf("string")}),
	}
}

func testStore() *MemoryStore {
	blocks := []Block{
		{ID: "start", Name: "Start", Type: BlockTypeStarter, Outputs: textOutputs()},
		{ID: "agent1", Name: "Agent 1", Type: "agent", Outputs: textOutputs()},
		{ID: "agent2", Name: "Agent 2", Type: "agent", Outputs: agentOutputs()},
	}
	edges := []Edge{
		{Source: "start", Target: "agent1"},
		{Source: "agent1", Target: "agent2"},
	}
	return NewMemoryStore(blocks, edges)
}

func TestResolveSingleAgentChain(t *testing.T) {
	store := NewMemoryStore(
		[]Block{
			{ID: "start", Name: "Start", Type: BlockTypeStarter},
			{ID: "agent1", Name: "Agent1", Type: "agent", Outputs: textOutputs()},
		},
		[]Edge{{Source: "start", Target: "agent1"}},
	)

	groups, err := NewResolver(store).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	g := groups[0]
	if g.BlockName != "Agent1" || len(g.Handles) != 1 || g.Handles[0].Path != "response.text" {
		t.Fatalf("group = %+v, want Agent1 with single response.text handle", g)
	}
}

func TestResolveOrdersGroupsByDescendingDistance(t *testing.T) {
	groups, err := NewResolver(testStore()).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	var names []string
	for _, g := range groups {
		names = append(names, g.BlockName)
	}
	// Starter is excluded even though it declares outputs; furthest block
	// from the starter comes first.
	want := []string{"Agent 2", "Agent 1"}
	if len(names) != len(want) {
		t.Fatalf("groups = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("groups = %v, want %v", names, want)
		}
	}
}

func TestResolveTiesKeepDiscoveryOrder(t *testing.T) {
	// No starter: all distances zero, so groups keep block order.
	store := NewMemoryStore(
		[]Block{
			{ID: "b1", Name: "First", Type: "agent", Outputs: textOutputs()},
			{ID: "b2", Name: "Second", Type: "agent", Outputs: textOutputs()},
			{ID: "b3", Name: "Third", Type: "agent", Outputs: textOutputs()},
		},
		nil,
	)
	groups, err := NewResolver(store).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{"First", "Second", "Third"}
	for i, g := range groups {
		if g.BlockName != want[i] {
			t.Fatalf("group[%d] = %q, want %q", i, g.BlockName, want[i])
		}
	}
}

func TestResolveGroupingRoundTrip(t *testing.T) {
	resolver := NewResolver(testStore())
	groups, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	flat := FlattenGroups(groups)
	seen := make(map[string]bool, len(flat))
	for _, h := range flat {
		if seen[h.ID] {
			t.Fatalf("duplicate handle id %q after grouping", h.ID)
		}
		seen[h.ID] = true
	}

	blocks, _ := testStore().Blocks()
	var direct []Handle
	for _, b := range blocks {
		direct = append(direct, FlattenBlock(b)...)
	}
	if len(direct) != len(flat) {
		t.Fatalf("grouping lost handles: flat=%d direct=%d", len(flat), len(direct))
	}
	for _, h := range direct {
		if !seen[h.ID] {
			t.Errorf("handle %q missing after grouping", h.ID)
		}
	}
}

func TestResolveSameNameMergesGroups(t *testing.T) {
	store := NewMemoryStore(
		[]Block{
			{ID: "b1", Name: "Agent", Type: "agent", Outputs: textOutputs()},
			{ID: "b2", Name: "Agent", Type: "agent", Outputs: textOutputs()},
		},
		nil,
	)
	groups, err := NewResolver(store).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want merged single group", len(groups))
	}
	if len(groups[0].Handles) != 2 {
		t.Fatalf("merged group has %d handles, want 2", len(groups[0].Handles))
	}
}

func TestResolveNilStore(t *testing.T) {
	groups, err := NewResolver(nil).Resolve()
	if err != nil {
		t.Fatalf("Resolve with nil store: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("groups = %v, want empty", groups)
	}
}

type failingStore struct{ err error }

func (s failingStore) Blocks() ([]Block, error) { return nil, s.err }
func (s failingStore) Edges() ([]Edge, error)   { return nil, s.err }

func TestResolveWrapsStoreErrors(t *testing.T) {
	sentinel := errors.New("boom")
	_, err := NewResolver(failingStore{err: sentinel}).Resolve()
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want wrapped sentinel", err)
	}
}

func TestSelectedLabel(t *testing.T) {
	handles, err := NewResolver(testStore()).Handles()
	if err != nil {
		t.Fatalf("Handles: %v", err)
	}

	tests := []struct {
		name string
		id   string
		want string
	}{
		{"existing handle", "agent1_response.text", "Agent 1.response.text"},
		{"missing handle", "deleted_response.text", "Select output"},
		{"empty selection", "", "Select output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectedLabel(handles, tt.id, "Select output")
			if got != tt.want {
				t.Fatalf("SelectedLabel(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestNearestHandle(t *testing.T) {
	handles, err := NewResolver(testStore()).Handles()
	if err != nil {
		t.Fatalf("Handles: %v", err)
	}

	// A near-miss id (renamed field) should suggest its closest survivor.
	got, ok := NearestHandle(handles, "agent1_response.txt")
	if !ok || got.ID != "agent1_response.text" {
		t.Fatalf("NearestHandle = %+v ok=%v, want agent1_response.text", got, ok)
	}

	if _, ok := NearestHandle(handles, "completely-unrelated-identifier-xyzzy"); ok {
		t.Fatal("NearestHandle matched a wildly different id")
	}
	if _, ok := NearestHandle(nil, "agent1_response.text"); ok {
		t.Fatal("NearestHandle on empty list reported a match")
	}
}
