package main

import (
	"strings"
	"testing"

	"flowdeck/internal/workflow"
)

func pickerFixtureGroups(t *testing.T) []workflow.Group {
	t.Helper()
	store := workflow.NewMemoryStore(
		[]workflow.Block{
			{ID: "start", Name: "Start", Type: workflow.BlockTypeStarter},
			{ID: "a1", Name: "Agent 1", Type: "agent", Outputs: map[string]workflow.OutputValue{
				"response": workflow.Mapping(
					workflow.MapPair{Key: "text", Value: workflow.Leaf("string")},
					workflow.MapPair{Key: "usage", Value: workflow.Mapping(
						workflow.MapPair{Key: "total", Value: workflow.Leaf("number")},
					)},
				),
			}},
			{ID: "f1", Name: "Formatter", Type: "function", Outputs: map[string]workflow.OutputValue{
				"response": workflow.Mapping(
					workflow.MapPair{Key: "result", Value: workflow.Leaf("string")},
				),
			}},
		},
		[]workflow.Edge{
			{Source: "start", Target: "a1"},
			{Source: "a1", Target: "f1"},
		},
	)
	groups, err := workflow.NewResolver(store).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return groups
}

func TestNewOutputPickerKeepsResolverOrder(t *testing.T) {
	p := newOutputPicker(pickerFixtureGroups(t))

	var ids []string
	for _, it := range p.filtered {
		ids = append(ids, it.ID)
	}
	// Formatter is furthest from Start, so its handles lead.
	want := []string{"f1_response.result", "a1_response.text", "a1_response.usage.total"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}

	sections := p.sectionOrder()
	if len(sections) != 2 || sections[0] != "Formatter" || sections[1] != "Agent 1" {
		t.Fatalf("sections = %v", sections)
	}
}

func TestPickerCursorNavigation(t *testing.T) {
	p := newOutputPicker(pickerFixtureGroups(t))

	if res := p.HandleKey("up"); res.Action != pickerActionNone {
		t.Fatalf("up at top = %v, want none", res.Action)
	}
	if res := p.HandleKey("down"); res.Action != pickerActionMoved {
		t.Fatalf("down = %v, want moved", res.Action)
	}
	p.HandleKey("down")
	if res := p.HandleKey("down"); res.Action != pickerActionNone {
		t.Fatalf("down at bottom = %v, want none", res.Action)
	}
}

func TestPickerSelectAndCancel(t *testing.T) {
	p := newOutputPicker(pickerFixtureGroups(t))

	p.HandleKey("down")
	res := p.HandleKey("enter")
	if res.Action != pickerActionSelected || res.ItemID != "a1_response.text" {
		t.Fatalf("enter = %+v, want selection of a1_response.text", res)
	}

	if res := p.HandleKey("esc"); res.Action != pickerActionCancelled {
		t.Fatalf("esc = %v, want cancelled", res.Action)
	}
}

func TestPickerTypedFilter(t *testing.T) {
	p := newOutputPicker(pickerFixtureGroups(t))

	for _, ch := range "usage" {
		p.HandleKey(string(ch))
	}
	if len(p.filtered) != 1 || p.filtered[0].ID != "a1_response.usage.total" {
		t.Fatalf("filtered = %+v, want only the usage handle", p.filtered)
	}

	res := p.HandleKey("enter")
	if res.Action != pickerActionSelected || res.ItemID != "a1_response.usage.total" {
		t.Fatalf("enter after filter = %+v", res)
	}

	// Backspacing restores rows.
	for range "usage" {
		p.HandleKey("backspace")
	}
	if len(p.filtered) != 3 {
		t.Fatalf("after clearing filter len = %d, want 3", len(p.filtered))
	}
}

func TestPickerFilterNoMatches(t *testing.T) {
	p := newOutputPicker(pickerFixtureGroups(t))
	p.SetQuery("zzzzzz")
	if len(p.filtered) != 0 {
		t.Fatalf("filtered = %+v, want empty", p.filtered)
	}
	if res := p.HandleKey("enter"); res.Action != pickerActionNone {
		t.Fatalf("enter with no rows = %v, want none", res.Action)
	}

	out := renderOutputPicker(p, 40, NewKeyRegistry())
	if !strings.Contains(out, "No outputs match") {
		t.Fatal("empty-state text missing from render")
	}
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		label string
		query string
		want  bool
	}{
		{"Agent 1.response.text", "", true},
		{"Agent 1.response.text", "text", true},
		{"Agent 1.response.text", "a1rt", true},
		{"Agent 1.response.text", "xtq", false},
		{"Agent 1.response.text", "agtxt", true},
		{"Formatter.response.result", "usage", false},
	}
	for _, tt := range tests {
		if got := fuzzyMatch(tt.label, tt.query); got != tt.want {
			t.Errorf("fuzzyMatch(%q, %q) = %v, want %v", tt.label, tt.query, got, tt.want)
		}
	}
}

func TestRenderOutputPickerShowsGroupsOnce(t *testing.T) {
	p := newOutputPicker(pickerFixtureGroups(t))
	out := renderOutputPicker(p, 48, NewKeyRegistry())
	if got := strings.Count(out, "Agent 1"); got != 1 {
		t.Fatalf("group header rendered %d times, want 1", got)
	}
	if !strings.Contains(out, "response.usage.total") {
		t.Fatal("handle row missing from render")
	}
}
