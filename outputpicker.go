package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flowdeck/internal/registry"
	"flowdeck/internal/workflow"
)

// pickerItem is one selectable output handle row. Section carries the
// owning block's display name; rows keep resolver order (descending
// distance from the starter), so the picker never re-sorts them.
type pickerItem struct {
	ID      string
	Label   string
	Meta    string // leaf type descriptor
	Section string
	Color   string
	Glyph   string
}

type pickerState struct {
	items    []pickerItem
	filtered []pickerItem
	query    string
	cursor   int
	title    string
}

type pickerAction int

const (
	pickerActionNone pickerAction = iota
	pickerActionMoved
	pickerActionSelected
	pickerActionCancelled
)

type pickerResult struct {
	Action    pickerAction
	ItemID    string
	ItemLabel string
}

// newOutputPicker builds a picker over resolved output groups. Group
// colors come from the block-type registry.
func newOutputPicker(groups []workflow.Group) *pickerState {
	p := &pickerState{title: "Choose output"}
	var items []pickerItem
	for _, g := range groups {
		meta := registry.Lookup(g.BlockType)
		for _, h := range g.Handles {
			items = append(items, pickerItem{
				ID:      h.ID,
				Label:   h.Label(),
				Meta:    h.LeafType,
				Section: g.BlockName,
				Color:   meta.Color,
				Glyph:   meta.Glyph,
			})
		}
	}
	p.SetItems(items)
	return p
}

func (p *pickerState) SetItems(items []pickerItem) {
	if p == nil {
		return
	}
	p.items = append([]pickerItem(nil), items...)
	p.rebuildFiltered()
}

func (p *pickerState) SetQuery(q string) {
	if p == nil {
		return
	}
	p.query = q
	p.rebuildFiltered()
}

func (p *pickerState) CursorUp() {
	if p != nil && p.cursor > 0 {
		p.cursor--
	}
}

func (p *pickerState) CursorDown() {
	if p == nil {
		return
	}
	if p.cursor < len(p.filtered)-1 {
		p.cursor++
	}
}

func (p *pickerState) current() *pickerItem {
	if p == nil || len(p.filtered) == 0 {
		return nil
	}
	idx := p.cursor
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.filtered) {
		idx = len(p.filtered) - 1
	}
	return &p.filtered[idx]
}

// HandleKey advances picker state for one key press. Printable runes feed
// the filter query; navigation and selection are handled here so the
// picker stays usable without the key registry.
func (p *pickerState) HandleKey(keyName string) pickerResult {
	if p == nil {
		return pickerResult{Action: pickerActionNone}
	}

	switch keyName {
	case "up", "ctrl+p":
		before := p.cursor
		p.CursorUp()
		if p.cursor != before {
			return pickerResult{Action: pickerActionMoved}
		}
		return pickerResult{Action: pickerActionNone}
	case "down", "ctrl+n":
		before := p.cursor
		p.CursorDown()
		if p.cursor != before {
			return pickerResult{Action: pickerActionMoved}
		}
		return pickerResult{Action: pickerActionNone}
	case "enter":
		if item := p.current(); item != nil {
			return pickerResult{Action: pickerActionSelected, ItemID: item.ID, ItemLabel: item.Label}
		}
		return pickerResult{Action: pickerActionNone}
	case "esc":
		return pickerResult{Action: pickerActionCancelled}
	case "backspace":
		if len(p.query) > 0 {
			p.SetQuery(p.query[:len(p.query)-1])
		}
		return pickerResult{Action: pickerActionNone}
	default:
		if isPrintableASCIIKey(keyName) {
			p.SetQuery(p.query + keyName)
		}
		return pickerResult{Action: pickerActionNone}
	}
}

// rebuildFiltered applies the fuzzy filter while preserving resolver
// order, then clamps the cursor.
func (p *pickerState) rebuildFiltered() {
	if p == nil {
		return
	}
	q := strings.TrimSpace(p.query)
	out := make([]pickerItem, 0, len(p.items))
	for _, it := range p.items {
		if fuzzyMatch(it.Section+"."+it.Label, q) {
			out = append(out, it)
		}
	}
	p.filtered = out

	if p.cursor >= len(p.filtered) {
		p.cursor = len(p.filtered) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// sectionOrder lists distinct sections in first-appearance order.
func (p *pickerState) sectionOrder() []string {
	if p == nil {
		return nil
	}
	seen := make(map[string]bool)
	out := make([]string, 0, len(p.filtered))
	for i := range p.filtered {
		section := p.filtered[i].Section
		if seen[section] {
			continue
		}
		seen[section] = true
		out = append(out, section)
	}
	return out
}

// renderOutputPicker draws the dropdown modal: filter line, colored
// section headers, handle rows, footer hints.
func renderOutputPicker(p *pickerState, width int, keys *KeyRegistry) string {
	if p == nil {
		return ""
	}
	var lines []string

	query := strings.TrimSpace(p.query)
	searchValue := lipgloss.NewStyle().Foreground(colorOverlay1).Render("(type to filter)")
	if query != "" {
		searchValue = searchInputStyle.Render(query)
	}
	searchLine := infoLabelStyle.Render("Filter: ") + searchValue
	if width > 0 {
		searchLine = padRight(searchLine, width)
	}
	lines = append(lines, searchLine)

	if len(p.filtered) == 0 {
		empty := lipgloss.NewStyle().Foreground(colorOverlay1).Render("  No outputs match")
		lines = append(lines, padRight(empty, width))
	}

	// Groups arrive contiguous from the resolver and filtering preserves
	// order, so a header is emitted whenever the section changes.
	prevSection := ""
	for i := range p.filtered {
		it := p.filtered[i]
		if i == 0 || it.Section != prevSection {
			headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Color)).Bold(true)
			header := headerStyle.Render(it.Glyph + " " + it.Section)
			lines = append(lines, padRight(header, width))
			prevSection = it.Section
		}

		label := lipgloss.NewStyle().Foreground(colorText).Render(it.Label)
		meta := ""
		if strings.TrimSpace(it.Meta) != "" {
			meta = lipgloss.NewStyle().Foreground(colorSubtext0).Render("  " + it.Meta)
		}
		row := "  " + label + meta
		style := lipgloss.NewStyle()
		if i == p.cursor {
			style = style.Background(colorSurface1).Bold(true)
		}
		if width > 0 {
			row = padRight(row, width)
		}
		lines = append(lines, style.Render(row))
	}

	footer := renderHelp(keys.HelpBindings(scopeOutputPicker))
	return renderModalContent(p.title, lines, footer)
}

// fuzzyMatch reports whether query is a case-insensitive subsequence of
// label. An empty query matches everything.
func fuzzyMatch(label, query string) bool {
	if query == "" {
		return true
	}
	labelLower := strings.ToLower(label)
	queryLower := strings.ToLower(query)

	searchFrom := 0
	for i := 0; i < len(queryLower); i++ {
		idx := strings.IndexByte(labelLower[searchFrom:], queryLower[i])
		if idx < 0 {
			return false
		}
		searchFrom += idx + 1
	}
	return true
}

func isPrintableASCIIKey(keyName string) bool {
	return len(keyName) == 1 && keyName[0] >= 32 && keyName[0] < 127
}
