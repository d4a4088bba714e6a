// Package registry maps block types to their display metadata. It is the
// lookup the UI consults for group colors and glyphs; unknown types fall
// back to a fixed default so rendering never fails on new block types.
package registry

import "strings"

// Meta is the display metadata for one block type.
type Meta struct {
	Type  string
	Label string
	Color string // true-color hex
	Glyph string // single-cell marker shown before group names
}

// DefaultColor is used for block types the registry does not know.
const DefaultColor = "#7f849c"

// Catppuccin Mocha accents, matching the application theme.
var builtin = []Meta{
	{Type: "starter", Label: "Start", Color: "#a6e3a1", Glyph: "▶"},
	{Type: "agent", Label: "Agent", Color: "#cba6f7", Glyph: "◆"},
	{Type: "function", Label: "Function", Color: "#89b4fa", Glyph: "ƒ"},
	{Type: "api", Label: "API", Color: "#94e2d5", Glyph: "⇄"},
	{Type: "condition", Label: "Condition", Color: "#fab387", Glyph: "?"},
	{Type: "router", Label: "Router", Color: "#f9e2af", Glyph: "⤳"},
	{Type: "evaluator", Label: "Evaluator", Color: "#f5c2e7", Glyph: "≈"},
	{Type: "loop", Label: "Loop", Color: "#74c7ec", Glyph: "↻"},
}

var byType = func() map[string]Meta {
	m := make(map[string]Meta, len(builtin))
	for _, meta := range builtin {
		m[meta.Type] = meta
	}
	return m
}()

// Lookup returns the metadata for a block type. Unknown types get a
// generic entry with DefaultColor.
func Lookup(blockType string) Meta {
	key := strings.ToLower(strings.TrimSpace(blockType))
	if meta, ok := byType[key]; ok {
		return meta
	}
	label := blockType
	if label == "" {
		label = "Block"
	}
	return Meta{Type: key, Label: label, Color: DefaultColor, Glyph: "■"}
}

// Color is a convenience wrapper for the common color-only lookup.
func Color(blockType string) string {
	return Lookup(blockType).Color
}

// Known reports whether the type has a registered entry.
func Known(blockType string) bool {
	_, ok := byType[strings.ToLower(strings.TrimSpace(blockType))]
	return ok
}
