package registry

import "testing"

func TestLookupKnownTypes(t *testing.T) {
	tests := []struct {
		blockType string
		wantColor string
	}{
		{"agent", "#cba6f7"},
		{"Agent", "#cba6f7"},
		{"  starter ", "#a6e3a1"},
	}
	for _, tt := range tests {
		t.Run(tt.blockType, func(t *testing.T) {
			got := Lookup(tt.blockType)
			if got.Color != tt.wantColor {
				t.Fatalf("Lookup(%q).Color = %q, want %q", tt.blockType, got.Color, tt.wantColor)
			}
		})
	}
}

func TestLookupUnknownTypeFallsBack(t *testing.T) {
	got := Lookup("quantum_summoner")
	if got.Color != DefaultColor {
		t.Fatalf("unknown type color = %q, want %q", got.Color, DefaultColor)
	}
	if got.Label != "quantum_summoner" {
		t.Fatalf("unknown type label = %q, want original type string", got.Label)
	}
	if Known("quantum_summoner") {
		t.Fatal("Known reported true for unregistered type")
	}
}

func TestColorEmptyType(t *testing.T) {
	if Color("") != DefaultColor {
		t.Fatalf("Color(\"\") = %q, want default", Color(""))
	}
}
