package main

import "testing"

func TestLookupScopeThenGlobalFallback(t *testing.T) {
	r := NewKeyRegistry()

	b := r.Lookup("enter", scopeOutputs)
	if b == nil || b.Action != actionOpenPicker {
		t.Fatalf("enter in outputs = %+v, want open_picker", b)
	}

	// q is not bound in the outputs scope; the global scope answers.
	b = r.Lookup("q", scopeOutputs)
	if b == nil || b.Action != actionQuit {
		t.Fatalf("q in outputs = %+v, want quit", b)
	}

	if b := r.Lookup("z", scopeOutputs); b != nil {
		t.Fatalf("z = %+v, want nil", b)
	}
}

func TestLookupPerScopeMeaning(t *testing.T) {
	r := NewKeyRegistry()

	if b := r.Lookup("enter", scopeSettingsNav); b == nil || b.Action != actionActivate {
		t.Fatalf("enter in settings = %+v, want activate", b)
	}
	if b := r.Lookup("enter", scopeOutputPicker); b == nil || b.Action != actionSelect {
		t.Fatalf("enter in picker = %+v, want select", b)
	}
}

func TestRegisterRejectsDuplicateKeyInScope(t *testing.T) {
	r := NewKeyRegistry()
	r.Register(Binding{Action: Action("other"), Keys: []string{"q"}, Scopes: []string{scopeGlobal}})
	if b := r.Lookup("q", scopeGlobal); b == nil || b.Action != actionQuit {
		t.Fatalf("q = %+v, want original quit binding", b)
	}
}

func TestNormalizeKeyName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{" ", "space"},
		{"Ctrl+C", "ctrl+c"},
		{"control+p", "ctrl+p"},
		{"return", "enter"},
		{"K", "K"},
		{"k", "k"},
		{"  esc  ", "esc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeKeyName(tt.in); got != tt.want {
			t.Errorf("normalizeKeyName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHelpBindings(t *testing.T) {
	r := NewKeyRegistry()
	hb := r.HelpBindings(scopeOutputPicker)
	if len(hb) != 3 {
		t.Fatalf("len = %d, want 3", len(hb))
	}
	if hb[0].Help().Desc != "navigate" {
		t.Fatalf("first help = %q, want navigate", hb[0].Help().Desc)
	}
}
