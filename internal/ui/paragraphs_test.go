package ui

import "testing"

func TestReasonToggles(t *testing.T) {
	r := newReasonToggles()

	if r.IsOpen(0) {
		t.Error("expected all toggles closed initially")
	}

	r.Toggle(0)
	if !r.IsOpen(0) {
		t.Error("expected toggle 0 open")
	}
	if r.IsOpen(1) {
		t.Error("expected toggle 1 unaffected")
	}

	r.Toggle(0)
	if r.IsOpen(0) {
		t.Error("expected second toggle to close")
	}

	r.Toggle(2)
	r.Toggle(5)
	r.Reset()
	if r.IsOpen(2) || r.IsOpen(5) {
		t.Error("expected Reset to close everything")
	}
}
