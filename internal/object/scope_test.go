package object

import (
	"testing"

	"github.com/cwbudde/go-rift/internal/diagnostics"
)

func TestGlobalScopeBuiltinBindings(t *testing.T) {
	s := NewGlobalScope()
	for _, name := range []string{"yes", "no", "none"} {
		if !s.Has(name) {
			t.Errorf("expected global scope to predefine %q", name)
		}
	}
	v, err := s.Get("yes", "test", diagnostics.Position{})
	if err != nil || v != Bool(true) {
		t.Errorf("Get(yes) = %v, %v; want Bool(true), nil", v, err)
	}
}

func TestScopeChildShadowsParent(t *testing.T) {
	parent := NewGlobalScope()
	parent.Define("x", Int(1), true, false, "")
	child := parent.Child()
	child.Define("x", Int(2), true, false, "")

	v, _ := child.Get("x", "test", diagnostics.Position{})
	if v != Int(2) {
		t.Errorf("expected child's shadowed binding 2, got %v", v)
	}
	v, _ = parent.Get("x", "test", diagnostics.Position{})
	if v != Int(1) {
		t.Errorf("expected parent's own binding 1, got %v", v)
	}
}

func TestScopeSetWritesThroughToDefiningScope(t *testing.T) {
	parent := NewGlobalScope()
	parent.Define("x", Int(1), true, false, "")
	child := parent.Child()

	if err := child.Set("x", Int(9), "test", diagnostics.Position{}); err != nil {
		t.Fatalf("Set returned an error: %v", err)
	}
	v, _ := parent.Get("x", "test", diagnostics.Position{})
	if v != Int(9) {
		t.Errorf("expected parent binding updated to 9, got %v", v)
	}
}

func TestScopeGetUndefinedIsNameError(t *testing.T) {
	s := NewGlobalScope()
	_, err := s.Get("nope", "test", diagnostics.Position{})
	if err == nil {
		t.Fatal("expected an error for an undefined name")
	}
	diag, ok := err.(*diagnostics.Diagnostic)
	if !ok || diag.Kind != diagnostics.Name {
		t.Errorf("expected a diagnostics.Name error, got %#v", err)
	}
}

func TestScopeSetConstantIsAssignError(t *testing.T) {
	s := NewGlobalScope()
	s.Define("pi", Float(3.14), false, true, "")
	err := s.Set("pi", Float(0), "test", diagnostics.Position{})
	if err == nil {
		t.Fatal("expected an error assigning to a constant")
	}
	diag, ok := err.(*diagnostics.Diagnostic)
	if !ok || diag.Kind != diagnostics.Assign {
		t.Errorf("expected a diagnostics.Assign error, got %#v", err)
	}
}

func TestScopeSetImmutableAfterInitIsAssignError(t *testing.T) {
	s := NewGlobalScope()
	s.Define("x", Int(1), false, false, "")
	if err := s.Set("x", Int(2), "test", diagnostics.Position{}); err == nil {
		t.Fatal("expected an error re-assigning an immutable binding")
	}
}

func TestScopeTypeHint(t *testing.T) {
	s := NewGlobalScope()
	s.Define("x", Int(1), true, false, "num")
	if hint := s.TypeHint("x"); hint != "num" {
		t.Errorf("TypeHint(x) = %q, want num", hint)
	}
	if hint := s.TypeHint("undefined"); hint != "" {
		t.Errorf("TypeHint(undefined) = %q, want \"\"", hint)
	}
}
