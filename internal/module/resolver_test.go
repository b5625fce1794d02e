package module

import (
	"testing"

	"github.com/cwbudde/go-rift/internal/object"
)

func TestRegisterStdlibAndLookup(t *testing.T) {
	r := NewResolver()
	r.RegisterStdlib("math", map[string]object.Value{
		"pi": object.Float(3.14159),
	})

	exports, ok := r.StdlibExports("math")
	if !ok {
		t.Fatal("expected math module to be registered")
	}
	if exports["pi"] != object.Float(3.14159) {
		t.Errorf("got %v, want 3.14159", exports["pi"])
	}
}

func TestStdlibExportsUnknownPath(t *testing.T) {
	r := NewResolver()
	if _, ok := r.StdlibExports("nope"); ok {
		t.Error("expected an unregistered path to report not-found")
	}
}

func TestRegisterStdlibDottedPath(t *testing.T) {
	r := NewResolver()
	r.RegisterStdlib("collections.list", map[string]object.Value{
		"push": object.NoneValue,
	})
	if _, ok := r.StdlibExports("collections.list"); !ok {
		t.Error("expected dotted-path module to be registered under its full path")
	}
	if _, ok := r.StdlibExports("collections"); ok {
		t.Error("a dotted submodule registration should not also resolve its parent path")
	}
}

func TestLoadSourceNilByDefault(t *testing.T) {
	r := NewResolver()
	if r.LoadSource != nil {
		t.Error("expected a fresh resolver to have no source loader")
	}
}

func TestLoadSourceHook(t *testing.T) {
	r := NewResolver()
	r.LoadSource = func(path string) (string, string, error) {
		return "give 1", path + ".rift", nil
	}
	src, file, err := r.LoadSource("utils")
	if err != nil {
		t.Fatalf("LoadSource returned an error: %v", err)
	}
	if src != "give 1" || file != "utils.rift" {
		t.Errorf("got (%q, %q), want (%q, %q)", src, file, "give 1", "utils.rift")
	}
}
