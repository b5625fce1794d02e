package stringx

import (
	"testing"

	"github.com/cwbudde/go-rift/internal/object"
)

func callHost(t *testing.T, exports map[string]object.Value, name string, args ...object.Value) object.Value {
	t.Helper()
	fn, ok := exports[name].(*object.HostFunction)
	if !ok {
		t.Fatalf("export %q is not a host function", name)
	}
	v, err := fn.Fn(args)
	if err != nil {
		t.Fatalf("%s(%v) returned an error: %v", name, args, err)
	}
	return v
}

// decomposedE and precomposedE are two valid UTF-8 spellings of the same
// grapheme: "e" + combining acute accent (U+0065 U+0301), vs. the single
// precomposed code point (U+00E9).
const (
	decomposedE  = "é"
	precomposedE = "é"
)

func TestNormalizeDefaultsToNFC(t *testing.T) {
	exports := Exports()
	v := callHost(t, exports, "normalize", object.Text(decomposedE))
	if v != object.Text(precomposedE) {
		t.Errorf("got %q, want the precomposed form", v)
	}
}

func TestNormalizeNFD(t *testing.T) {
	exports := Exports()
	v := callHost(t, exports, "normalize", object.Text(precomposedE), object.Text("NFD"))
	if v != object.Text(decomposedE) {
		t.Errorf("got %q, want the decomposed form", v)
	}
}

func TestNormalizeUnknownFormIsError(t *testing.T) {
	exports := Exports()
	fn := exports["normalize"].(*object.HostFunction)
	if _, err := fn.Fn([]object.Value{object.Text("x"), object.Text("NOPE")}); err == nil {
		t.Error("expected an error for an unknown normalization form")
	}
}

func TestCollateOrdersLocaleAware(t *testing.T) {
	exports := Exports()
	v := callHost(t, exports, "collate", object.Text("a"), object.Text("b"))
	n, ok := v.(object.Int)
	if !ok || n != -1 {
		t.Errorf("collate(a, b) = %v, want -1", v)
	}
	v = callHost(t, exports, "collate", object.Text("b"), object.Text("a"))
	if n, ok := v.(object.Int); !ok || n != 1 {
		t.Errorf("collate(b, a) = %v, want 1", v)
	}
	v = callHost(t, exports, "collate", object.Text("a"), object.Text("a"))
	if n, ok := v.(object.Int); !ok || n != 0 {
		t.Errorf("collate(a, a) = %v, want 0", v)
	}
}

func TestCollateWithLocale(t *testing.T) {
	exports := Exports()
	v := callHost(t, exports, "collate", object.Text("a"), object.Text("b"), object.Text("en"))
	if _, ok := v.(object.Int); !ok {
		t.Errorf("expected an Int result, got %#v", v)
	}
}

func TestCollateRejectsWrongArgCount(t *testing.T) {
	exports := Exports()
	fn := exports["collate"].(*object.HostFunction)
	if _, err := fn.Fn([]object.Value{object.Text("a")}); err == nil {
		t.Error("expected an error for a missing argument")
	}
}
