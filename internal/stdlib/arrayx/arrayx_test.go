package arrayx

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

func textList(ss ...string) *object.List {
	elems := make([]object.Value, len(ss))
	for i, s := range ss {
		elems[i] = object.Text(s)
	}
	return &object.List{Elements: elems}
}

func TestSortNaturalOrdersNumericSuffixesNumerically(t *testing.T) {
	exports := Exports()
	in := textList("item10", "item2", "item1")
	v := callHost(t, exports, "sortNatural", in)
	list, ok := v.(*object.List)
	if !ok {
		t.Fatalf("expected a sequence result, got %#v", v)
	}
	want := []string{"item1", "item2", "item10"}
	for i, w := range want {
		if list.Elements[i] != object.Text(w) {
			t.Errorf("element %d = %v, want %q", i, list.Elements[i], w)
		}
	}
}

func TestSortNaturalRejectsNonSequence(t *testing.T) {
	exports := Exports()
	fn := exports["sortNatural"].(*object.HostFunction)
	if _, err := fn.Fn([]object.Value{object.Int(1)}); err == nil {
		t.Error("expected an error for a non-sequence argument")
	}
}

func TestSortNaturalRejectsNonTextElements(t *testing.T) {
	exports := Exports()
	fn := exports["sortNatural"].(*object.HostFunction)
	in := &object.List{Elements: []object.Value{object.Int(1), object.Int(2)}}
	if _, err := fn.Fn([]object.Value{in}); err == nil {
		t.Error("expected an error for non-text elements")
	}
}

func TestSortNaturalRejectsWrongArgCount(t *testing.T) {
	exports := Exports()
	fn := exports["sortNatural"].(*object.HostFunction)
	if _, err := fn.Fn([]object.Value{}); err == nil {
		t.Error("expected an error for a missing argument")
	}
}
