package json

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

func TestParseObjectProducesMap(t *testing.T) {
	exports := Exports()
	v := callHost(t, exports, "parse", object.Text(`{"name":"Rex","age":3}`))
	m, ok := v.(*object.Map)
	if !ok {
		t.Fatalf("expected a map, got %#v", v)
	}
	name, _ := m.Get(object.Text("name"))
	if name != object.Text("Rex") {
		t.Errorf("got %v, want Rex", name)
	}
	age, _ := m.Get(object.Text("age"))
	if age != object.Int(3) {
		t.Errorf("got %v, want 3", age)
	}
}

func TestParseArrayProducesList(t *testing.T) {
	exports := Exports()
	v := callHost(t, exports, "parse", object.Text(`[1, 2, 3]`))
	list, ok := v.(*object.List)
	if !ok || len(list.Elements) != 3 {
		t.Fatalf("expected a 3-element sequence, got %#v", v)
	}
	if list.Elements[1] != object.Int(2) {
		t.Errorf("got %v, want 2", list.Elements[1])
	}
}

func TestParseInvalidJSONIsError(t *testing.T) {
	exports := Exports()
	fn := exports["parse"].(*object.HostFunction)
	if _, err := fn.Fn([]object.Value{object.Text("not json")}); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestStringifyRoundTripsThroughParse(t *testing.T) {
	exports := Exports()
	m := object.NewMap()
	m.Set(object.Text("active"), object.Bool(true))
	m.Set(object.Text("count"), object.Int(2))

	s := callHost(t, exports, "stringify", m)
	reparsed := callHost(t, exports, "parse", s)

	rm, ok := reparsed.(*object.Map)
	if !ok {
		t.Fatalf("expected a map after round-tripping, got %#v", reparsed)
	}
	active, _ := rm.Get(object.Text("active"))
	if active != object.Bool(true) {
		t.Errorf("got %v, want yes", active)
	}
}

func TestGetReadsNestedPath(t *testing.T) {
	exports := Exports()
	v := callHost(t, exports, "get", object.Text(`{"a":{"b":42}}`), object.Text("a.b"))
	if v != object.Int(42) {
		t.Errorf("got %v, want 42", v)
	}
}

func TestGetMissingPathIsNone(t *testing.T) {
	exports := Exports()
	v := callHost(t, exports, "get", object.Text(`{"a":1}`), object.Text("missing"))
	if v != object.NoneValue {
		t.Errorf("got %v, want none", v)
	}
}

func TestSetWritesValueAtPath(t *testing.T) {
	exports := Exports()
	v := callHost(t, exports, "set", object.Text(`{"a":1}`), object.Text("a"), object.Int(99))
	got := callHost(t, exports, "get", v, object.Text("a"))
	if got != object.Int(99) {
		t.Errorf("got %v, want 99", got)
	}
}
