package object

import "testing"

func TestValueStringRendering(t *testing.T) {
	tests := []struct {
		val  Value
		want string
	}{
		{NoneValue, "none"},
		{Bool(true), "yes"},
		{Bool(false), "no"},
		{Int(42), "42"},
		{Float(3.0), "3.0"},
		{Float(3.5), "3.5"},
		{Text("hi"), "hi"},
	}
	for _, tt := range tests {
		if got := tt.val.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.val, got, tt.want)
		}
	}
}

func TestListAndMapRendering(t *testing.T) {
	list := &List{Elements: []Value{Int(1), Text("a")}}
	if got, want := list.String(), `[1, "a"]`; got != want {
		t.Errorf("List.String() = %q, want %q", got, want)
	}

	m := NewMap()
	m.Set(Text("k"), Int(1))
	if got, want := m.String(), `{"k": 1}`; got != want {
		t.Errorf("Map.String() = %q, want %q", got, want)
	}
}

func TestMapPreservesInsertionOrderAndOverwrites(t *testing.T) {
	m := NewMap()
	m.Set(Text("b"), Int(1))
	m.Set(Text("a"), Int(2))
	m.Set(Text("b"), Int(3)) // overwrite, should not move position

	keys := m.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	if keys[0].String() != "b" || keys[1].String() != "a" {
		t.Errorf("expected insertion order [b, a], got [%s, %s]", keys[0], keys[1])
	}
	v, _ := m.Get(Text("b"))
	if v.(Int) != 3 {
		t.Errorf("expected overwritten value 3, got %v", v)
	}
}

func TestMapDelete(t *testing.T) {
	m := NewMap()
	m.Set(Text("a"), Int(1))
	m.Set(Text("b"), Int(2))
	m.Delete(Text("a"))
	if m.Len() != 1 {
		t.Fatalf("expected 1 key after delete, got %d", m.Len())
	}
	if _, ok := m.Get(Text("a")); ok {
		t.Error("expected 'a' to be gone after delete")
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		val  Value
		want bool
	}{
		{NoneValue, false},
		{Bool(false), false},
		{Bool(true), true},
		{Int(0), false},
		{Int(1), true},
		{Float(0), false},
		{Text(""), false},
		{Text("x"), true},
		{&List{}, false},
		{&List{Elements: []Value{Int(1)}}, true},
		{NewMap(), false},
	}
	for _, tt := range tests {
		if got := Truthy(tt.val); got != tt.want {
			t.Errorf("Truthy(%#v) = %v, want %v", tt.val, got, tt.want)
		}
	}
}

func TestEqualCrossesIntAndFloat(t *testing.T) {
	if !Equal(Int(3), Float(3.0)) {
		t.Error("Int(3) should equal Float(3.0)")
	}
	if Equal(Int(3), Float(3.1)) {
		t.Error("Int(3) should not equal Float(3.1)")
	}
}

func TestEqualStructural(t *testing.T) {
	a := &List{Elements: []Value{Int(1), Text("x")}}
	b := &List{Elements: []Value{Int(1), Text("x")}}
	if !Equal(a, b) {
		t.Error("structurally identical lists should be equal")
	}
	c := &List{Elements: []Value{Int(1), Text("y")}}
	if Equal(a, c) {
		t.Error("lists differing by an element should not be equal")
	}
}

func TestTypeNameAndMatchesTypeHint(t *testing.T) {
	if TypeName(Int(1)) != "num" || TypeName(Float(1)) != "num" {
		t.Error("Int and Float should both report type name 'num'")
	}
	if TypeName(Text("x")) != "text" {
		t.Errorf("expected 'text', got %q", TypeName(Text("x")))
	}
	if !MatchesTypeHint("any", Int(1)) || !MatchesTypeHint("", Int(1)) {
		t.Error("empty hint and 'any' should match everything")
	}
	if !MatchesTypeHint("num", Int(1)) {
		t.Error("'num' hint should match an Int")
	}
	if MatchesTypeHint("text", Int(1)) {
		t.Error("'text' hint should not match an Int")
	}
}
