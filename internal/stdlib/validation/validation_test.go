package validation

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

func TestIsEmail(t *testing.T) {
	exports := Exports()
	cases := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"  a@b.com  ", true},
		{"not-an-email", false},
		{"missing@domain", false},
	}
	for _, c := range cases {
		if v := callHost(t, exports, "isEmail", object.Text(c.in)); v != object.Bool(c.want) {
			t.Errorf("isEmail(%q) = %v, want %v", c.in, v, c.want)
		}
	}
}

func TestIsEmailNonTextIsFalse(t *testing.T) {
	exports := Exports()
	if v := callHost(t, exports, "isEmail", object.Int(1)); v != object.Bool(false) {
		t.Errorf("isEmail(1) = %v, want no", v)
	}
}

func TestRequiredUsesTruthiness(t *testing.T) {
	exports := Exports()
	if v := callHost(t, exports, "required", object.Text("")); v != object.Bool(false) {
		t.Errorf("required(\"\") = %v, want no", v)
	}
	if v := callHost(t, exports, "required", object.Text("x")); v != object.Bool(true) {
		t.Errorf("required(x) = %v, want yes", v)
	}
	if v := callHost(t, exports, "required", object.Int(0)); v != object.Bool(false) {
		t.Errorf("required(0) = %v, want no", v)
	}
}

func TestInRangeBoundsInclusive(t *testing.T) {
	exports := Exports()
	if v := callHost(t, exports, "inRange", object.Int(5), object.Int(1), object.Int(10)); v != object.Bool(true) {
		t.Errorf("inRange(5, 1, 10) = %v, want yes", v)
	}
	if v := callHost(t, exports, "inRange", object.Int(1), object.Int(1), object.Int(10)); v != object.Bool(true) {
		t.Errorf("inRange(1, 1, 10) = %v, want yes (inclusive lower bound)", v)
	}
	if v := callHost(t, exports, "inRange", object.Int(11), object.Int(1), object.Int(10)); v != object.Bool(false) {
		t.Errorf("inRange(11, 1, 10) = %v, want no", v)
	}
}

func TestMatchesAppliesPattern(t *testing.T) {
	exports := Exports()
	if v := callHost(t, exports, "matches", object.Text("abc123"), object.Text(`^[a-z]+\d+$`)); v != object.Bool(true) {
		t.Errorf("matches = %v, want yes", v)
	}
	if v := callHost(t, exports, "matches", object.Text("???"), object.Text(`^[a-z]+\d+$`)); v != object.Bool(false) {
		t.Errorf("matches = %v, want no", v)
	}
}

func TestMatchesInvalidPatternIsError(t *testing.T) {
	exports := Exports()
	fn := exports["matches"].(*object.HostFunction)
	if _, err := fn.Fn([]object.Value{object.Text("x"), object.Text("(")}); err == nil {
		t.Error("expected an error for an invalid regex pattern")
	}
}
