package mathx

import (
	"math"
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

func TestConstants(t *testing.T) {
	exports := Exports()
	if exports["pi"] != object.Float(math.Pi) {
		t.Errorf("pi = %v, want %v", exports["pi"], math.Pi)
	}
	if exports["e"] != object.Float(math.E) {
		t.Errorf("e = %v, want %v", exports["e"], math.E)
	}
}

func TestSqrtAcceptsIntOrFloat(t *testing.T) {
	exports := Exports()
	if v := callHost(t, exports, "sqrt", object.Int(16)); v != object.Float(4) {
		t.Errorf("sqrt(16) = %v, want 4", v)
	}
	if v := callHost(t, exports, "sqrt", object.Float(2.25)); v != object.Float(1.5) {
		t.Errorf("sqrt(2.25) = %v, want 1.5", v)
	}
}

func TestUnaryFunctions(t *testing.T) {
	exports := Exports()
	cases := []struct {
		name string
		arg  object.Value
		want object.Float
	}{
		{"abs", object.Int(-5), 5},
		{"floor", object.Float(2.9), 2},
		{"ceil", object.Float(2.1), 3},
		{"round", object.Float(2.5), 3},
	}
	for _, c := range cases {
		if v := callHost(t, exports, c.name, c.arg); v != c.want {
			t.Errorf("%s(%v) = %v, want %v", c.name, c.arg, v, c.want)
		}
	}
}

func TestPowMultipliesExponent(t *testing.T) {
	exports := Exports()
	v := callHost(t, exports, "pow", object.Int(2), object.Int(10))
	if v != object.Float(1024) {
		t.Errorf("pow(2, 10) = %v, want 1024", v)
	}
}

func TestPowRejectsNonNumeric(t *testing.T) {
	exports := Exports()
	fn := exports["pow"].(*object.HostFunction)
	if _, err := fn.Fn([]object.Value{object.Text("x"), object.Int(2)}); err == nil {
		t.Error("expected an error for a non-numeric argument")
	}
}

func TestUnaryRejectsWrongArgCount(t *testing.T) {
	exports := Exports()
	fn := exports["sqrt"].(*object.HostFunction)
	if _, err := fn.Fn([]object.Value{}); err == nil {
		t.Error("expected an error for a missing argument")
	}
	if _, err := fn.Fn([]object.Value{object.Int(1), object.Int(2)}); err == nil {
		t.Error("expected an error for too many arguments")
	}
}
