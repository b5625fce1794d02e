package datetime

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

func TestParseAndFormatRoundTrip(t *testing.T) {
	exports := Exports()
	epoch := callHost(t, exports, "parse", object.Text("%Y-%m-%d"), object.Text("2026-07-30"))
	formatted := callHost(t, exports, "format", epoch, object.Text("%Y-%m-%d"))
	if formatted != object.Text("2026-07-30") {
		t.Errorf("got %v, want 2026-07-30", formatted)
	}
}

func TestFormatWithTimeComponents(t *testing.T) {
	exports := Exports()
	epoch := callHost(t, exports, "parse", object.Text("%Y-%m-%d %H:%M:%S"), object.Text("2026-01-02 03:04:05"))
	formatted := callHost(t, exports, "format", epoch, object.Text("%H:%M:%S"))
	if formatted != object.Text("03:04:05") {
		t.Errorf("got %v, want 03:04:05", formatted)
	}
}

func TestAddSecondsAdvancesEpoch(t *testing.T) {
	exports := Exports()
	v := callHost(t, exports, "addSeconds", object.Float(1000), object.Int(50))
	f, ok := v.(object.Float)
	if !ok || math.Abs(float64(f)-1050) > 1e-9 {
		t.Errorf("got %v, want 1050", v)
	}
}

func TestDiffSecondsComputesDelta(t *testing.T) {
	exports := Exports()
	v := callHost(t, exports, "diffSeconds", object.Float(1100), object.Float(1000))
	f, ok := v.(object.Float)
	if !ok || math.Abs(float64(f)-100) > 1e-9 {
		t.Errorf("got %v, want 100", v)
	}
}

func TestParseRejectsMismatchedLayout(t *testing.T) {
	exports := Exports()
	fn := exports["parse"].(*object.HostFunction)
	if _, err := fn.Fn([]object.Value{object.Text("%Y-%m-%d"), object.Text("not a date")}); err == nil {
		t.Error("expected an error for a value that doesn't match the layout")
	}
}

func TestNowReturnsFloatSeconds(t *testing.T) {
	exports := Exports()
	v := callHost(t, exports, "now")
	if _, ok := v.(object.Float); !ok {
		t.Errorf("expected now() to return a Float, got %#v", v)
	}
}
