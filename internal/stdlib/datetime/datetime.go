// Package datetime backs the datetime module with the standard library's
// time package.
package datetime

import (
	"fmt"
	"time"

	"github.com/cwbudde/go-rift/internal/object"
)

// Exports returns the datetime module's bindings: now, parse, format,
// addSeconds, diffSeconds. Instants are represented as Unix-epoch float
// seconds, the language's only numeric width that round-trips cleanly
// through both Int and Float arithmetic.
func Exports() map[string]object.Value {
	out := map[string]object.Value{}
	add := func(name string, f func([]object.Value) (object.Value, error)) {
		out[name] = &object.HostFunction{Name: name, Fn: f}
	}

	add("now", func(args []object.Value) (object.Value, error) {
		return object.Float(float64(time.Now().UnixNano()) / 1e9), nil
	})

	add("parse", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("datetime.parse expects 2 arguments")
		}
		layout, err := text("parse", args, 0)
		if err != nil {
			return nil, err
		}
		value, err := text("parse", args, 1)
		if err != nil {
			return nil, err
		}
		t, err := time.Parse(goLayout(layout), value)
		if err != nil {
			return nil, fmt.Errorf("datetime.parse: %w", err)
		}
		return object.Float(float64(t.UnixNano()) / 1e9), nil
	})

	add("format", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("datetime.format expects 2 arguments")
		}
		epoch, ok := asFloat(args[0])
		if !ok {
			return nil, fmt.Errorf("datetime.format: argument 1 must be a timestamp")
		}
		layout, err := text("format", args, 1)
		if err != nil {
			return nil, err
		}
		t := time.Unix(0, int64(epoch*1e9)).UTC()
		return object.Text(t.Format(goLayout(layout))), nil
	})

	add("addSeconds", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("datetime.addSeconds expects 2 arguments")
		}
		epoch, ok := asFloat(args[0])
		if !ok {
			return nil, fmt.Errorf("datetime.addSeconds: argument 1 must be a timestamp")
		}
		delta, ok := asFloat(args[1])
		if !ok {
			return nil, fmt.Errorf("datetime.addSeconds: argument 2 must be numeric")
		}
		return object.Float(epoch + delta), nil
	})

	add("diffSeconds", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("datetime.diffSeconds expects 2 arguments")
		}
		a, ok1 := asFloat(args[0])
		b, ok2 := asFloat(args[1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("datetime.diffSeconds expects timestamp arguments")
		}
		return object.Float(a - b), nil
	})

	return out
}

func text(fname string, args []object.Value, i int) (string, error) {
	t, ok := args[i].(object.Text)
	if !ok {
		return "", fmt.Errorf("datetime.%s: argument %d must be text", fname, i+1)
	}
	return string(t), nil
}

func asFloat(v object.Value) (float64, bool) {
	switch n := v.(type) {
	case object.Int:
		return float64(n), true
	case object.Float:
		return float64(n), true
	default:
		return 0, false
	}
}

// goLayout maps the handful of strftime-style directives rift scripts are
// expected to use onto Go's reference-time layout strings.
func goLayout(format string) string {
	replacer := map[string]string{
		"%Y": "2006", "%m": "01", "%d": "02",
		"%H": "15", "%M": "04", "%S": "05",
		"%Z": "MST", "%z": "-0700",
	}
	out := []rune{}
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '%' && i+1 < len(runes) {
			if rep, ok := replacer["%"+string(runes[i+1])]; ok {
				out = append(out, []rune(rep)...)
				i++
				continue
			}
		}
		out = append(out, runes[i])
	}
	return string(out)
}
