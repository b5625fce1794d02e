// Package validation implements common field checks (email, range,
// required, pattern) directly on regexp/strings: no pack dependency
// targets input validation specifically, and these checks are each a
// handful of lines over primitives the standard library already owns.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cwbudde/go-rift/internal/object"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Exports returns the validation module's bindings: isEmail, required,
// inRange, matches.
func Exports() map[string]object.Value {
	out := map[string]object.Value{}
	add := func(name string, f func([]object.Value) (object.Value, error)) {
		out[name] = &object.HostFunction{Name: name, Fn: f}
	}

	add("isEmail", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("validation.isEmail expects 1 argument")
		}
		s, ok := args[0].(object.Text)
		if !ok {
			return object.Bool(false), nil
		}
		return object.Bool(emailPattern.MatchString(strings.TrimSpace(string(s)))), nil
	})

	add("required", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("validation.required expects 1 argument")
		}
		return object.Bool(object.Truthy(args[0])), nil
	})

	add("inRange", func(args []object.Value) (object.Value, error) {
		if len(args) != 3 {
			return nil, fmt.Errorf("validation.inRange expects 3 arguments")
		}
		v, ok1 := asFloat(args[0])
		lo, ok2 := asFloat(args[1])
		hi, ok3 := asFloat(args[2])
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("validation.inRange expects numeric arguments")
		}
		return object.Bool(v >= lo && v <= hi), nil
	})

	add("matches", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("validation.matches expects 2 arguments")
		}
		s, ok := args[0].(object.Text)
		if !ok {
			return object.Bool(false), nil
		}
		pat, ok := args[1].(object.Text)
		if !ok {
			return nil, fmt.Errorf("validation.matches: argument 2 must be text")
		}
		re, err := regexp.Compile(string(pat))
		if err != nil {
			return nil, fmt.Errorf("validation.matches: %w", err)
		}
		return object.Bool(re.MatchString(string(s))), nil
	})

	return out
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
