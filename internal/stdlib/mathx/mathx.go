// Package mathx backs the math module with the standard library's math
// package; ops.go already covers the core +,-,*,/,**,% operators, so this
// module fills in the named functions a script reaches via `grab`.
package mathx

import (
	"fmt"
	"math"

	"github.com/cwbudde/go-rift/internal/object"
)

// Exports returns the math module's bindings plus the pi/e constants.
func Exports() map[string]object.Value {
	out := map[string]object.Value{
		"pi": object.Float(math.Pi),
		"e":  object.Float(math.E),
	}
	unary := func(name string, f func(float64) float64) {
		out[name] = &object.HostFunction{Name: name, Fn: func(args []object.Value) (object.Value, error) {
			x, err := single(name, args)
			if err != nil {
				return nil, err
			}
			return object.Float(f(x)), nil
		}}
	}

	unary("sqrt", math.Sqrt)
	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("round", math.Round)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("log", math.Log)
	unary("log2", math.Log2)
	unary("log10", math.Log10)
	unary("exp", math.Exp)

	out["pow"] = &object.HostFunction{Name: "pow", Fn: func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("math.pow expects 2 arguments")
		}
		base, ok1 := asFloat(args[0])
		exp, ok2 := asFloat(args[1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("math.pow expects numeric arguments")
		}
		return object.Float(math.Pow(base, exp)), nil
	}}

	return out
}

func single(name string, args []object.Value) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("math.%s expects 1 argument", name)
	}
	v, ok := asFloat(args[0])
	if !ok {
		return 0, fmt.Errorf("math.%s expects a numeric argument", name)
	}
	return v, nil
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
