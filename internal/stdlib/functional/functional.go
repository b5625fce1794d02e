// Package functional exposes compose and curry, the two higher-order
// operations the interpreter's always-on map/filter/reduce/sum/min/max
// builtins don't already provide, so pipeline-heavy code can build its own
// callables instead of only consuming them.
package functional

import (
	"fmt"

	"github.com/cwbudde/go-rift/internal/object"
)

// Invoker lets this package call an arbitrary rift callable without
// importing the interp package (which would create an import cycle,
// since interp is the one wiring this module in).
type Invoker func(callee object.Value, args []object.Value) (object.Value, error)

// Exports returns the functional module's bindings: compose, curry,
// identity. invoke drives any callable value the same way a normal call
// expression would.
func Exports(invoke Invoker) map[string]object.Value {
	out := map[string]object.Value{}
	add := func(name string, f func([]object.Value) (object.Value, error)) {
		out[name] = &object.HostFunction{Name: name, Fn: f}
	}

	add("identity", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("functional.identity expects 1 argument")
		}
		return args[0], nil
	})

	add("compose", func(args []object.Value) (object.Value, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("functional.compose expects at least 1 argument")
		}
		fns := append([]object.Value{}, args...)
		composed := &object.HostFunction{Name: "composed", Fn: func(callArgs []object.Value) (object.Value, error) {
			v, err := invoke(fns[len(fns)-1], callArgs)
			if err != nil {
				return nil, err
			}
			for i := len(fns) - 2; i >= 0; i-- {
				v, err = invoke(fns[i], []object.Value{v})
				if err != nil {
					return nil, err
				}
			}
			return v, nil
		}}
		return composed, nil
	})

	add("curry", func(args []object.Value) (object.Value, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("functional.curry expects at least 1 argument")
		}
		fn := args[0]
		fixed := append([]object.Value{}, args[1:]...)
		curried := &object.HostFunction{Name: "curried", Fn: func(rest []object.Value) (object.Value, error) {
			return invoke(fn, append(append([]object.Value{}, fixed...), rest...))
		}}
		return curried, nil
	})

	return out
}
