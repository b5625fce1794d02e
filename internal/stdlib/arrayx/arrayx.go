// Package arrayx adapts github.com/maruel/natural into the array module's
// natural-order sort, the one list operation the core sequence host
// methods don't already cover (sort compares structurally, not "human"
// order: "item2" before "item10").
package arrayx

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"

	"github.com/cwbudde/go-rift/internal/object"
)

// Exports returns the array module's bindings: sortNatural.
func Exports() map[string]object.Value {
	out := map[string]object.Value{}
	add := func(name string, f func([]object.Value) (object.Value, error)) {
		out[name] = &object.HostFunction{Name: name, Fn: f}
	}

	add("sortNatural", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("array.sortNatural expects 1 argument")
		}
		list, ok := args[0].(*object.List)
		if !ok {
			return nil, fmt.Errorf("array.sortNatural expects a sequence")
		}
		strs := make([]string, len(list.Elements))
		for i, el := range list.Elements {
			t, ok := el.(object.Text)
			if !ok {
				return nil, fmt.Errorf("array.sortNatural: element %d is not text", i)
			}
			strs[i] = string(t)
		}
		sort.Slice(strs, func(i, j int) bool { return natural.Less(strs[i], strs[j]) })
		out := make([]object.Value, len(strs))
		for i, s := range strs {
			out[i] = object.Text(s)
		}
		return &object.List{Elements: out}, nil
	})

	return out
}
