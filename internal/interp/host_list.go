package interp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cwbudde/go-rift/internal/object"
)

// listMember implements the sequence host method surface:
// length, push, pop, shift, unshift, slice, indexOf, includes, join,
// reverse, sort, concat, flat, fill.
func listMember(l *object.List, name string) (object.Value, error) {
	switch name {
	case "length":
		return object.Int(len(l.Elements)), nil
	case "push":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			l.Elements = append(l.Elements, args...)
			return l, nil
		}), nil
	case "pop":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			if len(l.Elements) == 0 {
				return object.NoneValue, nil
			}
			last := l.Elements[len(l.Elements)-1]
			l.Elements = l.Elements[:len(l.Elements)-1]
			return last, nil
		}), nil
	case "shift":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			if len(l.Elements) == 0 {
				return object.NoneValue, nil
			}
			first := l.Elements[0]
			l.Elements = l.Elements[1:]
			return first, nil
		}), nil
	case "unshift":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			l.Elements = append(append([]object.Value{}, args...), l.Elements...)
			return l, nil
		}), nil
	case "slice":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			n := int64(len(l.Elements))
			start, end := int64(0), n
			if len(args) > 0 {
				start, _ = asInt(args[0])
			}
			if len(args) > 1 {
				end, _ = asInt(args[1])
			}
			start, end = clampIdx(start, n), clampIdx(end, n)
			if start > end {
				return &object.List{}, nil
			}
			out := append([]object.Value{}, l.Elements[start:end]...)
			return &object.List{Elements: out}, nil
		}), nil
	case "indexOf":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			if len(args) == 0 {
				return object.Int(-1), nil
			}
			for i, el := range l.Elements {
				if object.Equal(el, args[0]) {
					return object.Int(i), nil
				}
			}
			return object.Int(-1), nil
		}), nil
	case "includes":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			if len(args) == 0 {
				return object.Bool(false), nil
			}
			for _, el := range l.Elements {
				if object.Equal(el, args[0]) {
					return object.Bool(true), nil
				}
			}
			return object.Bool(false), nil
		}), nil
	case "join":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			sep := ""
			if len(args) > 0 {
				sep = string(mustText(args[0]))
			}
			parts := make([]string, len(l.Elements))
			for i, el := range l.Elements {
				parts[i] = valueText(el)
			}
			return object.Text(strings.Join(parts, sep)), nil
		}), nil
	case "reverse":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			for i, j := 0, len(l.Elements)-1; i < j; i, j = i+1, j-1 {
				l.Elements[i], l.Elements[j] = l.Elements[j], l.Elements[i]
			}
			return l, nil
		}), nil
	case "sort":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			sort.SliceStable(l.Elements, func(i, j int) bool {
				return lessValue(l.Elements[i], l.Elements[j])
			})
			return l, nil
		}), nil
	case "concat":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			out := append([]object.Value{}, l.Elements...)
			for _, a := range args {
				if other, ok := a.(*object.List); ok {
					out = append(out, other.Elements...)
				} else {
					out = append(out, a)
				}
			}
			return &object.List{Elements: out}, nil
		}), nil
	case "flat":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			var out []object.Value
			for _, el := range l.Elements {
				if inner, ok := el.(*object.List); ok {
					out = append(out, inner.Elements...)
				} else {
					out = append(out, el)
				}
			}
			return &object.List{Elements: out}, nil
		}), nil
	case "fill":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			if len(args) == 0 {
				return l, nil
			}
			for i := range l.Elements {
				l.Elements[i] = args[0]
			}
			return l, nil
		}), nil
	}
	return nil, fmt.Errorf("no property or method '%s' on list", name)
}

func lessValue(a, b object.Value) bool {
	if isNumeric(a) && isNumeric(b) {
		return toFloat(a) < toFloat(b)
	}
	if at, ok := a.(object.Text); ok {
		if bt, ok := b.(object.Text); ok {
			return at < bt
		}
	}
	return a.String() < b.String()
}
