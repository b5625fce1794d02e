package interp

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-rift/internal/object"
)

// textMember implements the text host method surface:
// length, upper, lower, trim, split, replace, startsWith, endsWith,
// includes, indexOf, charAt, substring, repeat, padStart, padEnd.
func textMember(t object.Text, name string) (object.Value, error) {
	s := string(t)
	switch name {
	case "length":
		return object.Int(len([]rune(s))), nil
	case "upper":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			return object.Text(strings.ToUpper(s)), nil
		}), nil
	case "lower":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			return object.Text(strings.ToLower(s)), nil
		}), nil
	case "trim":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			return object.Text(strings.TrimSpace(s)), nil
		}), nil
	case "split":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			sep := " "
			if len(args) > 0 {
				sep = string(mustText(args[0]))
			}
			parts := strings.Split(s, sep)
			out := make([]object.Value, len(parts))
			for i, p := range parts {
				out[i] = object.Text(p)
			}
			return &object.List{Elements: out}, nil
		}), nil
	case "replace":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			if len(args) < 2 {
				return nil, fmt.Errorf("replace expects 2 arguments")
			}
			return object.Text(strings.ReplaceAll(s, string(mustText(args[0])), string(mustText(args[1])))), nil
		}), nil
	case "startsWith":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			return object.Bool(strings.HasPrefix(s, string(mustText(args[0])))), nil
		}), nil
	case "endsWith":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			return object.Bool(strings.HasSuffix(s, string(mustText(args[0])))), nil
		}), nil
	case "includes":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			return object.Bool(strings.Contains(s, string(mustText(args[0])))), nil
		}), nil
	case "indexOf":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			return object.Int(strings.Index(s, string(mustText(args[0])))), nil
		}), nil
	case "charAt":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			runes := []rune(s)
			i, _ := asInt(args[0])
			if i < 0 || int(i) >= len(runes) {
				return object.Text(""), nil
			}
			return object.Text(string(runes[i])), nil
		}), nil
	case "substring":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			runes := []rune(s)
			start, _ := asInt(args[0])
			end := int64(len(runes))
			if len(args) > 1 {
				end, _ = asInt(args[1])
			}
			start = clampIdx(start, int64(len(runes)))
			end = clampIdx(end, int64(len(runes)))
			if start > end {
				return object.Text(""), nil
			}
			return object.Text(string(runes[start:end])), nil
		}), nil
	case "repeat":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			n, _ := asInt(args[0])
			return object.Text(repeatText(s, n)), nil
		}), nil
	case "padStart":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			return object.Text(padText(s, args, true)), nil
		}), nil
	case "padEnd":
		return hostFn(name, func(args []object.Value) (object.Value, error) {
			return object.Text(padText(s, args, false)), nil
		}), nil
	}
	return nil, fmt.Errorf("no property or method '%s' on text", name)
}

func hostFn(name string, fn func(args []object.Value) (object.Value, error)) *object.HostFunction {
	return &object.HostFunction{Name: name, Fn: fn}
}

func mustText(v object.Value) object.Text {
	if t, ok := v.(object.Text); ok {
		return t
	}
	return object.Text(valueText(v))
}

func clampIdx(i, n int64) int64 {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func padText(s string, args []object.Value, start bool) string {
	if len(args) == 0 {
		return s
	}
	target, _ := asInt(args[0])
	pad := " "
	if len(args) > 1 {
		pad = string(mustText(args[1]))
	}
	if pad == "" {
		return s
	}
	runes := []rune(s)
	for int64(len(runes)) < target {
		if start {
			s = pad + s
		} else {
			s = s + pad
		}
		runes = []rune(s)
	}
	runes = []rune(s)
	if int64(len(runes)) > target {
		if start {
			return string(runes[int64(len(runes))-target:])
		}
		return string(runes[:target])
	}
	return s
}
