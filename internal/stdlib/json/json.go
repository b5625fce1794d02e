// Package json adapts gjson/sjson into the json module a rift program
// reaches with `grab json`.
package json

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/go-rift/internal/object"
)

// Exports returns the json module's bindings: parse, stringify, get, set.
func Exports() map[string]object.Value {
	out := map[string]object.Value{}
	add := func(name string, f func([]object.Value) (object.Value, error)) {
		out[name] = &object.HostFunction{Name: name, Fn: f}
	}

	add("parse", func(args []object.Value) (object.Value, error) {
		text, err := argText("parse", args, 0)
		if err != nil {
			return nil, err
		}
		if !gjson.Valid(text) {
			return nil, fmt.Errorf("json.parse: invalid JSON")
		}
		return fromGjson(gjson.Parse(text)), nil
	})

	add("stringify", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("json.stringify expects 1 argument")
		}
		s, err := toJSONText(args[0])
		if err != nil {
			return nil, err
		}
		return object.Text(s), nil
	})

	add("get", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("json.get expects 2 arguments")
		}
		text, err := argText("get", args, 0)
		if err != nil {
			return nil, err
		}
		path, err := argText("get", args, 1)
		if err != nil {
			return nil, err
		}
		res := gjson.Get(text, path)
		if !res.Exists() {
			return object.NoneValue, nil
		}
		return fromGjson(res), nil
	})

	add("set", func(args []object.Value) (object.Value, error) {
		if len(args) != 3 {
			return nil, fmt.Errorf("json.set expects 3 arguments")
		}
		text, err := argText("set", args, 0)
		if err != nil {
			return nil, err
		}
		path, err := argText("set", args, 1)
		if err != nil {
			return nil, err
		}
		raw, err := toJSONText(args[2])
		if err != nil {
			return nil, err
		}
		updated, err := sjson.SetRaw(text, path, raw)
		if err != nil {
			return nil, fmt.Errorf("json.set: %w", err)
		}
		return object.Text(updated), nil
	})

	return out
}

func argText(fname string, args []object.Value, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("json.%s: missing argument %d", fname, i+1)
	}
	t, ok := args[i].(object.Text)
	if !ok {
		return "", fmt.Errorf("json.%s: argument %d must be text", fname, i+1)
	}
	return string(t), nil
}

// fromGjson converts a parsed gjson.Result to a rift value, recursing into
// arrays and objects.
func fromGjson(r gjson.Result) object.Value {
	switch r.Type {
	case gjson.Null:
		return object.NoneValue
	case gjson.False:
		return object.Bool(false)
	case gjson.True:
		return object.Bool(true)
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) {
			return object.Int(int64(r.Num))
		}
		return object.Float(r.Num)
	case gjson.String:
		return object.Text(r.Str)
	default:
		if r.IsArray() {
			list := &object.List{}
			r.ForEach(func(_, v gjson.Result) bool {
				list.Elements = append(list.Elements, fromGjson(v))
				return true
			})
			return list
		}
		if r.IsObject() {
			m := object.NewMap()
			r.ForEach(func(k, v gjson.Result) bool {
				m.Set(object.Text(k.String()), fromGjson(v))
				return true
			})
			return m
		}
		return object.NoneValue
	}
}

// toJSONText renders a rift value as a JSON document via repeated sjson
// patches over an empty root, so nesting comes for free.
func toJSONText(v object.Value) (string, error) {
	return buildJSON(v)
}

func buildJSON(v object.Value) (string, error) {
	switch val := v.(type) {
	case object.None:
		return "null", nil
	case object.Bool:
		if val {
			return "true", nil
		}
		return "false", nil
	case object.Int:
		return fmt.Sprintf("%d", int64(val)), nil
	case object.Float:
		return fmt.Sprintf("%g", float64(val)), nil
	case object.Text:
		raw, err := sjson.Set("", "v", string(val))
		if err != nil {
			return "", err
		}
		return gjson.Get(raw, "v").Raw, nil
	case *object.List:
		out := "[]"
		for i, el := range val.Elements {
			raw, err := buildJSON(el)
			if err != nil {
				return "", err
			}
			var err2 error
			out, err2 = sjson.SetRaw(out, fmt.Sprintf("%d", i), raw)
			if err2 != nil {
				return "", err2
			}
		}
		return out, nil
	case *object.Map:
		out := "{}"
		for _, k := range val.Keys() {
			elVal, _ := val.Get(k)
			raw, err := buildJSON(elVal)
			if err != nil {
				return "", err
			}
			keyText, ok := k.(object.Text)
			if !ok {
				keyText = object.Text(k.String())
			}
			var err2 error
			out, err2 = sjson.SetRaw(out, string(keyText), raw)
			if err2 != nil {
				return "", err2
			}
		}
		return out, nil
	default:
		return "", fmt.Errorf("json.stringify: cannot encode a %s", v.Type())
	}
}
