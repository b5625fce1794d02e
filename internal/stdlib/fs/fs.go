// Package fs backs the fs module with the standard library's os, io, and
// path/filepath packages.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/go-rift/internal/object"
)

// Exports returns the fs module's bindings: readText, writeText, exists,
// remove, join, list.
func Exports() map[string]object.Value {
	out := map[string]object.Value{}
	add := func(name string, f func([]object.Value) (object.Value, error)) {
		out[name] = &object.HostFunction{Name: name, Fn: f}
	}

	add("readText", func(args []object.Value) (object.Value, error) {
		path, err := text("readText", args, 0)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("fs.readText: %w", err)
		}
		return object.Text(data), nil
	})

	add("writeText", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("fs.writeText expects 2 arguments")
		}
		path, err := text("writeText", args, 0)
		if err != nil {
			return nil, err
		}
		content, err := text("writeText", args, 1)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("fs.writeText: %w", err)
		}
		return object.NoneValue, nil
	})

	add("exists", func(args []object.Value) (object.Value, error) {
		path, err := text("exists", args, 0)
		if err != nil {
			return nil, err
		}
		_, statErr := os.Stat(path)
		return object.Bool(statErr == nil), nil
	})

	add("remove", func(args []object.Value) (object.Value, error) {
		path, err := text("remove", args, 0)
		if err != nil {
			return nil, err
		}
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("fs.remove: %w", err)
		}
		return object.NoneValue, nil
	})

	add("join", func(args []object.Value) (object.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			t, ok := a.(object.Text)
			if !ok {
				return nil, fmt.Errorf("fs.join: argument %d must be text", i+1)
			}
			parts[i] = string(t)
		}
		return object.Text(filepath.Join(parts...)), nil
	})

	add("list", func(args []object.Value) (object.Value, error) {
		path, err := text("list", args, 0)
		if err != nil {
			return nil, err
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("fs.list: %w", err)
		}
		list := &object.List{}
		for _, e := range entries {
			list.Elements = append(list.Elements, object.Text(e.Name()))
		}
		return list, nil
	})

	return out
}

func text(fname string, args []object.Value, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("fs.%s: missing argument %d", fname, i+1)
	}
	t, ok := args[i].(object.Text)
	if !ok {
		return "", fmt.Errorf("fs.%s: argument %d must be text", fname, i+1)
	}
	return string(t), nil
}
