// Package regexx backs the regex module with the standard library's
// regexp package.
package regexx

import (
	"fmt"
	"regexp"

	"github.com/cwbudde/go-rift/internal/object"
)

// Exports returns the regex module's bindings: match, find, findAll,
// replace, split.
func Exports() map[string]object.Value {
	out := map[string]object.Value{}
	add := func(name string, f func([]object.Value) (object.Value, error)) {
		out[name] = &object.HostFunction{Name: name, Fn: f}
	}

	compile := func(fname string, args []object.Value, i int) (*regexp.Regexp, error) {
		pat, ok := args[i].(object.Text)
		if !ok {
			return nil, fmt.Errorf("regex.%s: argument %d must be text", fname, i+1)
		}
		re, err := regexp.Compile(string(pat))
		if err != nil {
			return nil, fmt.Errorf("regex.%s: %w", fname, err)
		}
		return re, nil
	}

	add("match", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("regex.match expects 2 arguments")
		}
		re, err := compile("match", args, 0)
		if err != nil {
			return nil, err
		}
		subject, ok := args[1].(object.Text)
		if !ok {
			return nil, fmt.Errorf("regex.match: argument 2 must be text")
		}
		return object.Bool(re.MatchString(string(subject))), nil
	})

	add("find", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("regex.find expects 2 arguments")
		}
		re, err := compile("find", args, 0)
		if err != nil {
			return nil, err
		}
		subject, ok := args[1].(object.Text)
		if !ok {
			return nil, fmt.Errorf("regex.find: argument 2 must be text")
		}
		groups := re.FindStringSubmatch(string(subject))
		if groups == nil {
			return object.NoneValue, nil
		}
		list := &object.List{}
		for _, g := range groups {
			list.Elements = append(list.Elements, object.Text(g))
		}
		return list, nil
	})

	add("findAll", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("regex.findAll expects 2 arguments")
		}
		re, err := compile("findAll", args, 0)
		if err != nil {
			return nil, err
		}
		subject, ok := args[1].(object.Text)
		if !ok {
			return nil, fmt.Errorf("regex.findAll: argument 2 must be text")
		}
		matches := re.FindAllString(string(subject), -1)
		list := &object.List{}
		for _, m := range matches {
			list.Elements = append(list.Elements, object.Text(m))
		}
		return list, nil
	})

	add("replace", func(args []object.Value) (object.Value, error) {
		if len(args) != 3 {
			return nil, fmt.Errorf("regex.replace expects 3 arguments")
		}
		re, err := compile("replace", args, 0)
		if err != nil {
			return nil, err
		}
		subject, ok := args[1].(object.Text)
		if !ok {
			return nil, fmt.Errorf("regex.replace: argument 2 must be text")
		}
		repl, ok := args[2].(object.Text)
		if !ok {
			return nil, fmt.Errorf("regex.replace: argument 3 must be text")
		}
		return object.Text(re.ReplaceAllString(string(subject), string(repl))), nil
	})

	add("split", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("regex.split expects 2 arguments")
		}
		re, err := compile("split", args, 0)
		if err != nil {
			return nil, err
		}
		subject, ok := args[1].(object.Text)
		if !ok {
			return nil, fmt.Errorf("regex.split: argument 2 must be text")
		}
		parts := re.Split(string(subject), -1)
		list := &object.List{}
		for _, p := range parts {
			list.Elements = append(list.Elements, object.Text(p))
		}
		return list, nil
	})

	return out
}
