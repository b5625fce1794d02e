// Package stringx adapts golang.org/x/text into the string module, for
// the locale-aware operations the core text host methods don't cover:
// Unicode normalization and collation-based comparison.
package stringx

import (
	"fmt"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/cwbudde/go-rift/internal/object"
)

// Exports returns the string module's bindings: normalize, collate.
func Exports() map[string]object.Value {
	out := map[string]object.Value{}
	add := func(name string, f func([]object.Value) (object.Value, error)) {
		out[name] = &object.HostFunction{Name: name, Fn: f}
	}

	add("normalize", func(args []object.Value) (object.Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, fmt.Errorf("string.normalize expects 1 or 2 arguments")
		}
		s, ok := args[0].(object.Text)
		if !ok {
			return nil, fmt.Errorf("string.normalize: argument 1 must be text")
		}
		form := "NFC"
		if len(args) == 2 {
			f, ok := args[1].(object.Text)
			if !ok {
				return nil, fmt.Errorf("string.normalize: argument 2 must be text")
			}
			form = string(f)
		}
		var n norm.Form
		switch form {
		case "NFC":
			n = norm.NFC
		case "NFD":
			n = norm.NFD
		case "NFKC":
			n = norm.NFKC
		case "NFKD":
			n = norm.NFKD
		default:
			return nil, fmt.Errorf("string.normalize: unknown form %q", form)
		}
		return object.Text(n.String(string(s))), nil
	})

	add("collate", func(args []object.Value) (object.Value, error) {
		if len(args) < 2 || len(args) > 3 {
			return nil, fmt.Errorf("string.collate expects 2 or 3 arguments")
		}
		a, ok := args[0].(object.Text)
		if !ok {
			return nil, fmt.Errorf("string.collate: argument 1 must be text")
		}
		b, ok := args[1].(object.Text)
		if !ok {
			return nil, fmt.Errorf("string.collate: argument 2 must be text")
		}
		tag := language.Und
		if len(args) == 3 {
			locale, ok := args[2].(object.Text)
			if !ok {
				return nil, fmt.Errorf("string.collate: argument 3 must be text")
			}
			parsed, err := language.Parse(string(locale))
			if err != nil {
				return nil, fmt.Errorf("string.collate: %w", err)
			}
			tag = parsed
		}
		c := collate.New(tag)
		return object.Int(c.CompareString(string(a), string(b))), nil
	})

	return out
}
