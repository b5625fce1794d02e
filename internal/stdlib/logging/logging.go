// Package logging backs the logging module with the standard library's
// log package; no pack dependency covers structured logging, and the
// teacher repo itself leans on stdlib log for its own diagnostics.
package logging

import (
	"fmt"
	"log"
	"strings"

	"github.com/cwbudde/go-rift/internal/object"
)

// Exports returns the logging module's bindings: info, warn, error, debug,
// and fatal (which returns its message as an error instead of logging).
func Exports() map[string]object.Value {
	out := map[string]object.Value{}
	level := func(name, prefix string) {
		out[name] = &object.HostFunction{Name: name, Fn: func(args []object.Value) (object.Value, error) {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = a.String()
			}
			log.Printf("[%s] %s", prefix, strings.Join(parts, " "))
			return object.NoneValue, nil
		}}
	}
	level("info", "INFO")
	level("warn", "WARN")
	level("error", "ERROR")
	level("debug", "DEBUG")

	out["fatal"] = &object.HostFunction{Name: "fatal", Fn: func(args []object.Value) (object.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		return nil, fmt.Errorf("%s", strings.Join(parts, " "))
	}}

	return out
}
