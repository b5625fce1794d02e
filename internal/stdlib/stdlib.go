// Package stdlib adapts third-party and standard-library packages into the
// module-resolver contract: each module is a thin function returning a
// map[string]object.Value of host functions and constants.
package stdlib

import (
	"fmt"

	"github.com/cwbudde/go-rift/internal/module"
	"github.com/cwbudde/go-rift/internal/object"
	"github.com/cwbudde/go-rift/internal/stdlib/arrayx"
	"github.com/cwbudde/go-rift/internal/stdlib/collections"
	"github.com/cwbudde/go-rift/internal/stdlib/datetime"
	"github.com/cwbudde/go-rift/internal/stdlib/fs"
	"github.com/cwbudde/go-rift/internal/stdlib/json"
	"github.com/cwbudde/go-rift/internal/stdlib/logging"
	"github.com/cwbudde/go-rift/internal/stdlib/mathx"
	"github.com/cwbudde/go-rift/internal/stdlib/regexx"
	"github.com/cwbudde/go-rift/internal/stdlib/stringx"
	"github.com/cwbudde/go-rift/internal/stdlib/validation"
)

// RegisterAll installs every stdlib module this host ships under its
// dotted path, so `grab string` (etc.) resolves without a
// user-supplied file loader.
func RegisterAll(r *module.Resolver) {
	r.RegisterStdlib("json", json.Exports())
	r.RegisterStdlib("string", stringx.Exports())
	r.RegisterStdlib("array", arrayx.Exports())
	r.RegisterStdlib("collections", collections.Exports())
	// "functional" needs a live interpreter to invoke callables, so it is
	// registered by interp.New itself rather than here.
	r.RegisterStdlib("logging", logging.Exports())
	r.RegisterStdlib("datetime", datetime.Exports())
	r.RegisterStdlib("regex", regexx.Exports())
	r.RegisterStdlib("validation", validation.Exports())
	r.RegisterStdlib("math", mathx.Exports())
	r.RegisterStdlib("fs", fs.Exports())
	r.RegisterStdlib("http", unavailableModule("http"))
	r.RegisterStdlib("db", unavailableModule("db"))
	r.RegisterStdlib("crypto", unavailableModule("crypto"))
	r.RegisterStdlib("events", unavailableModule("events"))
	r.RegisterStdlib("async", unavailableModule("async"))
	r.RegisterStdlib("agent", unavailableModule("agent"))
}

// unavailableModule stands in for a domain the embedding host hasn't wired
// a real backend for (no sandboxed HTTP client, database driver, crypto
// policy, event bus, or agent runtime is bundled by default). Every export
// on the named module is present so `grab http` resolves, but
// calling any of them fails with a clear runtime error instead of a
// missing-name lookup failure.
func unavailableModule(name string) map[string]object.Value {
	unavailable := func(fn string) *object.HostFunction {
		return &object.HostFunction{
			Name: fn,
			Fn: func(args []object.Value) (object.Value, error) {
				return nil, fmt.Errorf("%s.%s: not available in this host", name, fn)
			},
		}
	}
	names, ok := stubSurfaces[name]
	if !ok {
		return map[string]object.Value{}
	}
	out := make(map[string]object.Value, len(names))
	for _, fn := range names {
		out[fn] = unavailable(fn)
	}
	return out
}

// stubSurfaces names the functions each unavailable module would have
// exported, so `type(http.get)` still reports "conduit" instead of
// erroring on lookup before the call ever happens.
var stubSurfaces = map[string][]string{
	"http":   {"get", "post", "put", "delete"},
	"db":     {"connect", "query", "exec"},
	"crypto": {"hash", "hmac", "randomBytes"},
	"events": {"emit", "on", "off"},
	"async":  {"spawn", "sleep", "gather"},
	"agent":  {"prompt", "tool", "run"},
}
