// Package module resolves the dotted paths used by `grab` statements to
// their exported bindings, either from an in-process stdlib registry or
// from user source files.
package module

import "github.com/cwbudde/go-rift/internal/object"

// Resolver holds the stdlib module registry and, optionally, a loader for
// user source files named by the `grab` path. How the path maps to a file
// is up to the loader; the CLI's loader reads the path as given or with
// ".rift" appended, without turning dots into directory separators.
type Resolver struct {
	stdlib map[string]map[string]object.Value

	// LoadSource resolves a dotted path to raw source text and the file
	// name to report in diagnostics. It is nil in embeddings that only
	// expose the stdlib registry.
	LoadSource func(path string) (source string, filename string, err error)
}

func NewResolver() *Resolver {
	return &Resolver{stdlib: map[string]map[string]object.Value{}}
}

// RegisterStdlib installs a stdlib module's export table under a dotted
// path, e.g. "text" or "collections.list".
func (r *Resolver) RegisterStdlib(path string, exports map[string]object.Value) {
	r.stdlib[path] = exports
}

// StdlibExports looks up a path in the stdlib registry only.
func (r *Resolver) StdlibExports(path string) (map[string]object.Value, bool) {
	exports, ok := r.stdlib[path]
	return exports, ok
}
