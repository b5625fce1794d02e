package interp

import (
	"strings"

	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/diagnostics"
	"github.com/cwbudde/go-rift/internal/lexer"
	"github.com/cwbudde/go-rift/internal/object"
	"github.com/cwbudde/go-rift/internal/parser"
)

// evalImport implements the three `grab` forms: wildcard
// (`grab * from path`), selective (`grab a, b from path`), and
// whole-module (`grab path [as alias]`, bound as a namespace map).
func (it *Interp) evalImport(s *ast.ImportStmt, scope *object.Scope) (object.Value, *Signal, error) {
	exports, err := it.resolveModule(s)
	if err != nil {
		return nil, nil, err
	}

	if s.Wildcard {
		for name, v := range exports {
			scope.Define(name, v, false, false, "")
		}
		return object.NoneValue, nil, nil
	}

	if len(s.Items) > 0 {
		for _, name := range s.Items {
			v, ok := exports[name]
			if !ok {
				return nil, nil, it.errf(s, diagnostics.Import, "module '%s' has no export '%s'", s.Path, name)
			}
			scope.Define(name, v, false, false, "")
		}
		return object.NoneValue, nil, nil
	}

	ns := object.NewMap()
	for name, v := range exports {
		ns.Set(object.Text(name), v)
	}
	name := s.Alias
	if name == "" {
		name = lastPathSegment(s.Path)
	}
	scope.Define(name, ns, false, true, "")
	return object.NoneValue, nil, nil
}

func lastPathSegment(path string) string {
	parts := strings.Split(path, ".")
	return parts[len(parts)-1]
}

func (it *Interp) resolveModule(s *ast.ImportStmt) (map[string]object.Value, error) {
	if cached, ok := it.moduleCache[s.Path]; ok {
		return cached, nil
	}
	if it.Modules != nil {
		if exports, ok := it.Modules.StdlibExports(s.Path); ok {
			it.moduleCache[s.Path] = exports
			return exports, nil
		}
		if it.Modules.LoadSource != nil {
			source, filename, err := it.Modules.LoadSource(s.Path)
			if err == nil {
				exports, rerr := it.runModule(source, filename)
				if rerr != nil {
					return nil, rerr
				}
				it.moduleCache[s.Path] = exports
				return exports, nil
			}
		}
	}
	return nil, it.errf(s, diagnostics.Import, "module '%s' not found", s.Path)
}

// runModule lexes, parses, and evaluates a module's source in its own
// top-level scope, returning whatever it marked with `share`.
func (it *Interp) runModule(source, filename string) (map[string]object.Value, error) {
	toks, err := lexer.New(source, filename).Tokenize()
	if err != nil {
		return nil, err
	}
	prog, err := parser.Parse(toks, filename)
	if err != nil {
		return nil, err
	}
	modIt := &Interp{
		Global:      object.NewGlobalScope(),
		Filename:    filename,
		Modules:     it.Modules,
		moduleCache: it.moduleCache,
	}
	registerBuiltins(modIt)
	if _, err := modIt.Run(prog); err != nil {
		return nil, err
	}
	return modIt.exports, nil
}

// evalExport implements `share`: either an inline declaration (evaluated
// then recorded under its declared name) or a list of names already bound
// in the current scope.
func (it *Interp) evalExport(s *ast.ExportStmt, scope *object.Scope) (object.Value, *Signal, error) {
	if s.Decl != nil {
		val, sig, err := it.evalStmt(s.Decl, scope)
		if err != nil || sig != nil {
			return val, sig, err
		}
		if name := declaredName(s.Decl); name != "" {
			if v, gerr := scope.Get(name, it.Filename, it.pos(s)); gerr == nil {
				it.recordExport(name, v)
			}
		}
		return object.NoneValue, nil, nil
	}
	for _, name := range s.Names {
		v, err := scope.Get(name, it.Filename, it.pos(s))
		if err != nil {
			return nil, nil, err
		}
		it.recordExport(name, v)
	}
	return object.NoneValue, nil, nil
}

func (it *Interp) recordExport(name string, v object.Value) {
	if it.exports == nil {
		it.exports = map[string]object.Value{}
	}
	it.exports[name] = v
}

func declaredName(s ast.Stmt) string {
	switch d := s.(type) {
	case *ast.VarDecl:
		return d.Name
	case *ast.FuncDecl:
		return d.Name
	case *ast.ClassDecl:
		return d.Name
	default:
		return ""
	}
}
