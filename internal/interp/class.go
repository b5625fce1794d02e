package interp

import (
	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/diagnostics"
	"github.com/cwbudde/go-rift/internal/object"
)

// evalClassDecl builds a class value from a `make` body: an optional parent
// (itself a class), own/static methods and properties, and a constructor.
// The class is bound immutably under its own name.
func (it *Interp) evalClassDecl(s *ast.ClassDecl, scope *object.Scope) (object.Value, *Signal, error) {
	class := &object.Class{
		Name:          s.Name,
		OwnMethods:    map[string]*object.Function{},
		OwnProperties: map[string]ast.Expr{},
		StaticMethods: map[string]*object.Function{},
		StaticProps:   map[string]object.Value{},
		DefiningScope: scope,
	}

	if s.Parent != "" {
		parentVal, err := scope.Get(s.Parent, it.Filename, it.pos(s))
		if err != nil {
			return nil, nil, err
		}
		parent, ok := parentVal.(*object.Class)
		if !ok {
			return nil, nil, it.errf(s, diagnostics.Type, "'%s' is not a class", s.Parent)
		}
		class.Parent = parent
	}

	// Bind the class name before building members so methods referencing
	// their own class (e.g. a static factory) can resolve it.
	scope.Define(s.Name, class, false, true, "")

	for _, member := range s.Members {
		switch member.Kind {
		case ast.MemberConstructor:
			class.Constructor = &object.Function{
				Decl:       &ast.FuncDecl{Base: member.Body.Base, Name: "build", Params: member.Params, Body: member.Body},
				Captured:   scope,
				IsMethod:   true,
				OwnerClass: class,
			}
		case ast.MemberMethod:
			fn := &object.Function{
				Decl:       &ast.FuncDecl{Base: member.Body.Base, Name: member.Name, Params: member.Params, Body: member.Body, Generator: member.Generator},
				Captured:   scope,
				IsMethod:   true,
				Generator:  member.Generator,
				OwnerClass: class,
			}
			if member.Static {
				class.StaticMethods[member.Name] = fn
			} else {
				class.OwnMethods[member.Name] = fn
			}
		case ast.MemberGetter, ast.MemberSetter:
			// `get`/`set` are a contextual parse-level accommodation;
			// member lookup makes no distinction, so the resulting
			// method is looked up and called like any other.
			fn := &object.Function{
				Decl:       &ast.FuncDecl{Base: member.Body.Base, Name: member.Name, Params: member.Params, Body: member.Body},
				Captured:   scope,
				IsMethod:   true,
				OwnerClass: class,
			}
			if member.Static {
				class.StaticMethods[member.Name] = fn
			} else {
				class.OwnMethods[member.Name] = fn
			}
		case ast.MemberProperty:
			if member.Static {
				var v object.Value = object.NoneValue
				if member.Default != nil {
					val, sig, err := it.evalExpr(member.Default, scope)
					if err != nil {
						return nil, nil, err
					}
					if sig != nil {
						return nil, nil, it.errf(s, diagnostics.Runtime, "signal raised while evaluating a static property default")
					}
					v = val
				}
				class.StaticProps[member.Name] = v
			} else {
				class.OwnProperties[member.Name] = member.Default
			}
		}
	}

	return object.NoneValue, nil, nil
}

// instantiate builds an instance's property map from every ancestor's
// defaults, then invokes the constructor (if any) with `me` bound,
// swallowing its Return signal but letting any other signal or error
// propagate.
func (it *Interp) instantiate(node ast.Node, class *object.Class, args []object.Value) (object.Value, error) {
	inst := &object.Instance{Class: class, Properties: map[string]object.Value{}}
	for name, expr := range class.PropertyDefaults() {
		if expr == nil {
			inst.Properties[name] = object.NoneValue
			continue
		}
		v, sig, err := it.evalExpr(expr, class.DefiningScope)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return nil, it.errf(node, diagnostics.Runtime, "signal raised while evaluating a property default")
		}
		inst.Properties[name] = v
	}

	if class.Constructor == nil {
		return inst, nil
	}

	base := class.Constructor.Captured.Child()
	base.Define("me", inst, false, true, "")
	if class.Constructor.OwnerClass != nil && class.Constructor.OwnerClass.Parent != nil {
		base.Define("parent", &object.SuperRef{Instance: inst, Class: class.Constructor.OwnerClass.Parent}, false, true, "")
	}
	child, err := bindParams(it, node, class.Constructor.Decl.Params, args, base)
	if err != nil {
		return nil, err
	}
	_, sig, err := it.evalBlock(class.Constructor.Decl.Body, child)
	if err != nil {
		return nil, err
	}
	if sig != nil && sig.Kind != SigReturn {
		return nil, it.errf(node, diagnostics.Runtime, "%s used outside its enclosing construct", signalName(sig.Kind))
	}
	return inst, nil
}
