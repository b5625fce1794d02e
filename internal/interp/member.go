package interp

import (
	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/diagnostics"
	"github.com/cwbudde/go-rift/internal/object"
)

// evalMember: instance property-then-method,
// class static lookup, map key lookup, and the text/sequence host method
// surface.
func (it *Interp) evalMember(expr *ast.MemberExpr, scope *object.Scope) (object.Value, *Signal, error) {
	obj, sig, err := it.evalExpr(expr.Object, scope)
	if err != nil || sig != nil {
		return obj, sig, err
	}
	if _, isNone := obj.(object.None); isNone {
		if expr.Safe {
			return object.NoneValue, nil, nil
		}
	}
	v, err := it.memberOf(expr, obj, expr.Name)
	if err != nil {
		if expr.Safe {
			return object.NoneValue, nil, nil
		}
		return nil, nil, err
	}
	return v, nil, nil
}

func (it *Interp) memberOf(node ast.Node, obj object.Value, name string) (object.Value, error) {
	switch o := obj.(type) {
	case *object.Instance:
		if v, ok := o.Properties[name]; ok {
			return v, nil
		}
		if fn, ok := o.Class.LookupMethod(name); ok {
			return &object.BoundMethod{Receiver: o, Fn: fn}, nil
		}
		return nil, it.errf(node, diagnostics.Name, "no property or method '%s' on %s", name, o.Class.Name)
	case *object.SuperRef:
		if v, ok := o.Instance.Properties[name]; ok {
			return v, nil
		}
		if fn, ok := o.Class.LookupMethod(name); ok {
			return &object.BoundMethod{Receiver: o.Instance, Fn: fn}, nil
		}
		return nil, it.errf(node, diagnostics.Name, "no property or method '%s' on %s", name, o.Class.Name)
	case *object.Class:
		if v, ok := o.LookupStatic(name); ok {
			return v, nil
		}
		return nil, it.errf(node, diagnostics.Name, "no static member '%s' on class %s", name, o.Name)
	case *object.Map:
		if v, ok := o.Get(object.Text(name)); ok {
			return v, nil
		}
		return object.NoneValue, nil
	case object.Text:
		return textMember(o, name)
	case *object.List:
		return listMember(o, name)
	case *object.Generator:
		return generatorMember(o, name)
	case object.None:
		return nil, it.errf(node, diagnostics.Type, "cannot access member '%s' of none", name)
	default:
		return nil, it.errf(node, diagnostics.Type, "cannot access member '%s' of %s", name, obj.Type())
	}
}

// evalIndex implements index access: sequences/text by integer (safe
// form returns none out-of-range), maps by key (safe form returns none on
// absence).
func (it *Interp) evalIndex(expr *ast.IndexExpr, scope *object.Scope) (object.Value, *Signal, error) {
	obj, sig, err := it.evalExpr(expr.Object, scope)
	if err != nil || sig != nil {
		return obj, sig, err
	}
	idx, sig, err := it.evalExpr(expr.Index, scope)
	if err != nil || sig != nil {
		return idx, sig, err
	}

	switch o := obj.(type) {
	case *object.List:
		i, ok := asInt(idx)
		if !ok || i < 0 || int(i) >= len(o.Elements) {
			if expr.Safe {
				return object.NoneValue, nil, nil
			}
			return nil, nil, it.errf(expr, diagnostics.Index, "index out of range")
		}
		return o.Elements[i], nil, nil
	case object.Text:
		i, ok := asInt(idx)
		runes := []rune(string(o))
		if !ok || i < 0 || int(i) >= len(runes) {
			if expr.Safe {
				return object.NoneValue, nil, nil
			}
			return nil, nil, it.errf(expr, diagnostics.Index, "index out of range")
		}
		return object.Text(string(runes[i])), nil, nil
	case *object.Map:
		v, ok := o.Get(idx)
		if !ok {
			return object.NoneValue, nil, nil
		}
		return v, nil, nil
	default:
		if expr.Safe {
			return object.NoneValue, nil, nil
		}
		return nil, nil, it.errf(expr, diagnostics.Type, "%s is not indexable", obj.Type())
	}
}

// evalStaticAccess implements static access (`::`): classes return a
// static member, maps return the key's value or none.
func (it *Interp) evalStaticAccess(expr *ast.StaticAccessExpr, scope *object.Scope) (object.Value, *Signal, error) {
	obj, sig, err := it.evalExpr(expr.Object, scope)
	if err != nil || sig != nil {
		return obj, sig, err
	}
	switch o := obj.(type) {
	case *object.Class:
		v, ok := o.LookupStatic(expr.Name)
		if !ok {
			return nil, nil, it.errf(expr, diagnostics.Name, "no static member '%s' on class %s", expr.Name, o.Name)
		}
		return v, nil, nil
	case *object.Map:
		v, ok := o.Get(object.Text(expr.Name))
		if !ok {
			return object.NoneValue, nil, nil
		}
		return v, nil, nil
	default:
		return nil, nil, it.errf(expr, diagnostics.Type, "'::' is not defined for %s", obj.Type())
	}
}
