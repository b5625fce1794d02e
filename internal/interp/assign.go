package interp

import (
	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/diagnostics"
	"github.com/cwbudde/go-rift/internal/object"
)

// evalAssign: identifier/member/index targets,
// plain or compound (+= -= *= /=).
func (it *Interp) evalAssign(expr *ast.AssignExpr, scope *object.Scope) (object.Value, *Signal, error) {
	rhs, sig, err := it.evalExpr(expr.Value, scope)
	if err != nil || sig != nil {
		return rhs, sig, err
	}

	switch target := expr.Target.(type) {
	case *ast.Identifier:
		newVal := rhs
		if expr.Op != "=" {
			cur, err := scope.Get(target.Name, it.Filename, it.pos(target))
			if err != nil {
				return nil, nil, err
			}
			newVal, err = it.applyBinary(expr, compoundBaseOp(expr.Op), cur, rhs)
			if err != nil {
				return nil, nil, err
			}
		}
		if err := scope.Set(target.Name, newVal, it.Filename, it.pos(target)); err != nil {
			return nil, nil, err
		}
		return newVal, nil, nil

	case *ast.MemberExpr:
		obj, sig, err := it.evalExpr(target.Object, scope)
		if err != nil || sig != nil {
			return obj, sig, err
		}
		newVal := rhs
		switch o := obj.(type) {
		case *object.Instance:
			if expr.Op != "=" {
				cur, ok := o.Properties[target.Name]
				if !ok {
					cur = object.NoneValue
				}
				newVal, err = it.applyBinary(expr, compoundBaseOp(expr.Op), cur, rhs)
				if err != nil {
					return nil, nil, err
				}
			}
			o.Properties[target.Name] = newVal
			return newVal, nil, nil
		case *object.Map:
			if expr.Op != "=" {
				cur, ok := o.Get(object.Text(target.Name))
				if !ok {
					cur = object.NoneValue
				}
				newVal, err = it.applyBinary(expr, compoundBaseOp(expr.Op), cur, rhs)
				if err != nil {
					return nil, nil, err
				}
			}
			o.Set(object.Text(target.Name), newVal)
			return newVal, nil, nil
		default:
			return nil, nil, it.errf(target, diagnostics.Type, "cannot assign to a member of %s", obj.Type())
		}

	case *ast.IndexExpr:
		obj, sig, err := it.evalExpr(target.Object, scope)
		if err != nil || sig != nil {
			return obj, sig, err
		}
		idx, sig, err := it.evalExpr(target.Index, scope)
		if err != nil || sig != nil {
			return idx, sig, err
		}
		switch o := obj.(type) {
		case *object.List:
			i, ok := asInt(idx)
			if !ok || i < 0 || int(i) >= len(o.Elements) {
				return nil, nil, it.errf(target, diagnostics.Index, "index out of range")
			}
			newVal := rhs
			if expr.Op != "=" {
				newVal, err = it.applyBinary(expr, compoundBaseOp(expr.Op), o.Elements[i], rhs)
				if err != nil {
					return nil, nil, err
				}
			}
			o.Elements[i] = newVal
			return newVal, nil, nil
		case *object.Map:
			newVal := rhs
			if expr.Op != "=" {
				cur, ok := o.Get(idx)
				if !ok {
					cur = object.NoneValue
				}
				newVal, err = it.applyBinary(expr, compoundBaseOp(expr.Op), cur, rhs)
				if err != nil {
					return nil, nil, err
				}
			}
			o.Set(idx, newVal)
			return newVal, nil, nil
		default:
			return nil, nil, it.errf(target, diagnostics.Type, "cannot index-assign into %s", obj.Type())
		}

	default:
		return nil, nil, it.errf(expr, diagnostics.Type, "invalid assignment target")
	}
}

func compoundBaseOp(op string) string {
	switch op {
	case "+=":
		return "+"
	case "-=":
		return "-"
	case "*=":
		return "*"
	case "/=":
		return "/"
	}
	return "="
}
