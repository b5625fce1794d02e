package interp

import (
	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/diagnostics"
	"github.com/cwbudde/go-rift/internal/object"
)

// evalCall evaluates callee/args left to right,
// flatten spreads, then dispatch on the callee's kind.
func (it *Interp) evalCall(expr *ast.CallExpr, scope *object.Scope) (object.Value, *Signal, error) {
	callee, sig, err := it.evalExpr(expr.Callee, scope)
	if err != nil || sig != nil {
		return callee, sig, err
	}
	args, sig, err := it.evalArgs(expr.Args, scope)
	if err != nil || sig != nil {
		return nil, sig, err
	}
	v, err := it.invoke(expr, callee, args)
	return v, nil, err
}

func (it *Interp) evalArgs(argExprs []ast.Expr, scope *object.Scope) ([]object.Value, *Signal, error) {
	var args []object.Value
	for _, a := range argExprs {
		if spread, ok := a.(*ast.SpreadExpr); ok {
			v, sig, err := it.evalExpr(spread.Value, scope)
			if err != nil || sig != nil {
				return nil, sig, err
			}
			if l, ok := v.(*object.List); ok {
				args = append(args, l.Elements...)
			} else {
				args = append(args, v)
			}
			continue
		}
		v, sig, err := it.evalExpr(a, scope)
		if err != nil || sig != nil {
			return nil, sig, err
		}
		args = append(args, v)
	}
	return args, nil, nil
}

func (it *Interp) invoke(node ast.Node, callee object.Value, args []object.Value) (object.Value, error) {
	switch fn := callee.(type) {
	case *object.HostFunction:
		return fn.Fn(args)
	case *object.Function:
		return it.callFunction(node, fn, nil, args)
	case *object.Lambda:
		return it.callLambda(node, fn, args)
	case *object.BoundMethod:
		return it.callFunction(node, fn.Fn, fn.Receiver, args)
	case *object.Class:
		return it.instantiate(node, fn, args)
	default:
		return nil, it.errf(node, diagnostics.Type, "value of type %s is not callable", callee.Type())
	}
}

func bindParams(it *Interp, node ast.Node, params []ast.Param, args []object.Value, captured *object.Scope) (*object.Scope, error) {
	child := captured.Child()
	i := 0
	for _, param := range params {
		if param.Rest {
			var rest []object.Value
			if i < len(args) {
				rest = append(rest, args[i:]...)
			}
			child.Define(param.Name, &object.List{Elements: rest}, true, false, "")
			i = len(args)
			continue
		}
		var v object.Value
		if i < len(args) {
			v = args[i]
		} else if param.Default != nil {
			dv, sig, err := it.evalExpr(param.Default, captured)
			if err != nil {
				return nil, err
			}
			if sig != nil {
				return nil, it.errf(node, diagnostics.Runtime, "signal raised while evaluating a default parameter value")
			}
			v = dv
		} else {
			v = object.NoneValue
		}
		child.Define(param.Name, v, true, false, param.Type)
		i++
	}
	return child, nil
}

func (it *Interp) callFunction(node ast.Node, fn *object.Function, receiver object.Value, args []object.Value) (object.Value, error) {
	if fn.Generator {
		return it.newGenerator(fn, receiver, args), nil
	}
	base := fn.Captured
	if receiver != nil {
		base = base.Child()
		base.Define("me", receiver, false, true, "")
		if inst, ok := receiver.(*object.Instance); ok && fn.OwnerClass != nil && fn.OwnerClass.Parent != nil {
			base.Define("parent", &object.SuperRef{Instance: inst, Class: fn.OwnerClass.Parent}, false, true, "")
		}
	}
	child, err := bindParams(it, node, fn.Decl.Params, args, base)
	if err != nil {
		return nil, err
	}
	val, sig, err := it.evalBlock(fn.Decl.Body, child)
	if err != nil {
		return nil, err
	}
	if sig != nil {
		if sig.Kind == SigReturn {
			return sig.Value, nil
		}
		return nil, it.errf(node, diagnostics.Runtime, "%s used outside its enclosing construct", signalName(sig.Kind))
	}
	return val, nil
}

func (it *Interp) callLambda(node ast.Node, lam *object.Lambda, args []object.Value) (object.Value, error) {
	child, err := bindParams(it, node, lam.Node.Params, args, lam.Captured)
	if err != nil {
		return nil, err
	}
	switch body := lam.Node.Body.(type) {
	case ast.Expr:
		val, sig, err := it.evalExpr(body, child)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			if sig.Kind == SigReturn {
				return sig.Value, nil
			}
			return nil, it.errf(node, diagnostics.Runtime, "%s used outside its enclosing construct", signalName(sig.Kind))
		}
		return val, nil
	case *ast.BlockStmt:
		val, sig, err := it.evalBlock(body, child)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			if sig.Kind == SigReturn {
				return sig.Value, nil
			}
			return nil, it.errf(node, diagnostics.Runtime, "%s used outside its enclosing construct", signalName(sig.Kind))
		}
		return val, nil
	default:
		return nil, it.errf(node, diagnostics.Runtime, "malformed lambda body")
	}
}
