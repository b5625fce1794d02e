package interp

import (
	"strings"

	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/diagnostics"
	"github.com/cwbudde/go-rift/internal/object"
)

func valueText(v object.Value) string {
	if v == nil {
		return "none"
	}
	return v.String()
}

func (it *Interp) evalExpr(e ast.Expr, scope *object.Scope) (object.Value, *Signal, error) {
	switch expr := e.(type) {
	case *ast.Literal:
		return literalValue(expr), nil, nil
	case *ast.Identifier:
		v, err := scope.Get(expr.Name, it.Filename, it.pos(expr))
		return v, nil, err
	case *ast.Self:
		v, err := scope.Get("me", it.Filename, it.pos(expr))
		return v, nil, err
	case *ast.Parent:
		v, err := scope.Get("parent", it.Filename, it.pos(expr))
		return v, nil, err
	case *ast.BinaryExpr:
		return it.evalBinary(expr, scope)
	case *ast.UnaryExpr:
		return it.evalUnary(expr, scope)
	case *ast.ComparisonChain:
		return it.evalComparisonChain(expr, scope)
	case *ast.LogicalExpr:
		return it.evalLogical(expr, scope)
	case *ast.NotExpr:
		v, sig, err := it.evalExpr(expr.Operand, scope)
		if err != nil || sig != nil {
			return v, sig, err
		}
		return object.Bool(!object.Truthy(v)), nil, nil
	case *ast.AssignExpr:
		return it.evalAssign(expr, scope)
	case *ast.SpreadExpr:
		return it.evalExpr(expr.Value, scope)
	case *ast.CallExpr:
		return it.evalCall(expr, scope)
	case *ast.MemberExpr:
		return it.evalMember(expr, scope)
	case *ast.IndexExpr:
		return it.evalIndex(expr, scope)
	case *ast.StaticAccessExpr:
		return it.evalStaticAccess(expr, scope)
	case *ast.ListLiteral:
		return it.evalListLiteral(expr, scope)
	case *ast.MapLiteral:
		return it.evalMapLiteral(expr, scope)
	case *ast.RangeExpr:
		return it.evalRange(expr, scope)
	case *ast.PipelineExpr:
		return it.evalPipeline(expr, scope)
	case *ast.LambdaExpr:
		return &object.Lambda{Node: expr, Captured: scope}, nil, nil
	case *ast.TernaryExpr:
		cond, sig, err := it.evalExpr(expr.Cond, scope)
		if err != nil || sig != nil {
			return cond, sig, err
		}
		if object.Truthy(cond) {
			return it.evalExpr(expr.Then, scope)
		}
		return it.evalExpr(expr.Else, scope)
	case *ast.NullCoalesceExpr:
		left, sig, err := it.evalExpr(expr.Left, scope)
		if err != nil || sig != nil {
			return left, sig, err
		}
		if _, isNone := left.(object.None); isNone {
			return it.evalExpr(expr.Right, scope)
		}
		return left, nil, nil
	case *ast.AwaitExpr:
		return it.evalAwait(expr, scope)
	case *ast.YieldExpr:
		var val object.Value = object.NoneValue
		if expr.Operand != nil {
			v, sig, err := it.evalExpr(expr.Operand, scope)
			if err != nil || sig != nil {
				return v, sig, err
			}
			val = v
		}
		return it.doYield(expr, val)
	case *ast.TemplateStringExpr:
		return it.evalTemplateString(expr, scope)
	case *ast.CheckExpr:
		return it.evalCheck(expr.Subject, expr.Cases, scope, expr)
	default:
		return nil, nil, it.errf(e, diagnostics.Runtime, "unsupported expression")
	}
}

func literalValue(l *ast.Literal) object.Value {
	switch v := l.Value.(type) {
	case nil:
		return object.NoneValue
	case bool:
		return object.Bool(v)
	case int64:
		return object.Int(v)
	case float64:
		return object.Float(v)
	case string:
		return object.Text(v)
	default:
		return object.NoneValue
	}
}

func (it *Interp) evalListLiteral(expr *ast.ListLiteral, scope *object.Scope) (object.Value, *Signal, error) {
	list := &object.List{}
	for _, elem := range expr.Elements {
		if spread, ok := elem.(*ast.SpreadExpr); ok {
			v, sig, err := it.evalExpr(spread.Value, scope)
			if err != nil || sig != nil {
				return v, sig, err
			}
			if inner, ok := v.(*object.List); ok {
				list.Elements = append(list.Elements, inner.Elements...)
			} else {
				list.Elements = append(list.Elements, v)
			}
			continue
		}
		v, sig, err := it.evalExpr(elem, scope)
		if err != nil || sig != nil {
			return v, sig, err
		}
		list.Elements = append(list.Elements, v)
	}
	return list, nil, nil
}

func (it *Interp) evalMapLiteral(expr *ast.MapLiteral, scope *object.Scope) (object.Value, *Signal, error) {
	m := object.NewMap()
	for _, entry := range expr.Entries {
		if entry.Key == nil {
			v, sig, err := it.evalExpr(entry.Value, scope)
			if err != nil || sig != nil {
				return v, sig, err
			}
			if inner, ok := v.(*object.Map); ok {
				for _, k := range inner.Keys() {
					vv, _ := inner.Get(k)
					m.Set(k, vv)
				}
			}
			continue
		}
		k, sig, err := it.evalExpr(entry.Key, scope)
		if err != nil || sig != nil {
			return k, sig, err
		}
		v, sig, err := it.evalExpr(entry.Value, scope)
		if err != nil || sig != nil {
			return v, sig, err
		}
		m.Set(k, v)
	}
	return m, nil, nil
}

func (it *Interp) evalRange(expr *ast.RangeExpr, scope *object.Scope) (object.Value, *Signal, error) {
	startV, sig, err := it.evalExpr(expr.Start, scope)
	if err != nil || sig != nil {
		return startV, sig, err
	}
	endV, sig, err := it.evalExpr(expr.End, scope)
	if err != nil || sig != nil {
		return endV, sig, err
	}
	start, ok1 := asInt(startV)
	end, ok2 := asInt(endV)
	if !ok1 || !ok2 {
		return nil, nil, it.errf(expr, diagnostics.Type, "range bounds must be integers")
	}
	list := &object.List{}
	for i := start; i <= end; i++ {
		list.Elements = append(list.Elements, object.Int(i))
	}
	return list, nil, nil
}

func asInt(v object.Value) (int64, bool) {
	switch val := v.(type) {
	case object.Int:
		return int64(val), true
	case object.Float:
		return int64(val), true
	}
	return 0, false
}

func (it *Interp) evalTemplateString(expr *ast.TemplateStringExpr, scope *object.Scope) (object.Value, *Signal, error) {
	var sb strings.Builder
	for _, part := range expr.Parts {
		if part.Expr == nil {
			sb.WriteString(part.Literal)
			continue
		}
		v, sig, err := it.evalExpr(part.Expr, scope)
		if err != nil || sig != nil {
			return v, sig, err
		}
		sb.WriteString(valueText(v))
	}
	return object.Text(sb.String()), nil, nil
}

func (it *Interp) evalAwait(expr *ast.AwaitExpr, scope *object.Scope) (object.Value, *Signal, error) {
	v, sig, err := it.evalExpr(expr.Operand, scope)
	if err != nil || sig != nil {
		return v, sig, err
	}
	task, ok := v.(*object.AsyncTask)
	if !ok {
		return v, nil, nil
	}
	result, err := task.Await()
	if err != nil {
		return nil, nil, err
	}
	return result, nil, nil
}
