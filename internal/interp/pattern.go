package interp

import (
	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/object"
)

// evalCheck evaluates the subject once, then tries
// each case's pattern in order. A matching pattern contributes bindings to
// a child scope; if the case has a guard it is evaluated against that
// scope and must be truthy for the case to win. The first winning case's
// body runs in the bindings scope. No match yields none.
func (it *Interp) evalCheck(subject ast.Expr, cases []ast.CheckCase, scope *object.Scope, node ast.Node) (object.Value, *Signal, error) {
	val, sig, err := it.evalExpr(subject, scope)
	if err != nil || sig != nil {
		return val, sig, err
	}

	for _, c := range cases {
		caseScope := scope.Child()
		ok, err := it.matchPattern(c.Pattern, val, caseScope)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}
		if c.Guard != nil {
			gv, gsig, gerr := it.evalExpr(c.Guard, caseScope)
			if gerr != nil || gsig != nil {
				return gv, gsig, gerr
			}
			if !object.Truthy(gv) {
				continue
			}
		}
		switch body := c.Body.(type) {
		case ast.Expr:
			return it.evalExpr(body, caseScope)
		case *ast.BlockStmt:
			return it.evalBlock(body, caseScope)
		}
	}
	return object.NoneValue, nil, nil
}

func (it *Interp) matchPattern(p ast.Pattern, val object.Value, scope *object.Scope) (bool, error) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return true, nil

	case *ast.BindingPattern:
		scope.Define(pat.Name, val, false, false, "")
		return true, nil

	case *ast.LiteralPattern:
		return object.Equal(literalPatternValue(pat), val), nil

	case *ast.RangePattern:
		startV, sig, err := it.evalExpr(pat.Start, scope)
		if err != nil || sig != nil {
			return false, err
		}
		endV, sig, err := it.evalExpr(pat.End, scope)
		if err != nil || sig != nil {
			return false, err
		}
		start, ok1 := asInt(startV)
		end, ok2 := asInt(endV)
		n, ok3 := asInt(val)
		if !ok1 || !ok2 || !ok3 {
			return false, nil
		}
		return n >= start && n <= end, nil

	case *ast.ListPattern:
		list, ok := val.(*object.List)
		if !ok {
			return false, nil
		}
		if pat.Rest == "" && len(pat.Elements) != len(list.Elements) {
			return false, nil
		}
		if pat.Rest != "" && len(list.Elements) < len(pat.Elements) {
			return false, nil
		}
		for i, elemPat := range pat.Elements {
			matched, err := it.matchPattern(elemPat, list.Elements[i], scope)
			if err != nil || !matched {
				return false, err
			}
		}
		if pat.Rest != "" {
			rest := append([]object.Value{}, list.Elements[len(pat.Elements):]...)
			scope.Define(pat.Rest, &object.List{Elements: rest}, false, false, "")
		}
		return true, nil

	case *ast.MapPattern:
		m, ok := val.(*object.Map)
		if !ok {
			return false, nil
		}
		for _, entry := range pat.Entries {
			v, ok := m.Get(object.Text(entry.Key))
			if !ok {
				return false, nil
			}
			matched, err := it.matchPattern(entry.Pattern, v, scope)
			if err != nil || !matched {
				return false, err
			}
		}
		return true, nil

	case *ast.ExprPattern:
		v, sig, err := it.evalExpr(pat.Value, scope)
		if err != nil || sig != nil {
			return false, err
		}
		return object.Equal(v, val), nil

	default:
		return false, nil
	}
}

func literalPatternValue(p *ast.LiteralPattern) object.Value {
	switch v := p.Value.(type) {
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
