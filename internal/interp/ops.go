package interp

import (
	"math"
	"strings"

	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/diagnostics"
	"github.com/cwbudde/go-rift/internal/object"
)

func (it *Interp) evalBinary(expr *ast.BinaryExpr, scope *object.Scope) (object.Value, *Signal, error) {
	left, sig, err := it.evalExpr(expr.Left, scope)
	if err != nil || sig != nil {
		return left, sig, err
	}
	right, sig, err := it.evalExpr(expr.Right, scope)
	if err != nil || sig != nil {
		return right, sig, err
	}
	v, err := it.applyBinary(expr, expr.Op, left, right)
	return v, nil, err
}

func (it *Interp) applyBinary(node ast.Node, op string, left, right object.Value) (object.Value, error) {
	switch op {
	case "==":
		return object.Bool(object.Equal(left, right)), nil
	case "!=":
		return object.Bool(!object.Equal(left, right)), nil
	case "<", ">", "<=", ">=":
		return it.compare(node, op, left, right)
	case "in":
		return it.membership(node, left, right)
	}

	if isNumeric(left) && isNumeric(right) {
		return numericBinary(node, op, left, right, it)
	}

	if op == "+" {
		if lt, ok := left.(object.Text); ok {
			return lt + object.Text(valueText(right)), nil
		}
		if rt, ok := right.(object.Text); ok {
			return object.Text(valueText(left)) + rt, nil
		}
		ll, lok := left.(*object.List)
		rl, rok := right.(*object.List)
		if lok && rok {
			out := make([]object.Value, 0, len(ll.Elements)+len(rl.Elements))
			out = append(out, ll.Elements...)
			out = append(out, rl.Elements...)
			return &object.List{Elements: out}, nil
		}
	}

	if op == "*" {
		if t, ok := left.(object.Text); ok {
			if n, ok := asInt(right); ok {
				return object.Text(repeatText(string(t), n)), nil
			}
		}
		if l, ok := left.(*object.List); ok {
			if n, ok := asInt(right); ok {
				return &object.List{Elements: repeatList(l.Elements, n)}, nil
			}
		}
	}

	return nil, it.errf(node, diagnostics.Type, "operator '%s' is not defined for %s and %s", op, left.Type(), right.Type())
}

func repeatText(s string, n int64) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, len(s)*int(n))
	for i := int64(0); i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

func repeatList(elems []object.Value, n int64) []object.Value {
	if n <= 0 {
		return nil
	}
	out := make([]object.Value, 0, len(elems)*int(n))
	for i := int64(0); i < n; i++ {
		out = append(out, elems...)
	}
	return out
}

func isNumeric(v object.Value) bool {
	switch v.(type) {
	case object.Int, object.Float:
		return true
	}
	return false
}

func toFloat(v object.Value) float64 {
	switch val := v.(type) {
	case object.Int:
		return float64(val)
	case object.Float:
		return float64(val)
	}
	return 0
}

func numericBinary(node ast.Node, op string, left, right object.Value, it *Interp) (object.Value, error) {
	li, lIsInt := left.(object.Int)
	ri, rIsInt := right.(object.Int)
	bothInt := lIsInt && rIsInt

	switch op {
	case "+":
		if bothInt {
			return li + ri, nil
		}
		return object.Float(toFloat(left) + toFloat(right)), nil
	case "-":
		if bothInt {
			return li - ri, nil
		}
		return object.Float(toFloat(left) - toFloat(right)), nil
	case "*":
		if bothInt {
			return li * ri, nil
		}
		return object.Float(toFloat(left) * toFloat(right)), nil
	case "/":
		if bothInt {
			if ri == 0 {
				return nil, it.errf(node, diagnostics.DivZero, "division by zero")
			}
			return object.Float(float64(li) / float64(ri)), nil
		}
		if toFloat(right) == 0 {
			return nil, it.errf(node, diagnostics.DivZero, "division by zero")
		}
		return object.Float(toFloat(left) / toFloat(right)), nil
	case "%":
		if bothInt {
			if ri == 0 {
				return nil, it.errf(node, diagnostics.DivZero, "division by zero")
			}
			return li % ri, nil
		}
		rf := toFloat(right)
		if rf == 0 {
			return nil, it.errf(node, diagnostics.DivZero, "division by zero")
		}
		return object.Float(math.Mod(toFloat(left), rf)), nil
	case "**":
		base := toFloat(left)
		exp := toFloat(right)
		result := math.Pow(base, exp)
		if bothInt && exp >= 0 {
			return object.Int(int64(result)), nil
		}
		return object.Float(result), nil
	}
	return nil, it.errf(node, diagnostics.Type, "unsupported numeric operator '%s'", op)
}

func (it *Interp) compare(node ast.Node, op string, left, right object.Value) (object.Value, error) {
	if isNumeric(left) && isNumeric(right) {
		l, r := toFloat(left), toFloat(right)
		return object.Bool(compareFloats(op, l, r)), nil
	}
	if lt, ok := left.(object.Text); ok {
		if rt, ok := right.(object.Text); ok {
			return object.Bool(compareStrings(op, string(lt), string(rt))), nil
		}
	}
	return nil, it.errf(node, diagnostics.Type, "operator '%s' is not defined for %s and %s", op, left.Type(), right.Type())
}

func compareFloats(op string, l, r float64) bool {
	switch op {
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	}
	return false
}

func compareStrings(op string, l, r string) bool {
	switch op {
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	}
	return false
}

func (it *Interp) membership(node ast.Node, needle, haystack object.Value) (object.Value, error) {
	switch hay := haystack.(type) {
	case *object.List:
		for _, el := range hay.Elements {
			if object.Equal(needle, el) {
				return object.Bool(true), nil
			}
		}
		return object.Bool(false), nil
	case *object.Map:
		_, ok := hay.Get(needle)
		return object.Bool(ok), nil
	case object.Text:
		n, ok := needle.(object.Text)
		if !ok {
			return object.Bool(false), nil
		}
		return object.Bool(strings.Contains(string(hay), string(n))), nil
	}
	return nil, it.errf(node, diagnostics.Type, "'in' is not defined for a %s", haystack.Type())
}

// evalComparisonChain: adjacent pairs are
// compared left-to-right with short-circuit on the first failing pair.
func (it *Interp) evalComparisonChain(expr *ast.ComparisonChain, scope *object.Scope) (object.Value, *Signal, error) {
	left, sig, err := it.evalExpr(expr.Operands[0], scope)
	if err != nil || sig != nil {
		return left, sig, err
	}
	for i, op := range expr.Operators {
		right, sig, err := it.evalExpr(expr.Operands[i+1], scope)
		if err != nil || sig != nil {
			return right, sig, err
		}
		ok, err := it.applyBinary(expr, op, left, right)
		if err != nil {
			return nil, nil, err
		}
		if !object.Truthy(ok) {
			return object.Bool(false), nil, nil
		}
		left = right
	}
	return object.Bool(true), nil, nil
}

func (it *Interp) evalLogical(expr *ast.LogicalExpr, scope *object.Scope) (object.Value, *Signal, error) {
	left, sig, err := it.evalExpr(expr.Left, scope)
	if err != nil || sig != nil {
		return left, sig, err
	}
	if expr.Op == "or" {
		if object.Truthy(left) {
			return left, nil, nil
		}
		return it.evalExpr(expr.Right, scope)
	}
	if !object.Truthy(left) {
		return left, nil, nil
	}
	return it.evalExpr(expr.Right, scope)
}

func (it *Interp) evalUnary(expr *ast.UnaryExpr, scope *object.Scope) (object.Value, *Signal, error) {
	v, sig, err := it.evalExpr(expr.Operand, scope)
	if err != nil || sig != nil {
		return v, sig, err
	}
	if expr.Op == "+" {
		if isNumeric(v) {
			return v, nil, nil
		}
		return nil, nil, it.errf(expr, diagnostics.Type, "unary '+' is not defined for %s", v.Type())
	}
	switch val := v.(type) {
	case object.Int:
		return -val, nil, nil
	case object.Float:
		return -val, nil, nil
	}
	return nil, nil, it.errf(expr, diagnostics.Type, "unary '-' is not defined for %s", v.Type())
}
