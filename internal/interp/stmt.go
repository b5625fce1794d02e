package interp

import (
	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/diagnostics"
	"github.com/cwbudde/go-rift/internal/object"
)

func (it *Interp) evalStmt(stmt ast.Stmt, scope *object.Scope) (object.Value, *Signal, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return it.evalExprTop(s.Expr, scope)
	case *ast.VarDecl:
		return it.evalVarDecl(s, scope)
	case *ast.DestructureDecl:
		return it.evalDestructureDecl(s, scope)
	case *ast.FuncDecl:
		fn := &object.Function{Decl: s, Captured: scope, Async: s.Async, Generator: s.Generator}
		scope.Define(s.Name, fn, false, false, "")
		return object.NoneValue, nil, nil
	case *ast.ClassDecl:
		return it.evalClassDecl(s, scope)
	case *ast.ImportStmt:
		return it.evalImport(s, scope)
	case *ast.ExportStmt:
		return it.evalExport(s, scope)
	case *ast.IfStmt:
		return it.evalIf(s, scope)
	case *ast.WhileStmt:
		return it.evalWhile(s, scope)
	case *ast.RepeatStmt:
		return it.evalRepeat(s, scope)
	case *ast.CheckStmt:
		val, sig, err := it.evalCheck(s.Subject, s.Cases, scope, s)
		return val, sig, err
	case *ast.TryStmt:
		return it.evalTry(s, scope)
	case *ast.FailStmt:
		val, sig, err := it.evalExprTop(s.Value, scope)
		if err != nil || sig != nil {
			return val, sig, err
		}
		return nil, nil, it.errf(s, diagnostics.Runtime, "%s", valueText(val))
	case *ast.GiveStmt:
		var val object.Value = object.NoneValue
		if s.Value != nil {
			v, sig, err := it.evalExprTop(s.Value, scope)
			if err != nil || sig != nil {
				return v, sig, err
			}
			val = v
		}
		return nil, &Signal{Kind: SigReturn, Value: val}, nil
	case *ast.StopStmt:
		return nil, &Signal{Kind: SigBreak}, nil
	case *ast.NextStmt:
		return nil, &Signal{Kind: SigContinue}, nil
	case *ast.BlockStmt:
		return it.evalBlock(s, scope.Child())
	default:
		return nil, nil, it.errf(stmt, diagnostics.Runtime, "unsupported statement")
	}
}

// evalExprTop evaluates an expression in statement position. It delegates
// to evalExpr unchanged; a yield there suspends through the generator
// rendezvous in doYield rather than returning a signal.
func (it *Interp) evalExprTop(e ast.Expr, scope *object.Scope) (object.Value, *Signal, error) {
	return it.evalExpr(e, scope)
}

func (it *Interp) evalVarDecl(d *ast.VarDecl, scope *object.Scope) (object.Value, *Signal, error) {
	var val object.Value = object.NoneValue
	if d.Init != nil {
		v, sig, err := it.evalExpr(d.Init, scope)
		if err != nil || sig != nil {
			return v, sig, err
		}
		val = v
	}
	if d.Type != "" && !object.MatchesTypeHint(d.Type, val) {
		return nil, nil, it.errf(d, diagnostics.Type, "value of type '%s' does not match declared type '%s'", object.TypeName(val), d.Type)
	}
	mutable := d.Kind == ast.DeclMut
	constant := d.Kind == ast.DeclConst
	scope.Define(d.Name, val, mutable, constant, d.Type)
	return object.NoneValue, nil, nil
}

func (it *Interp) evalDestructureDecl(d *ast.DestructureDecl, scope *object.Scope) (object.Value, *Signal, error) {
	src, sig, err := it.evalExpr(d.Source, scope)
	if err != nil || sig != nil {
		return src, sig, err
	}
	mutable := d.Kind == ast.DeclMut
	constant := d.Kind == ast.DeclConst

	if d.ListElems != nil {
		list, _ := src.(*object.List)
		var elems []object.Value
		if list != nil {
			elems = list.Elements
		}
		pos := 0
		for _, el := range d.ListElems {
			if el.Rest {
				var rest []object.Value
				if pos < len(elems) {
					rest = append(rest, elems[pos:]...)
				}
				scope.Define(el.Name, &object.List{Elements: rest}, mutable, constant, "")
				pos = len(elems)
				continue
			}
			var v object.Value = object.NoneValue
			if pos < len(elems) {
				v = elems[pos]
			}
			scope.Define(el.Name, v, mutable, constant, "")
			pos++
		}
		return object.NoneValue, nil, nil
	}

	m, _ := src.(*object.Map)
	for _, el := range d.MapElems {
		var v object.Value = object.NoneValue
		if m != nil {
			if found, ok := m.Get(object.Text(el.Key)); ok {
				v = found
			}
		}
		scope.Define(el.Alias, v, mutable, constant, "")
	}
	return object.NoneValue, nil, nil
}

func (it *Interp) evalIf(s *ast.IfStmt, scope *object.Scope) (object.Value, *Signal, error) {
	cond, sig, err := it.evalExpr(s.Cond, scope)
	if err != nil || sig != nil {
		return cond, sig, err
	}
	if object.Truthy(cond) {
		return it.evalBlock(s.Then, scope.Child())
	}
	switch elseNode := s.Else.(type) {
	case nil:
		return object.NoneValue, nil, nil
	case *ast.BlockStmt:
		return it.evalBlock(elseNode, scope.Child())
	case *ast.IfStmt:
		return it.evalIf(elseNode, scope)
	default:
		return object.NoneValue, nil, nil
	}
}

func (it *Interp) evalWhile(s *ast.WhileStmt, scope *object.Scope) (object.Value, *Signal, error) {
	var result object.Value = object.NoneValue
	for {
		cond, sig, err := it.evalExpr(s.Cond, scope)
		if err != nil || sig != nil {
			return cond, sig, err
		}
		if !object.Truthy(cond) {
			break
		}
		val, sig, err := it.evalBlock(s.Body, scope.Child())
		if err != nil {
			return nil, nil, err
		}
		if sig != nil {
			if sig.Kind == SigBreak {
				break
			}
			if sig.Kind == SigContinue {
				continue
			}
			return nil, sig, nil
		}
		result = val
	}
	return result, nil, nil
}

func (it *Interp) evalRepeat(s *ast.RepeatStmt, scope *object.Scope) (object.Value, *Signal, error) {
	iterable, sig, err := it.evalExpr(s.Iterable, scope)
	if err != nil || sig != nil {
		return iterable, sig, err
	}
	items, err := iterationItems(iterable)
	if err != nil {
		return nil, nil, it.errf(s, diagnostics.Type, "%s", err.Error())
	}
	var result object.Value = object.NoneValue
	for idx, item := range items {
		child := scope.Child()
		if s.IndexName != "" {
			child.Define(s.IndexName, object.Int(idx), false, false, "")
		}
		child.Define(s.ItemName, item, false, false, "")
		val, sig, err := it.evalBlock(s.Body, child)
		if err != nil {
			return nil, nil, err
		}
		if sig != nil {
			if sig.Kind == SigBreak {
				break
			}
			if sig.Kind == SigContinue {
				continue
			}
			return nil, sig, nil
		}
		result = val
	}
	return result, nil, nil
}

// iterationItems materializes any "repeat" iterable into a value
// slice: sequences directly, text by code point, maps as (key, value)
// pair-lists, integer ranges by expansion.
func iterationItems(v object.Value) ([]object.Value, error) {
	switch val := v.(type) {
	case *object.List:
		return append([]object.Value(nil), val.Elements...), nil
	case object.Text:
		runes := []rune(string(val))
		out := make([]object.Value, len(runes))
		for i, r := range runes {
			out[i] = object.Text(string(r))
		}
		return out, nil
	case *object.Map:
		out := make([]object.Value, 0, val.Len())
		for _, k := range val.Keys() {
			v, _ := val.Get(k)
			out = append(out, &object.List{Elements: []object.Value{k, v}})
		}
		return out, nil
	case *object.Generator:
		var out []object.Value
		for {
			v, hasValue, err := val.Resume()
			if err != nil {
				return nil, err
			}
			if !hasValue {
				break
			}
			out = append(out, v)
		}
		return out, nil
	default:
		return nil, errNotIterable(v)
	}
}

func errNotIterable(v object.Value) error {
	return &notIterableError{typ: v.Type()}
}

type notIterableError struct{ typ string }

func (e *notIterableError) Error() string { return "cannot iterate over a value of type '" + e.typ + "'" }

func (it *Interp) evalTry(s *ast.TryStmt, scope *object.Scope) (retVal object.Value, retSig *Signal, retErr error) {
	runFinally := func() (object.Value, *Signal, error) {
		if !s.HasFinally {
			return object.NoneValue, nil, nil
		}
		return it.evalBlock(s.Finally, scope.Child())
	}

	val, sig, err := it.evalBlock(s.Try, scope.Child())

	if err != nil {
		if !s.HasCatch {
			_, fsig, ferr := runFinally()
			if ferr != nil {
				return nil, nil, ferr
			}
			if fsig != nil {
				return nil, fsig, nil
			}
			return nil, nil, err
		}
		catchScope := scope.Child()
		catchScope.Define(s.CatchName, object.Text(err.Error()), false, false, "")
		cval, csig, cerr := it.evalBlock(s.Catch, catchScope)
		_, fsig, ferr := runFinally()
		if ferr != nil {
			return nil, nil, ferr
		}
		if fsig != nil {
			return nil, fsig, nil
		}
		return cval, csig, cerr
	}

	_, fsig, ferr := runFinally()
	if ferr != nil {
		return nil, nil, ferr
	}
	if fsig != nil {
		return nil, fsig, nil
	}
	return val, sig, nil
}
