package interp

import (
	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/diagnostics"
	"github.com/cwbudde/go-rift/internal/object"
)

// evalPipeline threads the seed value through
// each stage in turn. A call-shaped stage with a bare identifier callee
// tries the value's own method first, falling back to a scope function
// call with the value appended as the last argument. Any other stage is
// evaluated to a callable and invoked with the value as its sole argument.
// An async stage (`~>`) awaits its result before the next stage runs.
func (it *Interp) evalPipeline(expr *ast.PipelineExpr, scope *object.Scope) (object.Value, *Signal, error) {
	value, sig, err := it.evalExpr(expr.Seed, scope)
	if err != nil || sig != nil {
		return value, sig, err
	}

	for _, stage := range expr.Stages {
		value, err = it.runPipelineStage(stage.Expr, value, scope)
		if err != nil {
			return nil, nil, err
		}
		if stage.Async {
			if task, ok := value.(*object.AsyncTask); ok {
				value, err = task.Await()
				if err != nil {
					return nil, nil, err
				}
			}
		}
	}
	return value, nil, nil
}

func (it *Interp) runPipelineStage(stageExpr ast.Expr, value object.Value, scope *object.Scope) (object.Value, error) {
	if call, ok := stageExpr.(*ast.CallExpr); ok {
		if ident, ok := call.Callee.(*ast.Identifier); ok {
			args, sig, err := it.evalArgs(call.Args, scope)
			if err != nil {
				return nil, err
			}
			if sig != nil {
				return nil, it.errf(stageExpr, diagnostics.Runtime, "signal raised while evaluating a pipeline stage's arguments")
			}
			if method, merr := it.memberOf(stageExpr, value, ident.Name); merr == nil {
				switch method.(type) {
				case *object.HostFunction, *object.Function, *object.Lambda, *object.BoundMethod, *object.Class:
					return it.invoke(stageExpr, method, args)
				}
			}
			fn, gerr := scope.Get(ident.Name, it.Filename, it.pos(ident))
			if gerr != nil {
				return nil, gerr
			}
			return it.invoke(stageExpr, fn, append(args, value))
		}
	}

	callee, sig, err := it.evalExpr(stageExpr, scope)
	if err != nil || sig != nil {
		return callee, err
	}
	return it.invoke(stageExpr, callee, []object.Value{value})
}
