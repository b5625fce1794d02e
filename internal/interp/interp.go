// Package interp is the tree-walking evaluator: it drives execution by
// dispatching on syntax node kind, manages the scope chain, and
// implements the signal-based non-local exit mechanism.
package interp

import (
	"fmt"

	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/diagnostics"
	"github.com/cwbudde/go-rift/internal/module"
	"github.com/cwbudde/go-rift/internal/object"
	"github.com/cwbudde/go-rift/internal/stdlib/functional"
)

// SignalKind distinguishes the four non-local-exit shapes: rather than
// unwind the Go call stack via panic, every eval function returns an
// explicit (value, signal, error) triple so try/catch can refuse to
// intercept signals by construction.
type SignalKind int

const (
	SigReturn SignalKind = iota
	SigBreak
	SigContinue
	SigYield
)

// Signal carries a non-local exit in flight. A nil *Signal means normal
// completion.
type Signal struct {
	Kind  SignalKind
	Value object.Value
}

// Interp holds the state of one interpreter instance: its global scope,
// the module cache, and the file name used in diagnostics.
type Interp struct {
	Global      *object.Scope
	Filename    string
	Modules     *module.Resolver
	moduleCache map[string]map[string]object.Value
	genStack    []*genContext
	exports     map[string]object.Value
}

func New(filename string, resolver *module.Resolver) *Interp {
	it := &Interp{
		Global:      object.NewGlobalScope(),
		Filename:    filename,
		Modules:     resolver,
		moduleCache: map[string]map[string]object.Value{},
	}
	registerBuiltins(it)
	if resolver != nil {
		resolver.RegisterStdlib("functional", functional.Exports(func(callee object.Value, args []object.Value) (object.Value, error) {
			return it.invoke(builtinNode, callee, args)
		}))
	}
	return it
}

func (it *Interp) pos(n ast.Node) diagnostics.Position {
	p := n.Position()
	return diagnostics.Position{Line: p.Line, Column: p.Column}
}

func (it *Interp) errf(n ast.Node, kind diagnostics.Kind, format string, args ...any) error {
	return diagnostics.New(kind, it.Filename, it.pos(n), format, args...)
}

// Run evaluates a whole program against the global scope.
func (it *Interp) Run(prog *ast.Program) (object.Value, error) {
	val, sig, err := it.evalBlockStatements(prog.Statements, it.Global)
	if err != nil {
		return nil, err
	}
	if sig != nil {
		return nil, fmt.Errorf("top-level %s outside any enclosing construct", signalName(sig.Kind))
	}
	return val, nil
}

func signalName(k SignalKind) string {
	switch k {
	case SigReturn:
		return "give"
	case SigBreak:
		return "stop"
	case SigContinue:
		return "next"
	case SigYield:
		return "yield"
	default:
		return "signal"
	}
}

// evalBlockStatements evaluates a statement list in order; the block's
// value is the value of its last statement (auto-return), evaluated once.
func (it *Interp) evalBlockStatements(stmts []ast.Stmt, scope *object.Scope) (object.Value, *Signal, error) {
	var last object.Value = object.NoneValue
	for _, stmt := range stmts {
		val, sig, err := it.evalStmt(stmt, scope)
		if err != nil {
			return nil, nil, err
		}
		if sig != nil {
			return nil, sig, nil
		}
		last = val
	}
	return last, nil, nil
}

func (it *Interp) evalBlock(block *ast.BlockStmt, scope *object.Scope) (object.Value, *Signal, error) {
	return it.evalBlockStatements(block.Statements, scope)
}
