package interp

import (
	"fmt"

	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/diagnostics"
	"github.com/cwbudde/go-rift/internal/object"
)

// genContext is one generator's rendezvous channels: out carries a yielded
// value (or a terminal error) from the generator's goroutine to whoever is
// driving it; in carries the resume signal back.
type genContext struct {
	out chan genMsg
	in  chan struct{}
}

type genMsg struct {
	value object.Value
	err   error
}

// newGenerator builds the state-machine iterator behind a generator
// function: the body runs on its own goroutine, and each yield rendezvous-
// sends its value across an unbuffered channel, letting the goroutine's
// own call stack stand in for the paused continuation.
func (it *Interp) newGenerator(fn *object.Function, receiver object.Value, args []object.Value) *object.Generator {
	ctx := &genContext{out: make(chan genMsg), in: make(chan struct{})}
	genIt := &Interp{
		Global:      it.Global,
		Filename:    it.Filename,
		Modules:     it.Modules,
		moduleCache: it.moduleCache,
		genStack:    append(append([]*genContext{}, it.genStack...), ctx),
	}

	started := false
	done := false

	run := func() {
		base := fn.Captured
		if receiver != nil {
			base = base.Child()
			base.Define("me", receiver, false, true, "")
			if inst, ok := receiver.(*object.Instance); ok && fn.OwnerClass != nil && fn.OwnerClass.Parent != nil {
				base.Define("parent", &object.SuperRef{Instance: inst, Class: fn.OwnerClass.Parent}, false, true, "")
			}
		}
		child, err := bindParams(genIt, fn.Decl, fn.Decl.Params, args, base)
		if err != nil {
			ctx.out <- genMsg{err: err}
			return
		}
		_, _, err = genIt.evalBlock(fn.Decl.Body, child)
		if err != nil {
			ctx.out <- genMsg{err: err}
			return
		}
		close(ctx.out)
	}

	gen := &object.Generator{}
	gen.Resume = func() (object.Value, bool, error) {
		if done {
			return object.NoneValue, false, nil
		}
		if !started {
			started = true
			go run()
		} else {
			ctx.in <- struct{}{}
		}
		msg, ok := <-ctx.out
		if !ok {
			done = true
			gen.Done = true
			return object.NoneValue, false, nil
		}
		if msg.err != nil {
			done = true
			gen.Done = true
			return nil, false, msg.err
		}
		return msg.value, true, nil
	}
	return gen
}

// generatorMember exposes next() as the only member of a generator value:
// a no-argument host function returning {value, done} so rift code can
// drive the generator one step at a time without reaching into Go state.
func generatorMember(gen *object.Generator, name string) (object.Value, error) {
	if name != "next" {
		return nil, fmt.Errorf("no method '%s' on generator", name)
	}
	return &object.HostFunction{Name: "next", Fn: func(args []object.Value) (object.Value, error) {
		val, hasValue, err := gen.Resume()
		if err != nil {
			return nil, err
		}
		out := object.NewMap()
		if hasValue {
			out.Set(object.Text("value"), val)
		} else {
			out.Set(object.Text("value"), object.NoneValue)
		}
		out.Set(object.Text("done"), object.Bool(!hasValue))
		return out, nil
	}}, nil
}

// doYield is the receiving half of the rendezvous: it blocks the
// generator's goroutine until the driver calls Resume again.
func (it *Interp) doYield(node ast.Node, val object.Value) (object.Value, *Signal, error) {
	if len(it.genStack) == 0 {
		return nil, nil, it.errf(node, diagnostics.Runtime, "yield used outside a generator")
	}
	ctx := it.genStack[len(it.genStack)-1]
	ctx.out <- genMsg{value: val}
	<-ctx.in
	return object.NoneValue, nil, nil
}
