package functional

import (
	"fmt"
	"testing"

	"github.com/cwbudde/go-rift/internal/object"
)

// fakeInvoke drives host functions directly, standing in for the
// interpreter's call dispatch without importing the interp package.
func fakeInvoke(callee object.Value, args []object.Value) (object.Value, error) {
	fn, ok := callee.(*object.HostFunction)
	if !ok {
		return nil, fmt.Errorf("callee is not callable")
	}
	return fn.Fn(args)
}

func addOne(args []object.Value) (object.Value, error) {
	n, _ := args[0].(object.Int)
	return object.Int(n + 1), nil
}

func double(args []object.Value) (object.Value, error) {
	n, _ := args[0].(object.Int)
	return object.Int(n * 2), nil
}

func TestIdentityReturnsItsArgument(t *testing.T) {
	exports := Exports(fakeInvoke)
	fn := exports["identity"].(*object.HostFunction)
	v, err := fn.Fn([]object.Value{object.Int(7)})
	if err != nil || v != object.Int(7) {
		t.Errorf("got (%v, %v), want (7, nil)", v, err)
	}
}

func TestComposeAppliesRightToLeft(t *testing.T) {
	exports := Exports(fakeInvoke)
	composeFn := exports["compose"].(*object.HostFunction)
	addOneFn := &object.HostFunction{Name: "addOne", Fn: addOne}
	doubleFn := &object.HostFunction{Name: "double", Fn: double}

	composed, err := composeFn.Fn([]object.Value{doubleFn, addOneFn})
	if err != nil {
		t.Fatalf("compose returned an error: %v", err)
	}
	result, err := fakeInvoke(composed, []object.Value{object.Int(3)})
	if err != nil {
		t.Fatalf("calling the composed function returned an error: %v", err)
	}
	if result != object.Int(8) {
		t.Errorf("got %v, want 8 (double(addOne(3)))", result)
	}
}

func TestCurryFixesLeadingArguments(t *testing.T) {
	exports := Exports(fakeInvoke)
	curryFn := exports["curry"].(*object.HostFunction)
	add := &object.HostFunction{Name: "add", Fn: func(args []object.Value) (object.Value, error) {
		a, _ := args[0].(object.Int)
		b, _ := args[1].(object.Int)
		return object.Int(a + b), nil
	}}

	curried, err := curryFn.Fn([]object.Value{add, object.Int(10)})
	if err != nil {
		t.Fatalf("curry returned an error: %v", err)
	}
	result, err := fakeInvoke(curried, []object.Value{object.Int(5)})
	if err != nil {
		t.Fatalf("calling the curried function returned an error: %v", err)
	}
	if result != object.Int(15) {
		t.Errorf("got %v, want 15", result)
	}
}

func TestComposeRejectsNoArguments(t *testing.T) {
	exports := Exports(fakeInvoke)
	fn := exports["compose"].(*object.HostFunction)
	if _, err := fn.Fn(nil); err == nil {
		t.Error("expected an error composing zero functions")
	}
}
