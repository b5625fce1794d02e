package collections

import (
	"testing"

	"github.com/cwbudde/go-rift/internal/object"
)

func hostCall(t *testing.T, m *object.Map, name string, args ...object.Value) object.Value {
	t.Helper()
	v, ok := m.Get(object.Text(name))
	if !ok {
		t.Fatalf("map has no member %q", name)
	}
	fn, ok := v.(*object.HostFunction)
	if !ok {
		t.Fatalf("member %q is not a host function", name)
	}
	out, err := fn.Fn(args)
	if err != nil {
		t.Fatalf("%s(%v) returned an error: %v", name, args, err)
	}
	return out
}

func TestSetDedupesAndReportsSize(t *testing.T) {
	exports := Exports()
	ctor := exports["set"].(*object.HostFunction)
	in := &object.List{Elements: []object.Value{object.Int(1), object.Int(2), object.Int(2), object.Int(3)}}
	v, err := ctor.Fn([]object.Value{in})
	if err != nil {
		t.Fatalf("set(...) returned an error: %v", err)
	}
	m := v.(*object.Map)
	size, _ := m.Get(object.Text("size"))
	if size != object.Int(3) {
		t.Errorf("got size %v, want 3", size)
	}
}

func TestSetHasAndRemove(t *testing.T) {
	exports := Exports()
	ctor := exports["set"].(*object.HostFunction)
	v, _ := ctor.Fn([]object.Value{object.Int(1), object.Int(2)})
	m := v.(*object.Map)

	if hostCall(t, m, "has", object.Int(1)) != object.Bool(true) {
		t.Error("expected has(1) to be true")
	}
	updated := hostCall(t, m, "remove", object.Int(1)).(*object.Map)
	if hostCall(t, updated, "has", object.Int(1)) != object.Bool(false) {
		t.Error("expected has(1) to be false after remove")
	}
}

func TestStackPushPeekPop(t *testing.T) {
	exports := Exports()
	ctor := exports["stack"].(*object.HostFunction)
	v, _ := ctor.Fn([]object.Value{object.Int(1), object.Int(2)})
	m := v.(*object.Map)

	updated := hostCall(t, m, "push", object.Int(3)).(*object.Map)
	if peek := hostCall(t, updated, "peek"); peek != object.Int(3) {
		t.Errorf("peek = %v, want 3 (LIFO top)", peek)
	}
	if popped := hostCall(t, updated, "pop"); popped != object.Int(3) {
		t.Errorf("pop = %v, want 3", popped)
	}
}

func TestStackPopEmptyIsNone(t *testing.T) {
	exports := Exports()
	ctor := exports["stack"].(*object.HostFunction)
	v, _ := ctor.Fn(nil)
	m := v.(*object.Map)
	if popped := hostCall(t, m, "pop"); popped != object.NoneValue {
		t.Errorf("pop on empty stack = %v, want none", popped)
	}
}

func TestQueueEnqueueDequeueIsFIFO(t *testing.T) {
	exports := Exports()
	ctor := exports["queue"].(*object.HostFunction)
	v, _ := ctor.Fn([]object.Value{object.Int(1), object.Int(2)})
	m := v.(*object.Map)

	hostCall(t, m, "enqueue", object.Int(3))
	if front := hostCall(t, m, "dequeue"); front != object.Int(1) {
		t.Errorf("dequeue = %v, want 1 (FIFO front)", front)
	}
	if front := hostCall(t, m, "dequeue"); front != object.Int(2) {
		t.Errorf("dequeue = %v, want 2", front)
	}
}

func TestQueueDequeueEmptyIsNone(t *testing.T) {
	exports := Exports()
	ctor := exports["queue"].(*object.HostFunction)
	v, _ := ctor.Fn(nil)
	m := v.(*object.Map)
	if front := hostCall(t, m, "dequeue"); front != object.NoneValue {
		t.Errorf("dequeue on empty queue = %v, want none", front)
	}
}
