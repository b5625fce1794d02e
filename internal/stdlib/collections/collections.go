// Package collections implements set/stack/queue helpers over rift
// values. No pack dependency covers this ground, so it's built on the
// core object model directly.
package collections

import (
	"fmt"

	"github.com/cwbudde/go-rift/internal/object"
)

// Exports returns the collections module's bindings: set, stack, queue
// constructors, each producing a map-backed instance with its own methods
// bound as host functions closing over the instance's state.
func Exports() map[string]object.Value {
	out := map[string]object.Value{}
	add := func(name string, f func([]object.Value) (object.Value, error)) {
		out[name] = &object.HostFunction{Name: name, Fn: f}
	}

	add("set", func(args []object.Value) (object.Value, error) {
		s := newSet()
		for _, a := range args {
			if l, ok := a.(*object.List); ok {
				for _, el := range l.Elements {
					s.add(el)
				}
				continue
			}
			s.add(a)
		}
		return s.asMap(), nil
	})

	add("stack", func(args []object.Value) (object.Value, error) {
		st := &stack{}
		st.pushAll(args)
		return st.asMap(), nil
	})

	add("queue", func(args []object.Value) (object.Value, error) {
		q := &queue{}
		q.pushAll(args)
		return q.asMap(), nil
	})

	return out
}

// --- set ---

type orderedSet struct {
	keys   []object.Value
	lookup map[string]bool
}

func newSet() *orderedSet { return &orderedSet{lookup: map[string]bool{}} }

func keyOf(v object.Value) string { return v.Type() + ":" + v.String() }

func (s *orderedSet) add(v object.Value) {
	k := keyOf(v)
	if s.lookup[k] {
		return
	}
	s.lookup[k] = true
	s.keys = append(s.keys, v)
}

func (s *orderedSet) has(v object.Value) bool { return s.lookup[keyOf(v)] }

func (s *orderedSet) remove(v object.Value) {
	k := keyOf(v)
	if !s.lookup[k] {
		return
	}
	delete(s.lookup, k)
	for i, existing := range s.keys {
		if keyOf(existing) == k {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

func (s *orderedSet) asMap() *object.Map {
	m := object.NewMap()
	m.Set(object.Text("values"), &object.List{Elements: append([]object.Value{}, s.keys...)})
	m.Set(object.Text("add"), &object.HostFunction{Name: "add", Fn: func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("set.add expects 1 argument")
		}
		s.add(args[0])
		return s.asMap(), nil
	}})
	m.Set(object.Text("has"), &object.HostFunction{Name: "has", Fn: func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("set.has expects 1 argument")
		}
		return object.Bool(s.has(args[0])), nil
	}})
	m.Set(object.Text("remove"), &object.HostFunction{Name: "remove", Fn: func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("set.remove expects 1 argument")
		}
		s.remove(args[0])
		return s.asMap(), nil
	}})
	m.Set(object.Text("size"), object.Int(len(s.keys)))
	return m
}

// --- stack (LIFO) ---

type stack struct{ items []object.Value }

func (s *stack) pushAll(vs []object.Value) { s.items = append(s.items, vs...) }

func (s *stack) asMap() *object.Map {
	m := object.NewMap()
	m.Set(object.Text("push"), &object.HostFunction{Name: "push", Fn: func(args []object.Value) (object.Value, error) {
		s.items = append(s.items, args...)
		return s.asMap(), nil
	}})
	m.Set(object.Text("pop"), &object.HostFunction{Name: "pop", Fn: func(args []object.Value) (object.Value, error) {
		if len(s.items) == 0 {
			return object.NoneValue, nil
		}
		top := s.items[len(s.items)-1]
		s.items = s.items[:len(s.items)-1]
		return top, nil
	}})
	m.Set(object.Text("peek"), &object.HostFunction{Name: "peek", Fn: func(args []object.Value) (object.Value, error) {
		if len(s.items) == 0 {
			return object.NoneValue, nil
		}
		return s.items[len(s.items)-1], nil
	}})
	m.Set(object.Text("size"), object.Int(len(s.items)))
	return m
}

// --- queue (FIFO) ---

type queue struct{ items []object.Value }

func (q *queue) pushAll(vs []object.Value) { q.items = append(q.items, vs...) }

func (q *queue) asMap() *object.Map {
	m := object.NewMap()
	m.Set(object.Text("enqueue"), &object.HostFunction{Name: "enqueue", Fn: func(args []object.Value) (object.Value, error) {
		q.items = append(q.items, args...)
		return m, nil
	}})
	m.Set(object.Text("dequeue"), &object.HostFunction{Name: "dequeue", Fn: func(args []object.Value) (object.Value, error) {
		if len(q.items) == 0 {
			return object.NoneValue, nil
		}
		front := q.items[0]
		q.items = q.items[1:]
		return front, nil
	}})
	m.Set(object.Text("size"), object.Int(len(q.items)))
	return m
}
