package object

import "github.com/cwbudde/go-rift/internal/diagnostics"

type binding struct {
	value     Value
	mutable   bool
	constant  bool
	typeHint  string
	initiated bool // set after the first assignment; gates immutable re-writes
}

// Scope is a parent-ward chain of named bindings. Captured
// scopes are shared mutable state: every closure holding the same *Scope
// observes the others' writes.
type Scope struct {
	parent   *Scope
	bindings map[string]*binding
}

func NewGlobalScope() *Scope {
	s := &Scope{bindings: map[string]*binding{}}
	s.Define("yes", Bool(true), false, true, "")
	s.Define("no", Bool(false), false, true, "")
	s.Define("none", NoneValue, false, true, "")
	return s
}

func (s *Scope) Child() *Scope {
	return &Scope{parent: s, bindings: map[string]*binding{}}
}

// Define adds a binding in the current scope, shadowing any outer binding
// of the same name.
func (s *Scope) Define(name string, value Value, mutable, constant bool, typeHint string) {
	s.bindings[name] = &binding{value: value, mutable: mutable, constant: constant, typeHint: typeHint, initiated: true}
}

func (s *Scope) lookup(name string) (*Scope, *binding, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.bindings[name]; ok {
			return sc, b, true
		}
	}
	return nil, nil, false
}

// Get resolves the nearest binding for name.
func (s *Scope) Get(name string, file string, pos diagnostics.Position) (Value, error) {
	_, b, ok := s.lookup(name)
	if !ok {
		return nil, diagnostics.New(diagnostics.Name, file, pos, "undefined name '%s'", name)
	}
	return b.value, nil
}

// Has reports whether name is visible from this scope.
func (s *Scope) Has(name string) bool {
	_, _, ok := s.lookup(name)
	return ok
}

// Set writes to the nearest binding, honoring mutability/constness rules.
func (s *Scope) Set(name string, value Value, file string, pos diagnostics.Position) error {
	_, b, ok := s.lookup(name)
	if !ok {
		return diagnostics.New(diagnostics.Name, file, pos, "undefined name '%s'", name)
	}
	if b.constant {
		return diagnostics.New(diagnostics.Assign, file, pos, "cannot assign to constant '%s'", name)
	}
	if !b.mutable && b.initiated {
		return diagnostics.New(diagnostics.Assign, file, pos, "cannot assign to immutable binding '%s'", name)
	}
	b.value = value
	b.initiated = true
	return nil
}

// TypeHint returns the declared type hint for name, or "" if none/unbound.
func (s *Scope) TypeHint(name string) string {
	_, b, ok := s.lookup(name)
	if !ok {
		return ""
	}
	return b.typeHint
}
