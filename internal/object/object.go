// Package object defines the runtime value model: the tagged variant of
// values the evaluator produces and consumes, and the scope chain that
// binds names to them.
package object

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/go-rift/internal/ast"
)

// Value is the tagged-variant runtime value every expression evaluates to.
// Concrete types below are the variants; a type switch in the evaluator
// dispatches on them.
type Value interface {
	Type() string
	String() string
}

// None is the single none value.
type None struct{}

func (None) Type() string   { return "none" }
func (None) String() string { return "none" }

// NoneValue is the canonical None instance; None carries no state so every
// none in the system can share it.
var NoneValue = None{}

type Bool bool

func (Bool) Type() string     { return "bool" }
func (b Bool) String() string {
	if b {
		return "yes"
	}
	return "no"
}

// Int is a 64-bit signed integer, the language's only integer width.
type Int int64

func (Int) Type() string     { return "num" }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

type Float float64

func (Float) Type() string { return "num" }
func (f Float) String() string {
	if math.Trunc(float64(f)) == float64(f) && !math.IsInf(float64(f), 0) {
		return strconv.FormatFloat(float64(f), 'f', 1, 64)
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

type Text string

func (Text) Type() string     { return "text" }
func (t Text) String() string { return string(t) }

// Quoted renders the text with surrounding double quotes and Go-style
// escapes; template strings and REPL echo print text unquoted instead.
func (t Text) Quoted() string { return strconv.Quote(string(t)) }

// List is an ordered, mutable sequence of values.
type List struct {
	Elements []Value
}

func (*List) Type() string { return "list" }
func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = renderNested(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Map is an insertion-ordered mapping from value to value, compared by
// structural equality.
type Map struct {
	keys   []Value
	values map[string]Value
	raw    map[string]Value // key.String() -> original key Value
}

func NewMap() *Map {
	return &Map{values: map[string]Value{}, raw: map[string]Value{}}
}

func mapKey(v Value) string { return v.Type() + ":" + v.String() }

func (m *Map) Get(key Value) (Value, bool) {
	v, ok := m.values[mapKey(key)]
	return v, ok
}

func (m *Map) Set(key, value Value) {
	k := mapKey(key)
	if _, exists := m.values[k]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[k] = value
	m.raw[k] = key
}

func (m *Map) Delete(key Value) {
	k := mapKey(key)
	if _, exists := m.values[k]; !exists {
		return
	}
	delete(m.values, k)
	delete(m.raw, k)
	for i, existing := range m.keys {
		if mapKey(existing) == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m *Map) Keys() []Value { return m.keys }

func (m *Map) Len() int { return len(m.keys) }

func (*Map) Type() string { return "map" }
func (m *Map) String() string {
	parts := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		v, _ := m.Get(k)
		parts = append(parts, fmt.Sprintf("%s: %s", renderNested(k), renderNested(v)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func renderNested(v Value) string {
	if t, ok := v.(Text); ok {
		return t.Quoted()
	}
	return v.String()
}

// Function is a user-declared `conduit`: a declaration node closing over
// the scope it was defined in.
type Function struct {
	Decl      *ast.FuncDecl
	Captured  *Scope
	IsMethod  bool
	Async     bool
	Generator bool
	// OwnerClass is the class whose body declared this method, as opposed
	// to the receiver's actual (possibly more-derived) class. A `parent`
	// reference inside the method resolves against OwnerClass.Parent.
	OwnerClass *Class
}

func (*Function) Type() string     { return "conduit" }
func (f *Function) String() string { return "<conduit " + f.Decl.Name + ">" }

// Lambda wraps a lambda expression and the scope it closed over.
type Lambda struct {
	Node     *ast.LambdaExpr
	Captured *Scope
}

func (*Lambda) Type() string     { return "conduit" }
func (*Lambda) String() string   { return "<lambda>" }

// BoundMethod pairs a receiving instance with the function to invoke,
// produced by member access on an instance.
type BoundMethod struct {
	Receiver Value
	Fn       *Function
}

func (*BoundMethod) Type() string     { return "conduit" }
func (*BoundMethod) String() string   { return "<bound method>" }

// SuperRef is the value a `parent` reference evaluates to inside a method:
// the same receiving instance, but with method lookup starting one step
// above the class that declared the currently-executing method rather than
// at the instance's own (possibly overriding) class.
type SuperRef struct {
	Instance *Instance
	Class    *Class
}

func (*SuperRef) Type() string     { return "conduit" }
func (s *SuperRef) String() string { return "<parent of " + s.Instance.Class.Name + ">" }

// HostFunction wraps a Go function exposed to rift code, either a free
// stdlib function or one bound to a receiver (e.g. "text".upper).
type HostFunction struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (*HostFunction) Type() string     { return "conduit" }
func (h *HostFunction) String() string { return "<host function " + h.Name + ">" }

// Class is a class value: own methods/properties, optional parent, static
// members, optional constructor.
type Class struct {
	Name            string
	Parent          *Class
	OwnMethods      map[string]*Function
	OwnProperties   map[string]ast.Expr // default-value expressions, evaluated per-instance
	StaticMethods   map[string]*Function
	StaticProps     map[string]Value
	Constructor     *Function
	DefiningScope   *Scope
}

func (*Class) Type() string     { return "class" }
func (c *Class) String() string { return "<class " + c.Name + ">" }

// LookupMethod walks the parent chain for an own (non-static) method.
func (c *Class) LookupMethod(name string) (*Function, bool) {
	for cls := c; cls != nil; cls = cls.Parent {
		if fn, ok := cls.OwnMethods[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// LookupStatic walks the parent chain for a static method or property.
func (c *Class) LookupStatic(name string) (Value, bool) {
	for cls := c; cls != nil; cls = cls.Parent {
		if fn, ok := cls.StaticMethods[name]; ok {
			return fn, true
		}
		if v, ok := cls.StaticProps[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// PropertyDefaults walks the parent chain, parent-first, collecting every
// own-property default expression so a subclass instance gets every
// ancestor's fields too.
func (c *Class) PropertyDefaults() map[string]ast.Expr {
	out := map[string]ast.Expr{}
	var chain []*Class
	for cls := c; cls != nil; cls = cls.Parent {
		chain = append(chain, cls)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for name, expr := range chain[i].OwnProperties {
			out[name] = expr
		}
	}
	return out
}

// Instance references a class plus its own mutable property map.
type Instance struct {
	Class      *Class
	Properties map[string]Value
}

func (*Instance) Type() string { return "instance" }
func (i *Instance) String() string {
	return "<" + i.Class.Name + " instance>"
}

// Generator is a state-machine iterator driving a generator function body
// one yield at a time.
type Generator struct {
	Done   bool
	Resume func() (Value, bool, error) // returns (value, hasValue, err); hasValue false + Done marks exhaustion
}

func (*Generator) Type() string     { return "generator" }
func (*Generator) String() string   { return "<generator>" }

// HostValue wraps an opaque value owned by a standard-library adapter
// (a file handle, a compiled regexp) that rift code only ever passes around.
type HostValue struct {
	Tag   string
	Inner any
}

func (h *HostValue) Type() string     { return h.Tag }
func (h *HostValue) String() string   { return "<" + h.Tag + ">" }

// AsyncTask is a host-provided asynchronous computation an `wait`
// expression can drive to completion.
type AsyncTask struct {
	Await func() (Value, error)
}

func (*AsyncTask) Type() string   { return "task" }
func (*AsyncTask) String() string { return "<task>" }

// Truthy reports whether a value counts as true in a boolean context:
// none, false, zero, and empty text/list/map are falsy; everything else
// is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case None:
		return false
	case Bool:
		return bool(val)
	case Int:
		return val != 0
	case Float:
		return val != 0
	case Text:
		return len(val) > 0
	case *List:
		return len(val.Elements) > 0
	case *Map:
		return val.Len() > 0
	default:
		return true
	}
}

// Equal implements structural equality.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case None:
		_, ok := b.(None)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		switch bv := b.(type) {
		case Int:
			return av == bv
		case Float:
			return Float(av) == bv
		}
		return false
	case Float:
		switch bv := b.(type) {
		case Int:
			return av == Float(bv)
		case Float:
			return av == bv
		}
		return false
	case Text:
		bv, ok := b.(Text)
		return ok && av == bv
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Keys() {
			va, _ := av.Get(k)
			vb, ok := bv.Get(k)
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// TypeName reports the type-hint name for a value: text, num,
// bool, list, map, none, conduit, or any.
func TypeName(v Value) string {
	switch v.(type) {
	case Text:
		return "text"
	case Int, Float:
		return "num"
	case Bool:
		return "bool"
	case *List:
		return "list"
	case *Map:
		return "map"
	case None:
		return "none"
	case *Function, *Lambda, *BoundMethod, *HostFunction:
		return "conduit"
	default:
		return "any"
	}
}

// MatchesTypeHint checks a value against a type hint; "any" and ""
// always match.
func MatchesTypeHint(hint string, v Value) bool {
	if hint == "" || hint == "any" {
		return true
	}
	return TypeName(v) == hint
}
