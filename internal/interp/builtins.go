package interp

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/object"
)

// builtinNode stands in for a real syntax node when a host builtin needs
// to hand a position to an evaluator call it drives internally (e.g. map's
// callback invocation); its own position is never reported to a user.
var builtinNode ast.Node = &ast.Program{}

var stdin = bufio.NewReader(os.Stdin)

// registerBuiltins seeds the global scope with the host functions every
// program gets without an explicit `grab`: print, input, len, type,
// range, plus the small functional surface (map, filter, reduce, sum,
// min, max) the pipeline operator leans on.
func registerBuiltins(it *Interp) {
	scope := it.Global

	define := func(name string, fn func(args []object.Value) (object.Value, error)) {
		scope.Define(name, &object.HostFunction{Name: name, Fn: fn}, false, true, "")
	}

	define("print", func(args []object.Value) (object.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = valueText(a)
		}
		fmt.Println(strings.Join(parts, " "))
		return object.NoneValue, nil
	})

	define("input", func(args []object.Value) (object.Value, error) {
		if len(args) > 0 {
			fmt.Print(valueText(args[0]))
		}
		line, _ := stdin.ReadString('\n')
		return object.Text(strings.TrimRight(line, "\r\n")), nil
	})

	define("len", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("len expects 1 argument")
		}
		switch v := args[0].(type) {
		case object.Text:
			return object.Int(len([]rune(string(v)))), nil
		case *object.List:
			return object.Int(len(v.Elements)), nil
		case *object.Map:
			return object.Int(v.Len()), nil
		default:
			return nil, fmt.Errorf("len is not defined for a %s", v.Type())
		}
	})

	define("type", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("type expects 1 argument")
		}
		return object.Text(object.TypeName(args[0])), nil
	})

	define("range", func(args []object.Value) (object.Value, error) {
		var start, end int64
		switch len(args) {
		case 1:
			n, ok := asInt(args[0])
			if !ok {
				return nil, fmt.Errorf("range expects numeric arguments")
			}
			end = n
		case 2:
			s, ok1 := asInt(args[0])
			e, ok2 := asInt(args[1])
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("range expects numeric arguments")
			}
			start, end = s, e
		default:
			return nil, fmt.Errorf("range expects 1 or 2 arguments")
		}
		list := &object.List{}
		for i := start; i < end; i++ {
			list.Elements = append(list.Elements, object.Int(i))
		}
		return list, nil
	})

	define("map", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("map expects 2 arguments")
		}
		fn := args[0]
		list, ok := args[1].(*object.List)
		if !ok {
			return nil, fmt.Errorf("map's second argument must be a sequence")
		}
		out := make([]object.Value, len(list.Elements))
		for i, el := range list.Elements {
			v, err := it.invoke(builtinNode, fn, []object.Value{el})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return &object.List{Elements: out}, nil
	})

	define("filter", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("filter expects 2 arguments")
		}
		fn := args[0]
		list, ok := args[1].(*object.List)
		if !ok {
			return nil, fmt.Errorf("filter's second argument must be a sequence")
		}
		var out []object.Value
		for _, el := range list.Elements {
			v, err := it.invoke(builtinNode, fn, []object.Value{el})
			if err != nil {
				return nil, err
			}
			if object.Truthy(v) {
				out = append(out, el)
			}
		}
		return &object.List{Elements: out}, nil
	})

	define("reduce", func(args []object.Value) (object.Value, error) {
		if len(args) < 2 || len(args) > 3 {
			return nil, fmt.Errorf("reduce expects 2 or 3 arguments")
		}
		fn := args[0]
		list, ok := args[1].(*object.List)
		if !ok {
			return nil, fmt.Errorf("reduce's second argument must be a sequence")
		}
		elems := list.Elements
		var acc object.Value
		if len(args) == 3 {
			acc = args[2]
		} else {
			if len(elems) == 0 {
				return nil, fmt.Errorf("reduce of an empty sequence with no initial value")
			}
			acc = elems[0]
			elems = elems[1:]
		}
		for _, el := range elems {
			v, err := it.invoke(builtinNode, fn, []object.Value{acc, el})
			if err != nil {
				return nil, err
			}
			acc = v
		}
		return acc, nil
	})

	define("sum", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("sum expects 1 argument")
		}
		list, ok := args[0].(*object.List)
		if !ok {
			return nil, fmt.Errorf("sum expects a sequence")
		}
		allInt := true
		var fsum float64
		var isum int64
		for _, el := range list.Elements {
			if !isNumeric(el) {
				return nil, fmt.Errorf("sum expects a sequence of numbers")
			}
			if _, ok := el.(object.Float); ok {
				allInt = false
			}
			fsum += toFloat(el)
			if i, ok := el.(object.Int); ok {
				isum += int64(i)
			}
		}
		if allInt {
			return object.Int(isum), nil
		}
		return object.Float(fsum), nil
	})

	define("min", func(args []object.Value) (object.Value, error) {
		elems, err := flattenVariadicSequence("min", args)
		if err != nil {
			return nil, err
		}
		best := elems[0]
		for _, el := range elems[1:] {
			if lessValue(el, best) {
				best = el
			}
		}
		return best, nil
	})

	define("max", func(args []object.Value) (object.Value, error) {
		elems, err := flattenVariadicSequence("max", args)
		if err != nil {
			return nil, err
		}
		best := elems[0]
		for _, el := range elems[1:] {
			if lessValue(best, el) {
				best = el
			}
		}
		return best, nil
	})
}

// flattenVariadicSequence supports both min(a, b, c) and min(list) forms.
func flattenVariadicSequence(name string, args []object.Value) ([]object.Value, error) {
	if len(args) == 1 {
		if list, ok := args[0].(*object.List); ok {
			if len(list.Elements) == 0 {
				return nil, fmt.Errorf("%s of an empty sequence", name)
			}
			return list.Elements, nil
		}
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%s expects at least 1 argument", name)
	}
	return args, nil
}
