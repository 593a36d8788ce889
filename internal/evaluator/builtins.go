package evaluator

import (
	"fmt"

	"github.com/fiplang/fip/internal/config"
)

func (e *Evaluator) installBuiltins() {
	e.addBuiltin(&Builtin{
		Name:   config.LogFuncName,
		Impure: true,
		Params: []string{"message"},
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 1 {
				return newError("Builtin 'log!' expects exactly 1 argument")
			}
			fmt.Fprintln(e.Out, args[0].Inspect())
			return NULL
		},
	})

	e.addBuiltin(&Builtin{
		Name:   config.TraceFuncName,
		Impure: true,
		Params: []string{"label", "value"},
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 2 {
				return newError("Builtin 'trace!' expects exactly 2 arguments (message, value)")
			}
			fmt.Fprintf(e.Out, "(trace) %s: %s\n", args[0].Inspect(), args[1].Inspect())
			return args[1]
		},
	})

	e.addBuiltin(&Builtin{
		Name:   config.IdentityFuncName,
		Params: []string{"x"},
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 1 {
				return newError("Builtin 'identity' expects exactly 1 argument")
			}
			return args[0]
		},
	})

	e.addBuiltin(&Builtin{
		Name:   config.IncrementFuncName,
		Params: []string{"number"},
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 1 {
				return newError("Builtin 'increment' expects exactly 1 argument")
			}
			n, ok := args[0].(*Number)
			if !ok {
				return newError("Builtin 'increment' expected a number, found %s", inspect(args[0]))
			}
			return &Number{Value: n.Value + 1}
		},
	})

	e.addBuiltin(&Builtin{
		Name:   config.DecrementFuncName,
		Params: []string{"number"},
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 1 {
				return newError("Builtin 'decrement' expects exactly 1 argument")
			}
			n, ok := args[0].(*Number)
			if !ok {
				return newError("Builtin 'decrement' expected a number, found %s", inspect(args[0]))
			}
			return &Number{Value: n.Value - 1}
		},
	})

	e.addBuiltin(&Builtin{
		Name:   config.AddFuncName,
		Params: []string{"a", "b"},
		Fn:     numericBuiltin("add", func(a, b int64) Object { return &Number{Value: a + b} }),
	})

	e.addBuiltin(&Builtin{
		Name:   config.SubtractFuncName,
		Params: []string{"a", "b"},
		Fn:     numericBuiltin("subtract", func(a, b int64) Object { return &Number{Value: a - b} }),
	})

	e.addBuiltin(&Builtin{
		Name:   config.MultiplyFuncName,
		Params: []string{"a", "b"},
		Fn:     numericBuiltin("multiply", func(a, b int64) Object { return &Number{Value: a * b} }),
	})

	e.addBuiltin(&Builtin{
		Name:   config.DivideFuncName,
		Params: []string{"a", "b"},
		Fn: numericBuiltin("divide", func(a, b int64) Object {
			if b == 0 {
				return newError("Builtin 'divide' received division by zero")
			}
			return &Number{Value: a / b}
		}),
	})

	e.addBuiltin(&Builtin{
		Name:   config.MapFuncName,
		Params: []string{"fn", "list"},
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 2 {
				return newError("Builtin 'map' expects 2 arguments (fn, list)")
			}
			list, ok := args[1].(*List)
			if !ok {
				return newError("Builtin 'map' expected list as second argument, found %s", inspect(args[1]))
			}
			result := make([]Object, 0, len(list.Elements))
			for _, item := range list.Elements {
				mapped := e.callCallable(args[0], []Object{item}, Pure)
				if isError(mapped) {
					return mapped
				}
				result = append(result, mapped)
			}
			return &List{Elements: result}
		},
	})

	e.addBuiltin(&Builtin{
		Name:   config.ReduceFuncName,
		Params: []string{"fn", "init", "list"},
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 3 {
				return newError("Builtin 'reduce' expects 3 arguments (fn, init, list)")
			}
			list, ok := args[2].(*List)
			if !ok {
				return newError("Builtin 'reduce' expected list as third argument, found %s", inspect(args[2]))
			}
			acc := args[1]
			for _, item := range list.Elements {
				acc = e.callCallable(args[0], []Object{acc, item}, Pure)
				if isError(acc) {
					return acc
				}
			}
			return acc
		},
	})

	e.addBuiltin(&Builtin{
		Name:   config.FilterFuncName,
		Params: []string{"predicate", "list"},
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 2 {
				return newError("Builtin 'filter' expects 2 arguments (predicate, list)")
			}
			list, ok := args[1].(*List)
			if !ok {
				return newError("Builtin 'filter' expected list as second argument, found %s", inspect(args[1]))
			}
			var result []Object
			for _, item := range list.Elements {
				keep := e.callCallable(args[0], []Object{item}, Pure)
				if isError(keep) {
					return keep
				}
				b, ok := keep.(*Boolean)
				if !ok {
					return newError("Filter predicate must return boolean, found %s", inspect(keep))
				}
				if b.Value {
					result = append(result, item)
				}
			}
			return &List{Elements: result}
		},
	})

	e.addBuiltin(&Builtin{
		Name:   config.AndFuncName,
		Params: []string{"a", "b"},
		Fn: booleanBuiltin("and?", func(a, b bool) Object {
			return nativeBoolToBooleanObject(a && b)
		}),
	})

	e.addBuiltin(&Builtin{
		Name:   config.OrFuncName,
		Params: []string{"a", "b"},
		Fn: booleanBuiltin("or?", func(a, b bool) Object {
			return nativeBoolToBooleanObject(a || b)
		}),
	})

	e.addBuiltin(&Builtin{
		Name:   config.EveryFuncName,
		Params: []string{"predicate", "list"},
		Fn:     predicateScan("every?", scanEvery),
	})

	e.addBuiltin(&Builtin{
		Name:   config.SomeFuncName,
		Params: []string{"predicate", "list"},
		Fn:     predicateScan("some?", scanSome),
	})

	e.addBuiltin(&Builtin{
		Name:   config.NoneFuncName,
		Params: []string{"predicate", "list"},
		Fn:     predicateScan("none?", scanNone),
	})

	e.addBuiltin(&Builtin{
		Name:   config.DefinedFuncName,
		Params: []string{"value"},
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 1 {
				return newError("Builtin 'defined?' expects exactly 1 argument")
			}
			return nativeBoolToBooleanObject(args[0].Type() != NULL_OBJ)
		},
	})

	e.addBuiltin(&Builtin{
		Name:   config.IfFuncName,
		Params: []string{"condition", "then-fn", "else-fn"},
		Fn:     builtinIf,
	})

	e.addBuiltin(&Builtin{
		Name:   config.ForEachFuncName,
		Impure: true,
		Params: []string{"fn", "list"},
		Fn:     builtinForEach,
	})
}

func (e *Evaluator) addBuiltin(b *Builtin) {
	if !e.builtins.Define(b.Name, b) {
		panic(fmt.Sprintf("failed to install builtin '%s'", b.Name))
	}
}

func numericBuiltin(name string, apply func(a, b int64) Object) BuiltinFunction {
	return func(e *Evaluator, args ...Object) Object {
		if len(args) != 2 {
			return newError("Builtin '%s' expects exactly 2 arguments", name)
		}
		a, aok := args[0].(*Number)
		b, bok := args[1].(*Number)
		if !aok || !bok {
			return newError("Builtin '%s' requires numeric operands, found %s and %s",
				name, inspect(args[0]), inspect(args[1]))
		}
		return apply(a.Value, b.Value)
	}
}

func booleanBuiltin(name string, apply func(a, b bool) Object) BuiltinFunction {
	return func(e *Evaluator, args ...Object) Object {
		if len(args) != 2 {
			return newError("Builtin '%s' expects exactly 2 arguments", name)
		}
		a, aok := args[0].(*Boolean)
		b, bok := args[1].(*Boolean)
		if !aok || !bok {
			return newError("Builtin '%s' requires boolean operands, found %s and %s",
				name, inspect(args[0]), inspect(args[1]))
		}
		return apply(a.Value, b.Value)
	}
}

// scanSpec drives every?/some?/none?: stop early when the predicate
// yields stopOn, otherwise fall through to the exhausted result (which
// also covers the empty list).
type scanSpec struct {
	stopOn          bool
	stopResult      bool
	exhaustedResult bool
}

var (
	scanEvery = scanSpec{stopOn: false, stopResult: false, exhaustedResult: true}
	scanSome  = scanSpec{stopOn: true, stopResult: true, exhaustedResult: false}
	scanNone  = scanSpec{stopOn: true, stopResult: false, exhaustedResult: true}
)

// predicateScan walks the list calling the predicate in a pure context,
// stopping as soon as the outcome is decided.
func predicateScan(name string, spec scanSpec) BuiltinFunction {
	return func(e *Evaluator, args ...Object) Object {
		if len(args) != 2 {
			return newError("Builtin '%s' expects 2 arguments (predicate, list)", name)
		}
		list, ok := args[1].(*List)
		if !ok {
			return newError("Builtin '%s' expected list as second argument, found %s", name, inspect(args[1]))
		}
		for _, item := range list.Elements {
			result := e.callCallable(args[0], []Object{item}, Pure)
			if isError(result) {
				return result
			}
			b, isBool := result.(*Boolean)
			if !isBool {
				return newError("Predicate passed to '%s' must return boolean, found %s", name, inspect(result))
			}
			if b.Value == spec.stopOn {
				return nativeBoolToBooleanObject(spec.stopResult)
			}
		}
		return nativeBoolToBooleanObject(spec.exhaustedResult)
	}
}

// builtinIf takes a boolean and two zero-argument thunks and evaluates
// exactly one of them.
func builtinIf(e *Evaluator, args ...Object) Object {
	if len(args) != 3 {
		return newError("Builtin 'if' expects 3 arguments (condition, then-fn, else-fn)")
	}
	cond, ok := args[0].(*Boolean)
	if !ok {
		return newError("Builtin 'if' requires boolean condition, found %s", inspect(args[0]))
	}
	thenFn, err := ifThunk(args[1], "second", "then-fn")
	if err != nil {
		return err
	}
	elseFn, err := ifThunk(args[2], "third", "else-fn")
	if err != nil {
		return err
	}
	if cond.Value {
		return e.callCallable(thenFn, nil, Pure)
	}
	return e.callCallable(elseFn, nil, Pure)
}

func ifThunk(arg Object, position, role string) (*Function, *Error) {
	switch fn := arg.(type) {
	case *Function:
		if len(fn.Params) != 0 {
			return nil, newError(
				"Builtin 'if' requires zero-argument function as %s, found function with %d parameters",
				role, len(fn.Params))
		}
		return fn, nil
	case *Curried:
		return nil, newError(
			"Builtin 'if' requires zero-argument function as %s, found function with %d parameters",
			role, fn.Remaining())
	case *Builtin:
		return nil, newError("Builtin 'if' requires function as %s argument (%s)", position, role)
	default:
		return nil, newError("Builtin 'if' requires function as %s argument, found %s", position, inspect(arg))
	}
}

// builtinForEach iterates for side effects; the callback must be
// impure and runs in an impure context. Returns null.
func builtinForEach(e *Evaluator, args ...Object) Object {
	if len(args) != 2 {
		return newError("Builtin 'for-each!' expects 2 arguments (fn, list)")
	}
	list, ok := args[1].(*List)
	if !ok {
		return newError("Builtin 'for-each!' expected list as second argument, found %s", inspect(args[1]))
	}
	var impure bool
	switch fn := args[0].(type) {
	case *Function:
		impure = fn.Impure
	case *Builtin:
		impure = fn.Impure
	case *Curried:
		impure = fn.Impure()
	default:
		return newError("Builtin 'for-each!' requires function as first argument, found %s", inspect(args[0]))
	}
	if !impure {
		return newError("Builtin 'for-each!' requires impure function (marked with '!')")
	}
	for _, item := range list.Elements {
		if result := e.callCallable(args[0], []Object{item}, Impure); isError(result) {
			return result
		}
	}
	return NULL
}
