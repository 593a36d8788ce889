package evaluator

import "strings"

// callCallable dispatches a call over the value kinds. Calls with fewer
// arguments than parameters return a Curried value; a later call on the
// Curried value combines the captured and new arguments and applies the
// original callable once enough have accumulated.
func (e *Evaluator) callCallable(callee Object, args []Object, purity Purity) Object {
	switch c := callee.(type) {
	case *Function:
		return e.applyFunction(c, args, purity)
	case *Builtin:
		if c.Impure && !purity.AllowImpure() {
			return newError("Cannot call impure builtin '%s' from pure context", c.Name)
		}
		if len(args) < len(c.Params) {
			return &Curried{Original: c, Captured: args}
		}
		return e.invokeBuiltin(c, args)
	case *Curried:
		combined := make([]Object, 0, len(c.Captured)+len(args))
		combined = append(combined, c.Captured...)
		combined = append(combined, args...)
		switch orig := c.Original.(type) {
		case *Builtin:
			if len(combined) < len(orig.Params) {
				return &Curried{Original: orig, Captured: combined}
			}
			if orig.Impure && !purity.AllowImpure() {
				return newError("Cannot call impure builtin '%s' from pure context", orig.Name)
			}
			return e.invokeBuiltin(orig, combined)
		case *Function:
			return e.applyFunction(orig, combined, purity)
		default:
			return newError("Internal error: invalid curried callable")
		}
	default:
		return newError("Value '%s' is not callable", inspect(callee))
	}
}

func (e *Evaluator) applyFunction(fn *Function, args []Object, purity Purity) Object {
	if len(args) > len(fn.Params) {
		return newError("Function '%s' expected %d arguments but received %d",
			fn.Name, len(fn.Params), len(args))
	}
	if len(args) < len(fn.Params) {
		return &Curried{Original: fn, Captured: args}
	}
	if fn.Impure && !purity.AllowImpure() {
		return newError("Cannot call impure function '%s' from pure context", fn.Name)
	}

	callEnv := NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Params {
		if !callEnv.Define(param, args[i]) {
			return newError("Cannot redefine immutable binding '%s'", param)
		}
	}

	bodyPurity := Pure
	if fn.Impure {
		bodyPurity = Impure
	}
	result := e.evalExpression(fn.Body, callEnv, bodyPurity)
	if isError(result) {
		return result
	}
	if strings.HasSuffix(fn.Name, "?") && result.Type() != BOOLEAN_OBJ {
		return newError("Function '%s' must return a boolean value", fn.Name)
	}
	return result
}

func (e *Evaluator) invokeBuiltin(b *Builtin, args []Object) Object {
	result := b.Fn(e, args...)
	if isError(result) {
		return result
	}
	if strings.HasSuffix(b.Name, "?") && result.Type() != BOOLEAN_OBJ {
		return newError("Builtin '%s' must return a boolean value", b.Name)
	}
	return result
}
