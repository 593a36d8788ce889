package evaluator

func (e *Evaluator) evalBinary(operator string, left, right Object) Object {
	switch operator {
	case "+":
		return e.evalArithmetic("Addition", left, right, func(l, r int64) Object {
			return &Number{Value: l + r}
		})
	case "-":
		return e.evalArithmetic("Subtraction", left, right, func(l, r int64) Object {
			return &Number{Value: l - r}
		})
	case "*":
		return e.evalArithmetic("Multiplication", left, right, func(l, r int64) Object {
			return &Number{Value: l * r}
		})
	case "/":
		return e.evalArithmetic("Division", left, right, func(l, r int64) Object {
			if r == 0 {
				return newError("Division by zero")
			}
			return &Number{Value: l / r}
		})
	case "=":
		return nativeBoolToBooleanObject(objectsEqual(left, right))
	case "!=":
		return nativeBoolToBooleanObject(!objectsEqual(left, right))
	case "<":
		return e.evalComparison(left, right, func(l, r int64) bool { return l < r })
	case "<=":
		return e.evalComparison(left, right, func(l, r int64) bool { return l <= r })
	case ">":
		return e.evalComparison(left, right, func(l, r int64) bool { return l > r })
	case ">=":
		return e.evalComparison(left, right, func(l, r int64) bool { return l >= r })
	case "&":
		return e.evalLogical("and", left, right, true)
	case "|":
		return e.evalLogical("or", left, right, false)
	default:
		return newError("Unknown operator '%s'", operator)
	}
}

func (e *Evaluator) evalArithmetic(opName string, left, right Object, apply func(l, r int64) Object) Object {
	l, ok := left.(*Number)
	if !ok {
		return newError("%s requires numeric operands, found %s and %s", opName, inspect(left), inspect(right))
	}
	r, ok := right.(*Number)
	if !ok {
		return newError("%s requires numeric operands, found %s and %s", opName, inspect(left), inspect(right))
	}
	return apply(l.Value, r.Value)
}

func (e *Evaluator) evalComparison(left, right Object, cmp func(l, r int64) bool) Object {
	l, ok := left.(*Number)
	if !ok {
		return newError("Left operand of comparison must be a number, found %s", inspect(left))
	}
	r, ok := right.(*Number)
	if !ok {
		return newError("Right operand of comparison must be a number, found %s", inspect(right))
	}
	return nativeBoolToBooleanObject(cmp(l.Value, r.Value))
}

// evalLogical is not short-circuit: both operands were already
// evaluated by the caller before the boolean check.
func (e *Evaluator) evalLogical(opName string, left, right Object, isAnd bool) Object {
	l, ok := left.(*Boolean)
	if !ok {
		return newError("Left operand of %s must be boolean, found %s", opName, inspect(left))
	}
	r, ok := right.(*Boolean)
	if !ok {
		return newError("Right operand of %s must be boolean, found %s", opName, inspect(right))
	}
	if isAnd {
		return nativeBoolToBooleanObject(l.Value && r.Value)
	}
	return nativeBoolToBooleanObject(l.Value || r.Value)
}

// objectsEqual is structural for data values and identity for functions
// and builtins. Mismatched kinds are unequal, never an error.
func objectsEqual(left, right Object) bool {
	switch l := left.(type) {
	case *Number:
		r, ok := right.(*Number)
		return ok && l.Value == r.Value
	case *String:
		r, ok := right.(*String)
		return ok && l.Value == r.Value
	case *Boolean:
		r, ok := right.(*Boolean)
		return ok && l.Value == r.Value
	case *Null:
		_, ok := right.(*Null)
		return ok
	case *Unit:
		_, ok := right.(*Unit)
		return ok
	case *List:
		r, ok := right.(*List)
		if !ok || len(l.Elements) != len(r.Elements) {
			return false
		}
		for i := range l.Elements {
			if !objectsEqual(l.Elements[i], r.Elements[i]) {
				return false
			}
		}
		return true
	case *Record:
		r, ok := right.(*Record)
		if !ok || len(l.Fields) != len(r.Fields) {
			return false
		}
		for key, lv := range l.Fields {
			rv, present := r.Fields[key]
			if !present || !objectsEqual(lv, rv) {
				return false
			}
		}
		return true
	case *Function:
		r, ok := right.(*Function)
		return ok && l == r
	case *Builtin:
		r, ok := right.(*Builtin)
		return ok && l == r
	}
	return false
}
