package evaluator

import (
	"strconv"
	"strings"

	"github.com/fiplang/fip/internal/ast"
)

func (e *Evaluator) evalExpression(expr ast.Expression, env *Environment, purity Purity) Object {
	switch node := expr.(type) {
	case *ast.NumberLiteral:
		return &Number{Value: node.Value}
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(node.Value)
	case *ast.NullLiteral:
		return NULL
	case *ast.StringLiteral:
		return e.evalStringTemplate(node, env, purity)
	case *ast.Identifier:
		if value, ok := env.Get(node.Value); ok {
			return value
		}
		return newError("Undefined identifier '%s'", node.Value)
	case *ast.BlockExpression:
		return e.evalBlock(node, env, purity)
	case *ast.LambdaExpression:
		return e.evalLambda(node, env)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(node, env, purity)
	case *ast.ListLiteral:
		return e.evalListLiteral(node, env, purity)
	case *ast.CallExpression:
		return e.evalCall(node, env, purity)
	case *ast.PropertyAccessExpression:
		target := e.evalExpression(node.Object, env, purity)
		if isError(target) {
			return target
		}
		return e.evalPropertyAccess(target, node.Property)
	case *ast.BinaryExpression:
		left := e.evalExpression(node.Left, env, purity)
		if isError(left) {
			return left
		}
		right := e.evalExpression(node.Right, env, purity)
		if isError(right) {
			return right
		}
		return e.evalBinary(node.Operator, left, right)
	case *ast.SpreadExpression:
		return newError("Spread operator can only be used inside object or list literals")
	default:
		return newError("unknown expression type %T", expr)
	}
}

// evalBlock implements pipeline semantics: the first expression seeds
// the running value; every later expression that evaluates to a
// callable consumes the running value as its only argument, anything
// else replaces it.
func (e *Evaluator) evalBlock(block *ast.BlockExpression, env *Environment, purity Purity) Object {
	if len(block.Expressions) == 0 {
		return UNIT
	}

	current := e.evalExpression(block.Expressions[0], env, purity)
	if isError(current) {
		return current
	}

	for _, expr := range block.Expressions[1:] {
		value := e.evalExpression(expr, env, purity)
		if isError(value) {
			return value
		}
		switch value.(type) {
		case *Function, *Builtin, *Curried:
			current = e.callCallable(value, []Object{current}, purity)
			if isError(current) {
				return current
			}
		default:
			current = value
		}
	}
	return current
}

// evalLambda applies the same static purity rule as named functions.
func (e *Evaluator) evalLambda(node *ast.LambdaExpression, env *Environment) Object {
	if node.Impure {
		if _, ok := ast.FindImpureCall(node.Body); !ok {
			return newError("Anonymous function is marked impure but performs no impure operations")
		}
	} else if name, ok := ast.FindImpureCall(node.Body); ok {
		return newError("Anonymous function must be declared impure (use '!') to call '%s'", name)
	}

	return &Function{
		Name:   "<lambda>",
		Params: node.Params,
		Body:   node.Body,
		Env:    env,
		Impure: node.Impure,
	}
}

func (e *Evaluator) evalObjectLiteral(node *ast.ObjectLiteral, env *Environment, purity Purity) Object {
	record := NewRecord()
	for _, field := range node.Fields {
		if spread, ok := field.Value.(*ast.SpreadExpression); ok && field.Name == "" {
			value := e.evalExpression(spread.Value, env, purity)
			if isError(value) {
				return value
			}
			source, ok := value.(*Record)
			if !ok {
				return newError("Spread operator expects an object, found %s", inspect(value))
			}
			for key, val := range source.Fields {
				record.Fields[key] = val
			}
			continue
		}
		value := e.evalExpression(field.Value, env, purity)
		if isError(value) {
			return value
		}
		record.Fields[field.Name] = value
	}
	return record
}

func (e *Evaluator) evalListLiteral(node *ast.ListLiteral, env *Environment, purity Purity) Object {
	elements := make([]Object, 0, len(node.Elements))
	for _, el := range node.Elements {
		if spread, ok := el.(*ast.SpreadExpression); ok {
			value := e.evalExpression(spread.Value, env, purity)
			if isError(value) {
				return value
			}
			source, ok := value.(*List)
			if !ok {
				return newError("Spread operator expects a list, found %s", inspect(value))
			}
			elements = append(elements, source.Elements...)
			continue
		}
		value := e.evalExpression(el, env, purity)
		if isError(value) {
			return value
		}
		elements = append(elements, value)
	}
	return &List{Elements: elements}
}

func (e *Evaluator) evalCall(node *ast.CallExpression, env *Environment, purity Purity) Object {
	callee := e.evalExpression(node.Callee, env, purity)
	if isError(callee) {
		return callee
	}
	args := make([]Object, 0, len(node.Args))
	for _, argExpr := range node.Args {
		arg := e.evalExpression(argExpr, env, purity)
		if isError(arg) {
			return arg
		}
		args = append(args, arg)
	}
	return e.callCallable(callee, args, purity)
}

func (e *Evaluator) evalStringTemplate(node *ast.StringLiteral, env *Environment, purity Purity) Object {
	var out strings.Builder
	for _, seg := range node.Segments {
		if seg.Expr == nil {
			out.WriteString(seg.Text)
			continue
		}
		value := e.evalExpression(seg.Expr, env, purity)
		if isError(value) {
			return value
		}
		out.WriteString(value.Inspect())
	}
	return &String{Value: out.String()}
}

// evalPropertyAccess: objects yield the field or null, lists index by a
// non-negative integer or yield null out of range, null propagates.
func (e *Evaluator) evalPropertyAccess(target Object, property string) Object {
	switch value := target.(type) {
	case *Record:
		if field, ok := value.Fields[property]; ok {
			return field
		}
		return NULL
	case *Null:
		return NULL
	case *List:
		index, err := strconv.Atoi(property)
		if err != nil || index < 0 {
			return newError("List index '%s' must be a non-negative integer", property)
		}
		if index < len(value.Elements) {
			return value.Elements[index]
		}
		return NULL
	default:
		return newError("Cannot access property '%s' on value %s", property, inspect(target))
	}
}
