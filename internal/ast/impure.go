package ast

import "strings"

// FindImpureCall returns the first "!"-suffixed name an expression tree
// calls or references, in source order. It descends into lambda bodies
// and string-template interpolations. Shared by the evaluator's purity
// check and the linter.
func FindImpureCall(expr Expression) (string, bool) {
	switch e := expr.(type) {
	case *CallExpression:
		if ident, ok := e.Callee.(*Identifier); ok && strings.HasSuffix(ident.Value, "!") {
			return ident.Value, true
		}
		if name, ok := FindImpureCall(e.Callee); ok {
			return name, true
		}
		for _, arg := range e.Args {
			if name, ok := FindImpureCall(arg); ok {
				return name, true
			}
		}
	case *Identifier:
		if strings.HasSuffix(e.Value, "!") {
			return e.Value, true
		}
	case *BinaryExpression:
		if name, ok := FindImpureCall(e.Left); ok {
			return name, true
		}
		return FindImpureCall(e.Right)
	case *BlockExpression:
		for _, sub := range e.Expressions {
			if name, ok := FindImpureCall(sub); ok {
				return name, true
			}
		}
	case *LambdaExpression:
		return FindImpureCall(e.Body)
	case *StringLiteral:
		for _, seg := range e.Segments {
			if seg.Expr == nil {
				continue
			}
			if name, ok := FindImpureCall(seg.Expr); ok {
				return name, true
			}
		}
	case *ObjectLiteral:
		for _, field := range e.Fields {
			if name, ok := FindImpureCall(field.Value); ok {
				return name, true
			}
		}
	case *ListLiteral:
		for _, el := range e.Elements {
			if name, ok := FindImpureCall(el); ok {
				return name, true
			}
		}
	case *SpreadExpression:
		return FindImpureCall(e.Value)
	case *PropertyAccessExpression:
		return FindImpureCall(e.Object)
	}
	return "", false
}
