package ast

import (
	"github.com/fiplang/fip/internal/token"
)

// NumberLiteral is a 64-bit signed integer literal.
type NumberLiteral struct {
	Token token.Token
	Value int64
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) GetToken() token.Token {
	if nl == nil {
		return token.Token{}
	}
	return nl.Token
}
func (nl *NumberLiteral) Accept(v Visitor) { v.VisitNumber(nl) }

// TemplateSegment is one piece of a string literal. Expr is nil for a
// plain text segment; otherwise the segment is an interpolation parsed
// from a `<...>` span.
type TemplateSegment struct {
	Text string
	Expr Expression
}

// StringLiteral is a string with interpolation segments.
type StringLiteral struct {
	Token    token.Token
	Segments []TemplateSegment
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}
func (sl *StringLiteral) Accept(v Visitor) { v.VisitString(sl) }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) GetToken() token.Token {
	if bl == nil {
		return token.Token{}
	}
	return bl.Token
}
func (bl *BooleanLiteral) Accept(v Visitor) { v.VisitBoolean(bl) }

// NullLiteral is `null`.
type NullLiteral struct {
	Token token.Token
}

func (nl *NullLiteral) expressionNode()      {}
func (nl *NullLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NullLiteral) GetToken() token.Token {
	if nl == nil {
		return token.Token{}
	}
	return nl.Token
}
func (nl *NullLiteral) Accept(v Visitor) { v.VisitNull(nl) }

// Identifier references a bound name.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}
func (i *Identifier) Accept(v Visitor) { v.VisitIdentifier(i) }

// BlockExpression is a pipeline: the first expression seeds a running
// value and each later expression either transforms it (when it
// evaluates to a callable) or replaces it.
type BlockExpression struct {
	Token       token.Token
	Expressions []Expression
}

func (be *BlockExpression) expressionNode()      {}
func (be *BlockExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BlockExpression) GetToken() token.Token {
	if be == nil {
		return token.Token{}
	}
	return be.Token
}
func (be *BlockExpression) Accept(v Visitor) { v.VisitBlock(be) }

// LambdaExpression is an anonymous function: `(params) [!|?] { body }`.
type LambdaExpression struct {
	Token  token.Token
	Params []string
	Body   Expression
	Impure bool
}

func (le *LambdaExpression) expressionNode()      {}
func (le *LambdaExpression) TokenLiteral() string { return le.Token.Literal }
func (le *LambdaExpression) GetToken() token.Token {
	if le == nil {
		return token.Token{}
	}
	return le.Token
}
func (le *LambdaExpression) Accept(v Visitor) { v.VisitLambda(le) }

// ObjectField is one entry of an object literal. A spread entry has an
// empty Name and a *SpreadExpression value.
type ObjectField struct {
	Name  string
	Value Expression
}

// ObjectLiteral is `{ name: expr, ...spread }`.
type ObjectLiteral struct {
	Token  token.Token
	Fields []ObjectField
}

func (ol *ObjectLiteral) expressionNode()      {}
func (ol *ObjectLiteral) TokenLiteral() string { return ol.Token.Literal }
func (ol *ObjectLiteral) GetToken() token.Token {
	if ol == nil {
		return token.Token{}
	}
	return ol.Token
}
func (ol *ObjectLiteral) Accept(v Visitor) { v.VisitObject(ol) }

// ListLiteral is `[a, b, ...rest]`.
type ListLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()      {}
func (ll *ListLiteral) TokenLiteral() string { return ll.Token.Literal }
func (ll *ListLiteral) GetToken() token.Token {
	if ll == nil {
		return token.Token{}
	}
	return ll.Token
}
func (ll *ListLiteral) Accept(v Visitor) { v.VisitList(ll) }

// CallExpression applies arguments to a callee.
type CallExpression struct {
	Token  token.Token
	Callee Expression
	Args   []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}
func (ce *CallExpression) Accept(v Visitor) { v.VisitCall(ce) }

// PropertyAccessExpression is `expr.name` or `expr.0`.
type PropertyAccessExpression struct {
	Token    token.Token
	Object   Expression
	Property string
}

func (pa *PropertyAccessExpression) expressionNode()      {}
func (pa *PropertyAccessExpression) TokenLiteral() string { return pa.Token.Literal }
func (pa *PropertyAccessExpression) GetToken() token.Token {
	if pa == nil {
		return token.Token{}
	}
	return pa.Token
}
func (pa *PropertyAccessExpression) Accept(v Visitor) { v.VisitPropertyAccess(pa) }

// BinaryExpression applies Operator to Left and Right. Operator holds
// the source spelling: + - * / = != < <= > >= & |.
type BinaryExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) GetToken() token.Token {
	if be == nil {
		return token.Token{}
	}
	return be.Token
}
func (be *BinaryExpression) Accept(v Visitor) { v.VisitBinary(be) }

// SpreadExpression is `...expr` inside a list or object literal.
type SpreadExpression struct {
	Token token.Token
	Value Expression
}

func (se *SpreadExpression) expressionNode()      {}
func (se *SpreadExpression) TokenLiteral() string { return se.Token.Literal }
func (se *SpreadExpression) GetToken() token.Token {
	if se == nil {
		return token.Token{}
	}
	return se.Token
}
func (se *SpreadExpression) Accept(v Visitor) { v.VisitSpread(se) }
