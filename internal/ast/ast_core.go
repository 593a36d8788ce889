package ast

import (
	"github.com/fiplang/fip/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
	Accept(v Visitor)
}

// Statement is a top-level or module-level program element.
type Statement interface {
	Node
	statementNode()
}

// Expression produces a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Pattern is the left-hand side of a binding. Patterns are purely
// structural and never evaluated on their own.
type Pattern interface {
	Node
	patternNode()
}

// Program is the root node: an ordered sequence of statements.
type Program struct {
	Statements []Statement
	File       string
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
