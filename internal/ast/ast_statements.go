package ast

import (
	"github.com/fiplang/fip/internal/token"
)

// AssignmentStatement binds the result of Value to Pattern: `pattern: expr`.
type AssignmentStatement struct {
	Token   token.Token
	Pattern Pattern
	Value   Expression
}

func (as *AssignmentStatement) statementNode()       {}
func (as *AssignmentStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignmentStatement) GetToken() token.Token {
	if as == nil {
		return token.Token{}
	}
	return as.Token
}
func (as *AssignmentStatement) Accept(v Visitor) { v.VisitAssignment(as) }

// FunctionStatement is a named function definition:
// `name: (params) { body }`. Impure is true when the name ends in "!".
type FunctionStatement struct {
	Token  token.Token
	Name   string
	Params []string
	Body   Expression
	Impure bool
}

func (fs *FunctionStatement) statementNode()       {}
func (fs *FunctionStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *FunctionStatement) GetToken() token.Token {
	if fs == nil {
		return token.Token{}
	}
	return fs.Token
}
func (fs *FunctionStatement) Accept(v Visitor) { v.VisitFunction(fs) }

// ExpressionStatement is an expression evaluated for its side effects.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}
func (es *ExpressionStatement) Accept(v Visitor) { v.VisitExpressionStatement(es) }

// UseKind selects among the three import forms.
type UseKind int

const (
	// UseSingle: use name from "path"
	UseSingle UseKind = iota
	// UseNamespace: use name as alias from "path"
	UseNamespace
	// UseSelective: use {a, b} from "path"
	UseSelective
)

// UseStatement imports bindings from another module.
type UseStatement struct {
	Token      token.Token
	Kind       UseKind
	Name       string   // UseSingle, UseNamespace
	Alias      string   // UseNamespace
	Names      []string // UseSelective
	ModulePath string
}

func (us *UseStatement) statementNode()       {}
func (us *UseStatement) TokenLiteral() string { return us.Token.Literal }
func (us *UseStatement) GetToken() token.Token {
	if us == nil {
		return token.Token{}
	}
	return us.Token
}
func (us *UseStatement) Accept(v Visitor) { v.VisitUse(us) }

// BoundNames lists the names the statement introduces in the importer.
func (us *UseStatement) BoundNames() []string {
	switch us.Kind {
	case UseNamespace:
		return []string{us.Alias}
	case UseSelective:
		return us.Names
	default:
		return []string{us.Name}
	}
}

// ExportStatement marks a module binding as visible to importers.
type ExportStatement struct {
	Token token.Token
	Name  string
}

func (ex *ExportStatement) statementNode()       {}
func (ex *ExportStatement) TokenLiteral() string { return ex.Token.Literal }
func (ex *ExportStatement) GetToken() token.Token {
	if ex == nil {
		return token.Token{}
	}
	return ex.Token
}
func (ex *ExportStatement) Accept(v Visitor) { v.VisitExport(ex) }
