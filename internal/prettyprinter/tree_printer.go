package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/fiplang/fip/internal/ast"
)

// --- Tree Printer (Output shows AST structure) ---

// TreePrinter renders the AST as an indented node dump for snapshot
// tests. One node per line, children indented below their parent.
type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

func (p *TreePrinter) line(format string, args ...interface{}) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteString("\n")
}

func (p *TreePrinter) nested(node ast.Node) {
	p.indent++
	if node == nil {
		p.line("<nil>")
	} else {
		node.Accept(p)
	}
	p.indent--
}

func (p *TreePrinter) VisitProgram(n *ast.Program) {
	p.line("Program")
	for _, stmt := range n.Statements {
		p.nested(stmt)
	}
}

func (p *TreePrinter) VisitAssignment(n *ast.AssignmentStatement) {
	p.line("Assignment")
	p.nested(n.Pattern)
	p.nested(n.Value)
}

func (p *TreePrinter) VisitFunction(n *ast.FunctionStatement) {
	impure := ""
	if n.Impure {
		impure = " impure"
	}
	p.line("Function %s(%s)%s", n.Name, strings.Join(n.Params, ", "), impure)
	p.nested(n.Body)
}

func (p *TreePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	p.line("ExpressionStatement")
	p.nested(n.Expression)
}

func (p *TreePrinter) VisitUse(n *ast.UseStatement) {
	switch n.Kind {
	case ast.UseNamespace:
		p.line("Use namespace %s as %q", n.Alias, n.ModulePath)
	case ast.UseSelective:
		p.line("Use { %s } from %q", strings.Join(n.Names, ", "), n.ModulePath)
	default:
		p.line("Use %s from %q", n.Name, n.ModulePath)
	}
}

func (p *TreePrinter) VisitExport(n *ast.ExportStatement) {
	p.line("Export %s", n.Name)
}

func (p *TreePrinter) VisitIdentifierPattern(n *ast.IdentifierPattern) {
	p.line("IdentifierPattern %s", n.Value)
}

func (p *TreePrinter) VisitListPattern(n *ast.ListPattern) {
	p.line("ListPattern")
	for _, el := range n.Elements {
		p.nested(el)
	}
}

func (p *TreePrinter) VisitObjectPattern(n *ast.ObjectPattern) {
	p.line("ObjectPattern")
	p.indent++
	for _, field := range n.Fields {
		if field.Pattern == nil {
			p.line("Field %s (shorthand)", field.Name)
			continue
		}
		p.line("Field %s", field.Name)
		p.nested(field.Pattern)
	}
	p.indent--
}

func (p *TreePrinter) VisitNumber(n *ast.NumberLiteral) {
	p.line("Number %d", n.Value)
}

func (p *TreePrinter) VisitString(n *ast.StringLiteral) {
	p.line("String")
	p.indent++
	for _, seg := range n.Segments {
		if seg.Expr != nil {
			p.line("Interpolation")
			p.nested(seg.Expr)
			continue
		}
		p.line("Text %s", strconv.Quote(seg.Text))
	}
	p.indent--
}

func (p *TreePrinter) VisitBoolean(n *ast.BooleanLiteral) {
	p.line("Boolean %t", n.Value)
}

func (p *TreePrinter) VisitNull(n *ast.NullLiteral) {
	p.line("Null")
}

func (p *TreePrinter) VisitIdentifier(n *ast.Identifier) {
	p.line("Identifier %s", n.Value)
}

func (p *TreePrinter) VisitBlock(n *ast.BlockExpression) {
	p.line("Block")
	for _, expr := range n.Expressions {
		p.nested(expr)
	}
}

func (p *TreePrinter) VisitLambda(n *ast.LambdaExpression) {
	impure := ""
	if n.Impure {
		impure = " impure"
	}
	p.line("Lambda (%s)%s", strings.Join(n.Params, ", "), impure)
	p.nested(n.Body)
}

func (p *TreePrinter) VisitObject(n *ast.ObjectLiteral) {
	p.line("Object")
	p.indent++
	for _, field := range n.Fields {
		if field.Name == "" {
			p.line("SpreadField")
			p.nested(field.Value)
			continue
		}
		p.line("Field %s", field.Name)
		p.nested(field.Value)
	}
	p.indent--
}

func (p *TreePrinter) VisitList(n *ast.ListLiteral) {
	p.line("List")
	for _, el := range n.Elements {
		p.nested(el)
	}
}

func (p *TreePrinter) VisitCall(n *ast.CallExpression) {
	p.line("Call")
	p.nested(n.Callee)
	p.indent++
	for _, arg := range n.Args {
		p.line("Arg")
		p.nested(arg)
	}
	p.indent--
}

func (p *TreePrinter) VisitPropertyAccess(n *ast.PropertyAccessExpression) {
	p.line("PropertyAccess .%s", n.Property)
	p.nested(n.Object)
}

func (p *TreePrinter) VisitBinary(n *ast.BinaryExpression) {
	p.line("Binary %s", n.Operator)
	p.nested(n.Left)
	p.nested(n.Right)
}

func (p *TreePrinter) VisitSpread(n *ast.SpreadExpression) {
	p.line("Spread")
	p.nested(n.Value)
}
