package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/fiplang/fip/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter). All operators are
// left-associative.
var operatorPrecedence = map[string]int{
	"|":  1,
	"&":  2,
	"=":  3,
	"!=": 3,
	"<":  3,
	"<=": 3,
	">":  3,
	">=": 3,
	"+":  4,
	"-":  4,
	"*":  5,
	"/":  5,
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10
}

// CodePrinter renders an AST back to canonical source: two-space
// indentation, one blank line between top-level statements, block and
// object bodies one entry per line.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
}

// printExpr prints an expression, adding parentheses only when the
// surrounding precedence requires them.
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	bin, ok := expr.(*ast.BinaryExpression)
	if !ok {
		expr.Accept(p)
		return
	}
	prec := getPrecedence(bin.Operator)
	needParens := prec < parentPrec || (prec == parentPrec && isRight)
	if needParens {
		p.write("(")
	}
	p.printExpr(bin.Left, prec, false)
	p.write(" " + bin.Operator + " ")
	p.printExpr(bin.Right, prec, true)
	if needParens {
		p.write(")")
	}
}

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	for i, stmt := range n.Statements {
		if i > 0 {
			p.write("\n\n")
		}
		stmt.Accept(p)
	}
	if len(n.Statements) > 0 {
		p.write("\n")
	}
}

func (p *CodePrinter) VisitAssignment(n *ast.AssignmentStatement) {
	n.Pattern.Accept(p)
	p.write(": ")
	n.Value.Accept(p)
}

func (p *CodePrinter) VisitFunction(n *ast.FunctionStatement) {
	p.write(n.Name)
	p.write(": (")
	p.write(strings.Join(n.Params, ", "))
	p.write(") ")
	p.printFunctionBody(n.Body)
}

// printFunctionBody always breaks the body onto its own lines. Lambda
// bodies go through printLambdaBody instead, which may inline.
func (p *CodePrinter) printFunctionBody(body ast.Expression) {
	exprs := blockExpressions(body)
	p.write("{\n")
	p.indent++
	for i, expr := range exprs {
		if i > 0 {
			p.write("\n")
		}
		p.writeIndent()
		expr.Accept(p)
	}
	p.indent--
	p.write("\n")
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	n.Expression.Accept(p)
}

func (p *CodePrinter) VisitUse(n *ast.UseStatement) {
	switch n.Kind {
	case ast.UseNamespace:
		p.write("use " + n.Name + " as " + n.Alias + " from \"" + n.ModulePath + "\"")
	case ast.UseSelective:
		p.write("use { " + strings.Join(n.Names, ", ") + " } from \"" + n.ModulePath + "\"")
	default:
		p.write("use " + n.Name + " from \"" + n.ModulePath + "\"")
	}
}

func (p *CodePrinter) VisitExport(n *ast.ExportStatement) {
	p.write("export " + n.Name)
}

func (p *CodePrinter) VisitIdentifierPattern(n *ast.IdentifierPattern) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitListPattern(n *ast.ListPattern) {
	p.write("[")
	for i, el := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		el.Accept(p)
	}
	p.write("]")
}

func (p *CodePrinter) VisitObjectPattern(n *ast.ObjectPattern) {
	p.write("{ ")
	for i, field := range n.Fields {
		if i > 0 {
			p.write(", ")
		}
		p.write(field.Name)
		if field.Pattern != nil {
			p.write(": ")
			field.Pattern.Accept(p)
		}
	}
	p.write(" }")
}

func (p *CodePrinter) VisitNumber(n *ast.NumberLiteral) {
	p.write(strconv.FormatInt(n.Value, 10))
}

func (p *CodePrinter) VisitString(n *ast.StringLiteral) {
	p.write("\"")
	for _, seg := range n.Segments {
		if seg.Expr != nil {
			p.write("<")
			seg.Expr.Accept(p)
			p.write(">")
			continue
		}
		p.write(escapeText(seg.Text))
	}
	p.write("\"")
}

func escapeText(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", "\\n",
		"\r", "\\r",
		"\t", "\\t",
	)
	return replacer.Replace(s)
}

func (p *CodePrinter) VisitBoolean(n *ast.BooleanLiteral) {
	p.write(strconv.FormatBool(n.Value))
}

func (p *CodePrinter) VisitNull(n *ast.NullLiteral) {
	p.write("null")
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitBlock(n *ast.BlockExpression) {
	if len(n.Expressions) == 0 {
		p.write("{}")
		return
	}
	p.write("{\n")
	p.indent++
	for i, expr := range n.Expressions {
		if i > 0 {
			p.write("\n")
		}
		p.writeIndent()
		expr.Accept(p)
	}
	p.indent--
	p.write("\n")
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitLambda(n *ast.LambdaExpression) {
	p.write("(")
	p.write(strings.Join(n.Params, ", "))
	p.write(")")
	if n.Impure {
		p.write("!")
	}
	p.write(" ")
	p.printLambdaBody(n.Body)
}

// printLambdaBody inlines a single simple expression as `{ expr }` and
// falls back to the multi-line block form otherwise.
func (p *CodePrinter) printLambdaBody(body ast.Expression) {
	exprs := blockExpressions(body)
	if len(exprs) == 0 {
		p.write("{}")
		return
	}
	if len(exprs) == 1 && isSimpleExpression(exprs[0]) {
		p.write("{ ")
		exprs[0].Accept(p)
		p.write(" }")
		return
	}
	p.printFunctionBody(body)
}

func blockExpressions(body ast.Expression) []ast.Expression {
	if block, ok := body.(*ast.BlockExpression); ok {
		return block.Expressions
	}
	return []ast.Expression{body}
}

func isSimpleExpression(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.NumberLiteral, *ast.StringLiteral, *ast.BooleanLiteral,
		*ast.NullLiteral, *ast.Identifier:
		return true
	case *ast.BinaryExpression:
		return isSimpleExpression(e.Left) && isSimpleExpression(e.Right)
	case *ast.PropertyAccessExpression:
		_, ok := e.Object.(*ast.Identifier)
		return ok
	case *ast.CallExpression:
		if _, ok := e.Callee.(*ast.Identifier); !ok {
			return false
		}
		if len(e.Args) > 2 {
			return false
		}
		for _, arg := range e.Args {
			if !isSimpleExpression(arg) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (p *CodePrinter) VisitObject(n *ast.ObjectLiteral) {
	if len(n.Fields) == 0 {
		p.write("{}")
		return
	}
	p.write("{\n")
	p.indent++
	for i, field := range n.Fields {
		if i > 0 {
			p.write(",\n")
		}
		p.writeIndent()
		if field.Name == "" {
			// Spread entry; Value carries the `...expr`.
			field.Value.Accept(p)
			continue
		}
		p.write(field.Name)
		p.write(": ")
		field.Value.Accept(p)
	}
	p.indent--
	p.write("\n")
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitList(n *ast.ListLiteral) {
	p.write("[")
	for i, el := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		el.Accept(p)
	}
	p.write("]")
}

func (p *CodePrinter) VisitCall(n *ast.CallExpression) {
	p.printExpr(n.Callee, 100, false)
	p.write("(")
	for i, arg := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		arg.Accept(p)
	}
	p.write(")")
}

func (p *CodePrinter) VisitPropertyAccess(n *ast.PropertyAccessExpression) {
	p.printExpr(n.Object, 100, false)
	p.write("." + n.Property)
}

func (p *CodePrinter) VisitBinary(n *ast.BinaryExpression) {
	p.printExpr(n, 0, false)
}

func (p *CodePrinter) VisitSpread(n *ast.SpreadExpression) {
	p.write("...")
	n.Value.Accept(p)
}
