package linter

import (
	"fmt"
	"sort"

	"github.com/fiplang/fip/internal/ast"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Finding is a single lint diagnostic tied to a source line.
type Finding struct {
	Line     int
	Column   int
	Message  string
	Severity Severity
}

// Linter runs static checks over a parsed program: purity suffix
// agreement, the boolean-result heuristic for '?' names, and unused
// private bindings. Naming and redefinition rules are enforced by the
// parser, so a program that reaches the linter already passed those.
type Linter struct {
	findings []Finding

	defined  map[string]int // name -> definition line
	used     map[string]bool
	exported map[string]bool
}

func New() *Linter {
	return &Linter{
		defined:  make(map[string]int),
		used:     make(map[string]bool),
		exported: make(map[string]bool),
	}
}

func (l *Linter) report(line, column int, severity Severity, format string, args ...interface{}) {
	l.findings = append(l.findings, Finding{
		Line:     line,
		Column:   column,
		Message:  fmt.Sprintf(format, args...),
		Severity: severity,
	})
}

// Lint checks the program and returns its findings. Definitions and
// exports are collected first so usage checks see the whole file.
func (l *Linter) Lint(program *ast.Program) []Finding {
	for _, stmt := range program.Statements {
		l.collectDefinitions(stmt)
	}
	for _, stmt := range program.Statements {
		l.checkStatement(stmt)
	}
	l.checkUnusedBindings()
	sort.SliceStable(l.findings, func(i, j int) bool {
		if l.findings[i].Line != l.findings[j].Line {
			return l.findings[i].Line < l.findings[j].Line
		}
		return l.findings[i].Message < l.findings[j].Message
	})
	return l.findings
}

// ErrorCount counts findings at error severity.
func ErrorCount(findings []Finding) int {
	count := 0
	for _, f := range findings {
		if f.Severity == SeverityError {
			count++
		}
	}
	return count
}

func (l *Linter) collectDefinitions(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.AssignmentStatement:
		for _, name := range ast.BoundNames(s.Pattern) {
			l.defined[name] = s.GetToken().Line
		}
	case *ast.FunctionStatement:
		l.defined[s.Name] = s.GetToken().Line
	case *ast.ExportStatement:
		l.exported[s.Name] = true
	}
}

func (l *Linter) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.AssignmentStatement:
		l.checkExpression(s.Value)
		l.collectUsage(s.Value)
	case *ast.ExpressionStatement:
		l.checkExpression(s.Expression)
		l.collectUsage(s.Expression)
	case *ast.FunctionStatement:
		l.checkFunction(s)
	}
}

func (l *Linter) checkFunction(fn *ast.FunctionStatement) {
	line := fn.GetToken().Line

	if fn.Impure {
		if _, ok := ast.FindImpureCall(fn.Body); !ok {
			l.report(line, 1, SeverityError,
				"Function '%s' is marked impure but performs no impure operations", fn.Name)
		}
	} else if name, ok := ast.FindImpureCall(fn.Body); ok {
		l.report(line, 1, SeverityError,
			"Function '%s' must be declared impure (end the name with '!') to call '%s'",
			fn.Name, name)
	}

	if hasBooleanSuffix(fn.Name) && !returnsBoolean(fn.Body) {
		l.report(line, 1, SeverityError,
			"Function '%s' must return a boolean value", fn.Name)
	}

	l.checkExpression(fn.Body)
	l.collectUsage(fn.Body)
}

func (l *Linter) checkExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.LambdaExpression:
		line := e.GetToken().Line
		if e.Impure {
			if _, ok := ast.FindImpureCall(e.Body); !ok {
				l.report(line, 1, SeverityError,
					"Anonymous function is marked impure but performs no impure operations")
			}
		} else if name, ok := ast.FindImpureCall(e.Body); ok {
			l.report(line, 1, SeverityError,
				"Anonymous function must be marked impure (use '!') to call '%s'", name)
		}
		l.checkExpression(e.Body)
	case *ast.CallExpression:
		l.checkExpression(e.Callee)
		for _, arg := range e.Args {
			l.checkExpression(arg)
		}
	case *ast.BlockExpression:
		for _, inner := range e.Expressions {
			l.checkExpression(inner)
		}
	case *ast.ObjectLiteral:
		for _, field := range e.Fields {
			l.checkExpression(field.Value)
		}
	case *ast.ListLiteral:
		for _, el := range e.Elements {
			l.checkExpression(el)
		}
	case *ast.SpreadExpression:
		l.checkExpression(e.Value)
	case *ast.BinaryExpression:
		l.checkExpression(e.Left)
		l.checkExpression(e.Right)
	case *ast.PropertyAccessExpression:
		l.checkExpression(e.Object)
	case *ast.StringLiteral:
		for _, seg := range e.Segments {
			if seg.Expr != nil {
				l.checkExpression(seg.Expr)
			}
		}
	}
}

func (l *Linter) collectUsage(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		l.used[e.Value] = true
	case *ast.CallExpression:
		l.collectUsage(e.Callee)
		for _, arg := range e.Args {
			l.collectUsage(arg)
		}
	case *ast.BlockExpression:
		for _, inner := range e.Expressions {
			l.collectUsage(inner)
		}
	case *ast.LambdaExpression:
		l.collectUsage(e.Body)
	case *ast.ObjectLiteral:
		for _, field := range e.Fields {
			l.collectUsage(field.Value)
		}
	case *ast.ListLiteral:
		for _, el := range e.Elements {
			l.collectUsage(el)
		}
	case *ast.SpreadExpression:
		l.collectUsage(e.Value)
	case *ast.BinaryExpression:
		l.collectUsage(e.Left)
		l.collectUsage(e.Right)
	case *ast.PropertyAccessExpression:
		l.collectUsage(e.Object)
	case *ast.StringLiteral:
		for _, seg := range e.Segments {
			if seg.Expr != nil {
				l.collectUsage(seg.Expr)
			}
		}
	}
}

func (l *Linter) checkUnusedBindings() {
	for name, line := range l.defined {
		if l.used[name] || l.exported[name] {
			continue
		}
		l.report(line, 1, SeverityWarning,
			"Binding '%s' is defined but never used", name)
	}
}

func hasBooleanSuffix(name string) bool {
	return len(name) > 0 && name[len(name)-1] == '?'
}

// returnsBoolean is a shallow heuristic over the last expression of
// the body: boolean literals, comparison and logical operators, and
// calls to other '?' names count as boolean.
func returnsBoolean(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.BooleanLiteral:
		return true
	case *ast.BinaryExpression:
		switch e.Operator {
		case "=", "!=", "<", "<=", ">", ">=", "&", "|":
			return true
		}
		return false
	case *ast.CallExpression:
		if ident, ok := e.Callee.(*ast.Identifier); ok {
			return hasBooleanSuffix(ident.Value)
		}
		return false
	case *ast.BlockExpression:
		if len(e.Expressions) == 0 {
			return false
		}
		return returnsBoolean(e.Expressions[len(e.Expressions)-1])
	default:
		return false
	}
}
