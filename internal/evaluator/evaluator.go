package evaluator

import (
	"io"

	"github.com/fiplang/fip/internal/ast"
	"github.com/fiplang/fip/internal/modules"
)

// Purity is the dynamic call context. Top-level statements run Impure;
// a function body runs Impure only when the function itself is impure.
type Purity int

const (
	Pure Purity = iota
	Impure
)

func (p Purity) AllowImpure() bool { return p == Impure }

// Evaluator executes programs. One instance owns the global scope, the
// module cache and the in-progress loading set.
type Evaluator struct {
	Out    io.Writer
	Loader *modules.Loader

	builtins    *Environment
	global      *Environment
	moduleCache map[string]*Environment
}

func New(out io.Writer, loader *modules.Loader) *Evaluator {
	e := &Evaluator{
		Out:         out,
		Loader:      loader,
		builtins:    NewEnvironment(),
		moduleCache: make(map[string]*Environment),
	}
	// Builtins live in their own scope shared as the parent of the
	// entry program's scope and every module scope, so modules see
	// builtins but never the entry program's bindings.
	e.global = NewEnclosedEnvironment(e.builtins)
	e.installBuiltins()
	return e
}

// GlobalEnv exposes the root scope, mainly for tests.
func (e *Evaluator) GlobalEnv() *Environment { return e.global }

// EvalProgram runs every statement against the global scope. The first
// error aborts and is returned; success returns NULL.
func (e *Evaluator) EvalProgram(program *ast.Program) Object {
	for _, stmt := range program.Statements {
		if result := e.evalStatement(stmt, e.global); isError(result) {
			return result
		}
	}
	return NULL
}

func (e *Evaluator) evalStatement(stmt ast.Statement, env *Environment) Object {
	switch s := stmt.(type) {
	case *ast.AssignmentStatement:
		value := e.evalExpression(s.Value, env, Impure)
		if isError(value) {
			return value
		}
		return e.destructurePattern(s.Pattern, value, env)
	case *ast.ExpressionStatement:
		result := e.evalExpression(s.Expression, env, Impure)
		if isError(result) {
			return result
		}
		return NULL
	case *ast.FunctionStatement:
		return e.evalFunctionStatement(s, env)
	case *ast.UseStatement:
		return e.evalUseStatement(s, env)
	case *ast.ExportStatement:
		// Collected during module loading, inert elsewhere.
		return NULL
	default:
		return newError("unknown statement type %T", stmt)
	}
}

// evalFunctionStatement runs the static purity check against the body
// before the function value exists: an impure function must reference
// at least one '!' name, a pure one must reference none.
func (e *Evaluator) evalFunctionStatement(s *ast.FunctionStatement, env *Environment) Object {
	if s.Impure {
		if _, ok := ast.FindImpureCall(s.Body); !ok {
			return newError(
				"Function '%s' is marked impure but performs no impure operations", s.Name)
		}
	} else if name, ok := ast.FindImpureCall(s.Body); ok {
		return newError(
			"Function '%s' must be declared impure (end the name with '!') to call '%s'",
			s.Name, name)
	}

	fn := &Function{
		Name:   s.Name,
		Params: s.Params,
		Body:   s.Body,
		Env:    env,
		Impure: s.Impure,
	}
	if !env.Define(s.Name, fn) {
		return newError("Cannot redefine immutable binding '%s'", s.Name)
	}
	return NULL
}

// destructurePattern matches value against pattern and binds into env.
func (e *Evaluator) destructurePattern(pattern ast.Pattern, value Object, env *Environment) Object {
	switch pat := pattern.(type) {
	case *ast.IdentifierPattern:
		if !env.Define(pat.Value, value) {
			return newError("Cannot redefine immutable binding '%s'", pat.Value)
		}
		return NULL
	case *ast.ListPattern:
		list, ok := value.(*List)
		if !ok {
			return newError("Cannot destructure non-list value %s with list pattern", inspect(value))
		}
		for i, el := range pat.Elements {
			var element Object = NULL
			if i < len(list.Elements) {
				element = list.Elements[i]
			}
			if result := e.destructurePattern(el, element, env); isError(result) {
				return result
			}
		}
		return NULL
	case *ast.ObjectPattern:
		record, ok := value.(*Record)
		if !ok {
			return newError("Cannot destructure non-object value %s with object pattern", inspect(value))
		}
		for _, field := range pat.Fields {
			fieldValue, present := record.Fields[field.Name]
			if !present {
				fieldValue = NULL
			}
			if field.Pattern == nil {
				if !env.Define(field.Name, fieldValue) {
					return newError("Cannot redefine immutable binding '%s'", field.Name)
				}
				continue
			}
			if result := e.destructurePattern(field.Pattern, fieldValue, env); isError(result) {
				return result
			}
		}
		return NULL
	default:
		return newError("unknown pattern type %T", pattern)
	}
}
