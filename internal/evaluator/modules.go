package evaluator

import (
	"github.com/fiplang/fip/internal/ast"
)

func (e *Evaluator) evalUseStatement(use *ast.UseStatement, env *Environment) Object {
	exports, err := e.loadModule(use.ModulePath)
	if err != nil {
		return err
	}

	switch use.Kind {
	case ast.UseSingle:
		value, ok := exports.Get(use.Name)
		if !ok {
			return newError("Module '%s' does not export '%s'", use.ModulePath, use.Name)
		}
		if !env.Define(use.Name, value) {
			return newError("Cannot redefine immutable binding '%s'", use.Name)
		}
		return NULL
	case ast.UseNamespace:
		// Aggregate every export into a single object under the alias.
		record := NewRecord()
		for _, name := range exports.Names() {
			value, _ := exports.Get(name)
			record.Fields[name] = value
		}
		if !env.Define(use.Alias, record) {
			return newError("Cannot redefine immutable binding '%s'", use.Alias)
		}
		return NULL
	case ast.UseSelective:
		for _, name := range use.Names {
			value, ok := exports.Get(name)
			if !ok {
				return newError("Module '%s' does not export '%s'", use.ModulePath, name)
			}
			if !env.Define(name, value) {
				return newError("Cannot redefine immutable binding '%s'", name)
			}
		}
		return NULL
	default:
		return newError("unknown use statement kind %d", use.Kind)
	}
}

// loadModule resolves, parses and evaluates a module once. The export
// environment is cached per path; a later use of the same path returns
// the cached exports without re-running side effects.
func (e *Evaluator) loadModule(modulePath string) (*Environment, *Error) {
	if cached, ok := e.moduleCache[modulePath]; ok {
		return cached, nil
	}

	if e.Loader == nil {
		return nil, newError("Module imports require entry point directory to be set")
	}

	if err := e.Loader.Begin(modulePath); err != nil {
		return nil, newError("%s", err.Error())
	}
	defer e.Loader.End(modulePath)

	filePath, err := e.Loader.Resolve(modulePath)
	if err != nil {
		return nil, newError("%s", err.Error())
	}

	program, parseErr := e.Loader.Parse(filePath)
	if parseErr != nil {
		return nil, newError("Failed to load module '%s': %s", modulePath, parseErr.Error())
	}

	// Modules see the builtins but not the entry program's bindings.
	moduleEnv := NewEnclosedEnvironment(e.builtins)
	exportNames := make(map[string]bool)

	for _, stmt := range program.Statements {
		if export, ok := stmt.(*ast.ExportStatement); ok {
			exportNames[export.Name] = true
			continue
		}
		if result := e.evalStatement(stmt, moduleEnv); isError(result) {
			return nil, result.(*Error)
		}
	}

	// Exports must be bound in the module itself, not inherited.
	exportEnv := NewEnvironment()
	for name := range exportNames {
		value, ok := moduleEnv.GetLocal(name)
		if !ok {
			return nil, newError("Module '%s' exports '%s' but it is not defined", modulePath, name)
		}
		exportEnv.Define(name, value)
	}

	e.moduleCache[modulePath] = exportEnv
	return exportEnv, nil
}
