package evaluator

import "sync"

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Environment is a chained lexical scope. Bindings are define-once: a
// name bound in a scope can never be rebound there, only shadowed by a
// nested scope. Parents are shared between closures and never written
// through children.
type Environment struct {
	mu    sync.RWMutex
	store map[string]Object
	outer *Environment
}

func (e *Environment) Get(name string) (Object, bool) {
	e.mu.RLock()
	obj, ok := e.store[name]
	e.mu.RUnlock()
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

// Define inserts a new binding. It reports false when the name is
// already bound in this scope.
func (e *Environment) Define(name string, val Object) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.store[name]; exists {
		return false
	}
	e.store[name] = val
	return true
}

// GetLocal looks a name up in this scope only, ignoring parents.
func (e *Environment) GetLocal(name string) (Object, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	obj, ok := e.store[name]
	return obj, ok
}

// Names returns the names bound directly in this scope.
func (e *Environment) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	return names
}
