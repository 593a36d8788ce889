package evaluator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fiplang/fip/internal/ast"
)

type ObjectType string

const (
	NUMBER_OBJ   = "NUMBER"
	STRING_OBJ   = "STRING"
	BOOLEAN_OBJ  = "BOOLEAN"
	NULL_OBJ     = "NULL"
	UNIT_OBJ     = "UNIT"
	LIST_OBJ     = "LIST"
	OBJECT_OBJ   = "OBJECT"
	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"
	CURRIED_OBJ  = "CURRIED"
	ERROR_OBJ    = "ERROR"
)

// Object is the runtime value interface.
type Object interface {
	Type() ObjectType
	Inspect() string
}

type Number struct {
	Value int64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return fmt.Sprintf("%d", n.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }

// Unit is the result of an empty block.
type Unit struct{}

func (u *Unit) Type() ObjectType { return UNIT_OBJ }
func (u *Unit) Inspect() string  { return "()" }

type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = el.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Record is the object value: a string-keyed mapping. Inspect and
// iteration order is key-sorted.
type Record struct {
	Fields map[string]Object
}

func NewRecord() *Record {
	return &Record{Fields: make(map[string]Object)}
}

func (r *Record) Type() ObjectType { return OBJECT_OBJ }
func (r *Record) Inspect() string {
	keys := r.SortedKeys()
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%s: %s", key, r.Fields[key].Inspect())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (r *Record) SortedKeys() []string {
	keys := make([]string, 0, len(r.Fields))
	for key := range r.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Function is a closure over its defining environment.
type Function struct {
	Name   string
	Params []string
	Body   ast.Expression
	Env    *Environment
	Impure bool
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string  { return fmt.Sprintf("<fn %s>", f.Name) }

// BuiltinFunction is the native implementation signature.
type BuiltinFunction func(e *Evaluator, args ...Object) Object

// Builtin is a native function with fixed arity. The '!' and '?' name
// suffixes carry the same meaning as for user functions.
type Builtin struct {
	Name   string
	Params []string
	Impure bool
	Fn     BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return fmt.Sprintf("<builtin %s>", b.Name) }

// Curried is a partial application: the original callable plus the
// arguments captured so far. Original is a *Function or *Builtin.
type Curried struct {
	Original Object
	Captured []Object
}

func (c *Curried) Type() ObjectType { return CURRIED_OBJ }
func (c *Curried) Inspect() string {
	return fmt.Sprintf("<fn %s (curried)>", c.Name())
}

// Name returns the original callable's name.
func (c *Curried) Name() string {
	switch orig := c.Original.(type) {
	case *Function:
		return orig.Name
	case *Builtin:
		return orig.Name
	}
	return "<unknown>"
}

// Params returns the original callable's parameter names.
func (c *Curried) Params() []string {
	switch orig := c.Original.(type) {
	case *Function:
		return orig.Params
	case *Builtin:
		return orig.Params
	}
	return nil
}

// Impure reports whether the original callable is impure.
func (c *Curried) Impure() bool {
	switch orig := c.Original.(type) {
	case *Function:
		return orig.Impure
	case *Builtin:
		return orig.Impure
	}
	return false
}

// Remaining returns the parameter count still unsatisfied.
func (c *Curried) Remaining() int {
	return len(c.Params()) - len(c.Captured)
}

// Error is a runtime failure propagated up through evaluation.
type Error struct {
	Message string
	Line    int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "Runtime error: " + e.Message }
