package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fiplang/fip/internal/ast"
	"github.com/fiplang/fip/internal/lexer"
	"github.com/fiplang/fip/internal/parser"
	"github.com/fiplang/fip/internal/pipeline"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).
		Run(&pipeline.PipelineContext{FilePath: "test.fip", SourceCode: source})
	if ctx.Failed() {
		t.Fatalf("parse failed: %v", ctx.FirstError())
	}
	return ctx.AstRoot
}

func evalSource(t *testing.T, source string) (*Evaluator, Object, string) {
	t.Helper()
	var out bytes.Buffer
	e := New(&out, nil)
	result := e.EvalProgram(parseSource(t, source))
	return e, result, out.String()
}

func binding(t *testing.T, e *Evaluator, name string) Object {
	t.Helper()
	value, ok := e.GlobalEnv().Get(name)
	if !ok {
		t.Fatalf("binding %q not found", name)
	}
	return value
}

func expectNumber(t *testing.T, obj Object, want int64) {
	t.Helper()
	n, ok := obj.(*Number)
	if !ok {
		t.Fatalf("object = %s (%T), want number %d", obj.Inspect(), obj, want)
	}
	if n.Value != want {
		t.Errorf("number = %d, want %d", n.Value, want)
	}
}

func expectNoError(t *testing.T, result Object) {
	t.Helper()
	if err, ok := result.(*Error); ok {
		t.Fatalf("unexpected error: %s", err.Message)
	}
}

func expectError(t *testing.T, result Object, wantSubstr string) {
	t.Helper()
	err, ok := result.(*Error)
	if !ok {
		t.Fatalf("expected error containing %q, got %s", wantSubstr, result.Inspect())
	}
	if !strings.Contains(err.Message, wantSubstr) {
		t.Errorf("error = %q, want substring %q", err.Message, wantSubstr)
	}
}

func TestAssignmentAndCall(t *testing.T) {
	e, result, _ := evalSource(t, `
y: 2
f: (x) { x + 1 }
result: f(y)
`)
	expectNoError(t, result)
	expectNumber(t, binding(t, e, "result"), 3)
}

func TestExpressionResults(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int64
	}{
		{"precedence", "result: 1 + 2 * 3", 7},
		{"grouping", "result: (1 + 2) * 3", 9},
		{"unary_minus", "result: -5 + 8", 3},
		{"nested_calls", "f: (x) { x * 2 }\nresult: f(f(3))", 12},
		{"closure", "make-adder: (n) { (x) { x + n } }\nadd-two: make-adder(2)\nresult: add-two(40)", 42},
		{"property", "p: { x: 7, y: 9 }\nresult: p.x + p.y", 16},
		{"list_index", "xs: [10, 20, 30]\nresult: xs.1", 20},
		{"builtin_add", "result: add(20, 22)", 42},
		{"template_block", "result: { 1\nincrement\nincrement }", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, result, _ := evalSource(t, tt.source)
			expectNoError(t, result)
			expectNumber(t, binding(t, e, "result"), tt.want)
		})
	}
}

func TestBooleansAndComparisons(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"equality", "result: 1 + 1 = 2", true},
		{"inequality", "result: 2 != 2", false},
		{"less_than", "result: 1 < 2", true},
		{"logical_and", "result: true & false", false},
		{"logical_or", "result: false | true", true},
		{"structural_list_eq", "result: [1, [2, 3]] = [1, [2, 3]]", true},
		{"structural_record_eq", "result: { a: 1 } = { a: 2 }", false},
		{"null_equality", "result: null = null", true},
		{"mixed_kinds_unequal", `result: 1 = "1"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, result, _ := evalSource(t, tt.source)
			expectNoError(t, result)
			b, ok := binding(t, e, "result").(*Boolean)
			if !ok {
				t.Fatalf("result is not a boolean")
			}
			if b.Value != tt.want {
				t.Errorf("result = %t, want %t", b.Value, tt.want)
			}
		})
	}
}

func TestLogicalOperatorsEvaluateBothSides(t *testing.T) {
	// No short-circuit: the right operand runs even when the left
	// already decides the outcome.
	_, result, _ := evalSource(t, "result: true | (1 / 0 = 0)")
	expectError(t, result, "Division by zero")
}

func TestStringInterpolation(t *testing.T) {
	_, result, out := evalSource(t, `
name: "Filip"
age: 35
log!("My name is <name> and next year I'll be <age + 1>")
`)
	expectNoError(t, result)
	want := "My name is Filip and next year I'll be 36\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{"undefined_identifier", "result: nope", "Undefined identifier 'nope'"},
		{"division_by_zero", "result: 1 / 0", "Division by zero"},
		{"add_non_number", `result: 1 + "a"`, "Addition requires numeric operands"},
		{"compare_non_number", `result: "a" < 1`, "Left operand of comparison must be a number"},
		{"and_non_boolean", "result: 1 & true", "Left operand of and must be boolean"},
		{"call_non_callable", "x: 4\nresult: x(1)", "is not callable"},
		{"property_on_number", "x: 4\nresult: x.field", "Cannot access property 'field'"},
		{"over_application", "f: (x) { x }\nresult: f(1, 2)", "Function 'f' expected 1 arguments but received 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, result, _ := evalSource(t, tt.source)
			expectError(t, result, tt.wantMsg)
		})
	}
}

func TestPurityRules(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{
			"pure_function_calling_impure",
			"f: (x) { log!(x) }",
			"Function 'f' must be declared impure (end the name with '!') to call 'log!'",
		},
		{
			"impure_function_without_impure_call",
			"f!: (x) { x + 1 }",
			"Function 'f!' is marked impure but performs no impure operations",
		},
		{
			"pure_lambda_calling_impure",
			"r: map((x) { log!(x) }, [1])",
			"Anonymous function must be declared impure (use '!') to call 'log!'",
		},
		{
			"impure_lambda_without_impure_call",
			"r: map((x)! { x }, [1])",
			"Anonymous function is marked impure but performs no impure operations",
		},
		{
			"impure_reference_counts",
			"f: (x) { log! }",
			"Function 'f' must be declared impure (end the name with '!') to call 'log!'",
		},
		{
			"impure_callable_from_pure_context",
			"call-it: (g) { g(1) }\nprinter: log!\nresult: call-it(printer)",
			"Cannot call impure builtin 'log!' from pure context",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, result, _ := evalSource(t, tt.source)
			expectError(t, result, tt.wantMsg)
		})
	}
}

func TestImpureFunctionRuns(t *testing.T) {
	_, result, out := evalSource(t, `
greet!: (name) { log!("hi <name>") }
greet!("ada")
`)
	expectNoError(t, result)
	if out != "hi ada\n" {
		t.Errorf("output = %q, want %q", out, "hi ada\n")
	}
}

func TestCurrying(t *testing.T) {
	e, result, _ := evalSource(t, `
add3: (a, b, c) { a + b + c }
f: add3(1, 2)
result: f(3)
`)
	expectNoError(t, result)
	expectNumber(t, binding(t, e, "result"), 6)

	if _, ok := binding(t, e, "f").(*Curried); !ok {
		t.Errorf("partial application did not produce a curried value")
	}

	e2, result2, _ := evalSource(t, `
add3: (a, b, c) { a + b + c }
staged: add3(1)(2)(3)
direct: add3(1, 2, 3)
`)
	expectNoError(t, result2)
	expectNumber(t, binding(t, e2, "staged"), 6)
	expectNumber(t, binding(t, e2, "direct"), 6)
}

func TestCurryingBuiltin(t *testing.T) {
	e, result, _ := evalSource(t, `
inc: add(1)
result: inc(41)
`)
	expectNoError(t, result)
	expectNumber(t, binding(t, e, "result"), 42)
}

func TestCurriedOverApplication(t *testing.T) {
	_, result, _ := evalSource(t, `
add3: (a, b, c) { a + b + c }
f: add3(1, 2)
result: f(3, 4)
`)
	expectError(t, result, "Function 'add3' expected 3 arguments but received 4")
}

func TestBlockPipeline(t *testing.T) {
	e, result, _ := evalSource(t, `
f: (x) {
x
increment
increment
identity
}
result: f(1)
`)
	expectNoError(t, result)
	expectNumber(t, binding(t, e, "result"), 3)
}

func TestBlockPipelineReplacesValue(t *testing.T) {
	e, result, _ := evalSource(t, `
f: (x) {
x
increment
99
increment
}
result: f(1)
`)
	expectNoError(t, result)
	expectNumber(t, binding(t, e, "result"), 100)
}

func TestDestructuring(t *testing.T) {
	e, result, _ := evalSource(t, `
[a, b]: [1, 2]
{ name, age }: { name: "Ada", age: 36 }
{ point: [px, py] }: { point: [3, 4] }
[x, y]: [9]
`)
	expectNoError(t, result)
	expectNumber(t, binding(t, e, "a"), 1)
	expectNumber(t, binding(t, e, "b"), 2)
	if s, ok := binding(t, e, "name").(*String); !ok || s.Value != "Ada" {
		t.Errorf("name = %s, want Ada", binding(t, e, "name").Inspect())
	}
	expectNumber(t, binding(t, e, "age"), 36)
	expectNumber(t, binding(t, e, "px"), 3)
	expectNumber(t, binding(t, e, "py"), 4)
	expectNumber(t, binding(t, e, "x"), 9)
	if binding(t, e, "y") != NULL {
		t.Errorf("missing list element should bind null")
	}
}

func TestDestructuringErrors(t *testing.T) {
	_, result, _ := evalSource(t, "[a, b]: 5")
	expectError(t, result, "Cannot destructure non-list value")

	_, result2, _ := evalSource(t, "{ a }: [1]")
	expectError(t, result2, "Cannot destructure non-object value")
}

func TestBooleanContract(t *testing.T) {
	_, result, _ := evalSource(t, `
is-big?: (x) { x * 2 }
result: is-big?(10)
`)
	expectError(t, result, "Function 'is-big?' must return a boolean value")
}

func TestBooleanContractSkipsPartialApplication(t *testing.T) {
	e, result, _ := evalSource(t, `
both-positive?: (a, b) { and?(a > 0, b > 0) }
partial: both-positive?(1)
result: partial(2)
`)
	expectNoError(t, result)
	if binding(t, e, "result") != TRUE {
		t.Errorf("result = %s, want true", binding(t, e, "result").Inspect())
	}
	if _, ok := binding(t, e, "partial").(*Curried); !ok {
		t.Errorf("partial application should not trigger the boolean contract")
	}
}

func TestSpread(t *testing.T) {
	e, result, _ := evalSource(t, `
base: { a: 1, b: 2 }
merged: { ...base, b: 3 }
xs: [1, 2]
ys: [0, ...xs, 3]
result: merged.b + ys.3
`)
	expectNoError(t, result)
	expectNumber(t, binding(t, e, "result"), 6)
	merged := binding(t, e, "merged").(*Record)
	expectNumber(t, merged.Fields["a"], 1)
	expectNumber(t, merged.Fields["b"], 3)
}

func TestSpreadErrors(t *testing.T) {
	_, result, _ := evalSource(t, "o: { ...5 }")
	expectError(t, result, "Spread operator expects an object")

	_, result2, _ := evalSource(t, "xs: [...5]")
	expectError(t, result2, "Spread operator expects a list")
}

func TestPropertyAccessEdgeCases(t *testing.T) {
	e, result, _ := evalSource(t, `
p: { a: 1 }
missing: p.nope
xs: [1]
out-of-range: xs.5
chained: null.anything
`)
	expectNoError(t, result)
	if binding(t, e, "missing") != NULL {
		t.Errorf("missing field should be null")
	}
	if binding(t, e, "out-of-range") != NULL {
		t.Errorf("out of range index should be null")
	}
	if binding(t, e, "chained") != NULL {
		t.Errorf("property access on null should be null")
	}
}

func TestBuiltinHigherOrder(t *testing.T) {
	e, result, _ := evalSource(t, `
doubled: map((x) { x * 2 }, [1, 2, 3])
evens: filter((x) { x / 2 * 2 = x }, [1, 2, 3, 4])
total: reduce((acc, x) { acc + x }, 0, [1, 2, 3, 4])
result: doubled.2 + total
`)
	expectNoError(t, result)
	expectNumber(t, binding(t, e, "result"), 16)
	evens := binding(t, e, "evens").(*List)
	if len(evens.Elements) != 2 {
		t.Fatalf("evens = %s, want two elements", evens.Inspect())
	}
	expectNumber(t, evens.Elements[0], 2)
	expectNumber(t, evens.Elements[1], 4)
}

func TestBuiltinPredicates(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   Object
	}{
		{"every_true", "result: every?((x) { x > 0 }, [1, 2])", TRUE},
		{"every_empty", "result: every?((x) { x > 0 }, [])", TRUE},
		{"some_true", "result: some?((x) { x > 1 }, [1, 2])", TRUE},
		{"some_empty", "result: some?((x) { x > 0 }, [])", FALSE},
		{"none_true", "result: none?((x) { x > 5 }, [1, 2])", TRUE},
		{"none_false", "result: none?((x) { x > 1 }, [1, 2])", FALSE},
		{"defined_on_null", "result: defined?(null)", FALSE},
		{"defined_on_number", "result: defined?(1)", TRUE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, result, _ := evalSource(t, tt.source)
			expectNoError(t, result)
			if binding(t, e, "result") != tt.want {
				t.Errorf("result = %s, want %s", binding(t, e, "result").Inspect(), tt.want.Inspect())
			}
		})
	}
}

func TestBuiltinPredicateContract(t *testing.T) {
	_, result, _ := evalSource(t, "result: every?((x) { x }, [1])")
	expectError(t, result, "Predicate passed to 'every?' must return boolean")

	_, result2, _ := evalSource(t, "result: filter((x) { x }, [1])")
	expectError(t, result2, "Filter predicate must return boolean")
}

func TestBuiltinIf(t *testing.T) {
	e, result, _ := evalSource(t, `
pick: (flag) { if(flag, () { 10 }, () { 20 }) }
result: pick(true) + pick(false)
`)
	expectNoError(t, result)
	expectNumber(t, binding(t, e, "result"), 30)

	_, bad, _ := evalSource(t, "result: if(1, () { 1 }, () { 2 })")
	expectError(t, bad, "Builtin 'if' requires boolean condition")

	_, bad2, _ := evalSource(t, "result: if(true, (x) { x }, () { 2 })")
	expectError(t, bad2, "found function with 1 parameters")
}

func TestBuiltinForEach(t *testing.T) {
	_, result, out := evalSource(t, "for-each!((x)! { log!(x) }, [1, 2, 3])")
	expectNoError(t, result)
	if out != "1\n2\n3\n" {
		t.Errorf("output = %q, want %q", out, "1\n2\n3\n")
	}

	_, bad, _ := evalSource(t, "for-each!((x) { x }, [1])")
	expectError(t, bad, "requires impure function (marked with '!')")
}

func TestTrace(t *testing.T) {
	e, result, out := evalSource(t, `result: trace!("val", 41) + 1`)
	expectNoError(t, result)
	expectNumber(t, binding(t, e, "result"), 42)
	if out != "(trace) val: 41\n" {
		t.Errorf("output = %q, want %q", out, "(trace) val: 41\n")
	}
}
