package parser_test

import (
	"strings"
	"testing"

	"github.com/fiplang/fip/internal/lexer"
	"github.com/fiplang/fip/internal/parser"
	"github.com/fiplang/fip/internal/pipeline"
	"github.com/fiplang/fip/internal/prettyprinter"
)

func parseSource(t *testing.T, input string) *pipeline.PipelineContext {
	t.Helper()
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).
		Run(&pipeline.PipelineContext{FilePath: "test.fip", SourceCode: input})
	return ctx
}

// TestParserPrint checks the parse result through the code printer: the
// printed form pins both the tree shape and the precedence handling.
func TestParserPrint(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_assignment", "y: 2", "y: 2\n"},
		{"string_assignment", `name: "Filip"`, "name: \"Filip\"\n"},
		{"function_definition", "f: (x) { x + 1 }", "f: (x) {\n  x + 1\n}\n"},
		{"impure_function", "greet!: (name) { log!(name) }", "greet!: (name) {\n  log!(name)\n}\n"},
		{"precedence_flat", "r: 1 + 2 * 3", "r: 1 + 2 * 3\n"},
		{"precedence_grouped", "r: (1 + 2) * 3", "r: (1 + 2) * 3\n"},
		{"unary_minus_desugar", "n: -5", "n: 0 - 5\n"},
		{"comparison_bands", "r: 1 + 2 < 3 * 4 & true", "r: 1 + 2 < 3 * 4 & true\n"},
		{"call_chain", "r: f(1)(2)", "r: f(1)(2)\n"},
		{"property_access", "r: point.x", "r: point.x\n"},
		{"list_index", "r: items.0", "r: items.0\n"},
		{"list_literal", "xs: [1, 2, 3]", "xs: [1, 2, 3]\n"},
		{"list_spread", "xs: [1, ...rest]", "xs: [1, ...rest]\n"},
		{"object_literal", "p: { x: 1, y: 2 }", "p: {\n  x: 1,\n  y: 2\n}\n"},
		{"object_spread", "p: { ...base, x: 1 }", "p: {\n  ...base,\n  x: 1\n}\n"},
		{"lambda_argument", "m: map((x) { x * 2 }, [1, 2])", "m: map((x) { x * 2 }, [1, 2])\n"},
		{"impure_lambda", "r: run((x)! { log!(x) })", "r: run((x)! { log!(x) })\n"},
		{"list_destructuring", "[a, b]: [1, 2]", "[a, b]: [1, 2]\n"},
		{"object_destructuring", "{ name, age }: person", "{ name, age }: person\n"},
		{"nested_destructuring", "{ point: [px, py] }: shape", "{ point: [px, py] }: shape\n"},
		{"use_single", `use helper from "lib/helper"`, "use helper from \"lib/helper\"\n"},
		{"use_namespace", `use math as m from "lib/math"`, "use math as m from \"lib/math\"\n"},
		{"use_selective", `use { double, triple } from "lib/math"`, "use { double, triple } from \"lib/math\"\n"},
		{"export_statement", "f: (x) { x }\nexport f", "f: (x) {\n  x\n}\n\nexport f\n"},
		{"statement_separation", "a: 1\nb: 2", "a: 1\n\nb: 2\n"},
		{"template_interpolation", `m: "hi <name>!"`, "m: \"hi <name>!\"\n"},
		{"template_expression", `m: "next <age + 1>"`, "m: \"next <age + 1>\"\n"},
		{"block_pipeline_body", "f: (x) {\nx\nincrement\nincrement\n}", "f: (x) {\n  x\n  increment\n  increment\n}\n"},
		{"grouped_not_lambda", "r: (value)", "r: value\n"},
		{"boolean_marker_lambda", "p: first((x)? { true }, [1])", "p: first((x) { true }, [1])\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := parseSource(t, tc.input)
			if ctx.Failed() {
				t.Fatalf("parse failed: %v", ctx.FirstError())
			}

			printer := prettyprinter.NewCodePrinter()
			ctx.AstRoot.Accept(printer)
			if got := printer.String(); got != tc.want {
				t.Errorf("printed form mismatch:\n--- got\n%s\n--- want\n%s", got, tc.want)
			}
		})
	}
}

func TestParserErrors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"redefined_binding", "x: 1\nx: 2", "Mutation error: trying to mutate binding x"},
		{"redefined_function", "f: (x) { x }\nf: (y) { y }", "Cannot redefine immutable binding 'f'"},
		{"underscore_name", "my_value: 1", "contains underscore"},
		{"uppercase_name", "myValue: 1", "invalid character"},
		{"trailing_hyphen", "x-: 1", "cannot start or end with a hyphen"},
		{"consecutive_hyphens", "a--b: 1", "cannot contain consecutive hyphens"},
		{"duplicate_object_key", "o: { a: 1, a: 2 }", "duplicate key 'a' in object literal"},
		{"impure_parameter", "f: (cb!) { cb!(1) }", "parameter names cannot end with '!'"},
		{"negative_list_index", "r: items.-1", "list indices must be non-negative"},
		{"unterminated_block", "f: (x) { x", "unterminated block expression"},
		{"missing_from", "use helper \"lib\"", "expected 'from' after import name"},
		{"bad_module_path", "use helper from lib", "expected string literal for module path"},
		{"unterminated_interpolation", `m: "hi <name"`, "unterminated interpolation in string literal"},
		{"empty_interpolation", `m: "hi <>"`, "interpolation expression cannot be empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := parseSource(t, tc.input)
			if !ctx.Failed() {
				t.Fatalf("expected parse error for %q", tc.input)
			}
			if msg := ctx.FirstError().Message; !strings.Contains(msg, tc.wantMsg) {
				t.Errorf("error = %q, want substring %q", msg, tc.wantMsg)
			}
		})
	}
}

// Assignment to a name that only looks like a function definition must
// re-parse the right side as an expression.
func TestFunctionRequiresBraceBody(t *testing.T) {
	ctx := parseSource(t, "g: (value)\nh: (1 + 2)")
	if ctx.Failed() {
		t.Fatalf("parse failed: %v", ctx.FirstError())
	}
	printer := prettyprinter.NewCodePrinter()
	ctx.AstRoot.Accept(printer)
	want := "g: value\n\nh: 1 + 2\n"
	if got := printer.String(); got != want {
		t.Errorf("printed form = %q, want %q", got, want)
	}
}
