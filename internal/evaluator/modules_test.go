package evaluator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fiplang/fip/internal/modules"
)

func writeModule(t *testing.T, dir, name, source string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatalf("write module: %v", err)
	}
}

func evalWithLoader(t *testing.T, dir, source string) (*Evaluator, Object, string) {
	t.Helper()
	var out bytes.Buffer
	e := New(&out, modules.NewLoader(dir))
	result := e.EvalProgram(parseSource(t, source))
	return e, result, out.String()
}

func TestUseSingle(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "math.fip", `
export double
double: (x) { x * 2 }
`)

	e, result, _ := evalWithLoader(t, dir, `
use double from "math"
result: double(21)
`)
	expectNoError(t, result)
	expectNumber(t, binding(t, e, "result"), 42)
}

func TestUseNamespace(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "math.fip", `
export double
export triple
double: (x) { x * 2 }
triple: (x) { x * 3 }
`)

	e, result, _ := evalWithLoader(t, dir, `
use math as m from "math"
result: m.double(2) + m.triple(2)
`)
	expectNoError(t, result)
	expectNumber(t, binding(t, e, "result"), 10)
}

func TestUseSelective(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "math.fip", `
export double
export triple
double: (x) { x * 2 }
triple: (x) { x * 3 }
`)

	e, result, _ := evalWithLoader(t, dir, `
use { double, triple } from "math"
result: double(3) + triple(3)
`)
	expectNoError(t, result)
	expectNumber(t, binding(t, e, "result"), 15)
}

func TestUseSubdirectoryPath(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "lib/helper.fip", `
export greet
greet: (name) { "hi <name>" }
`)

	e, result, _ := evalWithLoader(t, dir, `
use greet from "lib/helper"
result: greet("ada")
`)
	expectNoError(t, result)
	s, ok := binding(t, e, "result").(*String)
	if !ok || s.Value != "hi ada" {
		t.Errorf("result = %s, want 'hi ada'", binding(t, e, "result").Inspect())
	}
}

func TestModuleEvaluatedOnce(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "noisy.fip", `
export value
log!("loaded")
value: 7
`)

	e, result, out := evalWithLoader(t, dir, `
use value from "noisy"
use noisy as n from "noisy"
result: value + n.value
`)
	expectNoError(t, result)
	expectNumber(t, binding(t, e, "result"), 14)
	if out != "loaded\n" {
		t.Errorf("module side effects ran %d times, output %q",
			strings.Count(out, "loaded"), out)
	}
}

func TestModuleMissingExport(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "math.fip", `
export double
double: (x) { x * 2 }
`)

	_, result, _ := evalWithLoader(t, dir, `use nope from "math"`)
	expectError(t, result, "Module 'math' does not export 'nope'")
}

func TestModuleExportsUndefinedBinding(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "ghost.fip", `
export ghost
value: 1
`)

	_, result, _ := evalWithLoader(t, dir, `use ghost from "ghost"`)
	expectError(t, result, "Module 'ghost' exports 'ghost' but it is not defined")
}

func TestModuleNotFound(t *testing.T) {
	dir := t.TempDir()
	_, result, _ := evalWithLoader(t, dir, `use thing from "missing"`)
	expectError(t, result, "Module file not found")
}

func TestImportCycle(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a.fip", `
use b-value from "b"
export a-value
a-value: 1
`)
	writeModule(t, dir, "b.fip", `
use a-value from "a"
export b-value
b-value: 2
`)

	_, result, _ := evalWithLoader(t, dir, `use a-value from "a"`)
	expectError(t, result, "Import cycle detected involving module")
}

func TestCycleMarkerReleasedAfterFailure(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "bad.fip", `use thing from "missing"`)
	writeModule(t, dir, "good.fip", `
export ok
ok: 1
`)

	var out bytes.Buffer
	e := New(&out, modules.NewLoader(dir))

	result := e.EvalProgram(parseSource(t, `use thing from "bad"`))
	expectError(t, result, "Module file not found")

	// A failed load must not leave the module marked as in progress.
	result2 := e.EvalProgram(parseSource(t, `use ok from "good"`))
	expectNoError(t, result2)
}

func TestModuleSeesBuiltinsNotEntryBindings(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "peek.fip", `
export probe
probe: (x) { defined?(x) }
`)

	e, result, _ := evalWithLoader(t, dir, `
secret: 1
use probe from "peek"
result: probe(null)
`)
	expectNoError(t, result)
	if binding(t, e, "result") != FALSE {
		t.Errorf("result = %s, want false", binding(t, e, "result").Inspect())
	}
}

func TestModuleCannotSeeEntryBindings(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "leak.fip", `
export leaked
leaked: secret
`)

	_, result, _ := evalWithLoader(t, dir, `
secret: 1
use leaked from "leak"
`)
	expectError(t, result, "Undefined identifier 'secret'")
}

func TestUseWithoutLoader(t *testing.T) {
	_, result, _ := evalSource(t, `use thing from "somewhere"`)
	expectError(t, result, "Module imports require entry point directory to be set")
}
