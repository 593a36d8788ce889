package modules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fiplang/fip/internal/ast"
	"github.com/fiplang/fip/internal/config"
	"github.com/fiplang/fip/internal/diagnostics"
	"github.com/fiplang/fip/internal/lexer"
	"github.com/fiplang/fip/internal/parser"
	"github.com/fiplang/fip/internal/pipeline"
)

// Loader resolves and parses module files and tracks which module
// paths are mid-load for cycle detection. Evaluation and caching of
// module exports belong to the evaluator; the loading bracket lives
// here so a failed nested load still releases its marker.
type Loader struct {
	// BaseDir is the entry file's directory; module paths resolve
	// relative to it.
	BaseDir string

	processing map[string]bool
}

func NewLoader(baseDir string) *Loader {
	return &Loader{
		BaseDir:    baseDir,
		processing: make(map[string]bool),
	}
}

// Begin marks a module path as loading. It fails when the path is
// already mid-load, which means the import graph has a cycle.
func (l *Loader) Begin(modulePath string) error {
	if l.processing[modulePath] {
		return fmt.Errorf("Import cycle detected involving module '%s'", modulePath)
	}
	l.processing[modulePath] = true
	return nil
}

// End releases the loading marker. Callers defer it right after a
// successful Begin so error paths cannot leak a false cycle.
func (l *Loader) End(modulePath string) {
	delete(l.processing, modulePath)
}

// Resolve joins the module path to the base directory and appends the
// source extension.
func (l *Loader) Resolve(modulePath string) (string, error) {
	path := filepath.Join(l.BaseDir, modulePath+config.SourceFileExt)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("Module file not found: %s (resolved from '%s')", path, modulePath)
	}
	return path, nil
}

// Parse reads and parses a resolved module file.
func (l *Loader) Parse(filePath string) (*ast.Program, *diagnostics.Error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, diagnostics.NewIoError(fmt.Sprintf("Failed to read module file '%s': %v", filePath, err))
	}

	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).
		Run(&pipeline.PipelineContext{FilePath: filePath, SourceCode: string(source)})
	if ctx.Failed() {
		return nil, ctx.FirstError()
	}
	return ctx.AstRoot, nil
}
