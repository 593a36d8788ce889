package linter

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/fiplang/fip/internal/config"
	"github.com/fiplang/fip/internal/lexer"
	"github.com/fiplang/fip/internal/parser"
	"github.com/fiplang/fip/internal/pipeline"
)

const (
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

// Runner lints files or directory trees and prints one status line per
// file, error rows indented below it.
type Runner struct {
	Out   io.Writer
	Cfg   config.Lint
	color bool
}

func NewRunner(out io.Writer, lintCfg config.Lint) *Runner {
	return &Runner{
		Out:   out,
		Cfg:   lintCfg,
		color: wantColor(out),
	}
}

func wantColor(out io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Runner) paint(color, s string) string {
	if !r.color {
		return s
	}
	return color + s + ansiReset
}

// Run lints a file or every source file under a directory. It reports
// whether any file produced errors.
func (r *Runner) Run(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("Path '%s' does not exist", path)
	}
	if info.IsDir() {
		return r.runDirectory(path)
	}
	return r.lintFile(path) > 0, nil
}

func (r *Runner) runDirectory(dir string) (bool, error) {
	hasErrors := false
	filesLinted := 0

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, config.SourceFileExt) {
			return nil
		}
		if r.Cfg.Excluded(path) {
			return nil
		}
		filesLinted++
		if r.lintFile(path) > 0 {
			hasErrors = true
		}
		return nil
	})
	if err != nil {
		return hasErrors, err
	}
	if filesLinted == 0 {
		return false, fmt.Errorf("No %s files found in %s", config.SourceFileExt, dir)
	}
	return hasErrors, nil
}

// lintFile lints one file and prints its status. Read, lex and parse
// failures count as a single error finding so a broken file still gets
// the same report shape.
func (r *Runner) lintFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		r.printStatus(path, []Finding{{
			Line:     1,
			Column:   1,
			Message:  fmt.Sprintf("Error reading file: %v", err),
			Severity: SeverityError,
		}})
		return 1
	}

	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).
		Run(&pipeline.PipelineContext{FilePath: path, SourceCode: string(source)})
	if ctx.Failed() {
		var findings []Finding
		for _, diag := range ctx.Errors {
			findings = append(findings, Finding{
				Line:     diag.Line,
				Column:   diag.Column,
				Message:  diag.Message,
				Severity: SeverityError,
			})
		}
		r.printStatus(path, findings)
		return len(findings)
	}

	findings := New().Lint(ctx.AstRoot)
	r.printStatus(path, findings)
	return ErrorCount(findings)
}

func (r *Runner) printStatus(path string, findings []Finding) {
	if ErrorCount(findings) == 0 {
		fmt.Fprintf(r.Out, "%s%s\n", r.paint(ansiGreen, "✓ ok "), path)
	} else {
		fmt.Fprintf(r.Out, "%s%s\n", r.paint(ansiRed, "! "), path)
		for _, f := range findings {
			if f.Severity != SeverityError {
				continue
			}
			fmt.Fprintf(r.Out, "  row: %d: %s\n", f.Line, f.Message)
		}
	}
	for _, f := range findings {
		if f.Severity != SeverityWarning {
			continue
		}
		fmt.Fprintf(r.Out, "  row: %d: warning: %s\n", f.Line, f.Message)
	}
}
