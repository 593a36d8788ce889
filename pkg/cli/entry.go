package cli

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/fiplang/fip/internal/ast"
	"github.com/fiplang/fip/internal/config"
	"github.com/fiplang/fip/internal/diagnostics"
	"github.com/fiplang/fip/internal/evaluator"
	"github.com/fiplang/fip/internal/lexer"
	"github.com/fiplang/fip/internal/linter"
	"github.com/fiplang/fip/internal/modules"
	"github.com/fiplang/fip/internal/parser"
	"github.com/fiplang/fip/internal/pipeline"
	"github.com/fiplang/fip/internal/prettyprinter"
)

// Version is stamped at build time:
// -ldflags "-X github.com/fiplang/fip/pkg/cli.Version=v1.2.3"
var Version = "dev"

// Run dispatches a CLI invocation and returns the process exit code.
func Run(args []string) int {
	if len(args) < 1 {
		printUsage(os.Stderr)
		return 1
	}

	switch args[0] {
	case "help", "--help", "-h":
		printUsage(os.Stderr)
		return 0
	case "version", "--version", "-v":
		fmt.Printf("fip %s\n", Version)
		return 0
	case "run":
		if len(args) >= 2 {
			return runCommand(args[1])
		}
		// Fall back to the project file's entry when no script is given.
		if project, err := config.LoadProject("."); err == nil && project.Entry != "" {
			return runCommand(project.Entry)
		}
		errorf("'run' command requires a file argument")
		fmt.Fprintln(os.Stderr, "Usage: fip run <file.fip>")
		return 1
	case "format":
		if len(args) < 2 {
			errorf("'format' command requires a file or directory argument")
			fmt.Fprintln(os.Stderr, "Usage: fip format <file.fip|directory> [--write]")
			return 1
		}
		write := false
		for _, arg := range args[2:] {
			if arg == "--write" || arg == "-w" {
				write = true
			}
		}
		return formatCommand(args[1], write)
	case "lint":
		if len(args) < 2 {
			errorf("'lint' command requires a file or directory argument")
			fmt.Fprintln(os.Stderr, "Usage: fip lint <file.fip|directory>")
			return 1
		}
		return lintCommand(args[1])
	default:
		errorf("Unknown command '%s'", args[0])
		printUsage(os.Stderr)
		return 1
	}
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "FIP (Functional Intuitive Programming) language tool")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  fip run <file.fip>        Run a FIP program")
	fmt.Fprintln(out, "  fip format <file.fip>     Format a FIP source file (prints to stdout)")
	fmt.Fprintln(out, "  fip format <file.fip> -w  Format a FIP source file (writes to file)")
	fmt.Fprintln(out, "  fip format <directory> -w Format all .fip files recursively in directory")
	fmt.Fprintln(out, "  fip lint <file.fip>       Lint a FIP source file")
	fmt.Fprintln(out, "  fip lint <directory>      Lint all .fip files recursively in directory")
	fmt.Fprintln(out, "  fip help                  Show this help message")
	fmt.Fprintln(out, "  fip version               Show version information")
}

// errorf prints an error line to stderr, in red when attached to a
// terminal.
func errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if _, noColor := os.LookupEnv("NO_COLOR"); !noColor &&
		(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) {
		fmt.Fprintf(os.Stderr, "\033[31mError: %s\033[0m\n", msg)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
}

func runCommand(file string) int {
	if _, err := os.Stat(file); err != nil {
		errorf("Source file '%s' not found", file)
		return 1
	}

	source, err := os.ReadFile(file)
	if err != nil {
		errorf("Failed to read file: %v", err)
		return 1
	}

	program, diag := parse(file, string(source))
	if diag != nil {
		errorf("%s", diag.Error())
		return 1
	}

	entryDir := filepath.Dir(file)
	eval := evaluator.New(os.Stdout, modules.NewLoader(entryDir))
	if runtimeErr, ok := eval.EvalProgram(program).(*evaluator.Error); ok {
		errorf("%s", runtimeErr.Message)
		return 1
	}
	return 0
}

func parse(file, source string) (*ast.Program, *diagnostics.Error) {
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).
		Run(&pipeline.PipelineContext{FilePath: file, SourceCode: source})
	if ctx.Failed() {
		return nil, ctx.FirstError()
	}
	return ctx.AstRoot, nil
}

func formatCommand(path string, write bool) int {
	info, err := os.Stat(path)
	if err != nil {
		errorf("Path '%s' does not exist", path)
		return 1
	}

	if info.IsDir() {
		if !write {
			errorf("Cannot format directory without --write flag. Use: fip format <directory> -w")
			return 1
		}
		return formatDirectory(path)
	}
	return formatFile(path, write)
}

func formatFile(path string, write bool) int {
	source, err := os.ReadFile(path)
	if err != nil {
		errorf("Failed to read file: %v", err)
		return 1
	}

	program, diag := parse(path, string(source))
	if diag != nil {
		errorf("Parse error: %s", diag.Error())
		return 1
	}

	printer := prettyprinter.NewCodePrinter()
	program.Accept(printer)
	formatted := printer.String()

	if !write {
		fmt.Print(formatted)
		return 0
	}
	if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
		errorf("Failed to write file: %v", err)
		return 1
	}
	fmt.Printf("Formatted: %s\n", path)
	return 0
}

func formatDirectory(dir string) int {
	filesFormatted := 0
	failed := 0

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, config.SourceFileExt) {
			return nil
		}
		if formatFile(path, true) == 0 {
			filesFormatted++
		} else {
			failed++
		}
		return nil
	})
	if err != nil {
		errorf("%v", err)
		return 1
	}

	if filesFormatted > 0 {
		fmt.Printf("Formatted %d file(s)\n", filesFormatted)
	}
	if failed > 0 {
		errorf("Failed to format %d file(s)", failed)
		return 1
	}
	return 0
}

func lintCommand(path string) int {
	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	project, err := config.LoadProject(dir)
	if err != nil {
		errorf("%v", err)
		return 1
	}

	runner := linter.NewRunner(os.Stdout, project.Lint)
	hasErrors, err := runner.Run(path)
	if err != nil {
		errorf("%v", err)
		return 1
	}
	if hasErrors {
		errorf("Linting found errors")
		return 1
	}
	return 0
}
