package pipeline

import (
	"github.com/fiplang/fip/internal/ast"
	"github.com/fiplang/fip/internal/diagnostics"
	"github.com/fiplang/fip/internal/token"
)

// Processor is a single stage: it reads and extends the shared context.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries a source file through the stages.
type PipelineContext struct {
	FilePath    string
	SourceCode  string
	TokenStream []token.Token
	AstRoot     *ast.Program
	Errors      []*diagnostics.Error
}

// Failed reports whether any stage recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// FirstError returns the first recorded diagnostic, or nil.
func (ctx *PipelineContext) FirstError() *diagnostics.Error {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return ctx.Errors[0]
}
