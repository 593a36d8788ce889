package parser

import (
	"github.com/fiplang/fip/internal/diagnostics"
	"github.com/fiplang/fip/internal/pipeline"
	"github.com/fiplang/fip/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		if len(ctx.Errors) == 0 {
			err := diagnostics.NewError("P000", token.Token{}, "parser: token stream is nil")
			err.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, err)
		}
		return ctx
	}

	parser := New(ctx.TokenStream, ctx.FilePath)
	program, err := parser.ParseProgram()
	if err != nil {
		if err.File == "" {
			err.File = ctx.FilePath
		}
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.AstRoot = program
	return ctx
}
