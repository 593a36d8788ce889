package parser

import (
	"strings"

	"github.com/fiplang/fip/internal/ast"
	"github.com/fiplang/fip/internal/diagnostics"
	"github.com/fiplang/fip/internal/lexer"
	"github.com/fiplang/fip/internal/token"
)

// parseStringTemplate splits a string literal into text and
// interpolation segments. Each `<...>` span is re-lexed and re-parsed
// as a standalone expression that must consume all of its tokens.
func (p *Parser) parseStringTemplate(strTok token.Token) ([]ast.TemplateSegment, *diagnostics.Error) {
	raw := strTok.Literal
	var segments []ast.TemplateSegment
	var current strings.Builder

	for i := 0; i < len(raw); {
		ch := raw[i]
		if ch != '<' {
			current.WriteByte(ch)
			i++
			continue
		}

		if current.Len() > 0 {
			segments = append(segments, ast.TemplateSegment{Text: current.String()})
			current.Reset()
		}

		end := strings.IndexByte(raw[i+1:], '>')
		if end == -1 {
			return nil, p.errorAt(strTok, "unterminated interpolation in string literal")
		}
		inner := strings.TrimSpace(raw[i+1 : i+1+end])
		expr, err := p.parseTemplateExpression(inner, strTok)
		if err != nil {
			return nil, err
		}
		segments = append(segments, ast.TemplateSegment{Expr: expr})
		i += end + 2
	}

	if current.Len() > 0 {
		segments = append(segments, ast.TemplateSegment{Text: current.String()})
	}
	return segments, nil
}

func (p *Parser) parseTemplateExpression(src string, strTok token.Token) (ast.Expression, *diagnostics.Error) {
	if src == "" {
		return nil, p.errorAt(strTok, "interpolation expression cannot be empty")
	}
	tokens, lexErr := lexer.Lex(src)
	if lexErr != nil {
		err := p.errorAt(strTok, lexErr.Message)
		return nil, err
	}
	sub := New(tokens, p.file)
	expr, err := sub.parseExpression()
	if err != nil {
		err.Line = strTok.Line
		err.Column = strTok.Column
		return nil, err
	}
	sub.skipNewlines()
	if !sub.isAtEnd() {
		return nil, p.errorAt(strTok, "unexpected tokens after interpolation expression")
	}
	return expr, nil
}
