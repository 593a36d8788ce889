package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fiplang/fip/internal/ast"
	"github.com/fiplang/fip/internal/diagnostics"
	"github.com/fiplang/fip/internal/token"
)

// Parser consumes a full token stream and produces a validated Program.
// Disambiguation (pattern vs. expression, function vs. assignment,
// object pattern vs. object literal) works by saving the token position,
// attempting a parse, and restoring the position when the attempt does
// not match.
type Parser struct {
	tokens  []token.Token
	current int
	file    string
}

func New(tokens []token.Token, file string) *Parser {
	if len(tokens) == 0 {
		tokens = []token.Token{{Type: token.EOF}}
	}
	return &Parser{tokens: tokens, file: file}
}

// ParseProgram parses all statements and runs binding validation.
func (p *Parser) ParseProgram() (*ast.Program, *diagnostics.Error) {
	program := &ast.Program{File: p.file}

	p.skipNewlines()
	for !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
		p.skipNewlines()
	}

	if err := p.validateProgram(program); err != nil {
		return nil, err
	}
	return program, nil
}

func (p *Parser) parseStatement() (ast.Statement, *diagnostics.Error) {
	p.skipNewlines()
	start := p.current

	if p.currentType() == token.IDENT {
		switch p.currentToken().Literal {
		case "use":
			return p.parseUseStatement()
		case "export":
			return p.parseExportStatement()
		}
	}

	pattern := p.tryParsePattern()
	if pattern == nil {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Token: p.tokens[start], Expression: expr}, nil
	}

	if p.currentType() != token.COLON {
		p.current = start
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Token: p.tokens[start], Expression: expr}, nil
	}

	p.advance() // ':'
	p.skipNewlines()
	exprStart := p.current

	// A definition `name: (params) { body }` only counts as a function
	// when a '{' follows the parameter list; anything else re-parses the
	// right-hand side as a plain expression.
	if ident, ok := pattern.(*ast.IdentifierPattern); ok {
		if fn, err := p.tryParseFunction(ident, exprStart); fn != nil || err != nil {
			return fn, err
		}
	}

	p.current = exprStart
	p.skipNewlines()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentStatement{Token: p.tokens[start], Pattern: pattern, Value: expr}, nil
}

// tryParseFunction attempts the function form after `name:`. It returns
// (nil, nil) when the tokens are not a function definition, leaving the
// caller to restore the position.
func (p *Parser) tryParseFunction(name *ast.IdentifierPattern, exprStart int) (ast.Statement, *diagnostics.Error) {
	if p.currentType() != token.LPAREN {
		return nil, nil
	}
	next := p.peekNonNewlineType(p.current + 1)
	if next != token.IDENT && next != token.RPAREN {
		return nil, nil
	}

	paramsStart := p.current
	p.advance() // '('
	p.skipNewlines()
	params, err := p.parseParameterList()
	if err != nil {
		if p.current != paramsStart {
			return nil, err
		}
		return nil, nil
	}
	p.skipNewlines()
	if err := p.expect(token.RPAREN, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if p.currentType() != token.LBRACE {
		return nil, nil
	}

	braceTok := p.currentToken()
	p.advance() // '{'
	body, err := p.parseBlockContents()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RBRACE, "expected '}' after function body"); err != nil {
		return nil, err
	}

	return &ast.FunctionStatement{
		Token:  name.Token,
		Name:   name.Value,
		Params: params,
		Body:   &ast.BlockExpression{Token: braceTok, Expressions: body},
		Impure: strings.HasSuffix(name.Value, "!"),
	}, nil
}

// tryParsePattern speculatively parses a destructuring pattern. It
// returns nil with the position fully restored when the tokens do not
// form a pattern.
func (p *Parser) tryParsePattern() ast.Pattern {
	switch p.currentType() {
	case token.LBRACE:
		return p.tryParseObjectPattern()
	case token.LBRACKET:
		return p.tryParseListPattern()
	case token.IDENT:
		tok := p.currentToken()
		p.advance()
		return &ast.IdentifierPattern{Token: tok, Value: tok.Literal}
	}
	return nil
}

func (p *Parser) tryParseObjectPattern() ast.Pattern {
	bracePos := p.current
	braceTok := p.currentToken()
	p.advance() // '{'
	p.skipNewlines()

	var fields []ast.ObjectPatternField

	if p.currentType() == token.RBRACE {
		p.advance()
		return &ast.ObjectPattern{Token: braceTok, Fields: fields}
	}

	for {
		fieldStart := p.current
		if p.currentType() != token.IDENT {
			p.current = bracePos
			return nil
		}
		fieldName := p.currentToken().Literal
		p.advance()
		p.skipNewlines()

		if p.currentType() == token.COLON {
			p.advance()
			p.skipNewlines()
			nested := p.tryParsePattern()
			if nested == nil {
				// A literal value after the colon means this brace group
				// is an object expression, not a pattern.
				switch p.currentType() {
				case token.STRING, token.NUMBER, token.TRUE, token.FALSE,
					token.NULL, token.LPAREN, token.LBRACKET:
					p.current = bracePos
					return nil
				}
				p.current = fieldStart
				break
			}
			fields = append(fields, ast.ObjectPatternField{Name: fieldName, Pattern: nested})
		} else {
			fields = append(fields, ast.ObjectPatternField{Name: fieldName})
		}

		p.skipNewlines()
		if p.currentType() == token.COMMA {
			p.advance()
			p.skipNewlines()
		} else {
			break
		}
	}

	if p.currentType() == token.RBRACE {
		p.advance()
		return &ast.ObjectPattern{Token: braceTok, Fields: fields}
	}
	p.current = bracePos
	return nil
}

func (p *Parser) tryParseListPattern() ast.Pattern {
	bracketPos := p.current
	bracketTok := p.currentToken()
	p.advance() // '['
	p.skipNewlines()

	var elements []ast.Pattern

	if p.currentType() == token.RBRACKET {
		p.advance()
		return &ast.ListPattern{Token: bracketTok, Elements: elements}
	}

	for {
		el := p.tryParsePattern()
		if el == nil {
			p.current = bracketPos
			return nil
		}
		elements = append(elements, el)
		p.skipNewlines()
		if p.currentType() == token.COMMA {
			p.advance()
			p.skipNewlines()
		} else {
			break
		}
	}

	if p.currentType() == token.RBRACKET {
		p.advance()
		return &ast.ListPattern{Token: bracketTok, Elements: elements}
	}
	p.current = bracketPos
	return nil
}

func (p *Parser) parseParameterList() ([]string, *diagnostics.Error) {
	var params []string
	p.skipNewlines()
	if p.currentType() == token.RPAREN {
		return params, nil
	}

	for {
		if p.currentType() != token.IDENT {
			return nil, p.errorHere("expected parameter name")
		}
		name := p.currentToken().Literal
		if strings.HasSuffix(name, "!") {
			return nil, p.errorHere("parameter names cannot end with '!'")
		}
		if err := p.validateKebabCase(name, p.currentToken()); err != nil {
			return nil, err
		}
		p.advance()
		params = append(params, name)

		p.skipNewlines()
		if p.currentType() == token.COMMA {
			p.advance()
			p.skipNewlines()
		} else {
			break
		}
	}
	return params, nil
}

func (p *Parser) parseExpression() (ast.Expression, *diagnostics.Error) {
	p.skipNewlines()
	return p.parseBinaryExpression(0)
}

func (p *Parser) parseBinaryExpression(minPrecedence int) (ast.Expression, *diagnostics.Error) {
	left, err := p.parseUnaryExpression()
	if err != nil {
		return nil, err
	}

	for {
		p.skipNewlines()
		precedence, ok := p.currentPrecedence()
		if !ok || precedence < minPrecedence {
			break
		}

		opTok := p.currentToken()
		p.advance()
		right, err := p.parseBinaryExpression(precedence + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{
			Token:    opTok,
			Left:     left,
			Operator: opTok.Literal,
			Right:    right,
		}
	}

	return left, nil
}

// currentPrecedence bands, low to high: | < & < comparisons < additive
// < multiplicative. All operators are left-associative.
func (p *Parser) currentPrecedence() (int, bool) {
	switch p.currentType() {
	case token.PIPE:
		return 0, true
	case token.AMPERSAND:
		return 1, true
	case token.EQ, token.NOT_EQ, token.LT, token.LTE, token.GT, token.GTE:
		return 2, true
	case token.PLUS, token.MINUS:
		return 3, true
	case token.ASTERISK, token.SLASH:
		return 4, true
	}
	return 0, false
}

func (p *Parser) parseUnaryExpression() (ast.Expression, *diagnostics.Error) {
	p.skipNewlines()
	if p.currentType() == token.MINUS {
		minusTok := p.currentToken()
		p.advance()
		expr, err := p.parseUnaryExpression()
		if err != nil {
			return nil, err
		}
		// Unary minus desugars to subtraction from zero.
		return &ast.BinaryExpression{
			Token:    minusTok,
			Left:     &ast.NumberLiteral{Token: minusTok, Value: 0},
			Operator: "-",
			Right:    expr,
		}, nil
	}
	return p.parseCallExpression()
}

func (p *Parser) parseCallExpression() (ast.Expression, *diagnostics.Error) {
	expr, err := p.parsePrimaryExpression()
	if err != nil {
		return nil, err
	}

	// Postfix call and property chains bind left-to-right and must stay
	// on the same line as their receiver.
	for {
		switch p.currentType() {
		case token.LPAREN:
			callTok := p.currentToken()
			p.advance()
			p.skipNewlines()
			args, err := p.parseArgumentList()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RPAREN, "expected ')' after arguments"); err != nil {
				return nil, err
			}
			expr = &ast.CallExpression{Token: callTok, Callee: expr, Args: args}
		case token.DOT:
			dotTok := p.currentToken()
			p.advance()
			p.skipNewlines()
			var property string
			switch p.currentType() {
			case token.IDENT:
				property = p.currentToken().Literal
				p.advance()
			case token.NUMBER:
				property = p.currentToken().Literal
				p.advance()
			case token.MINUS:
				return nil, p.errorHere("list indices must be non-negative")
			default:
				return nil, p.errorHere("expected property name or index after '.'")
			}
			expr = &ast.PropertyAccessExpression{Token: dotTok, Object: expr, Property: property}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimaryExpression() (ast.Expression, *diagnostics.Error) {
	tok := p.currentToken()
	switch tok.Type {
	case token.NUMBER:
		value, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorHere(fmt.Sprintf("invalid number literal '%s'", tok.Literal))
		}
		p.advance()
		return &ast.NumberLiteral{Token: tok, Value: value}, nil
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}, nil
	case token.NULL:
		p.advance()
		return &ast.NullLiteral{Token: tok}, nil
	case token.STRING:
		p.advance()
		segments, err := p.parseStringTemplate(tok)
		if err != nil {
			return nil, err
		}
		return &ast.StringLiteral{Token: tok, Segments: segments}, nil
	case token.IDENT:
		p.advance()
		return &ast.Identifier{Token: tok, Value: tok.Literal}, nil
	case token.LBRACE:
		p.advance()
		if obj, err := p.tryParseObject(tok); obj != nil || err != nil {
			return obj, err
		}
		expressions, err := p.parseBlockContents()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RBRACE, "expected '}' after block"); err != nil {
			return nil, err
		}
		return &ast.BlockExpression{Token: tok, Expressions: expressions}, nil
	case token.LBRACKET:
		p.advance()
		elements, err := p.parseListElements()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RBRACKET, "expected ']' after list"); err != nil {
			return nil, err
		}
		return &ast.ListLiteral{Token: tok, Elements: elements}, nil
	case token.LPAREN:
		if lambda, err := p.tryParseLambda(tok); lambda != nil || err != nil {
			return lambda, err
		}
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errorHere(fmt.Sprintf("unexpected token '%s' in expression", tok.Literal))
	}
}

func (p *Parser) parseArgumentList() ([]ast.Expression, *diagnostics.Error) {
	var args []ast.Expression
	p.skipNewlines()
	if p.currentType() == token.RPAREN {
		return args, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipNewlines()
		if p.currentType() == token.COMMA {
			p.advance()
			p.skipNewlines()
		} else {
			break
		}
	}
	return args, nil
}

func (p *Parser) parseListElements() ([]ast.Expression, *diagnostics.Error) {
	var elements []ast.Expression
	p.skipNewlines()
	if p.currentType() == token.RBRACKET {
		return elements, nil
	}

	for {
		if p.currentType() == token.SPREAD {
			spreadTok := p.currentToken()
			p.advance()
			p.skipNewlines()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, &ast.SpreadExpression{Token: spreadTok, Value: expr})
		} else {
			el, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
		}
		p.skipNewlines()
		if p.currentType() == token.COMMA {
			p.advance()
			p.skipNewlines()
		} else {
			break
		}
	}
	return elements, nil
}

// tryParseLambda attempts `(params) [!|?] { body }`. Returns (nil, nil)
// with the position restored when the parenthesized group is not a
// lambda, so the caller can parse it as a grouped expression.
func (p *Parser) tryParseLambda(parenTok token.Token) (ast.Expression, *diagnostics.Error) {
	start := p.current
	p.advance() // '('
	p.skipNewlines()

	var params []string
	if p.currentType() == token.RPAREN {
		p.advance()
	} else {
		for {
			if p.currentType() != token.IDENT {
				p.current = start
				return nil, nil
			}
			name := p.currentToken().Literal
			if strings.HasSuffix(name, "!") {
				return nil, p.errorHere("parameter names cannot end with '!'")
			}
			if err := p.validateKebabCase(name, p.currentToken()); err != nil {
				return nil, err
			}
			params = append(params, name)
			p.advance()
			p.skipNewlines()
			if p.currentType() == token.COMMA {
				p.advance()
				p.skipNewlines()
			} else {
				break
			}
		}
		if p.currentType() != token.RPAREN {
			p.current = start
			return nil, nil
		}
		p.advance()
	}

	p.skipNewlines()

	impure := false
	switch p.currentType() {
	case token.BANG:
		impure = true
		p.advance()
		p.skipNewlines()
	case token.QUESTION:
		// Boolean marker is syntax only; the return contract is
		// enforced at call time.
		p.advance()
		p.skipNewlines()
	}

	if p.currentType() != token.LBRACE {
		p.current = start
		return nil, nil
	}
	braceTok := p.currentToken()
	p.advance()
	body, err := p.parseBlockContents()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RBRACE, "expected '}' after block"); err != nil {
		return nil, err
	}

	return &ast.LambdaExpression{
		Token:  parenTok,
		Params: params,
		Body:   &ast.BlockExpression{Token: braceTok, Expressions: body},
		Impure: impure,
	}, nil
}

// tryParseObject attempts an object literal after '{' was consumed.
// Returns (nil, nil) with the position restored to just after the brace
// when the contents are a block instead.
func (p *Parser) tryParseObject(braceTok token.Token) (ast.Expression, *diagnostics.Error) {
	start := p.current
	p.skipNewlines()

	if p.currentType() == token.RBRACE {
		p.advance()
		return &ast.ObjectLiteral{Token: braceTok}, nil
	}

	var fields []ast.ObjectField
	seen := map[string]bool{}

	for {
		if p.currentType() == token.SPREAD {
			spreadTok := p.currentToken()
			p.advance()
			p.skipNewlines()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.ObjectField{
				Value: &ast.SpreadExpression{Token: spreadTok, Value: expr},
			})
			p.skipNewlines()
			if p.currentType() == token.COMMA {
				p.advance()
				p.skipNewlines()
				continue
			}
			break
		}

		if p.currentType() != token.IDENT {
			p.current = start
			return nil, nil
		}
		nameTok := p.currentToken()
		name := nameTok.Literal
		p.advance()

		p.skipNewlines()
		if p.currentType() != token.COLON {
			p.current = start
			return nil, nil
		}
		p.advance()
		p.skipNewlines()
		if seen[name] {
			return nil, p.errorAt(nameTok, fmt.Sprintf("duplicate key '%s' in object literal", name))
		}
		seen[name] = true
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.ObjectField{Name: name, Value: value})
		p.skipNewlines()

		if p.currentType() == token.COMMA {
			p.advance()
			p.skipNewlines()
			if p.currentType() == token.RBRACE {
				break
			}
			continue
		}
		break
	}

	if p.currentType() != token.RBRACE {
		p.current = start
		return nil, nil
	}
	p.advance()
	return &ast.ObjectLiteral{Token: braceTok, Fields: fields}, nil
}

func (p *Parser) parseBlockContents() ([]ast.Expression, *diagnostics.Error) {
	var expressions []ast.Expression
	p.skipNewlines()

	for p.currentType() != token.RBRACE {
		if p.isAtEnd() {
			return nil, p.errorHere("unterminated block expression")
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, expr)
		p.skipNewlines()
	}
	return expressions, nil
}

func (p *Parser) parseUseStatement() (ast.Statement, *diagnostics.Error) {
	useTok := p.currentToken()
	p.advance() // 'use'
	p.skipNewlines()

	// Selective: use {a, b} from "path"
	if p.currentType() == token.LBRACE {
		p.advance()
		p.skipNewlines()
		var names []string
		for {
			name, err := p.consumeIdentifier("expected identifier in selective import")
			if err != nil {
				return nil, err
			}
			names = append(names, name)
			p.skipNewlines()
			if p.currentType() == token.COMMA {
				p.advance()
				p.skipNewlines()
			} else {
				break
			}
		}
		if err := p.expect(token.RBRACE, "expected '}' after selective import list"); err != nil {
			return nil, err
		}
		p.skipNewlines()
		if err := p.consumeKeyword("from", "expected 'from' after import list"); err != nil {
			return nil, err
		}
		p.skipNewlines()
		path, err := p.parseModulePath()
		if err != nil {
			return nil, err
		}
		return &ast.UseStatement{Token: useTok, Kind: ast.UseSelective, Names: names, ModulePath: path}, nil
	}

	firstName, err := p.consumeIdentifier("expected identifier after 'use'")
	if err != nil {
		return nil, err
	}
	p.skipNewlines()

	// Namespace: use name as alias from "path"
	if p.currentType() == token.IDENT && p.currentToken().Literal == "as" {
		p.advance()
		p.skipNewlines()
		alias, err := p.consumeIdentifier("expected alias name after 'as'")
		if err != nil {
			return nil, err
		}
		p.skipNewlines()
		if err := p.consumeKeyword("from", "expected 'from' after alias"); err != nil {
			return nil, err
		}
		p.skipNewlines()
		path, err := p.parseModulePath()
		if err != nil {
			return nil, err
		}
		return &ast.UseStatement{Token: useTok, Kind: ast.UseNamespace, Name: firstName, Alias: alias, ModulePath: path}, nil
	}

	// Single: use name from "path"
	if err := p.consumeKeyword("from", "expected 'from' after import name"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	path, err := p.parseModulePath()
	if err != nil {
		return nil, err
	}
	return &ast.UseStatement{Token: useTok, Kind: ast.UseSingle, Name: firstName, ModulePath: path}, nil
}

func (p *Parser) parseExportStatement() (ast.Statement, *diagnostics.Error) {
	exportTok := p.currentToken()
	p.advance() // 'export'
	p.skipNewlines()
	name, err := p.consumeIdentifier("expected identifier after 'export'")
	if err != nil {
		return nil, err
	}
	return &ast.ExportStatement{Token: exportTok, Name: name}, nil
}

func (p *Parser) parseModulePath() (string, *diagnostics.Error) {
	if p.currentType() != token.STRING {
		return "", p.errorHere("expected string literal for module path")
	}
	path := p.currentToken().Literal
	p.advance()
	return path, nil
}

func (p *Parser) consumeIdentifier(msg string) (string, *diagnostics.Error) {
	if p.currentType() != token.IDENT {
		return "", p.errorHere(msg)
	}
	name := p.currentToken().Literal
	p.advance()
	return name, nil
}

func (p *Parser) consumeKeyword(keyword, msg string) *diagnostics.Error {
	if p.currentType() != token.IDENT || p.currentToken().Literal != keyword {
		return p.errorHere(msg)
	}
	p.advance()
	return nil
}

func (p *Parser) expect(t token.TokenType, msg string) *diagnostics.Error {
	p.skipNewlines()
	if p.currentType() != t {
		return p.errorHere(msg)
	}
	p.advance()
	return nil
}

func (p *Parser) isAtEnd() bool {
	return p.currentType() == token.EOF
}

func (p *Parser) currentToken() token.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) currentType() token.TokenType {
	return p.currentToken().Type
}

func (p *Parser) advance() {
	if !p.isAtEnd() {
		p.current++
	}
}

func (p *Parser) skipNewlines() {
	for !p.isAtEnd() && p.currentType() == token.NEWLINE {
		p.current++
	}
}

func (p *Parser) peekNonNewlineType(index int) token.TokenType {
	for index < len(p.tokens) {
		if p.tokens[index].Type == token.NEWLINE {
			index++
			continue
		}
		return p.tokens[index].Type
	}
	return token.EOF
}

func (p *Parser) errorHere(msg string) *diagnostics.Error {
	err := diagnostics.NewError("P001", p.currentToken(), msg)
	err.File = p.file
	return err
}

func (p *Parser) errorAt(tok token.Token, msg string) *diagnostics.Error {
	err := diagnostics.NewError("P001", tok, msg)
	err.File = p.file
	return err
}
