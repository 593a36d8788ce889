package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/fiplang/fip/internal/diagnostics"
	"github.com/fiplang/fip/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
	err          *diagnostics.Error
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Lex tokenizes the whole input eagerly, ending with an EOF token.
// On a lexical error it returns the tokens read so far and the error.
func Lex(input string) ([]token.Token, *diagnostics.Error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if l.err != nil {
			return tokens, l.err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	line, column := l.line, l.column

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Literal: "", Line: line, Column: column}
	case '\n':
		l.readChar()
		return token.Token{Type: token.NEWLINE, Literal: "\n", Line: line, Column: column}
	case ':':
		return l.single(token.COLON, line, column)
	case ',':
		return l.single(token.COMMA, line, column)
	case '(':
		return l.single(token.LPAREN, line, column)
	case ')':
		return l.single(token.RPAREN, line, column)
	case '[':
		return l.single(token.LBRACKET, line, column)
	case ']':
		return l.single(token.RBRACKET, line, column)
	case '{':
		return l.single(token.LBRACE, line, column)
	case '}':
		return l.single(token.RBRACE, line, column)
	case '+':
		return l.single(token.PLUS, line, column)
	case '-':
		return l.single(token.MINUS, line, column)
	case '*':
		return l.single(token.ASTERISK, line, column)
	case '/':
		if l.peekChar() == '/' {
			l.skipComment()
			return l.NextToken()
		}
		return l.single(token.SLASH, line, column)
	case '&':
		return l.single(token.AMPERSAND, line, column)
	case '|':
		return l.single(token.PIPE, line, column)
	case '=':
		return l.single(token.EQ, line, column)
	case '≠':
		l.readChar()
		return token.Token{Type: token.NOT_EQ, Literal: "!=", Line: line, Column: column}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.NOT_EQ, Literal: "!=", Line: line, Column: column}
		}
		return l.single(token.BANG, line, column)
	case '?':
		return l.single(token.QUESTION, line, column)
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.LTE, Literal: "<=", Line: line, Column: column}
		}
		return l.single(token.LT, line, column)
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.GTE, Literal: ">=", Line: line, Column: column}
		}
		return l.single(token.GT, line, column)
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			if l.peekChar() != '.' {
				return l.fail("unexpected '..'", line, column)
			}
			l.readChar()
			l.readChar()
			return token.Token{Type: token.SPREAD, Literal: "...", Line: line, Column: column}
		}
		return l.single(token.DOT, line, column)
	case '"':
		return l.readString(line, column)
	default:
		if unicode.IsLetter(l.ch) || l.ch == '_' {
			return l.readIdentifier(line, column)
		}
		if unicode.IsDigit(l.ch) {
			return l.readNumber(line, column)
		}
		return l.fail(fmt.Sprintf("unexpected character %q", l.ch), line, column)
	}
}

func (l *Lexer) single(t token.TokenType, line, column int) token.Token {
	literal := string(l.ch)
	l.readChar()
	return token.Token{Type: t, Literal: literal, Line: line, Column: column}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier(line, column int) token.Token {
	start := l.position
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' || l.ch == '-' {
		l.readChar()
	}
	// A directly attached ! or ? belongs to the name (log!, defined?).
	if l.ch == '!' || l.ch == '?' {
		l.readChar()
	}
	literal := l.input[start:l.position]
	return token.Token{Type: token.LookupIdent(literal), Literal: literal, Line: line, Column: column}
}

func (l *Lexer) readNumber(line, column int) token.Token {
	start := l.position
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	return token.Token{Type: token.NUMBER, Literal: l.input[start:l.position], Line: line, Column: column}
}

func (l *Lexer) readString(line, column int) token.Token {
	l.readChar() // opening quote
	var out []rune
	for {
		switch l.ch {
		case '"':
			l.readChar()
			return token.Token{Type: token.STRING, Literal: string(out), Line: line, Column: column}
		case 0:
			return l.fail("unterminated string literal", line, column)
		case '\\':
			l.readChar()
			switch l.ch {
			case '"':
				out = append(out, '"')
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '\\':
				out = append(out, '\\')
			case 0:
				return l.fail("unterminated escape sequence in string", l.line, l.column)
			default:
				return l.fail(fmt.Sprintf("unsupported escape sequence '\\%c'", l.ch), l.line, l.column)
			}
			l.readChar()
		default:
			out = append(out, l.ch)
			l.readChar()
		}
	}
}

func (l *Lexer) fail(message string, line, column int) token.Token {
	if l.err == nil {
		l.err = diagnostics.NewError("L001", token.Token{Line: line, Column: column}, message)
	}
	return token.Token{Type: token.ILLEGAL, Literal: "", Line: line, Column: column}
}
