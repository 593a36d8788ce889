package lexer

import (
	"strings"
	"testing"

	"github.com/fiplang/fip/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `total: 12 + 3 * 4
greet!: (name) { log!(name) }
valid?: (x) { x >= 10 }
items: [1, 2, ...rest]
// a comment
check: a != b & c = d | e ≠ f
point.0
`

	expected := []struct {
		typ     token.TokenType
		literal string
	}{
		{token.IDENT, "total"},
		{token.COLON, ":"},
		{token.NUMBER, "12"},
		{token.PLUS, "+"},
		{token.NUMBER, "3"},
		{token.ASTERISK, "*"},
		{token.NUMBER, "4"},
		{token.NEWLINE, "\n"},

		{token.IDENT, "greet!"},
		{token.COLON, ":"},
		{token.LPAREN, "("},
		{token.IDENT, "name"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.IDENT, "log!"},
		{token.LPAREN, "("},
		{token.IDENT, "name"},
		{token.RPAREN, ")"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\n"},

		{token.IDENT, "valid?"},
		{token.COLON, ":"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.IDENT, "x"},
		{token.GTE, ">="},
		{token.NUMBER, "10"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\n"},

		{token.IDENT, "items"},
		{token.COLON, ":"},
		{token.LBRACKET, "["},
		{token.NUMBER, "1"},
		{token.COMMA, ","},
		{token.NUMBER, "2"},
		{token.COMMA, ","},
		{token.SPREAD, "..."},
		{token.IDENT, "rest"},
		{token.RBRACKET, "]"},
		{token.NEWLINE, "\n"},

		{token.NEWLINE, "\n"},

		{token.IDENT, "check"},
		{token.COLON, ":"},
		{token.IDENT, "a"},
		{token.NOT_EQ, "!="},
		{token.IDENT, "b"},
		{token.AMPERSAND, "&"},
		{token.IDENT, "c"},
		{token.EQ, "="},
		{token.IDENT, "d"},
		{token.PIPE, "|"},
		{token.IDENT, "e"},
		{token.NOT_EQ, "!="},
		{token.IDENT, "f"},
		{token.NEWLINE, "\n"},

		{token.IDENT, "point"},
		{token.DOT, "."},
		{token.NUMBER, "0"},
		{token.NEWLINE, "\n"},

		{token.EOF, ""},
	}

	tokens, err := Lex(input)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	if len(tokens) != len(expected) {
		t.Fatalf("token count = %d, want %d", len(tokens), len(expected))
	}
	for i, want := range expected {
		if tokens[i].Type != want.typ {
			t.Errorf("token[%d] type = %q, want %q (literal %q)", i, tokens[i].Type, want.typ, tokens[i].Literal)
		}
		if tokens[i].Literal != want.literal {
			t.Errorf("token[%d] literal = %q, want %q", i, tokens[i].Literal, want.literal)
		}
	}
}

func TestHyphenatedIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"my-value", "my-value"},
		{"for-each!", "for-each!"},
		{"is-big?", "is-big?"},
		{"a-b", "a-b"},
	}
	for _, tt := range tests {
		tokens, err := Lex(tt.input)
		if err != nil {
			t.Fatalf("Lex(%q) returned error: %v", tt.input, err)
		}
		if tokens[0].Type != token.IDENT || tokens[0].Literal != tt.want {
			t.Errorf("Lex(%q) first token = %q %q, want IDENT %q",
				tt.input, tokens[0].Type, tokens[0].Literal, tt.want)
		}
		if tokens[1].Type != token.EOF {
			t.Errorf("Lex(%q) expected single identifier before EOF, got %q", tt.input, tokens[1].Literal)
		}
	}
}

func TestKeywordsAndContextualNames(t *testing.T) {
	tokens, err := Lex("true false null use export as from")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	wantTypes := []token.TokenType{
		token.TRUE, token.FALSE, token.NULL,
		token.IDENT, token.IDENT, token.IDENT, token.IDENT,
		token.EOF,
	}
	for i, want := range wantTypes {
		if tokens[i].Type != want {
			t.Errorf("token[%d] type = %q, want %q", i, tokens[i].Type, want)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	tokens, err := Lex(`"line\n\ttab \"quoted\" back\\slash\r"`)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	want := "line\n\ttab \"quoted\" back\\slash\r"
	if tokens[0].Type != token.STRING || tokens[0].Literal != want {
		t.Errorf("string literal = %q, want %q", tokens[0].Literal, want)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"unterminated string", `x: "oops`, "unterminated string literal"},
		{"unsupported escape", `x: "\q"`, "unsupported escape sequence"},
		{"double dot", "x..y", "unexpected '..'"},
		{"stray character", "x: 1 @ 2", "unexpected character"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.input)
			if err == nil {
				t.Fatalf("Lex(%q) expected error", tt.input)
			}
			if !strings.Contains(err.Message, tt.wantMsg) {
				t.Errorf("Lex(%q) error = %q, want substring %q", tt.input, err.Message, tt.wantMsg)
			}
		})
	}
}

func TestTokenPositions(t *testing.T) {
	tokens, err := Lex("a: 1\nbb: 22")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	if tokens[0].Line != 1 || tokens[0].Column != 1 {
		t.Errorf("token 'a' at %d:%d, want 1:1", tokens[0].Line, tokens[0].Column)
	}
	// tokens: a : 1 NEWLINE bb : 22 EOF
	bb := tokens[4]
	if bb.Literal != "bb" {
		t.Fatalf("token[4] = %q, want 'bb'", bb.Literal)
	}
	if bb.Line != 2 || bb.Column != 1 {
		t.Errorf("token 'bb' at %d:%d, want 2:1", bb.Line, bb.Column)
	}
}
