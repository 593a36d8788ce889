package token

type TokenType string

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"
	NEWLINE = "NEWLINE"

	IDENT  = "IDENT"  // kebab-case identifier, optional trailing ! or ?
	NUMBER = "NUMBER" // 64-bit signed integer literal
	STRING = "STRING" // string literal, template spans resolved by the parser

	COLON  = ":"
	COMMA  = ","
	DOT    = "."
	SPREAD = "..."

	LPAREN   = "("
	RPAREN   = ")"
	LBRACKET = "["
	RBRACKET = "]"
	LBRACE   = "{"
	RBRACE   = "}"

	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"

	EQ     = "="
	NOT_EQ = "!="
	LT     = "<"
	LTE    = "<="
	GT     = ">"
	GTE    = ">="

	AMPERSAND = "&"
	PIPE      = "|"

	BANG     = "!"
	QUESTION = "?"

	TRUE  = "TRUE"
	FALSE = "FALSE"
	NULL  = "NULL"
)

var keywords = map[string]TokenType{
	"true":  TRUE,
	"false": FALSE,
	"null":  NULL,
}

// LookupIdent returns the keyword type for ident, or IDENT.
// "use", "export", "as" and "from" stay plain identifiers; the parser
// recognizes them by position so they remain usable as binding names.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
