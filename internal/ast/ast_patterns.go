package ast

import (
	"github.com/fiplang/fip/internal/token"
)

// IdentifierPattern binds a single name.
type IdentifierPattern struct {
	Token token.Token
	Value string
}

func (ip *IdentifierPattern) patternNode()         {}
func (ip *IdentifierPattern) TokenLiteral() string { return ip.Token.Literal }
func (ip *IdentifierPattern) GetToken() token.Token {
	if ip == nil {
		return token.Token{}
	}
	return ip.Token
}
func (ip *IdentifierPattern) Accept(v Visitor) { v.VisitIdentifierPattern(ip) }

// ListPattern destructures a list positionally: `[a, b]: expr`.
type ListPattern struct {
	Token    token.Token
	Elements []Pattern
}

func (lp *ListPattern) patternNode()         {}
func (lp *ListPattern) TokenLiteral() string { return lp.Token.Literal }
func (lp *ListPattern) GetToken() token.Token {
	if lp == nil {
		return token.Token{}
	}
	return lp.Token
}
func (lp *ListPattern) Accept(v Visitor) { v.VisitListPattern(lp) }

// ObjectPatternField is one entry of an object pattern. Pattern is nil
// for the shorthand form `{ name }`, which binds the field under its
// own name.
type ObjectPatternField struct {
	Name    string
	Pattern Pattern
}

// ObjectPattern destructures an object by key: `{ a, b: [c] }: expr`.
type ObjectPattern struct {
	Token  token.Token
	Fields []ObjectPatternField
}

func (op *ObjectPattern) patternNode()         {}
func (op *ObjectPattern) TokenLiteral() string { return op.Token.Literal }
func (op *ObjectPattern) GetToken() token.Token {
	if op == nil {
		return token.Token{}
	}
	return op.Token
}
func (op *ObjectPattern) Accept(v Visitor) { v.VisitObjectPattern(op) }

// BoundNames collects every identifier a pattern binds, in order.
func BoundNames(p Pattern) []string {
	var names []string
	collectBoundNames(p, &names)
	return names
}

func collectBoundNames(p Pattern, names *[]string) {
	switch pat := p.(type) {
	case *IdentifierPattern:
		*names = append(*names, pat.Value)
	case *ListPattern:
		for _, el := range pat.Elements {
			collectBoundNames(el, names)
		}
	case *ObjectPattern:
		for _, f := range pat.Fields {
			if f.Pattern == nil {
				*names = append(*names, f.Name)
			} else {
				collectBoundNames(f.Pattern, names)
			}
		}
	}
}
