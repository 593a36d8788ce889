package parser

import (
	"fmt"
	"strings"

	"github.com/fiplang/fip/internal/ast"
	"github.com/fiplang/fip/internal/diagnostics"
	"github.com/fiplang/fip/internal/token"
)

// validateProgram enforces the binding rules: every bound name is
// kebab-case and no top-level name is bound twice.
func (p *Parser) validateProgram(program *ast.Program) *diagnostics.Error {
	defined := map[string]bool{}

	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *ast.AssignmentStatement:
			for _, bound := range patternIdentifiers(s.Pattern) {
				if err := p.validateKebabCase(bound.name, bound.tok); err != nil {
					return err
				}
				if defined[bound.name] {
					return p.errorAt(bound.tok,
						fmt.Sprintf("Mutation error: trying to mutate binding %s", bound.name))
				}
				defined[bound.name] = true
			}
		case *ast.FunctionStatement:
			if err := p.validateKebabCase(s.Name, s.Token); err != nil {
				return err
			}
			if defined[s.Name] {
				return p.errorAt(s.Token,
					fmt.Sprintf("Cannot redefine immutable binding '%s'", s.Name))
			}
			defined[s.Name] = true
			for _, param := range s.Params {
				if err := p.validateKebabCase(param, s.Token); err != nil {
					return err
				}
			}
		case *ast.UseStatement:
			for _, name := range s.BoundNames() {
				if err := p.validateKebabCase(name, s.Token); err != nil {
					return err
				}
				if defined[name] {
					return p.errorAt(s.Token,
						fmt.Sprintf("Cannot redefine immutable binding '%s'", name))
				}
				defined[name] = true
			}
		case *ast.ExportStatement:
			// Exports reference an existing binding, only the name
			// format is checked here.
			if err := p.validateKebabCase(s.Name, s.Token); err != nil {
				return err
			}
		}
	}
	return nil
}

type boundIdentifier struct {
	name string
	tok  token.Token
}

func patternIdentifiers(pat ast.Pattern) []boundIdentifier {
	var out []boundIdentifier
	collectPatternIdentifiers(pat, &out)
	return out
}

func collectPatternIdentifiers(pat ast.Pattern, out *[]boundIdentifier) {
	switch pt := pat.(type) {
	case *ast.IdentifierPattern:
		*out = append(*out, boundIdentifier{name: pt.Value, tok: pt.Token})
	case *ast.ListPattern:
		for _, el := range pt.Elements {
			collectPatternIdentifiers(el, out)
		}
	case *ast.ObjectPattern:
		for _, f := range pt.Fields {
			if f.Pattern == nil {
				*out = append(*out, boundIdentifier{name: f.Name, tok: pt.Token})
			} else {
				collectPatternIdentifiers(f.Pattern, out)
			}
		}
	}
}

// validateKebabCase checks a binding name: lowercase letters, digits
// and single interior hyphens, starting with a letter, with an optional
// trailing '!' or '?' stripped before the check.
func (p *Parser) validateKebabCase(name string, tok token.Token) *diagnostics.Error {
	if name == "" {
		return p.errorAt(tok, "Identifier name cannot be empty")
	}

	base := name
	if strings.HasSuffix(base, "!") || strings.HasSuffix(base, "?") {
		base = base[:len(base)-1]
	}
	if base == "" {
		return p.errorAt(tok, fmt.Sprintf("Identifier '%s' must have a name before the suffix", name))
	}
	if strings.HasPrefix(base, "-") || strings.HasSuffix(base, "-") {
		return p.errorAt(tok, fmt.Sprintf("Identifier '%s' cannot start or end with a hyphen", name))
	}
	if strings.Contains(base, "--") {
		return p.errorAt(tok, fmt.Sprintf("Identifier '%s' cannot contain consecutive hyphens", name))
	}

	hasLetter := false
	for _, ch := range base {
		switch {
		case ch >= 'a' && ch <= 'z':
			hasLetter = true
		case ch >= '0' && ch <= '9':
			if !hasLetter {
				return p.errorAt(tok,
					fmt.Sprintf("Identifier '%s' must start with a lowercase letter", name))
			}
		case ch == '-':
			// Leading, trailing and doubled hyphens were rejected above.
		case ch == '_':
			return p.errorAt(tok,
				fmt.Sprintf("Identifier '%s' contains underscore. Identifiers must use kebab-case (lowercase letters, digits, and hyphens, not underscores)", name))
		default:
			return p.errorAt(tok,
				fmt.Sprintf("Identifier '%s' contains invalid character '%c'. Identifiers must use kebab-case (lowercase letters, digits, and hyphens)", name, ch))
		}
	}
	if !hasLetter {
		return p.errorAt(tok, fmt.Sprintf("Identifier '%s' must contain at least one letter", name))
	}
	return nil
}
