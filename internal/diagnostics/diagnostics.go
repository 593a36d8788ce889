package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fiplang/fip/internal/token"
)

// Stage identifies which phase produced an error.
type Stage string

const (
	StageIo      Stage = "IO"
	StageLex     Stage = "Lexer"
	StageParse   Stage = "Parse"
	StageRuntime Stage = "Runtime"
)

// Error is a located diagnostic. Line 0 means no location is known.
type Error struct {
	Stage   Stage
	Code    string
	Message string
	File    string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s error: %s", e.Stage, e.Message)
	if e.File != "" && e.Line > 0 {
		fmt.Fprintf(&b, "\nFile: %s line %d", e.File, e.Line)
	} else if e.Line > 0 {
		fmt.Fprintf(&b, "\nLine: %d", e.Line)
	}
	return b.String()
}

// NewError builds a diagnostic from a token location. The stage is derived
// from the code prefix: L lexer, P parser, R runtime, I io.
func NewError(code string, tok token.Token, message string) *Error {
	return &Error{
		Stage:   stageForCode(code),
		Code:    code,
		Message: message,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func NewIoError(message string) *Error {
	return &Error{Stage: StageIo, Code: "I000", Message: message}
}

func stageForCode(code string) Stage {
	if code == "" {
		return StageRuntime
	}
	switch code[0] {
	case 'L':
		return StageLex
	case 'P':
		return StageParse
	case 'I':
		return StageIo
	default:
		return StageRuntime
	}
}

// LineForOffset converts a byte offset into a 1-based line number by
// counting newlines. Used where only a span into the source is known,
// such as string-template sub-expressions.
func LineForOffset(source string, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return strings.Count(source[:offset], "\n") + 1
}
