package token

import "weave/internal/source"

// TriviaKind enumerates non-semantic lexical elements attached to tokens.
type TriviaKind uint8

const (
	// TriviaSpace is a run of spaces or tabs.
	TriviaSpace TriviaKind = iota
	// TriviaNewline is a single `\n`. Statement termination keys off it.
	TriviaNewline
	// TriviaLineComment is a `//` comment up to (not including) the newline.
	TriviaLineComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	default:
		return "Trivia(?)"
	}
}

// Trivia is a single piece of leading trivia. Text slices the original
// source, same as Token.Text.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
