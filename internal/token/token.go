package token

import "weave/internal/source"

// Token is a single lexical token with its span, source text and any
// leading trivia collected since the previous token.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwVal, KwFn, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Percent,
		Assign, EqEq, Bang, BangEq, Lt, LtEq, Gt, GtEq,
		AndAnd, OrOr, Question, Colon, Semicolon, Comma, Arrow,
		LParen, RParen:
		return true
	default:
		return false
	}
}

// NewlineBefore reports whether any leading trivia of the token is a
// newline. The parser uses this to terminate statements at line breaks.
func (t Token) NewlineBefore() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
	}
	return false
}
