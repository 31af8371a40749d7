package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical (1000-1999)
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadEscape          Code = 1004
	LexNewlineInString    Code = 1005
	LexTokenTooLong       Code = 1006

	// Syntax (2000-2999)
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectExpression  Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectType        Code = 2004
	SynUnclosedParen     Code = 2005
	SynExpectEquals      Code = 2006
	SynExpectArrow       Code = 2007
	SynExpectColon       Code = 2008
	SynTrailingTokens    Code = 2009
	SynExpectPatternName Code = 2010
	SynEmptyTuple        Code = 2011
	SynBadLiteral        Code = 2012

	// Semantic (3000-3999)
	SemaInfo                  Code = 3000
	SemaUnresolvedSymbol      Code = 3001
	SemaDuplicateSymbol       Code = 3002
	SemaTypeMismatch          Code = 3003
	SemaInvalidBinaryOperands Code = 3004
	SemaInvalidUnaryOperand   Code = 3005
	SemaNotCallable           Code = 3006
	SemaWrongArgCount         Code = 3007
	SemaInvalidCondition      Code = 3008
	SemaTupleArityMismatch    Code = 3009
	SemaReservedName          Code = 3010
	SemaNotATuple             Code = 3011
	SemaUnknownType           Code = 3012

	// Input/output (4000-4999)
	IOInfo        Code = 4000
	IOReadFailed  Code = 4001
	IOWriteFailed Code = 4002

	// Document scanning (5000-5999)
	DocInfo              Code = 5000
	DocUnknownMode       Code = 5001
	DocUnterminatedFence Code = 5002
	DocNoSnippets        Code = 5003
	DocStale             Code = 5004

	// Observability (6000-6999)
	ObsTimings Code = 6000

	// Runtime (7000-7999)
	RunFailure        Code = 7000
	RunDivideByZero   Code = 7001
	RunRecursionLimit Code = 7002
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	LexInfo:               "lexer note",
	LexUnknownChar:        "unknown character",
	LexUnterminatedString: "unterminated string literal",
	LexBadNumber:          "malformed numeric literal",
	LexBadEscape:          "invalid escape sequence",
	LexNewlineInString:    "newline in string literal",
	LexTokenTooLong:       "token exceeds length limit",

	SynInfo:              "parser note",
	SynUnexpectedToken:   "unexpected token",
	SynExpectExpression:  "expected expression",
	SynExpectIdentifier:  "expected identifier",
	SynExpectType:        "expected type",
	SynUnclosedParen:     "unclosed parenthesis",
	SynExpectEquals:      "expected '='",
	SynExpectArrow:       "expected '->'",
	SynExpectColon:       "expected ':'",
	SynTrailingTokens:    "trailing tokens after statement",
	SynExpectPatternName: "expected name in pattern",
	SynEmptyTuple:        "empty tuple is not allowed",
	SynBadLiteral:        "malformed literal",

	SemaInfo:                  "semantic note",
	SemaUnresolvedSymbol:      "unresolved name",
	SemaDuplicateSymbol:       "duplicate definition",
	SemaTypeMismatch:          "type mismatch",
	SemaInvalidBinaryOperands: "invalid operand types for binary operator",
	SemaInvalidUnaryOperand:   "invalid operand type for unary operator",
	SemaNotCallable:           "expression is not callable",
	SemaWrongArgCount:         "wrong number of arguments",
	SemaInvalidCondition:      "condition must be Bool",
	SemaTupleArityMismatch:    "pattern arity does not match tuple",
	SemaReservedName:          "reserved name",
	SemaNotATuple:             "destructuring a non-tuple value",
	SemaUnknownType:           "unknown type name",

	IOInfo:        "io note",
	IOReadFailed:  "cannot read file",
	IOWriteFailed: "cannot write file",

	DocInfo:              "document note",
	DocUnknownMode:       "unknown snippet mode",
	DocUnterminatedFence: "unterminated code fence",
	DocNoSnippets:        "no snippets found",
	DocStale:             "rendered output is stale",

	ObsTimings: "phase timings",

	RunFailure:        "runtime failure",
	RunDivideByZero:   "division by zero",
	RunRecursionLimit: "recursion limit exceeded",
}

// ID returns the stable banded identifier, e.g. "SYN2001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("DOC%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("RUN%04d", ic)
	}
	return "E0000"
}

// Title returns the short human description for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
