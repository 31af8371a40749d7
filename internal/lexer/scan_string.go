package lexer

import (
	"weave/internal/diag"
	"weave/internal/token"
)

// "..." с escape-последовательностями \" \\ \n \t \r \0.
// Ровно этот набор печатает и цитирование в инструментаторе,
// так что строка-процитированный-текст всегда лексится обратно.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		if b == '\\' {
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			esc := lx.cursor.Bump()
			switch esc {
			case '"', '\\', 'n', 't', 'r', '0':
				// ok
			default:
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "invalid escape sequence")
			}
			continue
		}
		if b == '\n' {
			// перевод строки внутри литерала — ошибка, строку обрезаем здесь
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexNewlineInString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}
	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
