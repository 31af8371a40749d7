package parser

import (
	"weave/internal/lexer"
	"weave/internal/source"
	"weave/internal/token"
)

// SplitStatements режет файл на statements по лексике, без разбора.
// Нужен для сниппетов, которые не обязаны парситься целиком: каждому
// statement соответствует span от первого до последнего токена.
//
// Правила:
//   - ';' на нулевой глубине скобок завершает statement (сам не входит)
//   - перевод строки на нулевой глубине завершает statement, если
//     предыдущая строка синтаксически закончена (не оканчивается
//     оператором, запятой, '=', '->', открытой скобкой или ключевым
//     словом)
//   - внутри скобок переводы строк не режут
//
// Лексические ошибки игнорируются: Invalid токены участвуют наравне
// с обычными.
func SplitStatements(file *source.File) []source.Span {
	lx := lexer.New(file, lexer.Options{})

	var spans []source.Span
	var cur source.Span
	started := false
	depth := 0
	var prev token.Token

	flush := func() {
		if started {
			spans = append(spans, cur)
			started = false
		}
	}

	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			flush()
			return spans
		}

		if depth == 0 && started && tok.NewlineBefore() && !lineContinues(prev) {
			flush()
		}

		if tok.Kind == token.Semicolon && depth == 0 {
			flush()
			prev = tok
			continue
		}

		switch tok.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			if depth > 0 {
				depth--
			}
		}

		if !started {
			cur = tok.Span
			started = true
		} else {
			cur = cur.Cover(tok.Span)
		}
		prev = tok
	}
}

// lineContinues — правда, если строка, оканчивающаяся этим токеном,
// синтаксически не закончена и statement продолжается на следующей.
func lineContinues(prev token.Token) bool {
	if prev.Kind == token.RParen {
		return false
	}
	if prev.Kind == token.KwVal || prev.Kind == token.KwFn {
		return true
	}
	return prev.IsPunctOrOp()
}
