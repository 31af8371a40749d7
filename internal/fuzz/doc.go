// Package fuzztests houses Go fuzz harnesses for the front half of the
// snippet pipeline (markdown scan -> lexer -> parser -> statement split).
// Its goal is to smoke test robustness and guard against panics or hangs
// on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые скармливают байты
// сканеру документов и лексеру/парсеру сниппетов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/diag, internal/docscan, internal/instrument, internal/testkit.

package fuzztests
