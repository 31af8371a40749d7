package toolchain

import (
	"weave/internal/diag"
	"weave/internal/lexer"
	"weave/internal/parser"
	"weave/internal/sema"
	"weave/internal/source"
	"weave/internal/types"
	"weave/internal/vm"
)

const probeName = "probe.wv"

// Проба короткая, одна-две диагностики покрывают её целиком.
const probeMaxDiagnostics = 8

// Check компилирует текст одного оператора в полной изоляции: свежий
// фронтенд, без состояния драйвера и без областей видимости документа.
// Имена, связанные соседними сниппетами, здесь не видны умышленно:
// оператор обязан падать или проходить сам по себе.
func Check(text string) *vm.ProbeResult {
	fs := source.NewFileSet()
	id := fs.AddVirtual(probeName, []byte(text))
	file := fs.Get(id)

	bag := diag.NewBag(probeMaxDiagnostics)
	rep := &diag.BagReporter{Bag: bag}

	// Ошибки лексера тоже считаются ошибками разбора.
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	parseRes := parser.ParseFile(fs, lx, parser.Options{Reporter: rep})
	if parseRes.Errors > 0 || bag.HasErrors() {
		bag.Sort()
		return &vm.ProbeResult{Status: vm.ProbeParseError, Text: text, Diags: bag.Items()}
	}

	interner := types.NewInterner()
	checker := sema.NewChecker(interner)
	semaRes, ok := checker.CheckFile(parseRes.File, sema.Options{Reporter: rep})
	if !ok || bag.HasErrors() {
		bag.Sort()
		return &vm.ProbeResult{Status: vm.ProbeTypeError, Text: text, Diags: bag.Items()}
	}

	return &vm.ProbeResult{
		Status: vm.ProbeTypeChecked,
		Text:   text,
		Label:  types.Label(interner, semaRes.LastType),
	}
}
