// Package toolchain owns the compile-and-load boundary of the engine:
// instrumented program text goes in, a runnable unit or a bag of
// diagnostics comes out.
package toolchain

import (
	"io"

	"weave/internal/diag"
	"weave/internal/diagfmt"
	"weave/internal/instrument"
	"weave/internal/lexer"
	"weave/internal/parser"
	"weave/internal/sema"
	"weave/internal/source"
	"weave/internal/types"
)

// programName — имя виртуального файла, под которым инструментированная
// программа живёт в FileSet драйвера. Встречается в диагностиках.
const programName = "program.wv"

// defaultMaxDiagnostics — ёмкость Bag по умолчанию.
const defaultMaxDiagnostics = 100

// Driver компилирует инструментированные программы. Интернер типов
// переживает вызовы Compile (типы контентно-адресуемы, переиспользование
// безопасно); всё остальное состояние создаётся заново на каждый вызов,
// поэтому последовательные вызовы не видят друг друга. Одновременные
// вызовы на одном драйвере не поддерживаются: на воркер — свой драйвер.
type Driver struct {
	types          *types.Interner
	maxDiagnostics int
}

// NewDriver создаёт драйвер со свежим интернером типов.
// maxDiagnostics <= 0 означает значение по умолчанию.
func NewDriver(maxDiagnostics int) *Driver {
	if maxDiagnostics <= 0 {
		maxDiagnostics = defaultMaxDiagnostics
	}
	return &Driver{
		types:          types.NewInterner(),
		maxDiagnostics: maxDiagnostics,
	}
}

// Types возвращает интернер драйвера. Рендеру он нужен, чтобы печатать
// подписи типов у биндеров.
func (d *Driver) Types() *types.Interner {
	return d.types
}

// CompileResult — исход одного вызова Compile. Unit равен nil, если
// компиляция дала хотя бы одну ошибку; Bag при этом содержит все
// диагностики. FileSet владеет текстом программы и нужен для печати.
type CompileResult struct {
	Unit    *Unit
	FileSet *source.FileSet
	Bag     *diag.Bag
}

// Ok сообщает, готова ли единица к исполнению.
func (r *CompileResult) Ok() bool {
	return r.Unit != nil
}

// PrettyDiagnostics печатает диагностики компиляции. Строки превью
// обрезаются на сигнальном маркере, чтобы пользователь не видел
// дописанный инструментированный код.
func (r *CompileResult) PrettyDiagnostics(w io.Writer, color bool) {
	diagfmt.Pretty(w, r.Bag, r.FileSet, diagfmt.PrettyOpts{
		Color:      color,
		TrimMarker: instrument.Sentinel,
	})
}

// Compile прогоняет текст программы через фронтенд. Каждый вызов
// начинается с чистого листа: свежий FileSet, свежий Bag, свежая область
// видимости. Любая ошибка любой фазы означает отсутствие Unit.
func (d *Driver) Compile(program string) *CompileResult {
	// Создаём FileSet и регистрируем программу как виртуальный файл
	fs := source.NewFileSet()
	id := fs.AddVirtual(programName, []byte(program))
	file := fs.Get(id)

	// Создаём диагностический пакет
	bag := diag.NewBag(d.maxDiagnostics)
	rep := &diag.BagReporter{Bag: bag}

	res := &CompileResult{FileSet: fs, Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: rep})
	parseRes := parser.ParseFile(fs, lx, parser.Options{Reporter: rep})
	if parseRes.Errors > 0 || bag.HasErrors() {
		bag.Sort()
		return res
	}

	// Свежая область видимости на каждую программу: непрерывность между
	// сниппетами обеспечивает сборка их в одну программу, а не драйвер.
	checker := sema.NewChecker(d.types)
	semaRes, ok := checker.CheckFile(parseRes.File, sema.Options{Reporter: rep})
	bag.Sort()
	if !ok || bag.HasErrors() {
		return res
	}

	res.Unit = &Unit{
		fs:     fs,
		fileID: id,
		file:   parseRes.File,
		sema:   semaRes,
		types:  d.types,
	}
	return res
}
