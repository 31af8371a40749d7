package instrument

import (
	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/lexer"
	"weave/internal/parser"
	"weave/internal/source"
)

// Binding is one name a statement declares, at its position in the
// snippet (1-based line and column).
type Binding struct {
	Name string
	Line uint32
	Col  uint32
}

// Statement is one parsed or split statement of a snippet. Text is the
// verbatim source slice; Start/End are snippet-relative. Bindings lists
// declared names in declaration order; a bare expression has none and
// IsExpr set.
type Statement struct {
	Text     string
	Start    source.LineCol
	End      source.LineCol
	Bindings []Binding
	IsExpr   bool
}

// Fragment is a snippet's parsed statement list over its Input.
type Fragment struct {
	Input *source.Input
	Stmts []Statement
}

// Snippet pairs a fragment with its mode. The engine builds one per
// fenced block, in document order.
type Snippet struct {
	Fragment Fragment
	Mode     Mode
}

// DeclaredNames appends every name the fragment declares, in order.
func (f *Fragment) DeclaredNames(dst []string) []string {
	for _, stmt := range f.Stmts {
		for _, b := range stmt.Bindings {
			dst = append(dst, b.Name)
		}
	}
	return dst
}

// ParseFragment parses input into statements. Diagnostics go to rep;
// ok is false when the text does not parse, which aborts a default-mode
// render.
func ParseFragment(input *source.Input, rep diag.Reporter) (Fragment, bool) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(input.Name(), []byte(input.Text()))
	file := fs.Get(id)

	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := parser.ParseFile(fs, lx, parser.Options{Reporter: rep})
	if res.Errors != 0 {
		return Fragment{Input: input}, false
	}

	frag := Fragment{Input: input, Stmts: make([]Statement, 0, len(res.File.Stmts))}
	for _, stmt := range res.File.Stmts {
		start, end := fs.Resolve(stmt.Span)
		st := Statement{
			Text:  string(file.Content[stmt.Span.Start:stmt.Span.End]),
			Start: start,
			End:   end,
		}
		switch stmt.Kind {
		case ast.StmtVal:
			st.Bindings = patternBindings(fs, stmt.Val.Pattern, st.Bindings)
		case ast.StmtFn:
			nameStart, _ := fs.Resolve(stmt.Fn.NameSpan)
			st.Bindings = append(st.Bindings, Binding{Name: stmt.Fn.Name, Line: nameStart.Line, Col: nameStart.Col})
		case ast.StmtExpr:
			st.IsExpr = true
		}
		frag.Stmts = append(frag.Stmts, st)
	}
	return frag, true
}

func patternBindings(fs *source.FileSet, pat *ast.Pattern, dst []Binding) []Binding {
	switch pat.Kind {
	case ast.PatternName:
		start, _ := fs.Resolve(pat.Span)
		return append(dst, Binding{Name: pat.Name, Line: start.Line, Col: start.Col})
	case ast.PatternTuple:
		for _, el := range pat.Elems {
			dst = patternBindings(fs, el, dst)
		}
	}
	return dst
}

// SplitFragment cuts input into statement texts lexically, tolerating
// code that does not parse. Fail-mode snippets go through here so each
// broken statement can still be probed on its own.
func SplitFragment(input *source.Input) Fragment {
	fs := source.NewFileSet()
	id := fs.AddVirtual(input.Name(), []byte(input.Text()))
	file := fs.Get(id)

	spans := parser.SplitStatements(file)
	frag := Fragment{Input: input, Stmts: make([]Statement, 0, len(spans))}
	for _, sp := range spans {
		start, end := fs.Resolve(sp)
		frag.Stmts = append(frag.Stmts, Statement{
			Text:  string(file.Content[sp.Start:sp.End]),
			Start: start,
			End:   end,
		})
	}
	return frag
}
