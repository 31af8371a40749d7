package diag

import (
	"fmt"
	"sort"
	"strings"

	"weave/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics into a stable
// one-line-per-entry representation suitable for golden comparisons in
// tests and CLI short output. Entries are sorted deterministically; the
// result is empty when there is nothing to show.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendGolden(rendered, &diags[i], fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for _, g := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s\n", g.Severity, g.Code, g.Path, g.Line, g.Column, g.Message)
	}
	return b.String()
}

func appendGolden(out []goldenDiagnostic, d *Diagnostic, fs *source.FileSet, includeNotes bool) []goldenDiagnostic {
	start, _ := fs.Resolve(d.Primary)
	f := fs.Get(d.Primary.File)

	out = append(out, goldenDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Path:     f.FormatPath("auto", ""),
		Line:     start.Line,
		Column:   start.Col,
		Message:  d.Message,
	})

	if includeNotes {
		for _, n := range d.Notes {
			noteStart, _ := fs.Resolve(n.Span)
			noteFile := fs.Get(n.Span.File)
			out = append(out, goldenDiagnostic{
				Severity: "NOTE",
				Code:     d.Code.ID(),
				Path:     noteFile.FormatPath("auto", ""),
				Line:     noteStart.Line,
				Column:   noteStart.Col,
				Message:  n.Msg,
			})
		}
	}
	return out
}
