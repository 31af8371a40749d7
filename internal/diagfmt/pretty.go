package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"weave/internal/diag"
	"weave/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	caretColor   = color.New(color.FgGreen)
	gutterColor  = color.New(color.FgHiBlack)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	for _, d := range bag.Items() {
		printDiagnostic(w, d, fs, opts)
	}
}

// PrettyOne форматирует одну диагностику. Нужен местам, которые
// раскладывают bag по своим каналам (логгер движка).
func PrettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	if fs == nil {
		return
	}
	printDiagnostic(w, d, fs, opts)
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(fs, d.Primary.File, opts.PathMode),
		start.Line, start.Col,
		severityLabel(d.Severity, opts.Color),
		codeLabel(d.Code, opts.Color),
		d.Message)

	printContext(w, fs, d.Primary, start, end, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			nStart, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				displayPath(fs, note.Span.File, opts.PathMode),
				nStart.Line, nStart.Col, note.Msg)
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  fix: %s\n", fix.Title)
		}
	}
}

// printContext prints the source lines around the span start with a
// caret run under the spanned bytes.
func printContext(w io.Writer, fs *source.FileSet, sp source.Span, start, end source.LineCol, opts PrettyOpts) {
	file := fs.Get(sp.File)
	if file == nil || start.Line == 0 {
		return
	}

	context := int(opts.Context)
	if context < 0 {
		context = 0
	}
	firstLine := start.Line
	if uint32(context) < firstLine {
		firstLine -= uint32(context)
	} else {
		firstLine = 1
	}
	lastLine := start.Line + uint32(context)

	gutterWidth := len(fmt.Sprintf("%d", lastLine))
	for line := firstLine; line <= lastLine; line++ {
		text, ok := lineText(file, line)
		if !ok {
			break
		}
		text = trimAtMarker(text, opts.TrimMarker)
		shown := text
		if opts.Width > 0 {
			shown = runewidth.Truncate(shown, int(opts.Width), "…")
		}
		gutter := fmt.Sprintf("%*d | ", gutterWidth, line)
		if opts.Color {
			gutter = gutterColor.Sprint(gutter)
		}
		fmt.Fprintf(w, "  %s%s\n", gutter, shown)

		if line == start.Line {
			printCaret(w, text, start, end, gutterWidth, opts)
		}
	}
}

func printCaret(w io.Writer, lineContent string, start, end source.LineCol, gutterWidth int, opts PrettyOpts) {
	// Columns are 1-based byte offsets into the line.
	startByte := int(start.Col) - 1
	if startByte > len(lineContent) {
		startByte = len(lineContent)
	}
	endByte := len(lineContent)
	if end.Line == start.Line && int(end.Col)-1 < endByte {
		endByte = int(end.Col) - 1
	}
	if endByte < startByte {
		endByte = startByte
	}

	pad := runewidth.StringWidth(lineContent[:startByte])
	run := runewidth.StringWidth(lineContent[startByte:endByte])
	if run < 1 {
		run = 1
	}
	if opts.Width > 0 && pad >= int(opts.Width) {
		return
	}
	if opts.Width > 0 && pad+run > int(opts.Width) {
		run = int(opts.Width) - pad
	}

	caret := "^"
	if run > 1 {
		caret += strings.Repeat("~", run-1)
	}
	if opts.Color {
		caret = caretColor.Sprint(caret)
	}
	gutter := fmt.Sprintf("%*s | ", gutterWidth, "")
	if opts.Color {
		gutter = gutterColor.Sprint(gutter)
	}
	fmt.Fprintf(w, "  %s%s%s\n", gutter, strings.Repeat(" ", pad), caret)
}

// lineText returns the 1-based line without its terminator.
func lineText(f *source.File, line uint32) (string, bool) {
	if line == 0 {
		return "", false
	}
	start := uint32(0)
	if line > 1 {
		idx := line - 2
		if int(idx) >= len(f.LineIdx) {
			return "", false
		}
		start = f.LineIdx[idx] + 1
	}
	end := uint32(len(f.Content))
	if int(line-1) < len(f.LineIdx) {
		end = f.LineIdx[line-1]
	} else if start > end {
		return "", false
	}
	if start > end {
		return "", false
	}
	return string(f.Content[start:end]), true
}

// trimAtMarker обрезает строку на маркере инструментатора.
func trimAtMarker(line, marker string) string {
	if marker == "" {
		return line
	}
	if idx := strings.Index(line, marker); idx >= 0 {
		return strings.TrimRight(line[:idx], " \t")
	}
	return line
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(label)
	case diag.SevWarning:
		return warningColor.Sprint(label)
	default:
		return infoColor.Sprint(label)
	}
}

func codeLabel(code diag.Code, colored bool) string {
	id := code.ID()
	if colored {
		return color.New(color.Bold).Sprint(id)
	}
	return id
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", fs.BaseDir())
	}
}
