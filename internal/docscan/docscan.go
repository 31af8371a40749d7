// Package docscan discovers runnable snippet fences in markdown
// documents and substitutes rendered snippet text back into the
// surrounding markup.
//
// Only fences starting at column 0 are recognized: snippet inputs must
// slice the document byte-for-byte, and indented fences would need a
// de-indent pass that breaks that invariant.
package docscan

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"weave/internal/diag"
	"weave/internal/instrument"
	"weave/internal/source"
)

// DefaultLabel is the fence info word that marks a runnable snippet.
const DefaultLabel = "weave"

// Block is one snippet fence found in a document.
type Block struct {
	// Index is the snippet's position among the document's blocks.
	Index int
	// Mode is parsed from the info string suffix (`weave:fail` and so on).
	Mode instrument.Mode
	// Info is the full info string as written after the fence.
	Info string
	// Input holds the fence body as a slice of the document input.
	Input *source.Input
	// Open spans the opening fence line, without its newline.
	Open source.Span
	// Body spans the fence body bytes within the document.
	Body source.Span
}

// Document is the result of scanning one markdown file.
type Document struct {
	Input  *source.Input
	Blocks []Block
}

// Options configure a scan.
type Options struct {
	// Label overrides the fence info word; empty means DefaultLabel.
	Label string
	// Reporter receives scan diagnostics. Errors in the reporter mean
	// the document must not be rendered.
	Reporter diag.Reporter
}

// fence tracks the currently open code fence while scanning.
type fence struct {
	char   byte // '`' or '~'
	count  int
	info   string
	open   source.Span
	body   uint32 // byte offset where the body starts
	mode   instrument.Mode
	snip   bool // info matched the snippet label
	broken bool // snippet fence with an unusable mode
}

// Scan walks the document line by line and collects snippet fences.
// Non-snippet fences (```go and friends) are tracked so snippet markers
// inside them stay literal text. The returned document always covers
// the whole input; diagnostics flag unknown modes and fences left open
// at end of input.
func Scan(input *source.Input, opts Options) (*Document, error) {
	if input == nil {
		return nil, fmt.Errorf("docscan: nil input")
	}
	label := opts.Label
	if label == "" {
		label = DefaultLabel
	}

	doc := &Document{Input: input}
	text := input.Text()
	var open *fence

	pos := 0
	for pos < len(text) {
		lineEnd := strings.IndexByte(text[pos:], '\n')
		next := len(text)
		if lineEnd >= 0 {
			next = pos + lineEnd + 1
		}
		line := text[pos:next]
		trimmed := strings.TrimRight(line, "\r\n")

		if open != nil {
			if closesFence(trimmed, open) {
				if open.snip && !open.broken {
					if err := appendBlock(doc, open, u32(pos)); err != nil {
						return nil, err
					}
				}
				open = nil
			}
			pos = next
			continue
		}

		char, count, info, infoOff := fenceLine(trimmed)
		if count > 0 {
			open = &fence{
				char:  char,
				count: count,
				info:  info,
				open:  source.Span{Start: u32(pos), End: u32(pos + len(trimmed))},
				body:  u32(next),
			}
			classify(open, label, opts.Reporter, u32(pos+infoOff))
		}
		pos = next
	}

	if open != nil {
		diag.ReportError(opts.Reporter, diag.DocUnterminatedFence, open.open,
			"code fence is never closed").Emit()
	}
	return doc, nil
}

func (f *fence) infoSpan(infoStart uint32) source.Span {
	return source.Span{Start: infoStart, End: infoStart + u32(len(f.info))}
}

// classify decides whether an opening fence is a snippet and under
// which mode. infoStart is the byte offset of the info string.
func classify(f *fence, label string, rep diag.Reporter, infoStart uint32) {
	word := f.info
	if i := strings.IndexAny(word, " \t"); i >= 0 {
		word = word[:i]
	}
	switch {
	case word == label:
		f.snip = true
		f.mode = instrument.ModeDefault
	case strings.HasPrefix(word, label+":"):
		f.snip = true
		suffix := word[len(label)+1:]
		mode, ok := instrument.ParseModeLabel(suffix)
		if !ok {
			f.broken = true
			diag.ReportError(rep, diag.DocUnknownMode, f.infoSpan(infoStart),
				fmt.Sprintf("unknown snippet mode %q", suffix)).Emit()
			return
		}
		f.mode = mode
	}
}

func appendBlock(doc *Document, f *fence, bodyEnd uint32) error {
	in, err := doc.Input.Slice(f.body, bodyEnd)
	if err != nil {
		return fmt.Errorf("docscan: %w", err)
	}
	doc.Blocks = append(doc.Blocks, Block{
		Index: len(doc.Blocks),
		Mode:  f.mode,
		Info:  f.info,
		Input: in,
		Open:  f.open,
		Body:  source.Span{Start: f.body, End: bodyEnd},
	})
	return nil
}

// fenceLine parses a potential opening fence. Returns count 0 for
// ordinary lines. infoOff is the byte index of the info string within
// the line. The info string of a backtick fence must not contain
// backticks; tilde fences have no such restriction.
func fenceLine(line string) (char byte, count int, info string, infoOff int) {
	if len(line) < 3 {
		return 0, 0, "", 0
	}
	c := line[0]
	if c != '`' && c != '~' {
		return 0, 0, "", 0
	}
	n := 0
	for n < len(line) && line[n] == c {
		n++
	}
	if n < 3 {
		return 0, 0, "", 0
	}
	off := n
	for off < len(line) && (line[off] == ' ' || line[off] == '\t') {
		off++
	}
	rest := strings.TrimRight(line[off:], " \t")
	if c == '`' && strings.ContainsRune(rest, '`') {
		return 0, 0, "", 0
	}
	return c, n, rest, off
}

// closesFence reports whether line terminates the open fence: the same
// character repeated at least as many times, with nothing else on the
// line.
func closesFence(line string, f *fence) bool {
	n := 0
	for n < len(line) && line[n] == f.char {
		n++
	}
	if n < f.count {
		return false
	}
	return strings.TrimSpace(line[n:]) == ""
}

// Substitute rebuilds the document with each block's body replaced by
// the matching rendered text. rendered must hold one entry per block;
// an empty entry keeps that block's body as written, so a document
// whose render degraded round-trips unchanged.
func Substitute(doc *Document, rendered []string) (string, error) {
	if doc == nil || doc.Input == nil {
		return "", fmt.Errorf("docscan: nil document")
	}
	if len(rendered) != len(doc.Blocks) {
		return "", fmt.Errorf("docscan: %d rendered texts for %d blocks", len(rendered), len(doc.Blocks))
	}
	text := doc.Input.Text()
	var sb strings.Builder
	sb.Grow(len(text))
	cursor := uint32(0)
	for i, b := range doc.Blocks {
		sb.WriteString(text[cursor:b.Body.Start])
		body := rendered[i]
		if body == "" {
			body = text[b.Body.Start:b.Body.End]
		} else if !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		sb.WriteString(body)
		cursor = b.Body.End
	}
	sb.WriteString(text[cursor:])
	return sb.String(), nil
}

// u32 clamps to the uint32 maximum on overflow; Slice then rejects the
// out-of-bounds offset, so oversized documents fail loudly instead of
// wrapping.
func u32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return ^uint32(0)
	}
	return v
}
