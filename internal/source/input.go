package source

import (
	"fmt"

	"fortio.org/safecast"
)

// InputKind says where a piece of snippet text came from.
type InputKind uint8

const (
	// InputFile is a whole on-disk document.
	InputFile InputKind = iota
	// InputVirtual is in-memory text with no on-disk counterpart.
	InputVirtual
	// InputSlice is a region carved out of another Input, keeping the
	// start offset so positions can be mapped back.
	InputSlice
)

func (k InputKind) String() string {
	switch k {
	case InputFile:
		return "file"
	case InputVirtual:
		return "virtual"
	case InputSlice:
		return "slice"
	default:
		return fmt.Sprintf("InputKind(%d)", uint8(k))
	}
}

// Input is an immutable piece of text with a name and an origin. Snippets
// extracted from a document are slices of the document's Input; their
// positions translate back by adding the slice start offset.
type Input struct {
	kind    InputKind
	name    string
	text    string
	under   *Input // InputSlice only
	start   uint32 // offset of text within under
	end     uint32
	lineIdx []uint32
}

// NewFileInput wraps already-loaded document content.
func NewFileInput(name, text string) *Input {
	return newInput(InputFile, name, text)
}

// NewVirtualInput wraps in-memory text.
func NewVirtualInput(name, text string) *Input {
	return newInput(InputVirtual, name, text)
}

func newInput(kind InputKind, name, text string) *Input {
	return &Input{
		kind:    kind,
		name:    name,
		text:    text,
		lineIdx: buildLineIndex([]byte(text)),
	}
}

// Slice carves [start, end) out of the input. Offsets outside the input's
// bounds are an error, not a clamp.
func (in *Input) Slice(start, end uint32) (*Input, error) {
	limit, err := safecast.Conv[uint32](len(in.text))
	if err != nil {
		return nil, fmt.Errorf("input %s too large: %w", in.name, err)
	}
	if start > end || end > limit {
		return nil, fmt.Errorf("slice %d:%d out of bounds for %s (len %d)", start, end, in.name, limit)
	}
	text := in.text[start:end]
	return &Input{
		kind:    InputSlice,
		name:    in.name,
		text:    text,
		under:   in,
		start:   start,
		end:     end,
		lineIdx: buildLineIndex([]byte(text)),
	}, nil
}

func (in *Input) Kind() InputKind { return in.kind }
func (in *Input) Name() string    { return in.name }
func (in *Input) Text() string    { return in.text }

func (in *Input) Len() uint32 {
	n, err := safecast.Conv[uint32](len(in.text))
	if err != nil {
		panic(fmt.Errorf("input %s length overflow: %w", in.name, err))
	}
	return n
}

// Underlying returns the sliced input, or nil for file and virtual inputs.
func (in *Input) Underlying() *Input { return in.under }

// SliceStart returns the slice's start offset within the underlying input,
// 0 for non-slices.
func (in *Input) SliceStart() uint32 { return in.start }

// LineColAt resolves a byte offset within the input's own text.
func (in *Input) LineColAt(off uint32) LineCol {
	return toLineCol(in.lineIdx, off)
}

// OffsetAt is the inverse of LineColAt, clamped to the text length.
func (in *Input) OffsetAt(lc LineCol) uint32 {
	return offsetOfLineCol(in.lineIdx, in.Len(), lc)
}

// Loc is a resolved position range inside an Input, expressed in that
// input's own byte offsets. Rendering and logging resolve it lazily into
// line/column form.
type Loc struct {
	Input *Input
	Start uint32
	End   uint32
}

func (l Loc) Valid() bool {
	return l.Input != nil
}

func (l Loc) StartLineCol() LineCol {
	if l.Input == nil {
		return LineCol{}
	}
	return l.Input.LineColAt(l.Start)
}

func (l Loc) EndLineCol() LineCol {
	if l.Input == nil {
		return LineCol{}
	}
	return l.Input.LineColAt(l.End)
}

func (l Loc) String() string {
	if l.Input == nil {
		return "<unknown>"
	}
	lc := l.StartLineCol()
	return fmt.Sprintf("%s:%d:%d", l.Input.name, lc.Line, lc.Col)
}
