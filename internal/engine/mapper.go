package engine

import (
	"fortio.org/safecast"

	"weave/internal/document"
	"weave/internal/source"
)

// MapPosition converts a recorded runtime position into the coordinates
// of the snippet's underlying input. With no recorded position the best
// effort is the start of the snippet itself. Positions inside a
// statement need no adjustment beyond the slice translation:
// instrumentation is appended after or padded alongside the statement,
// never inserted before it on the same line.
func MapPosition(section int, pos *document.Pos, inputs []*source.Input) source.Loc {
	if len(inputs) == 0 {
		return source.Loc{}
	}
	if section < 0 {
		section = 0
	}
	if section >= len(inputs) {
		section = len(inputs) - 1
	}
	in := inputs[section]

	if pos == nil {
		return translate(in, 0, 0)
	}
	start := in.OffsetAt(source.LineCol{Line: clampU32(pos.StartLine), Col: clampU32(pos.StartCol)})
	end := in.OffsetAt(source.LineCol{Line: clampU32(pos.EndLine), Col: clampU32(pos.EndCol)})
	return translate(in, start, end)
}

// translate lifts snippet-relative offsets into the underlying input for
// slices; file and virtual inputs are their own coordinate space.
func translate(in *source.Input, start, end uint32) source.Loc {
	if under := in.Underlying(); under != nil {
		return source.Loc{
			Input: under,
			Start: in.SliceStart() + start,
			End:   in.SliceStart() + end,
		}
	}
	return source.Loc{Input: in, Start: start, End: end}
}

func clampU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return 1
	}
	return v
}
