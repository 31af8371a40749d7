package engine_test

import (
	"testing"

	"weave/internal/document"
	"weave/internal/engine"
	"weave/internal/source"
)

func TestMapPosition_SliceRoundTrip(t *testing.T) {
	doc := source.NewFileInput("doc.md", "prefix\nval a = 1\nval b = 2\nsuffix\n")
	// The snippet is the two val lines.
	slice, err := doc.Slice(7, 27)
	if err != nil {
		t.Fatalf("slice: %v", err)
	}

	pos := &document.Pos{StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 10}
	loc := engine.MapPosition(0, pos, []*source.Input{slice})
	if loc.Input != doc {
		t.Fatalf("loc input = %v, want the underlying document", loc.Input)
	}
	// Offsets 10..19 inside the slice, shifted by the slice start 7.
	if loc.Start != 17 || loc.End != 26 {
		t.Errorf("loc = %d..%d, want 17..26", loc.Start, loc.End)
	}
	if lc := loc.StartLineCol(); lc.Line != 3 || lc.Col != 1 {
		t.Errorf("start = %d:%d, want 3:1", lc.Line, lc.Col)
	}
}

func TestMapPosition_AbsentPosition(t *testing.T) {
	doc := source.NewFileInput("doc.md", "xx\nsnippet body\n")
	slice, err := doc.Slice(3, 15)
	if err != nil {
		t.Fatalf("slice: %v", err)
	}

	loc := engine.MapPosition(0, nil, []*source.Input{slice})
	if loc.Input != doc || loc.Start != 3 || loc.End != 3 {
		t.Errorf("loc = %+v, want the snippet start in document coordinates", loc)
	}
}

func TestMapPosition_VirtualInput(t *testing.T) {
	in := source.NewVirtualInput("v.wv", "val a = 1\n")
	pos := &document.Pos{StartLine: 1, StartCol: 5, EndLine: 1, EndCol: 6}
	loc := engine.MapPosition(0, pos, []*source.Input{in})
	if loc.Input != in || loc.Start != 4 || loc.End != 5 {
		t.Errorf("loc = %+v", loc)
	}
}

func TestMapPosition_SectionClamped(t *testing.T) {
	a := source.NewVirtualInput("a.wv", "1\n")
	b := source.NewVirtualInput("b.wv", "2\n")
	inputs := []*source.Input{a, b}

	if loc := engine.MapPosition(5, nil, inputs); loc.Input != b {
		t.Errorf("high index should clamp to the last input, got %+v", loc)
	}
	if loc := engine.MapPosition(-1, nil, inputs); loc.Input != a {
		t.Errorf("negative index should clamp to the first input, got %+v", loc)
	}
	if loc := engine.MapPosition(0, nil, nil); loc.Valid() {
		t.Errorf("no inputs should give an invalid loc, got %+v", loc)
	}
}
