package lexer

import (
	"testing"

	"weave/internal/source"
)

func makeTestCursor(t *testing.T, content string) Cursor {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("cursor.wv", []byte(content))
	return NewCursor(fs.Get(id))
}

func TestCursorPeekBump(t *testing.T) {
	c := makeTestCursor(t, "ab")
	if c.Peek() != 'a' {
		t.Fatalf("Peek = %q, want 'a'", c.Peek())
	}
	if got := c.Bump(); got != 'a' {
		t.Fatalf("Bump = %q, want 'a'", got)
	}
	if got := c.Bump(); got != 'b' {
		t.Fatalf("Bump = %q, want 'b'", got)
	}
	if !c.EOF() {
		t.Fatal("expected EOF")
	}
	if c.Peek() != 0 || c.Bump() != 0 {
		t.Fatal("Peek/Bump past EOF must return 0")
	}
}

func TestCursorPeek2(t *testing.T) {
	c := makeTestCursor(t, "xyz")
	b0, b1, ok := c.Peek2()
	if !ok || b0 != 'x' || b1 != 'y' {
		t.Fatalf("Peek2 = (%q, %q, %v)", b0, b1, ok)
	}
	c.Bump()
	c.Bump()
	if _, _, ok := c.Peek2(); ok {
		t.Fatal("Peek2 with one byte left must fail")
	}
}

func TestCursorMarkSpanReset(t *testing.T) {
	c := makeTestCursor(t, "hello")
	m := c.Mark()
	c.Bump()
	c.Bump()
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = [%d,%d), want [0,2)", sp.Start, sp.End)
	}
	if sp.File != c.File.ID {
		t.Fatalf("span file %d, want %d", sp.File, c.File.ID)
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("Reset: Off = %d, want 0", c.Off)
	}
}

func TestCursorEat(t *testing.T) {
	c := makeTestCursor(t, "-x")
	if !c.Eat('-') {
		t.Fatal("Eat('-') must succeed")
	}
	if c.Eat('-') {
		t.Fatal("second Eat('-') must fail")
	}
	if !c.Eat('x') {
		t.Fatal("Eat('x') must succeed")
	}
	if c.Eat('x') {
		t.Fatal("Eat at EOF must fail")
	}
}

func TestCursorEmptyFile(t *testing.T) {
	c := makeTestCursor(t, "")
	if !c.EOF() {
		t.Fatal("empty file must be at EOF")
	}
	if _, _, ok := c.Peek2(); ok {
		t.Fatal("Peek2 on empty file must fail")
	}
}
