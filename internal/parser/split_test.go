package parser

import (
	"testing"

	"weave/internal/source"
)

func splitSource(t *testing.T, src string) (*source.File, []string) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("snippet.wv", []byte(src))
	file := fs.Get(id)
	spans := SplitStatements(file)
	out := make([]string, len(spans))
	for i, sp := range spans {
		out[i] = string(file.Content[sp.Start:sp.End])
	}
	return file, out
}

func expectSplit(t *testing.T, src string, want []string) {
	t.Helper()
	_, got := splitSource(t, src)
	if len(got) != len(want) {
		t.Fatalf("expected %d statements, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("statement %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSplit_Lines(t *testing.T) {
	expectSplit(t, "val x = 1\nval y = x + 1\nprintln(y)", []string{
		"val x = 1",
		"val y = x + 1",
		"println(y)",
	})
}

func TestSplit_SemicolonsExcluded(t *testing.T) {
	// сам ';' в span не входит
	expectSplit(t, "val x = 1; val y = 2;", []string{
		"val x = 1",
		"val y = 2",
	})
}

func TestSplit_EmptyAndBlankLines(t *testing.T) {
	expectSplit(t, "\n\nval x = 1\n\n\nval y = 2\n", []string{
		"val x = 1",
		"val y = 2",
	})
	expectSplit(t, "", nil)
	expectSplit(t, ";;;\n;\n", nil)
}

func TestSplit_TrailingOperatorContinues(t *testing.T) {
	expectSplit(t, "val x = 1 +\n2", []string{"val x = 1 +\n2"})
	expectSplit(t, "val x = a &&\nb || c", []string{"val x = a &&\nb || c"})
}

func TestSplit_TrailingEqualsContinues(t *testing.T) {
	expectSplit(t, "val x =\n1 + 2", []string{"val x =\n1 + 2"})
}

func TestSplit_TrailingCommaAndArrowContinue(t *testing.T) {
	expectSplit(t, "fn add(a: Int,\nb: Int) ->\nInt = a + b", []string{
		"fn add(a: Int,\nb: Int) ->\nInt = a + b",
	})
}

func TestSplit_ParensSuppressNewlines(t *testing.T) {
	expectSplit(t, "val p = (1,\n2,\n3)\nval q = 4", []string{
		"val p = (1,\n2,\n3)",
		"val q = 4",
	})
}

func TestSplit_CloseParenEndsLine(t *testing.T) {
	// ')' закрывает строку: вызов на следующей строке — новый statement
	expectSplit(t, "println(1)\nprintln(2)", []string{
		"println(1)",
		"println(2)",
	})
}

func TestSplit_KeywordAloneContinues(t *testing.T) {
	expectSplit(t, "val\nx = 1", []string{"val\nx = 1"})
}

func TestSplit_BrokenCodeStillSplits(t *testing.T) {
	// лексические ошибки не мешают резке: statement с мусором остаётся
	// statement'ом
	_, got := splitSource(t, "val x = @\nval y = 2")
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
	}
	if got[1] != "val y = 2" {
		t.Fatalf("expected second statement intact, got %q", got[1])
	}
}

func TestSplit_SpansPointIntoFile(t *testing.T) {
	file, _ := splitSource(t, "val x = 1\nval y = 2")
	spans := SplitStatements(file)
	for i, sp := range spans {
		if sp.File != file.ID {
			t.Fatalf("span %d has file %d, expected %d", i, sp.File, file.ID)
		}
		if sp.Start >= sp.End || int(sp.End) > len(file.Content) {
			t.Fatalf("span %d out of bounds: %v", i, sp)
		}
	}
}
