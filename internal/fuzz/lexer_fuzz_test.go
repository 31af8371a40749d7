package fuzztests

import (
	"testing"

	"weave/internal/diag"
	"weave/internal/lexer"
	"weave/internal/source"
	"weave/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.wv", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
		prevEnd := uint32(0)
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if tok.Span.End < tok.Span.Start {
				t.Fatalf("inverted token span %v", tok.Span)
			}
			if tok.Span.Start < prevEnd {
				t.Fatalf("token span %v starts before previous token end %d", tok.Span, prevEnd)
			}
			if int(tok.Span.End) > len(file.Content) {
				t.Fatalf("token span %v ends past input of %d bytes", tok.Span, len(file.Content))
			}
			prevEnd = tok.Span.End
		}
	})
}
