package fuzztests

import (
	"testing"

	"weave/internal/diag"
	"weave/internal/docscan"
	"weave/internal/instrument"
	"weave/internal/source"
)

// FuzzDocScan feeds arbitrary markdown to the document scanner and
// checks the slicing invariants the rest of the pipeline relies on:
// blocks stay in document order, bodies stay inside the document, and
// an all-degraded substitution reproduces the input byte for byte.
func FuzzDocScan(f *testing.F) {
	addDocumentSeeds(f)
	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > maxFuzzInput {
			data = append([]byte(nil), data[:maxFuzzInput]...)
		} else {
			data = append([]byte(nil), data...)
		}

		input := source.NewFileInput("fuzz.md", string(data))
		bag := diag.NewBag(64)
		doc, err := docscan.Scan(input, docscan.Options{Reporter: &diag.BagReporter{Bag: bag}})
		if err != nil {
			t.Fatalf("scan: %v", err)
		}

		text := input.Text()
		prevEnd := uint32(0)
		for i, b := range doc.Blocks {
			if b.Index != i {
				t.Fatalf("block %d carries index %d", i, b.Index)
			}
			if b.Body.End < b.Body.Start || int(b.Body.End) > len(text) {
				t.Fatalf("block %d body %v out of bounds for %d bytes", i, b.Body, len(text))
			}
			if b.Body.Start < prevEnd {
				t.Fatalf("block %d body %v overlaps previous block", i, b.Body)
			}
			if b.Input.Text() != text[b.Body.Start:b.Body.End] {
				t.Fatalf("block %d input does not slice the document body", i)
			}
			prevEnd = b.Body.End

			// сплиттер обязан переварить текст любого фенса
			_ = instrument.SplitFragment(b.Input)
		}

		rendered := make([]string, len(doc.Blocks))
		out, err := docscan.Substitute(doc, rendered)
		if err != nil {
			t.Fatalf("substitute: %v", err)
		}
		if out != text {
			t.Fatalf("all-degraded substitution changed the document:\nin:  %q\nout: %q",
				truncateForLog([]byte(text), 200), truncateForLog([]byte(out), 200))
		}
	})
}
