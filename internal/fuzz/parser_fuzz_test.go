package fuzztests

import (
	"testing"
	"time"

	"weave/internal/diag"
	"weave/internal/lexer"
	"weave/internal/parser"
	"weave/internal/source"
	"weave/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
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

		bag := diag.NewBag(128)
		reporter := &diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})

		res := parser.ParseFile(fs, lx, parser.Options{
			Reporter:  reporter,
			MaxErrors: 128,
		})
		if err := testkit.CheckSpanInvariants(res.File, file); err != nil {
			t.Fatalf("span invariants violated: %v\ninput (%d bytes): %q",
				err, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// It uses a timeout to detect infinite loops that could be caused by
// malformed input or edge cases in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// Recovery and statement-splitting paths that are easy to get stuck in
	f.Add([]byte("val x = 1 val y = 2"))    // missing break between statements
	f.Add([]byte("val x = 1 +"))            // continuation operator at end of input
	f.Add([]byte("val s = \"never closed")) // unterminated string
	f.Add([]byte("fn f(a: Int"))            // unclosed parameter list
	f.Add([]byte("val x = ((((((((((1"))    // deeply nested parens
	f.Add([]byte("val x = a ? b"))          // ternary missing its colon
	f.Add([]byte(";;;;;;;;"))               // separator storm

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		// Run the parser in a goroutine so a hang can be detected
		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			fileID := fs.AddVirtual("fuzz.wv", input)
			file := fs.Get(fileID)

			bag := diag.NewBag(128)
			reporter := &diag.BagReporter{Bag: bag}
			lx := lexer.New(file, lexer.Options{Reporter: reporter})

			_ = parser.ParseFile(fs, lx, parser.Options{
				Reporter:  reporter,
				MaxErrors: 128,
			})
		}()

		select {
		case <-done:
			// Parser completed in time
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen], []byte("...")...)
}
