package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"weave/internal/diag"
	"weave/internal/instrument"
	"weave/internal/source"
)

// prelude is library code prepended to every rendered program,
// uninstrumented: its statements produce no sections and its prints
// belong to no statement.
type prelude struct {
	text  string
	names []string
}

// LoadLibrary reads every *.wv file under dir, in name order, and makes
// their definitions visible to all snippets of later renders. Library
// names are reserved so synthesized binder names never collide with
// them. A library file that does not parse is an error right here, not
// at render time.
func (e *Engine) LoadLibrary(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read library dir: %w", err)
	}

	var sb strings.Builder
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".wv") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read library file: %w", err)
		}

		input := source.NewFileInput(path, string(data))
		bag := diag.NewBag(16)
		frag, ok := instrument.ParseFragment(input, &diag.BagReporter{Bag: bag})
		if !ok {
			e.logSnippetDiagnostics(input, bag)
			return fmt.Errorf("%w: library file %s", ErrSnippetParse, path)
		}

		names = frag.DeclaredNames(names)
		sb.WriteString(input.Text())
		if t := input.Text(); t != "" && !strings.HasSuffix(t, "\n") {
			sb.WriteByte('\n')
		}
	}

	e.prelude = prelude{text: sb.String(), names: names}
	return nil
}
