// Package report exports render outcomes for external tooling.
//
// The export is strictly one-way: rendering never reads a report back
// to skip work. Schema versioning guards Read for the tools that do.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"weave/internal/instrument"
	"weave/internal/pipeline"
)

// Schema version; increment when the payload format changes.
const schemaVersion uint16 = 1

// Phase mirrors one timed pipeline phase.
type Phase struct {
	Name       string
	DurationMS float64
	Note       string
}

// Snippet describes one fence of a document and its rendered text.
type Snippet struct {
	Index      int
	Mode       string
	Info       string
	BodyStart  uint32
	BodyEnd    uint32
	Statements int
	// Rendered is the substituted body, binder and output lines
	// included; empty when the file's render degraded.
	Rendered string
}

// File describes one document's outcome.
type File struct {
	Path     string
	Failed   bool
	Changed  bool
	TotalMS  float64
	Phases   []Phase
	Snippets []Snippet
}

// Document is the top-level export payload.
type Document struct {
	Schema    uint16
	Tool      string
	CreatedAt time.Time
	Files     []File
}

// Build converts pipeline results into an export payload. Statement
// counts come from a lexical split, so they are available even for
// snippets that never compiled.
func Build(tool string, results []pipeline.FileResult) *Document {
	doc := &Document{
		Schema:    schemaVersion,
		Tool:      tool,
		CreatedAt: time.Now().UTC(),
		Files:     make([]File, 0, len(results)),
	}
	for _, r := range results {
		file := File{
			Path:    r.Path,
			Failed:  r.Failed,
			Changed: r.Changed,
			TotalMS: r.Timing.TotalMS,
		}
		for _, p := range r.Timing.Phases {
			file.Phases = append(file.Phases, Phase{Name: p.Name, DurationMS: p.DurationMS, Note: p.Note})
		}
		if r.Doc != nil {
			for i, b := range r.Doc.Blocks {
				sn := Snippet{
					Index:      b.Index,
					Mode:       b.Mode.String(),
					Info:       b.Info,
					BodyStart:  b.Body.Start,
					BodyEnd:    b.Body.End,
					Statements: len(instrument.SplitFragment(b.Input).Stmts),
				}
				if i < len(r.Texts) {
					sn.Rendered = r.Texts[i]
				}
				file.Snippets = append(file.Snippets, sn)
			}
		}
		doc.Files = append(doc.Files, file)
	}
	return doc
}

// Write serializes the payload and replaces path atomically, so a
// crashed export never leaves a truncated report behind.
func Write(path string, doc *Document) error {
	if doc == nil {
		return fmt.Errorf("report: nil document")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "weave-doc-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := msgpack.NewEncoder(tmp)
	if err := enc.Encode(doc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Read loads an exported payload. Schema mismatches are an error, not
// a silent best-effort decode.
func Read(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var doc Document
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Schema != schemaVersion {
		return nil, fmt.Errorf("report schema %d unsupported, want %d", doc.Schema, schemaVersion)
	}
	return &doc, nil
}

// IsNotExist reports whether err means the report file is absent.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
