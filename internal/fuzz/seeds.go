package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, потолок размера одного сида
)

// addCorpusSeeds seeds the corpus for the lexer and parser fuzzers with
// snippet-level sources.
func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	// минимальные примеры на случай пустого testdata
	f.Add([]byte{})
	f.Add([]byte("val x = 1\n"))
	f.Add([]byte("fn inc(n: Int) -> Int = n + 1\n"))
}

// addTestdataSeeds walks the repository testdata tree and adds every
// snippet library file plus the body of every snippet fence found in
// the sample documents.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		switch filepath.Ext(path) {
		case ".wv":
			f.Add(clampSeed(src))
		case ".md", ".markdown":
			for _, snippet := range fencedSnippets(src) {
				f.Add(clampSeed(snippet))
			}
		}
		return nil
	})
}

// addDocumentSeeds seeds the corpus for the document scanner fuzzer
// with whole markdown files.
func addDocumentSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err == nil {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil || d.IsDir() {
				return nil
			}
			ext := filepath.Ext(path)
			if ext != ".md" && ext != ".markdown" {
				return nil
			}
			// #nosec G304 -- path comes from repository testdata walk
			src, err := os.ReadFile(path)
			if err != nil {
				return nil
			}
			f.Add(clampSeed(src))
			return nil
		})
	}
	f.Add([]byte{})
	f.Add([]byte("# Title\n\n```weave\nval x = 1\n```\n"))
	f.Add([]byte("```weave:fail\nval x: Int = \"s\"\n```\n"))
	f.Add([]byte("~~~weave\nprintln(\"hi\")\n~~~\n"))
	f.Add([]byte("````md\n```weave\nnot a snippet\n```\n````\n"))
	f.Add([]byte("```weave\nnever closed\n"))
}

// fencedSnippets extracts the bodies of ```weave fences, including mode
// suffixes like ```weave:fail, from a markdown document.
func fencedSnippets(data []byte) [][]byte {
	var out [][]byte
	lines := bytes.Split(data, []byte{'\n'})
	var block [][]byte
	inSnippet := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(string(line))
		if !inSnippet && strings.HasPrefix(trimmed, "```weave") {
			inSnippet = true
			block = block[:0]
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			if inSnippet {
				snippet := bytes.Join(block, []byte{'\n'})
				if len(snippet) > 0 {
					out = append(out, snippet)
				}
			}
			inSnippet = false
			block = block[:0]
			continue
		}
		if inSnippet {
			// строки сохраняются как есть, вместе с отступами
			block = append(block, line)
		}
	}
	return out
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
