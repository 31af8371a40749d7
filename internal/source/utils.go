package source

import (
	"path/filepath"
	"slices"
	"sort"
)

// normalizeCRLF replaces every \r\n with \n, leaving lone \r untouched.
// Returns the result and whether any replacement happened.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol resolves a byte offset into a 1-based line/column pair.
// A newline byte itself belongs to the line it terminates.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// number of newlines strictly before off
	n := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	var lineStart uint32
	if n > 0 {
		lineStart = lineIdx[n-1] + 1
	}
	return LineCol{Line: uint32(n) + 1, Col: off - lineStart + 1}
}

// offsetOfLineCol is the inverse of toLineCol: it turns a 1-based
// line/column pair into a byte offset, clamped to contentLen.
func offsetOfLineCol(lineIdx []uint32, contentLen uint32, lc LineCol) uint32 {
	if lc.Line == 0 || lc.Col == 0 {
		return 0
	}
	var lineStart uint32
	if lc.Line > 1 {
		idx := lc.Line - 2
		if idx >= uint32(len(lineIdx)) {
			return contentLen
		}
		lineStart = lineIdx[idx] + 1
	}
	off := lineStart + lc.Col - 1
	if off > contentLen {
		off = contentLen
	}
	return off
}

func normalizePath(p string) string {
	// one canonical spelling for cross-platform diffs
	return filepath.ToSlash(filepath.Clean(p))
}
