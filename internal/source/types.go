package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

// NoFileID is the reserved FileID 0; it never refers to real content.
const NoFileID FileID = 0

const (
	// FileVirtual indicates the file was added from memory (snippet, library text, test).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
// LineIdx holds the byte offset of every '\n' in Content, ascending.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
// Columns count bytes, not runes.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

func (f *File) Virtual() bool {
	return f.Flags&FileVirtual != 0
}

// GetLine returns the text of the 1-based line without its trailing newline.
// Out-of-range lines yield "".
func (f *File) GetLine(line uint32) string {
	if line == 0 {
		return ""
	}
	var start uint32
	if line > 1 {
		idx := line - 2
		if idx >= uint32(len(f.LineIdx)) {
			return ""
		}
		start = f.LineIdx[idx] + 1
	}
	end := uint32(len(f.Content))
	if line-1 < uint32(len(f.LineIdx)) {
		end = f.LineIdx[line-1]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}
