package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet manages a collection of tuple scripts and resolves spans to
// line/column positions.
type FileSet struct {
	files []File
	index map[string]FileID // normalized path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a file from normalized bytes, computes LineIdx and Hash, and
// returns a new FileID. A later Add with the same path shadows the earlier
// entry in the path index.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalized := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	fs.index[normalized] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// GetByPath returns the latest *File for a path, if loaded.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fs.index[normalizePath(path)]; ok {
		return &fs.files[id], true
	}
	return nil, false
}

// Len returns the number of files in the set.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Resolve converts a span into start and end line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// LineContent returns the raw bytes of a 1-based line, without the trailing
// newline. Used by diagnostic rendering.
func (fs *FileSet) LineContent(id FileID, line uint32) []byte {
	f := fs.files[id]
	if line == 0 {
		return nil
	}
	var start uint32
	if line > 1 {
		if int(line-2) >= len(f.LineIdx) {
			return nil
		}
		start = f.LineIdx[line-2] + 1
	}
	end := uint32(len(f.Content))
	if int(line-1) < len(f.LineIdx) {
		end = f.LineIdx[line-1]
	}
	if start > end {
		return nil
	}
	return f.Content[start:end]
}
