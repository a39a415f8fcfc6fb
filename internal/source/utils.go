package source

import (
	"path/filepath"
	"slices"
)

// normalizeCRLF replaces every \r\n with \n, leaving lone \r alone.
// Reports whether at least one replacement happened.
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

// buildLineIndex records the byte offset of every '\n'.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// Binary search: number of newlines strictly before off.
	// The newline byte itself still belongs to the line it terminates.
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	before := lo

	if before == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	startOff := lineIdx[before-1] + 1
	return LineCol{Line: uint32(before + 1), Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// One canonical form for cross-platform diffs.
	return filepath.ToSlash(filepath.Clean(p))
}
