package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// File captures the content of a single source file together with the line
// index used to resolve byte offsets into human-readable positions.
type File struct {
	Path    string
	Content []byte
	LineIdx []uint32
}

// LineCol is a 1-based position in a source file.
type LineCol struct {
	Line uint32
	Col  uint32
}

// New builds a File from already-normalized content.
func New(path string, content []byte) *File {
	return &File{
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
	}
}

// Load reads a file from disk, normalizes CRLF/BOM, and builds the line index.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content, _ = removeBOM(content)
	content, _ = normalizeCRLF(content)
	return New(path, content), nil
}

// Resolve converts a byte offset into line and column positions.
func (f *File) Resolve(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Line returns the text of the given 1-based line, without the trailing
// newline. Lines outside the file resolve to the empty string.
func (f *File) Line(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}

	return string(f.Content[start:end])
}
