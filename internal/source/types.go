package source

import "fmt"

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Pos is a resolved diagnostic position. Col is 0 when only the line is known
// (nodes built through the tree API carry lines, not byte offsets).
type Pos struct {
	File FileID
	Line uint32
	Col  uint32
}

// AtLine returns a position that only knows its line.
func AtLine(file FileID, line uint32) Pos {
	return Pos{File: file, Line: line}
}

func (p Pos) IsValid() bool {
	return p.Line != 0
}

func (p Pos) String() string {
	if p.Col == 0 {
		return fmt.Sprintf("%d:%d", p.File, p.Line)
	}
	return fmt.Sprintf("%d:%d:%d", p.File, p.Line, p.Col)
}
