package source

import "fmt"

// Span is a half-open byte range [Start, End) inside one file. Only tokens
// carry spans; tree nodes keep lines.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}
