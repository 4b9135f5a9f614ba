package source

import "fmt"

// File is a named unit of source text.
type File struct {
	Name string
	Text string
}

// NewFile wraps text under the given display name.
func NewFile(name, text string) *File {
	return &File{Name: name, Text: text}
}

// Position is a rune offset with its zero-based line and column.
type Position struct {
	Index  int   `json:"index"`
	Line   int   `json:"line"`
	Column int   `json:"column"`
	File   *File `json:"-"`
}

// Start returns the position of the first rune of f.
func Start(f *File) Position {
	return Position{File: f}
}

// Advance returns the position following ch.
func (p Position) Advance(ch rune) Position {
	p.Index++
	p.Column++
	if ch == '\n' {
		p.Line++
		p.Column = 0
	}
	return p
}

// FileName returns the owning file's name, or "<unknown>".
func (p Position) FileName() string {
	if p.File == nil {
		return "<unknown>"
	}
	return p.File.Name
}

// String renders the position as name:line:col with one-based coordinates.
func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.FileName(), p.Line+1, p.Column+1)
}

// Span is a half-open range between two positions.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewSpan builds a span from start to end.
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// Cover returns the smallest span containing both a and b.
func Cover(a, b Span) Span {
	out := a
	if b.Start.Index < out.Start.Index {
		out.Start = b.Start
	}
	if b.End.Index > out.End.Index {
		out.End = b.End
	}
	return out
}
