package diag

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/minhtribui153/xlang/pkg/source"
)

const (
	ansiFail      = "\x1b[91m"
	ansiInfo      = "\x1b[34m"
	ansiReset     = "\x1b[0m"
	ansiBold      = "\x1b[1m"
	ansiUnderline = "\x1b[4m"
	ansiHighlight = "\x1b[101m"
)

// Renderer formats errors as a traceback followed by a source excerpt.
type Renderer struct {
	Color bool
}

func (r Renderer) paint(code, text string) string {
	if !r.Color {
		return text
	}
	return code + text + ansiReset
}

// Render returns the full multi-line diagnostic for err.
func (r Renderer) Render(err *Error) string {
	var b strings.Builder
	if err.HasTraceback() {
		b.WriteString(r.traceback(err))
	}
	start := err.Span.Start
	header := fmt.Sprintf("%s:%d:%d:", start.FileName(), start.Line+1, start.Column+1)
	if r.Color {
		header = ansiInfo + ansiBold + header + ansiReset
	}
	b.WriteString(header)
	b.WriteString(" ")
	b.WriteString(r.paint(ansiFail, string(err.Kind)+":"))
	b.WriteString(" ")
	b.WriteString(err.Message)
	b.WriteString("\n")
	text := ""
	if start.File != nil {
		text = start.File.Text
	}
	b.WriteString(r.Excerpt(text, err.Span))
	return b.String()
}

func (r Renderer) traceback(err *Error) string {
	var b strings.Builder
	b.WriteString(r.paint(ansiFail, "-------- Traceback (most recent call last)"))
	b.WriteString("\n")
	pos := err.Span.Start
	for frame := err.Frame; frame != nil; frame = frame.FrameParent() {
		fmt.Fprintf(&b, "    At %s -> File %s (%d:%d)\n", frame.FrameName(), r.paint(ansiUnderline, pos.FileName()), pos.Line+1, pos.Column+1)
		pos = frame.EntryPosition()
	}
	b.WriteString(r.paint(ansiFail, "-------- End of Traceback"))
	b.WriteString("\n\n")
	return b.String()
}

// Excerpt renders the lines around span with the covered columns marked.
func (r Renderer) Excerpt(text string, span source.Span) string {
	lines := strings.Split(text+"  ", "\n")
	first, last := span.Start.Line+1, span.End.Line+1
	covered := last - first + 1
	if covered < 0 {
		covered = 0
	}

	var b strings.Builder
	for _, n := range windowLines(last, len(lines), covered+2) {
		line := []rune(strings.ReplaceAll(lines[n-1], "\t", ""))
		if n < first || n > last {
			fmt.Fprintf(&b, " %5d │ %s\n", n, string(line))
			continue
		}
		colStart, colEnd := 0, len(line)-1
		if n == first {
			colStart = tabless(lines[n-1], span.Start.Column)
		}
		if n == last {
			colEnd = tabless(lines[n-1], span.End.Column)
		}
		b.WriteString(r.paint(ansiFail, "▸"))
		fmt.Fprintf(&b, "%5d │ ", n)
		if colStart >= 0 && colStart <= colEnd && colEnd < len(line) {
			before, segment, after := string(line[:colStart]), string(line[colStart:colEnd]), string(line[colEnd:])
			if blank(segment) || !r.Color {
				b.WriteString(before + segment + after)
			} else {
				b.WriteString(before + ansiHighlight + segment + ansiReset + after)
			}
		} else {
			b.WriteString(string(line))
		}
		b.WriteString("\n")
		b.WriteString("       │ ")
		b.WriteString(r.marker(line, colStart, colEnd))
		b.WriteString("\n")
	}
	return b.String()
}

func (r Renderer) marker(line []rune, colStart, colEnd int) string {
	offset, width := colStart, colEnd-colStart
	if colStart >= 0 && colStart <= len(line) {
		offset = runewidth.StringWidth(string(line[:colStart]))
		if colEnd >= colStart && colEnd <= len(line) {
			width = runewidth.StringWidth(string(line[colStart:colEnd]))
		}
	}
	if offset < 0 {
		offset = 0
	}
	mark := "▴"
	if width > 1 {
		mark = strings.Repeat("~", width)
	}
	return strings.Repeat(" ", offset) + r.paint(ansiFail, mark)
}

// windowLines returns the one-based line numbers shown around line.
func windowLines(line, count, radius int) []int {
	if count == 1 {
		return []int{1}
	}
	var out []int
	for i := line - radius; i < line+radius; i++ {
		if i <= 0 || i > count {
			continue
		}
		out = append(out, i)
	}
	return out
}

// tabless maps a rune column in raw to its column once tabs are stripped.
func tabless(raw string, column int) int {
	out := column
	for i, ch := range []rune(raw) {
		if i >= column {
			break
		}
		if ch == '\t' {
			out--
		}
	}
	return out
}

func blank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
