package diag

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/minhtribui153/xlang/pkg/source"
)

type fakeFrame struct {
	name   string
	parent *fakeFrame
	entry  source.Position
}

func (f *fakeFrame) FrameName() string { return f.name }

func (f *fakeFrame) FrameParent() Frame {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

func (f *fakeFrame) EntryPosition() source.Position { return f.entry }

func spanOn(file *source.File, line, from, to int) source.Span {
	return source.Span{
		Start: source.Position{Line: line, Column: from, File: file},
		End:   source.Position{Line: line, Column: to, File: file},
	}
}

func TestErrorString(t *testing.T) {
	file := source.NewFile("main.x", "1 / 0")
	err := New(ZeroDivision, spanOn(file, 0, 4, 5), "Division by zero")
	if got := err.Error(); got != "main.x:1:5: ZeroDivisionError: Division by zero" {
		t.Fatalf("unexpected message %q", got)
	}
	if !err.Overwritable {
		t.Fatalf("expected fresh errors to be overwritable")
	}
	if err.Fixed().Overwritable {
		t.Fatalf("expected Fixed to clear the overwritable flag")
	}
}

func TestRenderSingleLine(t *testing.T) {
	file := source.NewFile("main.x", "1 / 0")
	err := New(ZeroDivision, spanOn(file, 0, 4, 5), "Division by zero")
	want := "main.x:1:5: ZeroDivisionError: Division by zero\n" +
		"▸    1 │ 1 / 0  \n" +
		"       │     ▴\n"
	if diff := cmp.Diff(want, Renderer{}.Render(err)); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderUnderlinesWideSpans(t *testing.T) {
	file := source.NewFile("main.x", "assign x = 1\nset x = 2")
	err := New(Runtime, spanOn(file, 1, 0, 9), "Cannot reassign to immutable var ident 'x'")
	out := Renderer{}.Render(err)
	if !strings.Contains(out, "▸    2 │ set x = 2\n") {
		t.Fatalf("expected covered line to be marked, got:\n%s", out)
	}
	if !strings.Contains(out, "       │ ~~~~~~~~~\n") {
		t.Fatalf("expected a nine column underline, got:\n%s", out)
	}
	if !strings.Contains(out, "     1 │ assign x = 1\n") {
		t.Fatalf("expected the preceding line as context, got:\n%s", out)
	}
}

func TestExcerptWindow(t *testing.T) {
	file := source.NewFile("w.x", "a\nb\nc\nd\ne\nf\ng\nh")
	out := Renderer{}.Excerpt(file.Text, spanOn(file, 3, 0, 1))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	// lines 1..6 plus one marker row
	if len(lines) != 7 {
		t.Fatalf("expected 7 rows, got %d:\n%s", len(lines), out)
	}
	if strings.Contains(out, "│ g") || strings.Contains(out, "│ h") {
		t.Fatalf("expected window to stop before line 7, got:\n%s", out)
	}
}

func TestRenderTraceback(t *testing.T) {
	file := source.NewFile("main.x", "func f() => 1 / 0\nf()")
	root := &fakeFrame{name: "<program>"}
	inner := &fakeFrame{name: "f", parent: root, entry: source.Position{Line: 1, Column: 0, File: file}}
	err := New(ZeroDivision, spanOn(file, 0, 16, 17), "Division by zero").In(inner)

	out := Renderer{}.Render(err)
	wantPrefix := "-------- Traceback (most recent call last)\n" +
		"    At f -> File main.x (1:17)\n" +
		"    At <program> -> File main.x (2:1)\n" +
		"-------- End of Traceback\n\n" +
		"main.x:1:17: ZeroDivisionError: Division by zero\n"
	if !strings.HasPrefix(out, wantPrefix) {
		t.Fatalf("unexpected traceback:\n%s", out)
	}
}

func TestRenderWithoutParentFrameSkipsTraceback(t *testing.T) {
	file := source.NewFile("main.x", "x")
	err := New(Runtime, spanOn(file, 0, 0, 1), "Ident 'x' is not defined").In(&fakeFrame{name: "<program>"})
	if strings.Contains(Renderer{}.Render(err), "Traceback") {
		t.Fatalf("expected no traceback for a root frame error")
	}
}

func TestBlankHighlightIsNotColored(t *testing.T) {
	file := source.NewFile("main.x", "x =   ")
	err := New(InvalidSyntax, spanOn(file, 0, 3, 5), "Expected value")
	out := Renderer{Color: true}.Excerpt(file.Text, err.Span)
	if strings.Contains(out, ansiHighlight) {
		t.Fatalf("expected whitespace highlight to be dropped, got %q", out)
	}
}
