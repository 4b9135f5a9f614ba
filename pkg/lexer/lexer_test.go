package lexer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/minhtribui153/xlang/pkg/diag"
)

type lexeme struct {
	Kind    Kind
	Literal string
}

func lexemes(t *testing.T, src string) []lexeme {
	t.Helper()
	toks, err := Tokenize("<test>", src)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	out := make([]lexeme, len(toks))
	for i, tok := range toks {
		out[i] = lexeme{tok.Kind, tok.Literal}
	}
	return out
}

func lexError(t *testing.T, src string) *diag.Error {
	t.Helper()
	_, err := Tokenize("<test>", src)
	var d *diag.Error
	if !errors.As(err, &d) {
		t.Fatalf("expected diagnostic for %q, got %v", src, err)
	}
	return d
}

func TestTokenizeDeclaration(t *testing.T) {
	got := lexemes(t, "assign mut x: int = 12; set x = x + 1.5")
	want := []lexeme{
		{Keyword, "assign"}, {Keyword, "mut"}, {Ident, "x"}, {Op, ":"}, {Ident, "int"}, {Op, "="}, {Int, "12"},
		{Newline, ";"},
		{Keyword, "set"}, {Ident, "x"}, {Op, "="}, {Ident, "x"}, {Op, "+"}, {Float, "1.5"},
		{EOF, ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeComparisonProbes(t *testing.T) {
	got := lexemes(t, "a == b != c <= d >= e < f > g => !h = i")
	want := []lexeme{
		{Ident, "a"}, {Cond, "=="}, {Ident, "b"}, {Cond, "!="}, {Ident, "c"}, {Cond, "<="}, {Ident, "d"},
		{Cond, ">="}, {Ident, "e"}, {Op, "<"}, {Ident, "f"}, {Op, ">"}, {Ident, "g"}, {SyntaxOp, "=>"},
		{Op, "!"}, {Ident, "h"}, {Op, "="}, {Ident, "i"}, {EOF, ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestIdentifierAbsorbsLogicalCharacters(t *testing.T) {
	got := lexemes(t, "a&b c | d true")
	want := []lexeme{{Ident, "a&b"}, {Ident, "c"}, {Op, "|"}, {Ident, "d"}, {Bool, "true"}, {EOF, ""}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestNumberPayloads(t *testing.T) {
	toks, err := Tokenize("<test>", "2147483647 3.25 1.2.3")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Int != 2147483647 {
		t.Fatalf("expected max int payload, got %d", toks[0].Int)
	}
	if toks[1].Float != 3.25 {
		t.Fatalf("expected 3.25, got %v", toks[1].Float)
	}
	// a second dot ends the number and lexes as an operator
	if toks[2].Literal != "1.2" || !toks[3].IsOp(".") || toks[4].Literal != "3" {
		t.Fatalf("unexpected split of 1.2.3: %v", toks[2:5])
	}
}

func TestIntegerOverflow(t *testing.T) {
	err := lexError(t, "assign x = 2147483648")
	if err.Kind != diag.Overflow {
		t.Fatalf("expected overflow, got %s", err.Kind)
	}
	if err.Span.Start.Column != 11 || err.Span.End.Column != 21 {
		t.Fatalf("expected literal span 11..21, got %d..%d", err.Span.Start.Column, err.Span.End.Column)
	}
}

func TestStringEscapes(t *testing.T) {
	toks, err := Tokenize("<test>", `"a\tb\"c\qd\n"`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Kind != String || toks[0].Literal != "a\tb\"cqd\n" {
		t.Fatalf("unexpected string token %#v", toks[0])
	}
}

func TestUnterminatedString(t *testing.T) {
	err := lexError(t, `"abc`)
	if err.Kind != diag.InvalidSyntax || err.Message != "Unexpected EOF while scanning string literal" {
		t.Fatalf("unexpected error %v", err)
	}
	if err.Span.Start.Index != 4 {
		t.Fatalf("expected error at end of input, got index %d", err.Span.Start.Index)
	}
}

func TestComments(t *testing.T) {
	got := lexemes(t, "1 // note\n2 /* block\n * still */ 3 / 4")
	want := []lexeme{{Int, "1"}, {Newline, "\n"}, {Int, "2"}, {Int, "3"}, {Op, "/"}, {Int, "4"}, {EOF, ""}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	err := lexError(t, "1 /* open")
	if err.Kind != diag.InvalidSyntax {
		t.Fatalf("expected invalid syntax, got %s", err.Kind)
	}
}

func TestIllegalCharacter(t *testing.T) {
	err := lexError(t, "assign x = 1 # 2")
	if err.Kind != diag.IllegalCharacter || err.Message != "Illegal character '#'" {
		t.Fatalf("unexpected error %v", err)
	}
	if err.Span.Start.Column != 13 {
		t.Fatalf("expected column 13, got %d", err.Span.Start.Column)
	}
}

func TestPositionsTrackLines(t *testing.T) {
	toks, err := Tokenize("<test>", "a\n  b")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	b := toks[2]
	if b.Span.Start.Line != 1 || b.Span.Start.Column != 2 {
		t.Fatalf("expected b at 1:2, got %d:%d", b.Span.Start.Line, b.Span.Start.Column)
	}
}

func TestTokenString(t *testing.T) {
	toks, err := Tokenize("<test>", `x + "s"`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	got := []string{toks[0].String(), toks[1].String(), toks[2].String(), toks[3].String()}
	want := []string{"[id: x | 0:1]", "[op: '+' | 2:3]", `[string: "s" | 4:7]`, "[eof | 7:8]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("string mismatch (-want +got):\n%s", diff)
	}
}
