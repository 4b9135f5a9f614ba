package lexer

import (
	"fmt"
	"strconv"

	"github.com/minhtribui153/xlang/pkg/source"
)

// Kind classifies a token.
type Kind string

const (
	Int      Kind = "int"
	Float    Kind = "float"
	Bool     Kind = "bool"
	String   Kind = "string"
	Keyword  Kind = "keyword"
	Ident    Kind = "id"
	Op       Kind = "op"
	SyntaxOp Kind = "syntax_op"
	Cond     Kind = "cond"
	Newline  Kind = "newline"
	EOF      Kind = "eof"
)

// Keywords lists every reserved word.
var Keywords = map[string]bool{
	"assign":   true,
	"mut":      true,
	"set":      true,
	"if":       true,
	"then":     true,
	"else":     true,
	"for":      true,
	"foreach":  true,
	"while":    true,
	"switch":   true,
	"case":     true,
	"default":  true,
	"return":   true,
	"continue": true,
	"break":    true,
	"step":     true,
	"from":     true,
	"func":     true,
	"void":     true,
	"instof":   true,
	"end":      true,
}

// Token is one lexical unit. Int and Float carry decoded numeric payloads.
type Token struct {
	Kind    Kind        `json:"kind"`
	Literal string      `json:"literal,omitempty"`
	Int     int32       `json:"-"`
	Float   float32     `json:"-"`
	Span    source.Span `json:"span"`
}

// Matches reports whether the token has the given kind and literal.
func (t Token) Matches(kind Kind, literal string) bool {
	return t.Kind == kind && t.Literal == literal
}

// IsKeyword reports whether the token is the named keyword.
func (t Token) IsKeyword(word string) bool {
	return t.Matches(Keyword, word)
}

// IsOp reports whether the token is the given single-character operator.
func (t Token) IsOp(op string) bool {
	return t.Matches(Op, op)
}

func (t Token) String() string {
	span := fmt.Sprintf("%d:%d", t.Span.Start.Index, t.Span.End.Index)
	switch t.Kind {
	case EOF:
		return fmt.Sprintf("[%s | %s]", t.Kind, span)
	case String:
		return fmt.Sprintf("[%s: %s | %s]", t.Kind, strconv.Quote(t.Literal), span)
	case Op, Newline:
		return fmt.Sprintf("[%s: %q | %s]", t.Kind, []rune(t.Literal)[0], span)
	default:
		return fmt.Sprintf("[%s: %s | %s]", t.Kind, t.Literal, span)
	}
}
