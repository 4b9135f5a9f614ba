package lexer

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/minhtribui153/xlang/pkg/diag"
	"github.com/minhtribui153/xlang/pkg/source"
)

const (
	digits    = "0123456789"
	letters   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	identTail = letters + "&_|" + digits
	operators = "+-*/^%()[]{}=<>!&|:,\"."
)

var escapes = map[rune]rune{'n': '\n', 't': '\t', 'r': '\r', 'v': '\v'}

type lexer struct {
	file *source.File
	text []rune
	pos  source.Position
	ch   rune
	done bool
}

// Tokenize splits text into tokens terminated by a single EOF token.
func Tokenize(name, text string) ([]Token, error) {
	toks, err := TokenizeFile(source.NewFile(name, text))
	if err != nil {
		return nil, err
	}
	return toks, nil
}

// TokenizeFile is Tokenize over an existing file handle.
func TokenizeFile(file *source.File) ([]Token, *diag.Error) {
	l := &lexer{file: file, text: []rune(file.Text), pos: source.Start(file)}
	l.load()
	return l.run()
}

func (l *lexer) load() {
	if l.pos.Index < len(l.text) {
		l.ch = l.text[l.pos.Index]
		l.done = false
		return
	}
	l.ch = 0
	l.done = true
}

func (l *lexer) advance() {
	l.pos = l.pos.Advance(l.ch)
	l.load()
}

func (l *lexer) single(kind Kind, literal string) Token {
	start := l.pos
	l.advance()
	return Token{Kind: kind, Literal: literal, Span: source.NewSpan(start, l.pos)}
}

func (l *lexer) run() ([]Token, *diag.Error) {
	var toks []Token
	for !l.done {
		switch ch := l.ch; {
		case ch == ' ' || ch == '\t':
			l.advance()
		case ch == ';' || ch == '\n':
			toks = append(toks, l.single(Newline, string(ch)))
		case strings.ContainsRune(digits, ch):
			tok, err := l.number()
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		case strings.ContainsRune(letters, ch):
			toks = append(toks, l.identifier())
		case ch == '"':
			tok, err := l.str()
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		case ch == '!':
			toks = append(toks, l.probe("!", map[rune]Kind{'=': Cond}))
		case ch == '=':
			toks = append(toks, l.probe("=", map[rune]Kind{'=': Cond, '>': SyntaxOp}))
		case ch == '<':
			toks = append(toks, l.probe("<", map[rune]Kind{'=': Cond}))
		case ch == '>':
			toks = append(toks, l.probe(">", map[rune]Kind{'=': Cond}))
		case ch == '/':
			tok, err := l.slash()
			if err != nil {
				return nil, err
			}
			if tok != nil {
				toks = append(toks, *tok)
			}
		case strings.ContainsRune(operators, ch):
			toks = append(toks, l.single(Op, string(ch)))
		default:
			start := l.pos
			l.advance()
			return nil, diag.New(diag.IllegalCharacter, source.NewSpan(start, l.pos), "Illegal character '%c'", ch).Fixed()
		}
	}
	end := l.pos.Advance(0)
	toks = append(toks, Token{Kind: EOF, Span: source.NewSpan(l.pos, end)})
	return toks, nil
}

// probe emits first alone, or first plus the next rune when that rune is a
// listed continuation.
func (l *lexer) probe(first string, next map[rune]Kind) Token {
	start := l.pos
	l.advance()
	if kind, ok := next[l.ch]; ok && !l.done {
		literal := first + string(l.ch)
		l.advance()
		return Token{Kind: kind, Literal: literal, Span: source.NewSpan(start, l.pos)}
	}
	return Token{Kind: Op, Literal: first, Span: source.NewSpan(start, l.pos)}
}

func (l *lexer) number() (Token, *diag.Error) {
	start := l.pos
	var b strings.Builder
	dots := 0
	for !l.done && (strings.ContainsRune(digits, l.ch) || l.ch == '.') {
		if l.ch == '.' {
			if dots == 1 {
				break
			}
			dots++
		}
		b.WriteRune(l.ch)
		l.advance()
	}
	literal := b.String()
	span := source.NewSpan(start, l.pos)

	if dots == 0 {
		n, _ := new(big.Int).SetString(literal, 10)
		if n.Cmp(big.NewInt(math.MaxInt32)) > 0 {
			return Token{}, diag.New(diag.Overflow, span, "Integer literal '%s' cannot be held by int type", literal).Fixed()
		}
		return Token{Kind: Int, Literal: literal, Int: int32(n.Int64()), Span: span}, nil
	}
	f, err := strconv.ParseFloat(literal, 32)
	if err != nil {
		return Token{}, diag.New(diag.Overflow, span, "Float literal '%s' cannot be held by float type", literal).Fixed()
	}
	return Token{Kind: Float, Literal: literal, Float: float32(f), Span: span}, nil
}

func (l *lexer) identifier() Token {
	start := l.pos
	var b strings.Builder
	for !l.done && strings.ContainsRune(identTail, l.ch) {
		b.WriteRune(l.ch)
		l.advance()
	}
	word := b.String()
	kind := Ident
	switch {
	case Keywords[word]:
		kind = Keyword
	case word == "true" || word == "false":
		kind = Bool
	}
	return Token{Kind: kind, Literal: word, Span: source.NewSpan(start, l.pos)}
}

func (l *lexer) str() (Token, *diag.Error) {
	start := l.pos
	l.advance()
	var b strings.Builder
	escaped := false
	for !l.done && (l.ch != '"' || escaped) {
		switch {
		case escaped:
			if mapped, ok := escapes[l.ch]; ok {
				b.WriteRune(mapped)
			} else {
				b.WriteRune(l.ch)
			}
			escaped = false
		case l.ch == '\\':
			escaped = true
		default:
			b.WriteRune(l.ch)
		}
		l.advance()
	}
	if l.done {
		end := l.pos
		end.Column++
		return Token{}, diag.New(diag.InvalidSyntax, source.NewSpan(l.pos, end), "Unexpected EOF while scanning string literal").Fixed()
	}
	l.advance()
	return Token{Kind: String, Literal: b.String(), Span: source.NewSpan(start, l.pos)}, nil
}

// slash handles '/', line comments and block comments. A nil token means a
// comment was skipped.
func (l *lexer) slash() (*Token, *diag.Error) {
	start := l.pos
	l.advance()
	switch {
	case !l.done && l.ch == '/':
		for !l.done && l.ch != '\n' {
			l.advance()
		}
		return nil, nil
	case !l.done && l.ch == '*':
		l.advance()
		for !l.done {
			if l.ch == '*' {
				l.advance()
				if !l.done && l.ch == '/' {
					l.advance()
					return nil, nil
				}
				continue
			}
			l.advance()
		}
		return nil, diag.New(diag.InvalidSyntax, source.NewSpan(start, l.pos), "Unexpected EOF while scanning multi-line comment, expected ending token '*/'").Fixed()
	}
	tok := Token{Kind: Op, Literal: "/", Span: source.NewSpan(start, l.pos)}
	return &tok, nil
}
