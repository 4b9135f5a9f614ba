package parser

import (
	"github.com/minhtribui153/xlang/pkg/ast"
	"github.com/minhtribui153/xlang/pkg/diag"
	"github.com/minhtribui153/xlang/pkg/lexer"
	"github.com/minhtribui153/xlang/pkg/source"
)

// Parser is a cursor over a token slice ending in an EOF token.
type Parser struct {
	tokens []lexer.Token
	index  int
	tok    lexer.Token
}

// New returns a parser positioned on the first token.
func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lexer.EOF {
		var end source.Position
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].Span.End
		}
		tokens = append(tokens, lexer.Token{Kind: lexer.EOF, Span: source.NewSpan(end, end)})
	}
	p := &Parser{tokens: tokens, index: -1}
	p.advance()
	return p
}

// Parse turns a token stream into the program block.
func Parse(tokens []lexer.Token) (*ast.Block, error) {
	block, err := New(tokens).ParseProgram()
	if err != nil {
		return nil, err
	}
	return block, nil
}

// ParseSource tokenizes and parses text in one step.
func ParseSource(name, text string) (*ast.Block, error) {
	tokens, err := lexer.Tokenize(name, text)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseProgram parses statements until EOF.
func (p *Parser) ParseProgram() (*ast.Block, *diag.Error) {
	res := p.statements()
	if res.err == nil && p.tok.Kind != lexer.EOF {
		if res.pending != nil && !res.pending.Overwritable {
			res.failure(res.pending)
		} else {
			res.failure(p.syntaxError("Invalid Syntax"))
		}
	}
	if res.err != nil {
		return nil, res.err
	}
	return res.node.(*ast.Block), nil
}

func (p *Parser) advance() {
	p.index++
	p.update()
}

func (p *Parser) reverse(n int) {
	p.index -= n
	p.update()
}

func (p *Parser) update() {
	if p.index >= 0 && p.index < len(p.tokens) {
		p.tok = p.tokens[p.index]
	}
}

// step consumes the current token on behalf of res.
func (p *Parser) step(res *result) {
	res.advance++
	p.advance()
}

func (p *Parser) previous() (lexer.Token, bool) {
	if p.index <= 0 || p.index > len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[p.index-1], true
}

// lastEnd is the end of the most recently consumed token.
func (p *Parser) lastEnd() source.Position {
	if prev, ok := p.previous(); ok {
		return prev.Span.End
	}
	return p.tok.Span.Start
}

func (p *Parser) spanFrom(start source.Position) source.Span {
	return source.NewSpan(start, p.lastEnd())
}

// syntaxError is a precise error at the current token.
func (p *Parser) syntaxError(format string, args ...any) *diag.Error {
	return diag.New(diag.InvalidSyntax, p.tok.Span, format, args...).Fixed()
}

// placeholder is a generic error at the current token that callers may refine.
func (p *Parser) placeholder(message string) *diag.Error {
	return diag.New(diag.InvalidSyntax, p.tok.Span, message)
}

func (p *Parser) identifier() *ast.Identifier {
	return ast.At(ast.NewIdentifier(p.tok.Literal), p.tok.Span)
}

// statements parses a newline separated run of statements. The first
// statement is required; later ones are attempted speculatively and the block
// ends at the first one that fails to parse.
func (p *Parser) statements() *result {
	res := newResult()
	start := p.tok.Span.Start

	for p.tok.Kind == lexer.Newline {
		p.step(res)
	}

	first := res.register(p.statement())
	if res.failed() {
		return res
	}
	body := []ast.Node{first}

	for {
		newlines := 0
		for p.tok.Kind == lexer.Newline {
			p.step(res)
			newlines++
		}
		if newlines == 0 {
			break
		}
		next := res.tryRegister(p.statement())
		if next == nil {
			p.reverse(res.reverse)
			break
		}
		body = append(body, next)
	}

	return res.success(ast.At(ast.NewBlock(body), p.spanFrom(start)))
}

func (p *Parser) statement() *result {
	res := newResult()
	start := p.tok.Span.Start

	switch {
	case p.tok.IsKeyword("return"):
		p.step(res)
		value := res.tryRegister(p.expression())
		if value == nil {
			p.reverse(res.reverse)
			res.pending = nil
		}
		return res.success(ast.At(ast.NewReturn(value), p.spanFrom(start)))
	case p.tok.IsKeyword("continue"):
		p.step(res)
		return res.success(ast.At(ast.NewContinue(), p.spanFrom(start)))
	case p.tok.IsKeyword("break"):
		p.step(res)
		return res.success(ast.At(ast.NewBreak(), p.spanFrom(start)))
	}

	expr := res.register(p.expression())
	if res.failed() {
		return res
	}
	return res.success(expr)
}

// body parses the statement run of a `then <newline> ... end` form. The
// returned error is the speculative failure that ended the run, if any.
func (p *Parser) body(res *result) (ast.Node, *diag.Error) {
	sub := p.statements()
	node := res.register(sub)
	return node, sub.pending
}

// expectEnd consumes the closing 'end'. When it is missing, a precise error
// from the statement that stopped the block is preferred over the generic one.
func (p *Parser) expectEnd(res *result, pending *diag.Error) bool {
	if !p.tok.IsKeyword("end") {
		if pending != nil && !pending.Overwritable {
			res.failure(pending)
		} else {
			res.failure(p.syntaxError("Expected keyword 'end'"))
		}
		return false
	}
	p.step(res)
	return true
}
