package parser

import (
	"github.com/minhtribui153/xlang/pkg/ast"
	"github.com/minhtribui153/xlang/pkg/lexer"
)

// switchExpression parses
//
//	switch subject then
//	case value:
//	    ...
//	    break
//	default:
//	    ...
//	    break
//	end
func (p *Parser) switchExpression() *result {
	res := newResult()
	start := p.tok.Span.Start

	if !p.tok.IsKeyword("switch") {
		return res.failure(p.syntaxError("Expected keyword 'switch'"))
	}
	p.step(res)

	subject := res.register(p.expression())
	if res.failed() {
		return res
	}
	if !p.tok.IsKeyword("then") {
		return res.failure(p.syntaxError("Expected keyword 'then'"))
	}
	p.step(res)
	if p.tok.Kind != lexer.Newline {
		return res.failure(p.syntaxError("Expected newline"))
	}
	for p.tok.Kind == lexer.Newline {
		p.step(res)
	}

	var (
		cases       []*ast.SwitchCase
		defaultCase *ast.ElseCase
	)
	for {
		clauseStart := p.tok.Span.Start
		switch {
		case p.tok.IsKeyword("case"):
			p.step(res)
			match := res.register(p.expression())
			if res.failed() {
				return res
			}
			body, ok := p.caseBody(res)
			if !ok {
				return res
			}
			cases = append(cases, ast.At(ast.NewSwitchCase(match, body, true), p.spanFrom(clauseStart)))
			continue
		case p.tok.IsKeyword("default"):
			if defaultCase != nil {
				return res.failure(p.syntaxError("Cannot redeclare another keyword 'default', already exists in 'switch' statement"))
			}
			p.step(res)
			body, ok := p.caseBody(res)
			if !ok {
				return res
			}
			defaultCase = ast.At(ast.NewElseCase(body, true), p.spanFrom(clauseStart))
			continue
		}
		break
	}

	if !p.tok.IsKeyword("end") {
		return res.failure(p.syntaxError("Expected keyword 'end'"))
	}
	p.step(res)
	return res.success(ast.At(ast.NewSwitch(subject, cases, defaultCase), p.spanFrom(start)))
}

// caseBody parses `: <newline> statements` and checks the run ends in break.
func (p *Parser) caseBody(res *result) (*ast.Block, bool) {
	if !p.tok.IsOp(":") {
		res.failure(p.syntaxError("Expected token ':'"))
		return nil, false
	}
	p.step(res)
	if p.tok.Kind != lexer.Newline {
		res.failure(p.syntaxError("Expected newline"))
		return nil, false
	}
	if p.tok.Literal == ";" {
		res.failure(p.syntaxError("Unexpected token ';'"))
		return nil, false
	}
	p.step(res)

	node := res.register(p.statements())
	if res.failed() {
		res.failure(p.syntaxError("Expected keyword 'break'"))
		return nil, false
	}
	body := node.(*ast.Block)
	if len(body.Statements) == 0 {
		res.failure(p.syntaxError("Expected keyword 'break'"))
		return nil, false
	}
	if _, ok := body.Statements[len(body.Statements)-1].(*ast.Break); !ok {
		res.failure(p.syntaxError("Expected keyword 'break'"))
		return nil, false
	}
	return body, true
}
