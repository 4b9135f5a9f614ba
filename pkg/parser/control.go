package parser

import (
	"github.com/minhtribui153/xlang/pkg/ast"
	"github.com/minhtribui153/xlang/pkg/lexer"
	"github.com/minhtribui153/xlang/pkg/source"
)

func (p *Parser) ifExpression() *result {
	res := newResult()
	start := p.tok.Span.Start
	cases, elseCase := p.ifCases(res)
	if res.failed() {
		return res
	}
	return res.success(ast.At(ast.NewIf(cases, elseCase), p.spanFrom(start)))
}

// ifCases parses `if cond then body` plus any else chain.
func (p *Parser) ifCases(res *result) ([]*ast.IfCase, *ast.ElseCase) {
	start := p.tok.Span.Start
	if !p.tok.IsKeyword("if") {
		res.failure(p.syntaxError("Expected keyword 'if'"))
		return nil, nil
	}
	p.step(res)

	condition := res.register(p.expression())
	if res.failed() {
		return nil, nil
	}
	if !p.tok.IsKeyword("then") {
		res.failure(p.syntaxError("Expected keyword 'then'"))
		return nil, nil
	}
	p.step(res)

	if p.tok.Kind == lexer.Newline {
		p.step(res)
		body, pending := p.body(res)
		if res.failed() {
			return nil, nil
		}
		cases := []*ast.IfCase{ast.At(ast.NewIfCase(condition, body, true), p.spanFrom(start))}

		switch {
		case p.tok.IsKeyword("end"):
			p.step(res)
			return cases, nil
		case p.tok.IsKeyword("else"):
			more, elseCase := p.ifElse(res)
			if res.failed() {
				return nil, nil
			}
			return append(cases, more...), elseCase
		default:
			p.expectEnd(res, pending)
			return nil, nil
		}
	}

	body := res.register(p.statement())
	if res.failed() {
		return nil, nil
	}
	cases := []*ast.IfCase{ast.At(ast.NewIfCase(condition, body, false), p.spanFrom(start))}
	more, elseCase := p.ifElse(res)
	if res.failed() {
		return nil, nil
	}
	return append(cases, more...), elseCase
}

func (p *Parser) ifElse(res *result) ([]*ast.IfCase, *ast.ElseCase) {
	if !p.tok.IsKeyword("else") {
		return nil, nil
	}
	start := p.tok.Span.Start
	p.step(res)

	switch {
	case p.tok.Kind == lexer.Newline:
		p.step(res)
		body, pending := p.body(res)
		if res.failed() {
			return nil, nil
		}
		if !p.expectEnd(res, pending) {
			return nil, nil
		}
		return nil, ast.At(ast.NewElseCase(body, true), p.spanFrom(start))
	case p.tok.IsKeyword("if"):
		return p.ifCases(res)
	default:
		body := res.register(p.statement())
		if res.failed() {
			return nil, nil
		}
		return nil, ast.At(ast.NewElseCase(body, false), p.spanFrom(start))
	}
}

// loopBody parses either `then <newline> ... end` (implicit) or `then stmt`.
func (p *Parser) loopBody(res *result) (ast.Node, bool, bool) {
	if !p.tok.IsKeyword("then") {
		res.failure(p.syntaxError("Expected keyword 'then'"))
		return nil, false, false
	}
	p.step(res)

	if p.tok.Kind == lexer.Newline {
		p.step(res)
		body, pending := p.body(res)
		if res.failed() || !p.expectEnd(res, pending) {
			return nil, false, false
		}
		return body, true, true
	}

	body := res.register(p.statement())
	if res.failed() {
		return nil, false, false
	}
	return body, false, true
}

func (p *Parser) forExpression() *result {
	res := newResult()
	start := p.tok.Span.Start

	if !p.tok.IsKeyword("for") {
		return res.failure(p.syntaxError("Expected keyword 'for'"))
	}
	p.step(res)

	if p.tok.Kind != lexer.Ident {
		return res.failure(p.syntaxError("Expected var ident"))
	}
	variable := p.identifier()
	p.step(res)

	if !p.tok.IsOp("=") {
		return res.failure(p.syntaxError("Expected token '='"))
	}
	p.step(res)

	from := res.register(p.expression())
	if res.failed() {
		return res
	}
	if !p.tok.IsOp(":") {
		return res.failure(p.syntaxError("Expected token ':'"))
	}
	p.step(res)

	to := res.register(p.expression())
	if res.failed() {
		return res
	}

	var step ast.Node
	if p.tok.IsKeyword("step") {
		p.step(res)
		step = res.register(p.expression())
		if res.failed() {
			return res
		}
	}

	body, implicit, ok := p.loopBody(res)
	if !ok {
		return res
	}
	return res.success(ast.At(ast.NewFor(variable, from, to, step, body, implicit), p.spanFrom(start)))
}

func (p *Parser) forEachExpression() *result {
	res := newResult()
	start := p.tok.Span.Start

	if !p.tok.IsKeyword("foreach") {
		return res.failure(p.syntaxError("Expected keyword 'foreach'"))
	}
	p.step(res)

	if p.tok.Kind != lexer.Ident {
		return res.failure(p.syntaxError("Expected var ident"))
	}
	variable := p.identifier()
	p.step(res)

	if !p.tok.IsKeyword("from") {
		return res.failure(p.syntaxError("Expected keyword 'from'"))
	}
	p.step(res)

	if p.tok.Kind != lexer.Ident {
		return res.failure(p.syntaxError("Expected var ident"))
	}
	src := p.identifier()
	p.step(res)

	body, implicit, ok := p.loopBody(res)
	if !ok {
		return res
	}
	return res.success(ast.At(ast.NewForEach(variable, src, body, implicit), p.spanFrom(start)))
}

func (p *Parser) whileExpression() *result {
	res := newResult()
	start := p.tok.Span.Start

	if !p.tok.IsKeyword("while") {
		return res.failure(p.syntaxError("Expected keyword 'while'"))
	}
	p.step(res)

	condition := res.register(p.expression())
	if res.failed() {
		return res
	}

	body, implicit, ok := p.loopBody(res)
	if !ok {
		return res
	}
	return res.success(ast.At(ast.NewWhile(condition, body, implicit), p.spanFrom(start)))
}

func (p *Parser) functionDefinition() *result {
	res := newResult()
	start := p.tok.Span.Start

	if !p.tok.IsKeyword("func") {
		return res.failure(p.syntaxError("Expected keyword 'func'"))
	}
	p.step(res)

	var name *ast.Identifier
	if p.tok.Kind == lexer.Ident {
		name = p.identifier()
		p.step(res)
	} else if !p.tok.IsOp("(") {
		return res.failure(p.syntaxError("Expected func name or token '('"))
	}
	if !p.tok.IsOp("(") {
		return res.failure(p.syntaxError("Expected token '('"))
	}
	p.step(res)

	params, ok := p.parameters(res)
	if !ok {
		return res
	}

	var returnType *ast.Identifier
	if p.tok.IsOp(":") {
		p.step(res)
		if p.tok.Kind != lexer.Ident && !p.tok.IsKeyword("void") {
			return res.failure(p.syntaxError("Expected type ident"))
		}
		returnType = p.identifier()
		p.step(res)
	}

	if p.tok.Matches(lexer.SyntaxOp, "=>") {
		p.step(res)
		body := res.register(p.expression())
		if res.failed() {
			return res
		}
		return res.success(ast.At(ast.NewFunctionDefinition(name, params, body, returnType, true), p.spanFrom(start)))
	}

	if p.tok.Kind != lexer.Newline {
		return res.failure(p.syntaxError("Expected syntax token '=>' or newline"))
	}
	p.step(res)

	body, pending := p.body(res)
	if res.failed() || !p.expectEnd(res, pending) {
		return res
	}
	return res.success(ast.At(ast.NewFunctionDefinition(name, params, body, returnType, false), p.spanFrom(start)))
}

// parameters parses `name type, ...)` after the opening parenthesis.
func (p *Parser) parameters(res *result) ([]*ast.Parameter, bool) {
	params := []*ast.Parameter{}
	if p.tok.IsOp(")") {
		p.step(res)
		return params, true
	}
	if p.tok.Kind != lexer.Ident {
		res.failure(p.syntaxError("Expected param ident or token ')'"))
		return nil, false
	}

	for {
		if p.tok.Kind != lexer.Ident {
			res.failure(p.syntaxError("Expected param ident"))
			return nil, false
		}
		name := p.identifier()
		p.step(res)
		if p.tok.Kind != lexer.Ident {
			res.failure(p.syntaxError("Expected type ident"))
			return nil, false
		}
		typeName := p.identifier()
		p.step(res)
		params = append(params, ast.At(ast.NewParameter(name, typeName), source.Cover(name.Span(), typeName.Span())))

		if !p.tok.IsOp(",") {
			break
		}
		p.step(res)
	}

	if !p.tok.IsOp(")") {
		res.failure(p.syntaxError("Expected token ',' or token ')'"))
		return nil, false
	}
	p.step(res)
	return params, true
}
