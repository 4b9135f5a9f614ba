package parser

import (
	"github.com/minhtribui153/xlang/pkg/ast"
	"github.com/minhtribui153/xlang/pkg/lexer"
	"github.com/minhtribui153/xlang/pkg/source"
)

var (
	logicalOps    = []string{"&", "|"}
	comparisonOps = []string{"==", "!=", "<=", ">=", "<", ">"}
	additiveOps   = []string{"+", "-"}
	termOps       = []string{"*", "/", "^", "%"}
	powerOps      = []string{"^"}
)

func (p *Parser) expression() *result {
	res := newResult()
	start := p.tok.Span.Start

	switch {
	case p.tok.IsKeyword("assign"):
		p.step(res)
		mutable := false
		if p.tok.IsKeyword("mut") {
			p.step(res)
			mutable = true
		}
		if p.tok.Kind != lexer.Ident {
			if mutable {
				return res.failure(p.syntaxError("Expected var ident"))
			}
			return res.failure(p.syntaxError("Expected var ident or keyword 'mut'"))
		}
		name := p.identifier()
		p.step(res)

		var annotation *ast.Identifier
		if p.tok.IsOp(":") {
			p.step(res)
			if p.tok.Kind != lexer.Ident {
				return res.failure(p.syntaxError("Expected type ident"))
			}
			annotation = p.identifier()
			p.step(res)
		}
		if !p.tok.IsOp("=") {
			return res.failure(p.syntaxError("Expected token '='"))
		}
		p.step(res)
		value := res.register(p.expression())
		if res.failed() {
			return res
		}
		return res.success(ast.At(ast.NewDeclaration(name, annotation, value, mutable), p.spanFrom(start)))

	case p.tok.IsKeyword("set"):
		p.step(res)
		if p.tok.Kind != lexer.Ident {
			return res.failure(p.syntaxError("Expected var ident"))
		}
		name := p.identifier()
		p.step(res)
		if !p.tok.IsOp("=") {
			return res.failure(p.syntaxError("Expected token '='"))
		}
		p.step(res)
		value := res.register(p.expression())
		if res.failed() {
			return res
		}
		return res.success(ast.At(ast.NewRebind(name, value), p.spanFrom(start)))

	case p.tok.IsKeyword("switch"):
		node := res.register(p.switchExpression())
		if res.failed() {
			return res
		}
		return res.success(node)
	}

	node := res.register(p.binaryOp(p.comparison, logicalOps, p.comparison))
	if res.failed() {
		if res.err.Overwritable {
			return res.failure(p.placeholder("Expected keyword, value, var ident, or token"))
		}
		return res
	}
	return res.success(node)
}

// binaryOp folds `left (op right)*` left-associatively.
func (p *Parser) binaryOp(left func() *result, ops []string, right func() *result) *result {
	res := newResult()
	node := res.register(left())
	if res.failed() {
		return res
	}
	for p.isOperator(ops) {
		op := p.tok.Literal
		p.step(res)
		rhs := res.register(right())
		if res.failed() {
			return res
		}
		node = ast.At(ast.NewBinaryOp(op, node, rhs), source.Cover(node.Span(), rhs.Span()))
	}
	return res.success(node)
}

func (p *Parser) isOperator(ops []string) bool {
	if p.tok.Kind != lexer.Op && p.tok.Kind != lexer.Cond {
		return false
	}
	for _, op := range ops {
		if p.tok.Literal == op {
			return true
		}
	}
	return false
}

func (p *Parser) comparison() *result {
	res := newResult()
	start := p.tok.Span.Start

	if p.tok.IsOp("!") {
		p.step(res)
		operand := res.register(p.comparison())
		if res.failed() {
			return res
		}
		return res.success(ast.At(ast.NewUnaryOp("!", operand), p.spanFrom(start)))
	}

	node := res.register(p.binaryOp(p.arithmetic, comparisonOps, p.arithmetic))
	if res.failed() {
		if res.err.Overwritable {
			return res.failure(p.placeholder("Expected value, var ident, or token"))
		}
		return res
	}
	return res.success(node)
}

func (p *Parser) arithmetic() *result {
	return p.binaryOp(p.term, additiveOps, p.term)
}

func (p *Parser) term() *result {
	return p.binaryOp(p.factor, termOps, p.factor)
}

func (p *Parser) factor() *result {
	res := newResult()
	start := p.tok.Span.Start

	if p.tok.IsOp("+") || p.tok.IsOp("-") {
		op := p.tok.Literal
		p.step(res)
		operand := res.register(p.factor())
		if res.failed() {
			return res
		}
		return res.success(ast.At(ast.NewUnaryOp(op, operand), p.spanFrom(start)))
	}
	return p.power()
}

func (p *Parser) power() *result {
	return p.binaryOp(p.postfix, powerOps, p.factor)
}

// postfix parses an atom followed by any chain of calls, index lookups and
// instof checks.
func (p *Parser) postfix() *result {
	res := newResult()
	start := p.tok.Span.Start
	node := res.register(p.atom())
	if res.failed() {
		return res
	}

	for {
		switch {
		case p.tok.IsOp("("):
			p.step(res)
			args, ok := p.arguments(res)
			if !ok {
				return res
			}
			node = ast.At(ast.NewCall(node, args), p.spanFrom(start))
		case p.tok.IsOp("["):
			p.step(res)
			index := res.register(p.expression())
			if res.failed() {
				return res
			}
			if !p.tok.IsOp("]") {
				return res.failure(p.syntaxError("Expected token ']'"))
			}
			p.step(res)
			node = ast.At(ast.NewGetAttribute(node, index), p.spanFrom(start))
		case p.tok.IsKeyword("instof"):
			p.step(res)
			if p.tok.Kind != lexer.Ident {
				return res.failure(p.syntaxError("Expected type ident"))
			}
			typeName := p.identifier()
			p.step(res)
			node = ast.At(ast.NewInstanceOf(node, typeName), p.spanFrom(start))
		default:
			return res.success(node)
		}
	}
}

// arguments parses a call's argument list after the opening parenthesis.
func (p *Parser) arguments(res *result) ([]ast.Node, bool) {
	args := []ast.Node{}
	if p.tok.IsOp(")") {
		p.step(res)
		return args, true
	}

	first := res.register(p.expression())
	if res.failed() {
		res.failure(p.syntaxError("Expected token ')', keyword or value"))
		return nil, false
	}
	args = append(args, first)

	for p.tok.IsOp(",") {
		p.step(res)
		arg := res.register(p.expression())
		if res.failed() {
			return nil, false
		}
		args = append(args, arg)
	}

	if !p.tok.IsOp(")") {
		res.failure(p.syntaxError("Expected token ',' or token ')'"))
		return nil, false
	}
	p.step(res)
	return args, true
}

func (p *Parser) atom() *result {
	res := newResult()
	tok := p.tok

	switch {
	case tok.Kind == lexer.Int:
		p.step(res)
		return res.success(ast.At(ast.NewIntLiteral(tok.Int, tok.Literal), tok.Span))
	case tok.Kind == lexer.Float:
		p.step(res)
		return res.success(ast.At(ast.NewFloatLiteral(tok.Float, tok.Literal), tok.Span))
	case tok.Kind == lexer.String:
		p.step(res)
		return res.success(ast.At(ast.NewStringLiteral(tok.Literal), tok.Span))
	case tok.Kind == lexer.Bool:
		p.step(res)
		return res.success(ast.At(ast.NewBooleanLiteral(tok.Literal == "true"), tok.Span))
	case tok.Kind == lexer.Ident:
		name := p.identifier()
		p.step(res)
		return res.success(ast.At(ast.NewVariableAccess(name), tok.Span))
	case tok.IsOp("("):
		p.step(res)
		expr := res.register(p.expression())
		if res.failed() {
			return res
		}
		if !p.tok.IsOp(")") {
			return res.failure(p.syntaxError("Expected token ')'"))
		}
		p.step(res)
		return res.success(expr)
	case tok.IsOp("["):
		return p.delegate(res, p.listExpression)
	case tok.IsKeyword("if"):
		return p.delegate(res, p.ifExpression)
	case tok.IsKeyword("for"):
		return p.delegate(res, p.forExpression)
	case tok.IsKeyword("foreach"):
		return p.delegate(res, p.forEachExpression)
	case tok.IsKeyword("while"):
		return p.delegate(res, p.whileExpression)
	case tok.IsKeyword("func"):
		return p.delegate(res, p.functionDefinition)
	}

	if tok.Kind == lexer.EOF && !p.followsOperator() {
		return res.success(ast.At(ast.NewSkip(), tok.Span))
	}
	return res.failure(p.placeholder("Expected value, var ident, or token"))
}

func (p *Parser) delegate(res *result, rule func() *result) *result {
	node := res.register(rule())
	if res.failed() {
		return res
	}
	return res.success(node)
}

// followsOperator reports whether the token before the cursor is an operator
// that still needs a right-hand operand.
func (p *Parser) followsOperator() bool {
	prev, ok := p.previous()
	if !ok {
		return false
	}
	return prev.Kind == lexer.Op || prev.Kind == lexer.Cond
}

func (p *Parser) listExpression() *result {
	res := newResult()
	start := p.tok.Span.Start

	if !p.tok.IsOp("[") {
		return res.failure(p.syntaxError("Expected token '['"))
	}
	p.step(res)
	p.skipLineBreaks(res)

	elements := []ast.Node{}
	if p.tok.IsOp("]") {
		p.step(res)
	} else {
		first := res.register(p.expression())
		if res.failed() {
			return res.failure(p.syntaxError("Expected token ']', keyword or value"))
		}
		elements = append(elements, first)

		for p.tok.IsOp(",") {
			p.step(res)
			p.skipLineBreaks(res)
			if p.tok.IsOp("]") {
				break
			}
			elem := res.register(p.expression())
			if res.failed() {
				return res
			}
			elements = append(elements, elem)
		}
		p.skipLineBreaks(res)

		if !p.tok.IsOp("]") {
			return res.failure(p.syntaxError("Expected token ',' or token ']'"))
		}
		p.step(res)
	}

	var elementType *ast.Identifier
	if p.tok.IsOp("<") {
		p.step(res)
		if p.tok.Kind != lexer.Ident {
			return res.failure(p.syntaxError("Expected type ident"))
		}
		elementType = p.identifier()
		p.step(res)
		if !p.tok.IsOp(">") {
			return res.failure(p.syntaxError("Expected token '>'"))
		}
		p.step(res)
	}

	return res.success(ast.At(ast.NewListLiteral(elements, elementType), p.spanFrom(start)))
}

// skipLineBreaks consumes '\n' separators; ';' is never skipped here.
func (p *Parser) skipLineBreaks(res *result) {
	for p.tok.Matches(lexer.Newline, "\n") {
		p.step(res)
	}
}
