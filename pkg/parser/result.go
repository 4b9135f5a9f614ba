package parser

import (
	"github.com/minhtribui153/xlang/pkg/ast"
	"github.com/minhtribui153/xlang/pkg/diag"
)

// result is the bundle every grammar rule returns.
//
// advance counts the tokens the rule consumed so a caller can rewind a
// speculative attempt. reverse holds the advance count of the last failed
// tryRegister and pending keeps that attempt's error without failing the rule.
type result struct {
	node    ast.Node
	err     *diag.Error
	advance int
	reverse int
	pending *diag.Error
}

func newResult() *result {
	return &result{}
}

func (r *result) register(sub *result) ast.Node {
	r.advance += sub.advance
	if sub.err != nil {
		r.err = sub.err
	}
	return sub.node
}

// tryRegister folds sub in when it succeeded. On failure it records how far
// sub got and returns nil, leaving r without an error.
func (r *result) tryRegister(sub *result) ast.Node {
	if sub.err != nil {
		r.reverse = sub.advance
		r.pending = sub.err
		return nil
	}
	return r.register(sub)
}

func (r *result) success(node ast.Node) *result {
	r.node = node
	return r
}

// failure records err unless a non-overwritable error is already present.
func (r *result) failure(err *diag.Error) *result {
	if r.err == nil || r.err.Overwritable {
		r.err = err
	}
	r.node = nil
	return r
}

func (r *result) failed() bool {
	return r.err != nil
}
