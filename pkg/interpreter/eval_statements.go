package interpreter

import (
	"github.com/minhtribui153/xlang/pkg/ast"
	"github.com/minhtribui153/xlang/pkg/diag"
	"github.com/minhtribui153/xlang/pkg/runtime"
	"github.com/minhtribui153/xlang/pkg/source"
)

// evaluateBlock runs statements in order; its value is the list of their values.
func (i *Interpreter) evaluateBlock(n *ast.Block, ctx *runtime.Context) Outcome {
	values := make([]runtime.Value, 0, len(n.Statements))
	for _, stmt := range n.Statements {
		out := i.Evaluate(stmt, ctx)
		if out.interrupted() {
			return out
		}
		values = append(values, out.Value)
	}
	return value(runtime.Stamp(runtime.NewList(nil, values), n.Span(), ctx))
}

// branch yields the body's value, or nil for an implicit block.
func (i *Interpreter) branch(body ast.Node, implicit bool, span source.Span, ctx *runtime.Context) Outcome {
	out := i.Evaluate(body, ctx)
	if out.interrupted() {
		return out
	}
	if implicit {
		return value(i.null(span, ctx))
	}
	return out
}

func (i *Interpreter) evaluateIf(n *ast.If, ctx *runtime.Context) Outcome {
	for _, c := range n.Cases {
		cond := i.Evaluate(c.Condition, ctx)
		if cond.interrupted() {
			return cond
		}
		b, ok := cond.Value.(*runtime.BoolValue)
		if !ok {
			return failure(ctx.Errorf(diag.InvalidType, c.Condition.Span(), "Expected 'bool', not '%s'", runtime.TypeName(cond.Value)))
		}
		if b.Val {
			return i.branch(c.Body, c.Implicit, n.Span(), ctx)
		}
	}
	if n.Else != nil {
		return i.branch(n.Else.Body, n.Else.Implicit, n.Span(), ctx)
	}
	return value(i.null(n.Span(), ctx))
}

// evaluateSwitch runs the first case equal to the subject. The break that
// closes every case body is consumed here.
func (i *Interpreter) evaluateSwitch(n *ast.Switch, ctx *runtime.Context) Outcome {
	saved := ctx.Flags
	ctx.InSwitch = true
	defer func() { ctx.Flags = saved }()

	subject := i.Evaluate(n.Subject, ctx)
	if subject.interrupted() {
		return subject
	}

	var body ast.Node
	implicit := true
	for _, c := range n.Cases {
		match := i.Evaluate(c.Match, ctx)
		if match.interrupted() {
			return match
		}
		if runtime.Equal(subject.Value, match.Value) {
			body, implicit = c.Body, c.Implicit
			break
		}
	}
	if body == nil && n.Default != nil {
		body, implicit = n.Default.Body, n.Default.Implicit
	}
	if body == nil {
		return value(i.null(n.Span(), ctx))
	}

	out := i.Evaluate(body, ctx)
	if out.Signal == SignalBreak {
		return value(i.null(n.Span(), ctx))
	}
	if out.interrupted() {
		return out
	}
	if implicit {
		return value(i.null(n.Span(), ctx))
	}
	return out
}

type loopStep int

const (
	loopKeep loopStep = iota
	loopSkip
	loopStop
	loopExit
)

// iteration evaluates one loop pass and classifies how the loop proceeds.
func (i *Interpreter) iteration(body ast.Node, ctx *runtime.Context) (Outcome, loopStep) {
	out := i.Evaluate(body, ctx)
	switch {
	case out.Err != nil, out.Signal == SignalReturn:
		return out, loopExit
	case out.Signal == SignalContinue:
		return out, loopSkip
	case out.Signal == SignalBreak:
		return out, loopStop
	}
	return out, loopKeep
}

func loopResult(elements []runtime.Value, implicit bool, span source.Span, ctx *runtime.Context) Outcome {
	if implicit {
		return value(runtime.Stamp(runtime.NewNull(), span, ctx))
	}
	return value(runtime.Stamp(runtime.NewList(nil, elements), span, ctx))
}

func (i *Interpreter) intOperand(node ast.Node, ctx *runtime.Context) (int64, Outcome) {
	out := i.Evaluate(node, ctx)
	if out.interrupted() {
		return 0, out
	}
	v, ok := out.Value.(*runtime.IntValue)
	if !ok {
		return 0, failure(ctx.Errorf(diag.InvalidType, node.Span(), "Expected 'int', not '%s'", runtime.TypeName(out.Value)))
	}
	return int64(v.Val), out
}

func (i *Interpreter) evaluateFor(n *ast.For, ctx *runtime.Context) Outcome {
	saved := ctx.Flags
	ctx.InLoop = true
	defer func() { ctx.Flags = saved }()

	start, out := i.intOperand(n.Start, ctx)
	if out.interrupted() {
		return out
	}
	end, out := i.intOperand(n.End, ctx)
	if out.interrupted() {
		return out
	}
	step := int64(1)
	if n.Step != nil {
		if step, out = i.intOperand(n.Step, ctx); out.interrupted() {
			return out
		}
	}

	var elements []runtime.Value
	for cur := start; (step >= 0 && cur < end) || (step < 0 && cur > end); {
		ctx.Symbols.Set(n.Variable.Name, runtime.Stamp(runtime.NewInt(int32(cur)), n.Variable.Span(), ctx))
		cur += step

		res, next := i.iteration(n.Body, ctx)
		if next == loopExit {
			return res
		}
		if next == loopStop {
			break
		}
		if next == loopKeep {
			elements = append(elements, res.Value)
		}
	}
	return loopResult(elements, n.Implicit, n.Span(), ctx)
}

func (i *Interpreter) evaluateForEach(n *ast.ForEach, ctx *runtime.Context) Outcome {
	saved := ctx.Flags
	ctx.InLoop = true
	defer func() { ctx.Flags = saved }()

	src, ok := ctx.Symbols.Get(n.Source.Name)
	if !ok {
		return failure(ctx.Errorf(diag.Runtime, n.Span(), "Ident '%s' is not defined", n.Source.Name))
	}
	src = runtime.Stamp(src.Copy(), n.Source.Span(), ctx)
	items, err := runtime.Elements(ctx, src)
	if err != nil {
		return failure(err)
	}

	var elements []runtime.Value
	for _, item := range items {
		ctx.Symbols.Set(n.Variable.Name, runtime.Stamp(item, n.Variable.Span(), ctx))

		res, next := i.iteration(n.Body, ctx)
		if next == loopExit {
			return res
		}
		if next == loopStop {
			break
		}
		if next == loopKeep {
			elements = append(elements, res.Value)
		}
	}
	return loopResult(elements, n.Implicit, n.Span(), ctx)
}

func (i *Interpreter) evaluateWhile(n *ast.While, ctx *runtime.Context) Outcome {
	saved := ctx.Flags
	ctx.InLoop = true
	defer func() { ctx.Flags = saved }()

	var elements []runtime.Value
	for {
		cond := i.Evaluate(n.Condition, ctx)
		if cond.interrupted() {
			return cond
		}
		b, ok := cond.Value.(*runtime.BoolValue)
		if !ok {
			return failure(ctx.Errorf(diag.InvalidType, n.Condition.Span(), "Expected 'bool', not '%s'", runtime.TypeName(cond.Value)))
		}
		if !b.Val {
			break
		}

		res, next := i.iteration(n.Body, ctx)
		if next == loopExit {
			return res
		}
		if next == loopStop {
			break
		}
		if next == loopKeep {
			elements = append(elements, res.Value)
		}
	}
	return loopResult(elements, n.Implicit, n.Span(), ctx)
}

func (i *Interpreter) evaluateReturn(n *ast.Return, ctx *runtime.Context) Outcome {
	if !ctx.InFunction {
		return failure(ctx.Errorf(diag.Runtime, n.Span(), "Cannot use keyword 'return' outside function"))
	}
	if n.Value == nil {
		return signal(SignalReturn, i.null(n.Span(), ctx))
	}
	out := i.Evaluate(n.Value, ctx)
	if out.interrupted() {
		return out
	}
	return signal(SignalReturn, out.Value)
}
