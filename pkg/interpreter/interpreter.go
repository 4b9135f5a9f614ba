package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/minhtribui153/xlang/pkg/ast"
	"github.com/minhtribui153/xlang/pkg/diag"
	"github.com/minhtribui153/xlang/pkg/runtime"
	"github.com/minhtribui153/xlang/pkg/source"
)

// ProgramContextName is the display name of the root frame.
const ProgramContextName = "<program>"

// Signal tells an enclosing construct that control is leaving early.
type Signal int

const (
	SignalNone Signal = iota
	SignalReturn
	SignalContinue
	SignalBreak
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalReturn:
		return "return"
	case SignalContinue:
		return "continue"
	case SignalBreak:
		return "break"
	default:
		return fmt.Sprintf("signal_%d", int(s))
	}
}

// Outcome is the result of evaluating one node: a value, an error, or a
// control-flow signal (a return signal carries its value in Value).
type Outcome struct {
	Value  runtime.Value
	Signal Signal
	Err    *diag.Error
}

// interrupted reports whether evaluation of the enclosing node must stop.
func (o Outcome) interrupted() bool {
	return o.Err != nil || o.Signal != SignalNone
}

func value(v runtime.Value) Outcome            { return Outcome{Value: v} }
func failure(err *diag.Error) Outcome          { return Outcome{Err: err} }
func signal(s Signal, v runtime.Value) Outcome { return Outcome{Value: v, Signal: s} }

// Interpreter evaluates X programs against a persistent global scope.
type Interpreter struct {
	global *runtime.SymbolTable
	root   *runtime.Context
	out    io.Writer
	in     LineReader
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput redirects printLn.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithInput sets the provider behind input().
func WithInput(r LineReader) Option {
	return func(i *Interpreter) { i.in = r }
}

// New returns an interpreter whose global scope holds the built-in types,
// functions and the nil constant.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{out: os.Stdout}
	for _, opt := range opts {
		opt(i)
	}
	if i.in == nil {
		i.in = NewStdinReader(os.Stdin, i.out)
	}
	i.global = runtime.NewSymbolTable(nil)
	i.root = runtime.NewContext(ProgramContextName, nil, source.Position{}, i.global)
	i.installGlobals()
	return i
}

// Global returns the persistent global scope.
func (i *Interpreter) Global() *runtime.SymbolTable {
	return i.global
}

// Root returns the program frame.
func (i *Interpreter) Root() *runtime.Context {
	return i.root
}

// EvaluateProgram runs a parsed program in the root frame. The result is the
// list of each top-level statement's value.
func (i *Interpreter) EvaluateProgram(program *ast.Block) (runtime.Value, *diag.Error) {
	out := i.Evaluate(program, i.root)
	if out.Err != nil {
		return nil, out.Err
	}
	if out.Value == nil {
		return runtime.NewNull(), nil
	}
	return out.Value, nil
}

// Evaluate dispatches on the node's type.
func (i *Interpreter) Evaluate(node ast.Node, ctx *runtime.Context) Outcome {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return i.evaluateNumber(n, ctx)
	case *ast.StringLiteral:
		return value(runtime.Stamp(runtime.NewString(n.Value), n.Span(), ctx))
	case *ast.BooleanLiteral:
		return value(runtime.Stamp(runtime.NewBool(n.Value), n.Span(), ctx))
	case *ast.ListLiteral:
		return i.evaluateList(n, ctx)
	case *ast.Block:
		return i.evaluateBlock(n, ctx)
	case *ast.VariableAccess:
		return i.evaluateAccess(n, ctx)
	case *ast.VariableAssign:
		return i.evaluateAssign(n, ctx)
	case *ast.BinaryOp:
		return i.evaluateBinary(n, ctx)
	case *ast.UnaryOp:
		return i.evaluateUnary(n, ctx)
	case *ast.If:
		return i.evaluateIf(n, ctx)
	case *ast.Switch:
		return i.evaluateSwitch(n, ctx)
	case *ast.For:
		return i.evaluateFor(n, ctx)
	case *ast.ForEach:
		return i.evaluateForEach(n, ctx)
	case *ast.While:
		return i.evaluateWhile(n, ctx)
	case *ast.FunctionDefinition:
		return i.evaluateFunctionDefinition(n, ctx)
	case *ast.Call:
		return i.evaluateCall(n, ctx)
	case *ast.GetAttribute:
		return i.evaluateGetAttribute(n, ctx)
	case *ast.InstanceOf:
		return i.evaluateInstanceOf(n, ctx)
	case *ast.Return:
		return i.evaluateReturn(n, ctx)
	case *ast.Continue:
		if !ctx.InLoop {
			return failure(ctx.Errorf(diag.Runtime, n.Span(), "Cannot use keyword 'continue' outside loop"))
		}
		return signal(SignalContinue, nil)
	case *ast.Break:
		if !ctx.InLoop && !ctx.InSwitch {
			return failure(ctx.Errorf(diag.Runtime, n.Span(), "Cannot use keyword 'break' outside loop or 'switch' statement"))
		}
		return signal(SignalBreak, nil)
	case *ast.Skip:
		return value(runtime.Stamp(runtime.NewNull(), n.Span(), ctx))
	case nil:
		return value(runtime.NewNull())
	default:
		return failure(ctx.Errorf(diag.NotSupported, node.Span(), "Unsupported node '%s'", node.NodeType()))
	}
}

func (i *Interpreter) null(span source.Span, ctx *runtime.Context) runtime.Value {
	return runtime.Stamp(runtime.NewNull(), span, ctx)
}
