package interpreter

import (
	"errors"

	"github.com/minhtribui153/xlang/pkg/ast"
	"github.com/minhtribui153/xlang/pkg/diag"
	"github.com/minhtribui153/xlang/pkg/runtime"
	"github.com/minhtribui153/xlang/pkg/source"
)

// AnonymousFunctionName labels functions defined without a name.
const AnonymousFunctionName = "<anonymous>"

func (i *Interpreter) evaluateFunctionDefinition(n *ast.FunctionDefinition, ctx *runtime.Context) Outcome {
	name := AnonymousFunctionName
	if n.Name != nil {
		name = n.Name.Name
		if _, exists := ctx.Symbols.GetLocal(name); exists {
			return failure(ctx.Errorf(diag.Runtime, n.Name.Span(), "Cannot declare func name '%s', ident already exists", name))
		}
	}

	params := make([]runtime.Param, 0, len(n.Params))
	for _, p := range n.Params {
		if _, ok := ctx.Symbols.Type(p.Type.Name); !ok {
			return failure(ctx.Errorf(diag.InvalidType, p.Type.Span(), "Undefined type ident '%s'", p.Type.Name))
		}
		params = append(params, runtime.Param{Name: p.Name.Name, Type: p.Type.Name})
	}

	returnType := runtime.ObjectType
	if n.ReturnType != nil {
		returnType = n.ReturnType.Name
		if _, ok := ctx.Symbols.Type(returnType); !ok && returnType != "void" {
			return failure(ctx.Errorf(diag.InvalidType, n.ReturnType.Span(), "Undefined type ident '%s'", returnType))
		}
	}

	fn := &runtime.FunctionValue{
		Header:     runtime.Header{DeclaredType: runtime.KindFunction.String(), Immutable: true},
		Name:       name,
		Params:     params,
		Body:       n.Body,
		ReturnType: returnType,
		AutoReturn: n.AutoReturn,
		Closure:    ctx,
	}
	runtime.Stamp(fn, n.Span(), ctx)
	if n.Name != nil {
		ctx.Symbols.SetFunction(name, fn)
	}
	return value(fn.Copy())
}

func (i *Interpreter) evaluateCall(n *ast.Call, ctx *runtime.Context) Outcome {
	callee := i.Evaluate(n.Callee, ctx)
	if callee.interrupted() {
		return callee
	}
	switch callee.Value.(type) {
	case *runtime.FunctionValue, *runtime.BuiltinFunction:
	default:
		return failure(ctx.Errorf(diag.InvalidType, n.Callee.Span(), "Expected 'method', not '%s'", runtime.TypeName(callee.Value)))
	}

	args := make([]runtime.Value, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		out := i.Evaluate(a, ctx)
		if out.interrupted() {
			return out
		}
		args = append(args, out.Value)
	}

	var result runtime.Value
	var err *diag.Error
	switch fn := callee.Value.(type) {
	case *runtime.FunctionValue:
		result, err = i.invoke(fn, args, n.Span(), ctx)
	case *runtime.BuiltinFunction:
		result, err = i.invokeBuiltin(fn, args, n.Span(), ctx)
	}
	if err != nil {
		return failure(err)
	}
	return value(runtime.Stamp(result.Copy(), n.Span(), ctx))
}

func checkArguments(name string, params []runtime.Param, args []runtime.Value, span source.Span, ctx *runtime.Context) *diag.Error {
	if len(args) != len(params) {
		return ctx.Errorf(diag.Runtime, span, "Unexpected num of args passed into func '%s' (expected %d, found %d)", name, len(params), len(args))
	}
	for idx, p := range params {
		arg := args[idx]
		if !runtime.TypeAccepts(p.Type, arg) {
			return ctx.Errorf(diag.InvalidType, arg.Base().Span,
				"Invalid type '%s' parsed into arg '%s' (expected type '%s')", runtime.TypeName(arg), p.Name, p.Type)
		}
	}
	return nil
}

// invoke runs fn in a new frame whose scope is a child of the defining scope.
func (i *Interpreter) invoke(fn *runtime.FunctionValue, args []runtime.Value, span source.Span, caller *runtime.Context) (runtime.Value, *diag.Error) {
	if err := checkArguments(fn.Name, fn.Params, args, span, caller); err != nil {
		return nil, err
	}
	frame := runtime.NewContext(fn.Name, fn.Closure, span.Start, fn.Closure.Symbols.Extend())
	frame.InFunction = true
	for idx, p := range fn.Params {
		arg := args[idx].Copy()
		h := arg.Base()
		h.Immutable = true
		h.DeclaredType = p.Type
		h.Context = frame
		frame.Symbols.Set(p.Name, arg)
	}

	out := i.Evaluate(fn.Body, frame)
	switch {
	case out.Err != nil:
		return nil, out.Err
	case out.Signal == SignalReturn:
		return out.Value, nil
	case fn.AutoReturn && out.Value != nil:
		return out.Value, nil
	}
	return runtime.NewNull(), nil
}

func (i *Interpreter) invokeBuiltin(fn *runtime.BuiltinFunction, args []runtime.Value, span source.Span, caller *runtime.Context) (runtime.Value, *diag.Error) {
	if err := checkArguments(fn.Name, fn.Params, args, span, caller); err != nil {
		return nil, err
	}
	result, err := fn.Callback(args)
	if err != nil {
		var de *diag.Error
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, caller.Errorf(diag.Runtime, span, "%s", err.Error())
	}
	if result == nil {
		result = runtime.NewNull()
	}
	return result, nil
}
