package interpreter

import (
	"github.com/minhtribui153/xlang/pkg/ast"
	"github.com/minhtribui153/xlang/pkg/diag"
	"github.com/minhtribui153/xlang/pkg/runtime"
)

func (i *Interpreter) evaluateNumber(n *ast.NumberLiteral, ctx *runtime.Context) Outcome {
	var v runtime.Value
	if n.IsFloat {
		v = runtime.NewFloat(n.Float)
	} else {
		v = runtime.NewInt(n.Int)
	}
	return value(runtime.Stamp(v, n.Span(), ctx))
}

func (i *Interpreter) evaluateList(n *ast.ListLiteral, ctx *runtime.Context) Outcome {
	var elementType *runtime.TypeValue
	if n.ElementType != nil {
		t, ok := ctx.Symbols.Type(n.ElementType.Name)
		if !ok {
			return failure(ctx.Errorf(diag.InvalidType, n.ElementType.Span(), "Undefined type ident '%s'", n.ElementType.Name))
		}
		elementType = t
	}
	elements := make([]runtime.Value, 0, len(n.Elements))
	for idx, el := range n.Elements {
		out := i.Evaluate(el, ctx)
		if out.interrupted() {
			return out
		}
		if elementType != nil && !elementType.Accepts(out.Value) {
			return failure(ctx.Errorf(diag.InvalidType, el.Span(),
				"Element at index '%d' has an invalid type '%s' (expected type '%s')",
				idx, runtime.TypeName(out.Value), elementType.Name))
		}
		elements = append(elements, out.Value)
	}
	return value(runtime.Stamp(runtime.NewList(elementType, elements), n.Span(), ctx))
}

func (i *Interpreter) evaluateAccess(n *ast.VariableAccess, ctx *runtime.Context) Outcome {
	v, ok := ctx.Symbols.Get(n.Name.Name)
	if !ok {
		return failure(ctx.Errorf(diag.Runtime, n.Span(), "Ident '%s' is not defined", n.Name.Name))
	}
	return value(runtime.Stamp(v.Copy(), n.Span(), ctx))
}

// evaluateAssign handles both `assign [mut] name[: T] = v` and `set name = v`.
// Rebinding writes into the current scope and keeps the binding's declared type.
func (i *Interpreter) evaluateAssign(n *ast.VariableAssign, ctx *runtime.Context) Outcome {
	name := n.Name.Name
	out := i.Evaluate(n.Value, ctx)
	if out.interrupted() {
		return out
	}
	v := out.Value.Copy()

	if n.Declare {
		if _, exists := ctx.Symbols.GetLocal(name); exists {
			return failure(ctx.Errorf(diag.Runtime, n.Name.Span(), "Cannot declare var ident '%s', ident already exists", name))
		}
		declared := runtime.ObjectType
		if n.Annotation != nil {
			declared = n.Annotation.Name
			if _, ok := ctx.Symbols.Type(declared); !ok {
				return failure(ctx.Errorf(diag.InvalidType, n.Annotation.Span(), "Undefined type ident '%s'", declared))
			}
			if !runtime.TypeAccepts(declared, v) {
				return failure(ctx.Errorf(diag.InvalidType, n.Value.Span(), "Expected '%s', not '%s'", declared, runtime.TypeName(v)))
			}
		}
		v.Base().DeclaredType = declared
		v.Base().Immutable = !n.Mutable
	} else {
		existing, ok := ctx.Symbols.Get(name)
		if !ok {
			return failure(ctx.Errorf(diag.Runtime, n.Span(), "Var ident '%s' is not defined", name))
		}
		prior := existing.Base()
		if prior.Immutable {
			return failure(ctx.Errorf(diag.Runtime, n.Span(), "Cannot reassign to immutable var ident '%s'", name))
		}
		if !runtime.TypeAccepts(prior.DeclaredType, v) {
			return failure(ctx.Errorf(diag.InvalidType, n.Value.Span(), "Expected '%s', not '%s'", prior.DeclaredType, runtime.TypeName(v)))
		}
		v.Base().DeclaredType = prior.DeclaredType
		v.Base().Immutable = false
	}

	runtime.Stamp(v, n.Span(), ctx)
	ctx.Symbols.Set(name, v)
	return value(v.Copy())
}

func (i *Interpreter) evaluateBinary(n *ast.BinaryOp, ctx *runtime.Context) Outcome {
	left := i.Evaluate(n.Left, ctx)
	if left.interrupted() {
		return left
	}
	right := i.Evaluate(n.Right, ctx)
	if right.interrupted() {
		return right
	}
	result, err := runtime.Binary(ctx, n.Operator, left.Value, right.Value)
	if err != nil {
		return failure(err)
	}
	return value(runtime.Stamp(result, n.Span(), ctx))
}

func (i *Interpreter) evaluateUnary(n *ast.UnaryOp, ctx *runtime.Context) Outcome {
	operand := i.Evaluate(n.Operand, ctx)
	if operand.interrupted() {
		return operand
	}
	result, err := runtime.Unary(ctx, n.Operator, operand.Value)
	if err != nil {
		return failure(err)
	}
	return value(runtime.Stamp(result, n.Span(), ctx))
}

func (i *Interpreter) evaluateGetAttribute(n *ast.GetAttribute, ctx *runtime.Context) Outcome {
	key := i.Evaluate(n.Index, ctx)
	if key.interrupted() {
		return key
	}
	target := i.Evaluate(n.Target, ctx)
	if target.interrupted() {
		return target
	}
	result, err := runtime.Index(ctx, target.Value, key.Value)
	if err != nil {
		return failure(err)
	}
	return value(runtime.Stamp(result, n.Span(), ctx))
}

func (i *Interpreter) evaluateInstanceOf(n *ast.InstanceOf, ctx *runtime.Context) Outcome {
	target := i.Evaluate(n.Target, ctx)
	if target.interrupted() {
		return target
	}
	t, ok := ctx.Symbols.Type(n.TypeName.Name)
	if !ok {
		return failure(ctx.Errorf(diag.InvalidType, n.TypeName.Span(), "Undefined type ident '%s'", n.TypeName.Name))
	}
	return value(runtime.Stamp(runtime.NewBool(t.Accepts(target.Value)), n.Span(), ctx))
}
