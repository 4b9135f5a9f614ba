package runtime

import (
	"math"

	"github.com/minhtribui153/xlang/pkg/diag"
)

// Binary applies op to left and right. Errors are attributed to ctx and
// located at the right operand unless noted.
func Binary(ctx *Context, op string, left, right Value) (Value, *diag.Error) {
	switch op {
	case "==":
		return NewBool(Equal(left, right)), nil
	case "!=":
		return NewBool(!Equal(left, right)), nil
	}
	switch l := left.(type) {
	case *IntValue:
		switch r := right.(type) {
		case *IntValue:
			return intOp(ctx, op, l.Val, r)
		case *FloatValue:
			return floatOp(ctx, op, float32(l.Val), r)
		}
	case *FloatValue:
		switch r := right.(type) {
		case *IntValue:
			return floatOp(ctx, op, l.Val, r)
		case *FloatValue:
			return floatOp(ctx, op, l.Val, r)
		}
	case *StringValue:
		if r, ok := right.(*StringValue); ok {
			if v, ok := stringOp(op, l.Val, r.Val); ok {
				return v, nil
			}
		}
	case *BoolValue:
		if r, ok := right.(*BoolValue); ok {
			switch op {
			case "&":
				return NewBool(l.Val && r.Val), nil
			case "|":
				return NewBool(l.Val || r.Val), nil
			}
		}
	case *ListValue:
		return listOp(ctx, op, l, right)
	}
	return nil, illegal(ctx, right)
}

// Unary applies a prefix operator. `-x` is x * -1.
func Unary(ctx *Context, op string, operand Value) (Value, *diag.Error) {
	switch op {
	case "-":
		return Binary(ctx, "*", operand, NewInt(-1))
	case "!":
		if b, ok := operand.(*BoolValue); ok {
			return NewBool(!b.Val), nil
		}
		return nil, illegal(ctx, operand)
	case "+":
		switch operand.(type) {
		case *IntValue, *FloatValue:
			return operand.Copy(), nil
		}
	}
	return nil, illegal(ctx, operand)
}

func illegal(ctx *Context, at Value) *diag.Error {
	return errorAt(ctx, diag.IllegalOperation, at, "Illegal operation")
}

// errorAt reports an error at the operand's span, attributed to the frame
// that produced the operand. ctx is the fallback for unstamped values.
func errorAt(ctx *Context, kind diag.Kind, at Value, format string, args ...any) *diag.Error {
	h := at.Base()
	if h.Context != nil {
		ctx = h.Context
	}
	return ctx.Errorf(kind, h.Span, format, args...)
}

func intOp(ctx *Context, op string, l int32, rv *IntValue) (Value, *diag.Error) {
	r := rv.Val
	switch op {
	case "+":
		return NewInt(l + r), nil
	case "-":
		return NewInt(l - r), nil
	case "*":
		return NewInt(l * r), nil
	case "/":
		if r == 0 {
			return nil, errorAt(ctx, diag.ZeroDivision, rv, "Division by zero")
		}
		return NewInt(l / r), nil
	case "%":
		if r == 0 {
			return nil, errorAt(ctx, diag.ZeroDivision, rv, "Modulo by zero")
		}
		return NewInt(l % r), nil
	case "^":
		return NewInt(powInt(l, r)), nil
	}
	if b, ok := compare(op, float64(l), float64(r)); ok {
		return NewBool(b), nil
	}
	return nil, illegal(ctx, rv)
}

func powInt(base, exp int32) int32 {
	p := math.Pow(float64(base), float64(exp))
	if p > math.MaxInt32 || p < math.MinInt32 || math.IsNaN(p) {
		return math.MinInt32
	}
	return int32(p)
}

func floatOp(ctx *Context, op string, l float32, rv Value) (Value, *diag.Error) {
	var r float32
	switch v := rv.(type) {
	case *IntValue:
		r = float32(v.Val)
	case *FloatValue:
		r = v.Val
	}
	switch op {
	case "+":
		return NewFloat(l + r), nil
	case "-":
		return NewFloat(l - r), nil
	case "*":
		return NewFloat(l * r), nil
	case "/":
		if r == 0 {
			return nil, errorAt(ctx, diag.ZeroDivision, rv, "Division by zero")
		}
		return NewFloat(l / r), nil
	case "%":
		if r == 0 {
			return nil, errorAt(ctx, diag.ZeroDivision, rv, "Modulo by zero")
		}
		return NewFloat(float32(math.Mod(float64(l), float64(r)))), nil
	case "^":
		return NewFloat(float32(math.Pow(float64(l), float64(r)))), nil
	}
	if b, ok := compare(op, float64(l), float64(r)); ok {
		return NewBool(b), nil
	}
	return nil, illegal(ctx, rv)
}

func compare(op string, l, r float64) (bool, bool) {
	switch op {
	case "<":
		return l < r, true
	case ">":
		return l > r, true
	case "<=":
		return l <= r, true
	case ">=":
		return l >= r, true
	}
	return false, false
}

func stringOp(op, l, r string) (Value, bool) {
	switch op {
	case "+":
		return NewString(l + r), true
	case "<":
		return NewBool(l < r), true
	case ">":
		return NewBool(l > r), true
	case "<=":
		return NewBool(l <= r), true
	case ">=":
		return NewBool(l >= r), true
	}
	return nil, false
}

// listOp implements `+` (append), `*` (concatenate) and `-` (remove at index).
// Each returns a fresh list; the operands are untouched.
func listOp(ctx *Context, op string, l *ListValue, right Value) (Value, *diag.Error) {
	switch op {
	case "+":
		if l.ElementType != nil && !l.ElementType.Accepts(right) {
			return nil, errorAt(ctx, diag.InvalidType, right,
				"Invalid type '%s' (expected type '%s')", TypeName(right), l.ElementType.Name)
		}
		out := l.Copy().(*ListValue)
		out.Elements = append(out.Elements, right.Copy())
		return out, nil
	case "*":
		other, ok := right.(*ListValue)
		if !ok {
			break
		}
		out := l.Copy().(*ListValue)
		for _, el := range other.Elements {
			if l.ElementType != nil && !l.ElementType.Accepts(el) {
				return nil, errorAt(ctx, diag.Runtime, right,
					"List has an invalid element type '%s' (expected type %s)", TypeName(el), l.ElementType.Name)
			}
			out.Elements = append(out.Elements, el.Copy())
		}
		return out, nil
	case "-":
		idx, ok := right.(*IntValue)
		if !ok {
			break
		}
		i := int(idx.Val)
		if i < 0 || i >= len(l.Elements) {
			return nil, errorAt(ctx, diag.Runtime, idx, "Index %d out of bounds", idx.Val)
		}
		out := l.Copy().(*ListValue)
		out.Elements = append(out.Elements[:i], out.Elements[i+1:]...)
		return out, nil
	}
	return nil, illegal(ctx, right)
}

// Equal compares underlying values. Values of different kinds are never
// equal, so 1 == 1.0 is false.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *IntValue:
		y, ok := b.(*IntValue)
		return ok && x.Val == y.Val
	case *FloatValue:
		y, ok := b.(*FloatValue)
		return ok && x.Val == y.Val
	case *BoolValue:
		y, ok := b.(*BoolValue)
		return ok && x.Val == y.Val
	case *StringValue:
		y, ok := b.(*StringValue)
		return ok && x.Val == y.Val
	case *NullValue:
		_, ok := b.(*NullValue)
		return ok
	case *ListValue:
		y, ok := b.(*ListValue)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case *FunctionValue:
		y, ok := b.(*FunctionValue)
		return ok && x == y
	case *BuiltinFunction:
		y, ok := b.(*BuiltinFunction)
		return ok && x.Name == y.Name
	case *TypeValue:
		y, ok := b.(*TypeValue)
		return ok && x.Name == y.Name
	}
	return false
}

// Index reads target[key] for lists and strings.
func Index(ctx *Context, target, key Value) (Value, *diag.Error) {
	var size int
	switch t := target.(type) {
	case *ListValue:
		size = len(t.Elements)
	case *StringValue:
		size = len([]rune(t.Val))
	default:
		return nil, errorAt(ctx, diag.IllegalOperation, key,
			"Cannot get value attr from '%s' type", TypeName(target))
	}
	idx, ok := key.(*IntValue)
	if !ok {
		return nil, errorAt(ctx, diag.InvalidType, key, "Index must be 'int', not '%s'", TypeName(key))
	}
	i := int(idx.Val)
	if i < 0 || i >= size {
		return nil, errorAt(ctx, diag.Runtime, key, "Index out of bounds")
	}
	if list, ok := target.(*ListValue); ok {
		return list.Elements[i].Copy(), nil
	}
	return NewString(string([]rune(target.(*StringValue).Val)[i])), nil
}

// Elements returns the items a foreach loop visits: list elements, or the
// characters of a string as one-character strings.
func Elements(ctx *Context, target Value) ([]Value, *diag.Error) {
	switch t := target.(type) {
	case *ListValue:
		out := make([]Value, len(t.Elements))
		for i, el := range t.Elements {
			out[i] = el.Copy()
		}
		return out, nil
	case *StringValue:
		runes := []rune(t.Val)
		out := make([]Value, len(runes))
		for i, r := range runes {
			out[i] = NewString(string(r))
		}
		return out, nil
	}
	return nil, errorAt(ctx, diag.IllegalOperation, target,
		"Cannot count values from '%s' type", TypeName(target))
}
