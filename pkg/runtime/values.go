package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/minhtribui153/xlang/pkg/ast"
	"github.com/minhtribui153/xlang/pkg/source"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
	KindList
	KindNull
	KindFunction
	KindBuiltin
	KindType
)

// String returns the runtime type name used in type checks and messages.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindNull:
		return "nil"
	case KindFunction, KindBuiltin:
		return "method"
	case KindType:
		return "type"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Header is the bookkeeping every value carries. Span and Context are
// stamped at evaluation time, never at construction; operator errors are
// attributed to the operand's Context.
type Header struct {
	DeclaredType string
	Immutable    bool
	Span         source.Span
	Context      *Context
}

func (h *Header) Base() *Header { return h }

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
	Base() *Header
	// Copy returns a detached value: lists are copied deeply and the
	// result is never write-once, whatever the binding it came from.
	Copy() Value
	String() string
}

// TypeName is the runtime type tag of v.
func TypeName(v Value) string {
	return v.Kind().String()
}

// Stamp records where v was produced and returns it.
func Stamp(v Value, span source.Span, ctx *Context) Value {
	h := v.Base()
	h.Span = span
	h.Context = ctx
	return v
}

func header(kind Kind) Header {
	return Header{DeclaredType: kind.String()}
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntValue struct {
	Header
	Val int32
}

func NewInt(v int32) *IntValue { return &IntValue{Header: header(KindInt), Val: v} }

func (v *IntValue) Kind() Kind     { return KindInt }
func (v *IntValue) Copy() Value    { c := *v; c.Immutable = false; return &c }
func (v *IntValue) String() string { return strconv.FormatInt(int64(v.Val), 10) }

type FloatValue struct {
	Header
	Val float32
}

func NewFloat(v float32) *FloatValue { return &FloatValue{Header: header(KindFloat), Val: v} }

func (v *FloatValue) Kind() Kind     { return KindFloat }
func (v *FloatValue) Copy() Value    { c := *v; c.Immutable = false; return &c }
func (v *FloatValue) String() string { return strconv.FormatFloat(float64(v.Val), 'f', -1, 32) }

type BoolValue struct {
	Header
	Val bool
}

func NewBool(v bool) *BoolValue { return &BoolValue{Header: header(KindBool), Val: v} }

func (v *BoolValue) Kind() Kind     { return KindBool }
func (v *BoolValue) Copy() Value    { c := *v; c.Immutable = false; return &c }
func (v *BoolValue) String() string { return strconv.FormatBool(v.Val) }

type StringValue struct {
	Header
	Val string
}

func NewString(v string) *StringValue { return &StringValue{Header: header(KindString), Val: v} }

func (v *StringValue) Kind() Kind     { return KindString }
func (v *StringValue) Copy() Value    { c := *v; c.Immutable = false; return &c }
func (v *StringValue) String() string { return `"` + v.Val + `"` }

// NullValue is nil. It is immutable from birth.
type NullValue struct {
	Header
}

func NewNull() *NullValue {
	return &NullValue{Header: Header{DeclaredType: KindNull.String(), Immutable: true}}
}

func (v *NullValue) Kind() Kind     { return KindNull }
func (v *NullValue) Copy() Value    { c := *v; c.Immutable = false; return &c }
func (v *NullValue) String() string { return "nil" }

//-----------------------------------------------------------------------------
// Lists
//-----------------------------------------------------------------------------

// ListValue is an ordered sequence. ElementType is nil for untyped lists.
type ListValue struct {
	Header
	ElementType *TypeValue
	Elements    []Value
}

func NewList(elementType *TypeValue, elements []Value) *ListValue {
	if elements == nil {
		elements = []Value{}
	}
	return &ListValue{Header: header(KindList), ElementType: elementType, Elements: elements}
}

func (v *ListValue) Kind() Kind { return KindList }

func (v *ListValue) Copy() Value {
	c := *v
	c.Immutable = false
	c.Elements = make([]Value, len(v.Elements))
	for i, el := range v.Elements {
		c.Elements[i] = el.Copy()
	}
	return &c
}

func (v *ListValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, el := range v.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// elementTypeName is the list's element constraint, "object" when unconstrained.
func (v *ListValue) elementTypeName() string {
	if v.ElementType == nil {
		return ObjectType
	}
	return v.ElementType.Name
}

//-----------------------------------------------------------------------------
// Functions & types
//-----------------------------------------------------------------------------

// Param is a declared (name, type) pair.
type Param struct {
	Name string
	Type string
}

// FunctionValue is a user-defined function. Closure is the defining context.
type FunctionValue struct {
	Header
	Name       string
	Params     []Param
	Body       ast.Node
	ReturnType string
	AutoReturn bool
	Closure    *Context
}

func (v *FunctionValue) Kind() Kind     { return KindFunction }
func (v *FunctionValue) Copy() Value    { c := *v; c.Immutable = false; return &c }
func (v *FunctionValue) String() string { return fmt.Sprintf("<method '%s'>", v.Name) }

// NativeFunc is the host side of a built-in.
type NativeFunc func(args []Value) (Value, error)

// BuiltinFunction is a host function exposed under Name.
type BuiltinFunction struct {
	Header
	Name     string
	Params   []Param
	Callback NativeFunc
}

func NewBuiltin(name string, params []Param, callback NativeFunc) *BuiltinFunction {
	return &BuiltinFunction{Header: header(KindBuiltin), Name: name, Params: params, Callback: callback}
}

func (v *BuiltinFunction) Kind() Kind     { return KindBuiltin }
func (v *BuiltinFunction) Copy() Value    { c := *v; c.Immutable = false; return &c }
func (v *BuiltinFunction) String() string { return fmt.Sprintf("<method '%s'>", v.Name) }

// Raw is the text of v without display quoting.
func Raw(v Value) string {
	if s, ok := v.(*StringValue); ok {
		return s.Val
	}
	return v.String()
}
