package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhtribui153/xlang/pkg/diag"
	"github.com/minhtribui153/xlang/pkg/source"
)

func rootContext() *Context {
	table := NewSymbolTable(nil)
	RegisterBuiltinTypes(table)
	return NewContext("<program>", nil, source.Position{}, table)
}

func TestKindNames(t *testing.T) {
	cases := map[Kind]string{
		KindInt:      "int",
		KindFloat:    "float",
		KindBool:     "bool",
		KindString:   "string",
		KindList:     "list",
		KindNull:     "nil",
		KindFunction: "method",
		KindBuiltin:  "method",
		KindType:     "type",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}

func TestDisplayForms(t *testing.T) {
	list := NewList(nil, []Value{NewInt(1), NewString("a"), NewNull()})
	assert.Equal(t, "[1, \"a\", nil]", list.String())
	assert.Equal(t, "2.5", NewFloat(2.5).String())
	assert.Equal(t, "3", NewFloat(3).String())
	assert.Equal(t, "true", NewBool(true).String())
	assert.Equal(t, "<type \"int\">", NewType("int").String())
	assert.Equal(t, "<method 'printLn'>", NewBuiltin("printLn", nil, nil).String())
	assert.Equal(t, "a", Raw(NewString("a")))
	assert.Equal(t, "[]", Raw(NewList(nil, nil)))
}

func TestDeclaredTypeDefaultsToRuntimeType(t *testing.T) {
	assert.Equal(t, "int", NewInt(1).DeclaredType)
	assert.Equal(t, "nil", NewNull().DeclaredType)
	assert.True(t, NewNull().Immutable)
}

func TestListCopyIsDeep(t *testing.T) {
	inner := NewList(nil, []Value{NewInt(1)})
	outer := NewList(nil, []Value{inner})
	clone := outer.Copy().(*ListValue)
	clone.Elements[0].(*ListValue).Elements[0] = NewInt(9)
	assert.Equal(t, "[[1]]", outer.String())
	assert.Equal(t, "[[9]]", clone.String())
}

func TestCopyIsNeverWriteOnce(t *testing.T) {
	n := NewInt(1)
	n.Immutable = true
	list := NewList(nil, []Value{n})
	list.Immutable = true

	clone := list.Copy().(*ListValue)
	assert.False(t, clone.Immutable)
	assert.False(t, clone.Elements[0].Base().Immutable)
	assert.True(t, n.Immutable)
	assert.False(t, NewNull().Copy().Base().Immutable)

	table := NewSymbolTable(nil)
	table.Set("x", list.Elements[0].Copy())
	table.Set("x", NewInt(2))
	got, ok := table.Get("x")
	require.True(t, ok)
	assert.Equal(t, "2", got.String())
}

func TestOperatorErrorsUseOperandFrame(t *testing.T) {
	root := rootContext()
	inner := NewContext("f", root, source.Position{Line: 2}, root.Symbols.Extend())
	divisor := Stamp(NewInt(0), source.Span{Start: source.Position{Column: 4}}, inner)

	_, err := Binary(root, "/", NewInt(1), divisor)
	require.NotNil(t, err)
	assert.Equal(t, diag.ZeroDivision, err.Kind)
	assert.Equal(t, "f", err.Frame.FrameName())

	_, err = Binary(root, "/", NewInt(1), NewInt(0))
	require.NotNil(t, err)
	assert.Equal(t, "<program>", err.Frame.FrameName())
}

func TestArithmetic(t *testing.T) {
	ctx := rootContext()
	cases := []struct {
		op    string
		left  Value
		right Value
		want  string
	}{
		{"+", NewInt(1), NewInt(2), "3"},
		{"-", NewInt(1), NewInt(2), "-1"},
		{"*", NewInt(3), NewFloat(1.5), "4.5"},
		{"/", NewInt(7), NewInt(2), "3"},
		{"/", NewFloat(7), NewInt(2), "3.5"},
		{"%", NewInt(7), NewInt(3), "1"},
		{"^", NewInt(2), NewInt(10), "1024"},
		{"^", NewInt(2), NewFloat(0.5), "1.4142135"},
		{"+", NewString("a"), NewString("b"), `"ab"`},
		{"<", NewString("a"), NewString("b"), "true"},
		{">=", NewInt(2), NewFloat(2), "true"},
		{"&", NewBool(true), NewBool(false), "false"},
		{"|", NewBool(true), NewBool(false), "true"},
		{"==", NewInt(1), NewFloat(1), "false"},
		{"==", NewNull(), NewNull(), "true"},
		{"!=", NewString("a"), NewInt(1), "true"},
	}
	for _, tc := range cases {
		got, err := Binary(ctx, tc.op, tc.left, tc.right)
		require.Nil(t, err, "%s %s %s", tc.left, tc.op, tc.right)
		if got.String() != tc.want {
			t.Fatalf("%s %s %s: expected %s, got %s", tc.left, tc.op, tc.right, tc.want, got)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	ctx := rootContext()
	zero := NewInt(0)
	zero.Span = source.Span{Start: source.Position{Index: 4}, End: source.Position{Index: 5}}

	_, err := Binary(ctx, "/", NewInt(1), zero)
	require.NotNil(t, err)
	assert.Equal(t, diag.ZeroDivision, err.Kind)
	assert.Equal(t, "Division by zero", err.Message)
	assert.Equal(t, 4, err.Span.Start.Index)

	_, err = Binary(ctx, "%", NewFloat(1), zero)
	require.NotNil(t, err)
	assert.Equal(t, "Modulo by zero", err.Message)
}

func TestIllegalOperations(t *testing.T) {
	ctx := rootContext()
	for _, pair := range [][2]Value{
		{NewString("a"), NewInt(1)},
		{NewBool(true), NewInt(1)},
		{NewNull(), NewNull()},
	} {
		_, err := Binary(ctx, "+", pair[0], pair[1])
		require.NotNil(t, err)
		assert.Equal(t, diag.IllegalOperation, err.Kind)
		assert.Equal(t, "Illegal operation", err.Message)
	}
	_, err := Unary(ctx, "!", NewInt(1))
	require.NotNil(t, err)
	assert.Equal(t, diag.IllegalOperation, err.Kind)

	v, err := Unary(ctx, "-", NewFloat(2))
	require.Nil(t, err)
	assert.Equal(t, "-2", v.String())
}

func TestListOperators(t *testing.T) {
	ctx := rootContext()
	intType := NewType("int")
	list := NewList(intType, []Value{NewInt(1), NewInt(2)})

	appended, err := Binary(ctx, "+", list, NewInt(3))
	require.Nil(t, err)
	assert.Equal(t, "[1, 2, 3]", appended.String())
	assert.Equal(t, "[1, 2]", list.String())

	_, err = Binary(ctx, "+", list, NewString("x"))
	require.NotNil(t, err)
	assert.Equal(t, diag.InvalidType, err.Kind)
	assert.Equal(t, "Invalid type 'string' (expected type 'int')", err.Message)

	joined, err := Binary(ctx, "*", list, NewList(nil, []Value{NewInt(5)}))
	require.Nil(t, err)
	assert.Equal(t, "[1, 2, 5]", joined.String())

	_, err = Binary(ctx, "*", list, NewList(nil, []Value{NewBool(true)}))
	require.NotNil(t, err)
	assert.Equal(t, "List has an invalid element type 'bool' (expected type int)", err.Message)

	removed, err := Binary(ctx, "-", list, NewInt(0))
	require.Nil(t, err)
	assert.Equal(t, "[2]", removed.String())

	_, err = Binary(ctx, "-", list, NewInt(5))
	require.NotNil(t, err)
	assert.Equal(t, "Index 5 out of bounds", err.Message)
}

func TestListEquality(t *testing.T) {
	a := NewList(nil, []Value{NewInt(1), NewString("x")})
	b := NewList(nil, []Value{NewInt(1), NewString("x")})
	c := NewList(nil, []Value{NewInt(2)})
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestIndex(t *testing.T) {
	ctx := rootContext()
	list := NewList(nil, []Value{NewInt(10), NewInt(20)})

	v, err := Index(ctx, list, NewInt(1))
	require.Nil(t, err)
	assert.Equal(t, "20", v.String())

	v, err = Index(ctx, NewString("héllo"), NewInt(1))
	require.Nil(t, err)
	assert.Equal(t, `"é"`, v.String())

	_, err = Index(ctx, list, NewInt(2))
	require.NotNil(t, err)
	assert.Equal(t, "Index out of bounds", err.Message)

	_, err = Index(ctx, list, NewString("0"))
	require.NotNil(t, err)
	assert.Equal(t, "Index must be 'int', not 'string'", err.Message)

	_, err = Index(ctx, NewInt(3), NewInt(0))
	require.NotNil(t, err)
	assert.Equal(t, "Cannot get value attr from 'int' type", err.Message)
}

func TestElements(t *testing.T) {
	ctx := rootContext()
	items, err := Elements(ctx, NewString("ab"))
	require.Nil(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, `"b"`, items[1].String())

	_, err = Elements(ctx, NewBool(true))
	require.NotNil(t, err)
	assert.Equal(t, "Cannot count values from 'bool' type", err.Message)
}

func TestTypeAccepts(t *testing.T) {
	assert.True(t, TypeAccepts("object", NewNull()))
	assert.True(t, TypeAccepts("function", NewBuiltin("f", nil, nil)))
	assert.True(t, TypeAccepts("list", NewList(nil, nil)))
	assert.False(t, TypeAccepts("int", NewFloat(1)))
}

func TestSymbolTableScoping(t *testing.T) {
	global := NewSymbolTable(nil)
	RegisterBuiltinTypes(global)
	global.Set("x", NewInt(1))
	child := global.Extend()

	v, ok := child.Get("x")
	require.True(t, ok)
	assert.Equal(t, "1", v.String())
	_, ok = child.GetLocal("x")
	assert.False(t, ok)

	child.Set("x", NewInt(2))
	v, _ = child.Get("x")
	assert.Equal(t, "2", v.String())
	v, _ = global.Get("x")
	assert.Equal(t, "1", v.String())

	_, ok = child.Type("float")
	assert.True(t, ok)
	assert.Same(t, global, child.Parent())
}

func TestSymbolTableImmutableWriteOnce(t *testing.T) {
	table := NewSymbolTable(nil)
	first := NewInt(1)
	first.Immutable = true
	second := NewInt(2)
	second.Immutable = true

	table.Set("k", first)
	table.Set("k", second)
	v, _ := table.Get("k")
	assert.Equal(t, "1", v.String())
}

func TestSymbolTableKeys(t *testing.T) {
	table := NewSymbolTable(nil)
	table.Set("b", NewInt(1))
	table.SetFunction("a", NewBuiltin("a", nil, nil))
	c := NewInt(1)
	c.Immutable = true
	table.Set("c", c)
	assert.Equal(t, []string{"a", "b", "c"}, table.Keys())
}

func TestContextFrames(t *testing.T) {
	root := rootContext()
	child := NewContext("<function f>", root, source.Position{Line: 3}, root.Symbols.Extend())
	assert.Nil(t, root.FrameParent())
	assert.Equal(t, root, child.FrameParent())
	assert.Equal(t, 3, child.EntryPosition().Line)

	err := child.Errorf(diag.Runtime, source.Span{}, "boom %d", 1)
	assert.Equal(t, "boom 1", err.Message)
	assert.True(t, err.HasTraceback())

	var none *Context
	assert.Nil(t, none.Frame())
}
