package ast

import (
	"strconv"

	"github.com/minhtribui153/xlang/pkg/source"
)

//-----------------------------------------------------------------------------
// Identifier and literal helpers
//-----------------------------------------------------------------------------

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int32) *NumberLiteral {
	return NewIntLiteral(value, strconv.FormatInt(int64(value), 10))
}

func Flt(value float32) *NumberLiteral {
	return NewFloatLiteral(value, strconv.FormatFloat(float64(value), 'f', -1, 32))
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func List(elements ...Node) *ListLiteral {
	return NewListLiteral(elements, nil)
}

func TypedList(elementType string, elements ...Node) *ListLiteral {
	return NewListLiteral(elements, ID(elementType))
}

func Blk(statements ...Node) *Block {
	return NewBlock(statements)
}

//-----------------------------------------------------------------------------
// Variable helpers
//-----------------------------------------------------------------------------

func Var(name string) *VariableAccess {
	return NewVariableAccess(ID(name))
}

func Assign(name string, value Node) *VariableAssign {
	return NewDeclaration(ID(name), nil, value, false)
}

func AssignMut(name string, value Node) *VariableAssign {
	return NewDeclaration(ID(name), nil, value, true)
}

func AssignTyped(name, typeName string, value Node) *VariableAssign {
	return NewDeclaration(ID(name), ID(typeName), value, false)
}

func Set(name string, value Node) *VariableAssign {
	return NewRebind(ID(name), value)
}

//-----------------------------------------------------------------------------
// Expression helpers
//-----------------------------------------------------------------------------

func Bin(left Node, operator string, right Node) *BinaryOp {
	return NewBinaryOp(operator, left, right)
}

func Un(operator string, operand Node) *UnaryOp {
	return NewUnaryOp(operator, operand)
}

func CallNamed(name string, args ...Node) *Call {
	return NewCall(Var(name), args)
}

func Index(target, index Node) *GetAttribute {
	return NewGetAttribute(target, index)
}

func Param(name, typeName string) *Parameter {
	return NewParameter(ID(name), ID(typeName))
}

func Fn(name string, params []*Parameter, body Node, autoReturn bool) *FunctionDefinition {
	var id *Identifier
	if name != "" {
		id = ID(name)
	}
	return NewFunctionDefinition(id, params, body, nil, autoReturn)
}

// At stamps span on node and returns it.
func At[T Node](node T, span source.Span) T {
	node.SetSpan(span)
	return node
}
