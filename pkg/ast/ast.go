package ast

import "github.com/minhtribui153/xlang/pkg/source"

type NodeType string

const (
	NodeIdentifier         NodeType = "Identifier"
	NodeNumberLiteral      NodeType = "NumberLiteral"
	NodeStringLiteral      NodeType = "StringLiteral"
	NodeBooleanLiteral     NodeType = "BooleanLiteral"
	NodeListLiteral        NodeType = "ListLiteral"
	NodeBlock              NodeType = "Block"
	NodeVariableAccess     NodeType = "VariableAccess"
	NodeVariableAssign     NodeType = "VariableAssign"
	NodeBinaryOp           NodeType = "BinaryOp"
	NodeUnaryOp            NodeType = "UnaryOp"
	NodeIf                 NodeType = "If"
	NodeIfCase             NodeType = "IfCase"
	NodeElseCase           NodeType = "ElseCase"
	NodeSwitch             NodeType = "Switch"
	NodeSwitchCase         NodeType = "SwitchCase"
	NodeFor                NodeType = "For"
	NodeForEach            NodeType = "ForEach"
	NodeWhile              NodeType = "While"
	NodeFunctionDefinition NodeType = "FunctionDefinition"
	NodeParameter          NodeType = "Parameter"
	NodeCall               NodeType = "Call"
	NodeGetAttribute       NodeType = "GetAttribute"
	NodeInstanceOf         NodeType = "InstanceOf"
	NodeReturn             NodeType = "Return"
	NodeContinue           NodeType = "Continue"
	NodeBreak              NodeType = "Break"
	NodeSkip               NodeType = "Skip"
)

type Node interface {
	NodeType() NodeType
	Span() source.Span
	SetSpan(span source.Span)
	isNode()
}

type nodeImpl struct {
	Type NodeType    `json:"type"`
	Loc  source.Span `json:"span"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType        { return n.Type }
func (n nodeImpl) Span() source.Span         { return n.Loc }
func (n *nodeImpl) SetSpan(span source.Span) { n.Loc = span }
func (nodeImpl) isNode()                     {}

// Identifier names a variable, function, parameter or type.
type Identifier struct {
	nodeImpl

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

//-----------------------------------------------------------------------------
// Literals
//-----------------------------------------------------------------------------

type NumberLiteral struct {
	nodeImpl

	Literal string  `json:"literal"`
	IsFloat bool    `json:"isFloat,omitempty"`
	Int     int32   `json:"int,omitempty"`
	Float   float32 `json:"float,omitempty"`
}

func NewIntLiteral(value int32, literal string) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Literal: literal, Int: value}
}

func NewFloatLiteral(value float32, literal string) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Literal: literal, IsFloat: true, Float: value}
}

type StringLiteral struct {
	nodeImpl

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

// ListLiteral is `[a, b] <type>`; ElementType is nil when no type was given.
type ListLiteral struct {
	nodeImpl

	Elements    []Node      `json:"elements"`
	ElementType *Identifier `json:"elementType,omitempty"`
}

func NewListLiteral(elements []Node, elementType *Identifier) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements, ElementType: elementType}
}

// Block is a statement sequence. Evaluating it yields the list of statement values.
type Block struct {
	nodeImpl

	Statements []Node `json:"statements"`
}

func NewBlock(statements []Node) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

//-----------------------------------------------------------------------------
// Variables
//-----------------------------------------------------------------------------

type VariableAccess struct {
	nodeImpl

	Name *Identifier `json:"name"`
}

func NewVariableAccess(name *Identifier) *VariableAccess {
	return &VariableAccess{nodeImpl: newNodeImpl(NodeVariableAccess), Name: name}
}

// VariableAssign covers both `assign [mut] x[: T] = v` (Declare) and `set x = v`.
type VariableAssign struct {
	nodeImpl

	Name       *Identifier `json:"name"`
	Annotation *Identifier `json:"annotation,omitempty"`
	Value      Node        `json:"value"`
	Declare    bool        `json:"declare"`
	Mutable    bool        `json:"mutable,omitempty"`
}

func NewDeclaration(name *Identifier, annotation *Identifier, value Node, mutable bool) *VariableAssign {
	return &VariableAssign{nodeImpl: newNodeImpl(NodeVariableAssign), Name: name, Annotation: annotation, Value: value, Declare: true, Mutable: mutable}
}

func NewRebind(name *Identifier, value Node) *VariableAssign {
	return &VariableAssign{nodeImpl: newNodeImpl(NodeVariableAssign), Name: name, Value: value}
}

//-----------------------------------------------------------------------------
// Operators
//-----------------------------------------------------------------------------

type BinaryOp struct {
	nodeImpl

	Operator string `json:"operator"`
	Left     Node   `json:"left"`
	Right    Node   `json:"right"`
}

func NewBinaryOp(operator string, left, right Node) *BinaryOp {
	return &BinaryOp{nodeImpl: newNodeImpl(NodeBinaryOp), Operator: operator, Left: left, Right: right}
}

type UnaryOp struct {
	nodeImpl

	Operator string `json:"operator"`
	Operand  Node   `json:"operand"`
}

func NewUnaryOp(operator string, operand Node) *UnaryOp {
	return &UnaryOp{nodeImpl: newNodeImpl(NodeUnaryOp), Operator: operator, Operand: operand}
}

//-----------------------------------------------------------------------------
// Postfix forms
//-----------------------------------------------------------------------------

type Call struct {
	nodeImpl

	Callee    Node   `json:"callee"`
	Arguments []Node `json:"arguments"`
}

func NewCall(callee Node, arguments []Node) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Arguments: arguments}
}

// GetAttribute is `target[index]`.
type GetAttribute struct {
	nodeImpl

	Target Node `json:"target"`
	Index  Node `json:"index"`
}

func NewGetAttribute(target, index Node) *GetAttribute {
	return &GetAttribute{nodeImpl: newNodeImpl(NodeGetAttribute), Target: target, Index: index}
}

type InstanceOf struct {
	nodeImpl

	Target   Node        `json:"target"`
	TypeName *Identifier `json:"typeName"`
}

func NewInstanceOf(target Node, typeName *Identifier) *InstanceOf {
	return &InstanceOf{nodeImpl: newNodeImpl(NodeInstanceOf), Target: target, TypeName: typeName}
}

//-----------------------------------------------------------------------------
// Jumps
//-----------------------------------------------------------------------------

type Return struct {
	nodeImpl

	Value Node `json:"value,omitempty"`
}

func NewReturn(value Node) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn), Value: value}
}

type Continue struct {
	nodeImpl
}

func NewContinue() *Continue {
	return &Continue{nodeImpl: newNodeImpl(NodeContinue)}
}

type Break struct {
	nodeImpl
}

func NewBreak() *Break {
	return &Break{nodeImpl: newNodeImpl(NodeBreak)}
}

// Skip stands in for an absent trailing value.
type Skip struct {
	nodeImpl
}

func NewSkip() *Skip {
	return &Skip{nodeImpl: newNodeImpl(NodeSkip)}
}
