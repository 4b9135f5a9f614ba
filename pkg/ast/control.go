package ast

// IfCase is one `if`/`else if` arm. Implicit marks a `then <newline> ... end`
// body; such bodies evaluate to nil from the enclosing construct's point of view.
type IfCase struct {
	nodeImpl

	Condition Node `json:"condition"`
	Body      Node `json:"body"`
	Implicit  bool `json:"implicit,omitempty"`
}

func NewIfCase(condition, body Node, implicit bool) *IfCase {
	return &IfCase{nodeImpl: newNodeImpl(NodeIfCase), Condition: condition, Body: body, Implicit: implicit}
}

// ElseCase is the trailing body of an if, or the default body of a switch.
type ElseCase struct {
	nodeImpl

	Body     Node `json:"body"`
	Implicit bool `json:"implicit,omitempty"`
}

func NewElseCase(body Node, implicit bool) *ElseCase {
	return &ElseCase{nodeImpl: newNodeImpl(NodeElseCase), Body: body, Implicit: implicit}
}

type If struct {
	nodeImpl

	Cases []*IfCase `json:"cases"`
	Else  *ElseCase `json:"else,omitempty"`
}

func NewIf(cases []*IfCase, elseCase *ElseCase) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Cases: cases, Else: elseCase}
}

type SwitchCase struct {
	nodeImpl

	Match    Node `json:"match"`
	Body     Node `json:"body"`
	Implicit bool `json:"implicit,omitempty"`
}

func NewSwitchCase(match, body Node, implicit bool) *SwitchCase {
	return &SwitchCase{nodeImpl: newNodeImpl(NodeSwitchCase), Match: match, Body: body, Implicit: implicit}
}

type Switch struct {
	nodeImpl

	Subject Node          `json:"subject"`
	Cases   []*SwitchCase `json:"cases"`
	Default *ElseCase     `json:"default,omitempty"`
}

func NewSwitch(subject Node, cases []*SwitchCase, defaultCase *ElseCase) *Switch {
	return &Switch{nodeImpl: newNodeImpl(NodeSwitch), Subject: subject, Cases: cases, Default: defaultCase}
}

//-----------------------------------------------------------------------------
// Loops
//-----------------------------------------------------------------------------

type For struct {
	nodeImpl

	Variable *Identifier `json:"variable"`
	Start    Node        `json:"start"`
	End      Node        `json:"end"`
	Step     Node        `json:"step,omitempty"`
	Body     Node        `json:"body"`
	Implicit bool        `json:"implicit,omitempty"`
}

func NewFor(variable *Identifier, start, end, step, body Node, implicit bool) *For {
	return &For{nodeImpl: newNodeImpl(NodeFor), Variable: variable, Start: start, End: end, Step: step, Body: body, Implicit: implicit}
}

type ForEach struct {
	nodeImpl

	Variable *Identifier `json:"variable"`
	Source   *Identifier `json:"source"`
	Body     Node        `json:"body"`
	Implicit bool        `json:"implicit,omitempty"`
}

func NewForEach(variable, src *Identifier, body Node, implicit bool) *ForEach {
	return &ForEach{nodeImpl: newNodeImpl(NodeForEach), Variable: variable, Source: src, Body: body, Implicit: implicit}
}

type While struct {
	nodeImpl

	Condition Node `json:"condition"`
	Body      Node `json:"body"`
	Implicit  bool `json:"implicit,omitempty"`
}

func NewWhile(condition, body Node, implicit bool) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile), Condition: condition, Body: body, Implicit: implicit}
}

//-----------------------------------------------------------------------------
// Functions
//-----------------------------------------------------------------------------

type Parameter struct {
	nodeImpl

	Name *Identifier `json:"name"`
	Type *Identifier `json:"paramType"`
}

func NewParameter(name, paramType *Identifier) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name, Type: paramType}
}

// FunctionDefinition is `func name(p T, ...)[: R] => expr` (AutoReturn) or the
// newline form closed by `end`. Name is nil for anonymous functions.
type FunctionDefinition struct {
	nodeImpl

	Name       *Identifier  `json:"name,omitempty"`
	Params     []*Parameter `json:"params"`
	Body       Node         `json:"body"`
	ReturnType *Identifier  `json:"returnType,omitempty"`
	AutoReturn bool         `json:"autoReturn,omitempty"`
}

func NewFunctionDefinition(name *Identifier, params []*Parameter, body Node, returnType *Identifier, autoReturn bool) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), Name: name, Params: params, Body: body, ReturnType: returnType, AutoReturn: autoReturn}
}
