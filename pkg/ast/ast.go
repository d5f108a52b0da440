package ast

type NodeType string

const (
	NodeNumber    NodeType = "Number"
	NodeBoolean   NodeType = "Boolean"
	NodeAdd       NodeType = "Add"
	NodeMultiply  NodeType = "Multiply"
	NodeLessThan  NodeType = "LessThan"
	NodeVariable  NodeType = "Variable"
	NodeDoNothing NodeType = "DoNothing"
	NodeAssign    NodeType = "Assign"
	NodeIf        NodeType = "If"
	NodeSequence  NodeType = "Sequence"
	NodeWhile     NodeType = "While"
)

type Node interface {
	NodeType() NodeType
	Reducible() bool
	String() string
	isNode()
}

type nodeImpl struct {
	Type NodeType
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces. Expressions and statements are disjoint so the reduction
// signature is fixed by the static category of a node.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Value is an expression in normal form.
type Value interface {
	Expression
	valueNode()
}

type valueMarker struct{}

func (valueMarker) valueNode() {}

// Values

type Number struct {
	nodeImpl
	expressionMarker
	valueMarker

	Value int64
}

func NewNumber(value int64) *Number {
	return &Number{nodeImpl: newNodeImpl(NodeNumber), Value: value}
}

func (*Number) Reducible() bool { return false }

type Boolean struct {
	nodeImpl
	expressionMarker
	valueMarker

	Value bool
}

func NewBoolean(value bool) *Boolean {
	return &Boolean{nodeImpl: newNodeImpl(NodeBoolean), Value: value}
}

func (*Boolean) Reducible() bool { return false }

// Compound expressions

type Add struct {
	nodeImpl
	expressionMarker

	Left  Expression
	Right Expression
}

func NewAdd(left, right Expression) *Add {
	return &Add{nodeImpl: newNodeImpl(NodeAdd), Left: left, Right: right}
}

func (*Add) Reducible() bool { return true }

type Multiply struct {
	nodeImpl
	expressionMarker

	Left  Expression
	Right Expression
}

func NewMultiply(left, right Expression) *Multiply {
	return &Multiply{nodeImpl: newNodeImpl(NodeMultiply), Left: left, Right: right}
}

func (*Multiply) Reducible() bool { return true }

type LessThan struct {
	nodeImpl
	expressionMarker

	Left  Expression
	Right Expression
}

func NewLessThan(left, right Expression) *LessThan {
	return &LessThan{nodeImpl: newNodeImpl(NodeLessThan), Left: left, Right: right}
}

func (*LessThan) Reducible() bool { return true }

type Variable struct {
	nodeImpl
	expressionMarker

	Name string
}

func NewVariable(name string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

func (*Variable) Reducible() bool { return true }

// Statements

type DoNothing struct {
	nodeImpl
	statementMarker
}

func NewDoNothing() *DoNothing {
	return &DoNothing{nodeImpl: newNodeImpl(NodeDoNothing)}
}

func (*DoNothing) Reducible() bool { return false }

// Equal reports whether other is also a DoNothing. All DoNothing nodes are
// interchangeable.
func (*DoNothing) Equal(other Node) bool {
	_, ok := other.(*DoNothing)
	return ok
}

// IsDoNothing reports whether stmt is the terminal statement.
func IsDoNothing(stmt Statement) bool {
	_, ok := stmt.(*DoNothing)
	return ok
}

type Assign struct {
	nodeImpl
	statementMarker

	Name       string
	Expression Expression
}

func NewAssign(name string, expression Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Name: name, Expression: expression}
}

func (*Assign) Reducible() bool { return true }

type If struct {
	nodeImpl
	statementMarker

	Condition   Expression
	Consequence Statement
	Alternative Statement
}

func NewIf(condition Expression, consequence, alternative Statement) *If {
	return &If{
		nodeImpl:    newNodeImpl(NodeIf),
		Condition:   condition,
		Consequence: consequence,
		Alternative: alternative,
	}
}

func (*If) Reducible() bool { return true }

type Sequence struct {
	nodeImpl
	statementMarker

	First  Statement
	Second Statement
}

func NewSequence(first, second Statement) *Sequence {
	return &Sequence{nodeImpl: newNodeImpl(NodeSequence), First: first, Second: second}
}

func (*Sequence) Reducible() bool { return true }

type While struct {
	nodeImpl
	statementMarker

	Condition Expression
	Body      Statement
}

func NewWhile(condition Expression, body Statement) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile), Condition: condition, Body: body}
}

func (*While) Reducible() bool { return true }
