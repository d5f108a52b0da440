package ast

import (
	"fmt"
	"strconv"
)

// Rendering reconstructs the surface syntax of a node from its children. The
// output feeds machine traces and golden tests, so the punctuation is fixed.

func (n *Number) String() string {
	return strconv.FormatInt(n.Value, 10)
}

func (n *Boolean) String() string {
	return strconv.FormatBool(n.Value)
}

func (n *Add) String() string {
	return fmt.Sprintf("%s + %s", render(n.Left), render(n.Right))
}

func (n *Multiply) String() string {
	return fmt.Sprintf("%s * %s", render(n.Left), render(n.Right))
}

func (n *LessThan) String() string {
	return fmt.Sprintf("%s < %s", render(n.Left), render(n.Right))
}

func (n *Variable) String() string {
	return n.Name
}

func (*DoNothing) String() string {
	return "do-nothing"
}

func (n *Assign) String() string {
	return fmt.Sprintf("%s = %s", n.Name, render(n.Expression))
}

func (n *If) String() string {
	return fmt.Sprintf("if (%s){ %s else { %s }", render(n.Condition), render(n.Consequence), render(n.Alternative))
}

func (n *Sequence) String() string {
	return fmt.Sprintf("%s; %s", render(n.First), render(n.Second))
}

func (n *While) String() string {
	return fmt.Sprintf("while (%s){%s}", render(n.Condition), render(n.Body))
}

func render(node Node) string {
	if node == nil {
		return "<nil>"
	}
	return node.String()
}
