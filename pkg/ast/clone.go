package ast

// Clone returns a deep copy of node. Reduction uses it where a rule would
// otherwise place the same subtree at two positions of the successor tree.
func Clone[T Node](node T) T {
	out, _ := cloneNode(node).(T)
	return out
}

func cloneNode(node Node) Node {
	switch n := node.(type) {
	case *Number:
		return NewNumber(n.Value)
	case *Boolean:
		return NewBoolean(n.Value)
	case *Add:
		return NewAdd(Clone(n.Left), Clone(n.Right))
	case *Multiply:
		return NewMultiply(Clone(n.Left), Clone(n.Right))
	case *LessThan:
		return NewLessThan(Clone(n.Left), Clone(n.Right))
	case *Variable:
		return NewVariable(n.Name)
	case *DoNothing:
		return NewDoNothing()
	case *Assign:
		return NewAssign(n.Name, Clone(n.Expression))
	case *If:
		return NewIf(Clone(n.Condition), Clone(n.Consequence), Clone(n.Alternative))
	case *Sequence:
		return NewSequence(Clone(n.First), Clone(n.Second))
	case *While:
		return NewWhile(Clone(n.Condition), Clone(n.Body))
	default:
		return node
	}
}
