package ast

// Equal reports whether two trees have the same shape and leaf values. Nodes
// are compared by their concrete type, so trees built from struct literals
// compare the same as ones built with the constructors.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Value == y.Value
	case *Boolean:
		y, ok := b.(*Boolean)
		return ok && x.Value == y.Value
	case *Add:
		y, ok := b.(*Add)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Multiply:
		y, ok := b.(*Multiply)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *LessThan:
		y, ok := b.(*LessThan)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *DoNothing:
		return x.Equal(b)
	case *Assign:
		y, ok := b.(*Assign)
		return ok && x.Name == y.Name && Equal(x.Expression, y.Expression)
	case *If:
		y, ok := b.(*If)
		return ok &&
			Equal(x.Condition, y.Condition) &&
			Equal(x.Consequence, y.Consequence) &&
			Equal(x.Alternative, y.Alternative)
	case *Sequence:
		y, ok := b.(*Sequence)
		return ok && Equal(x.First, y.First) && Equal(x.Second, y.Second)
	case *While:
		y, ok := b.(*While)
		return ok && Equal(x.Condition, y.Condition) && Equal(x.Body, y.Body)
	default:
		return false
	}
}
