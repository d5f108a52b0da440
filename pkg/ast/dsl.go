package ast

// Expression helpers.

func Int(value int64) *Number {
	return NewNumber(value)
}

func Bool(value bool) *Boolean {
	return NewBoolean(value)
}

func ID(name string) *Variable {
	return NewVariable(name)
}

func Plus(left, right Expression) *Add {
	return NewAdd(left, right)
}

func Times(left, right Expression) *Multiply {
	return NewMultiply(left, right)
}

func Less(left, right Expression) *LessThan {
	return NewLessThan(left, right)
}

// Statement helpers.

func Nop() *DoNothing {
	return NewDoNothing()
}

func Set(name string, expression Expression) *Assign {
	return NewAssign(name, expression)
}

func IfElse(condition Expression, consequence, alternative Statement) *If {
	if alternative == nil {
		alternative = NewDoNothing()
	}
	return NewIf(condition, consequence, alternative)
}

// Seq chains statements to the right: Seq(a, b, c) is a; (b; c).
// An empty chain is do-nothing.
func Seq(stmts ...Statement) Statement {
	switch len(stmts) {
	case 0:
		return NewDoNothing()
	case 1:
		return stmts[0]
	default:
		return NewSequence(stmts[0], Seq(stmts[1:]...))
	}
}

func Loop(condition Expression, body Statement) *While {
	return NewWhile(condition, body)
}
