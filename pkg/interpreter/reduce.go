package interpreter

import (
	"github.com/cfmeyers/Understanding-Computation/pkg/ast"
	"github.com/cfmeyers/Understanding-Computation/pkg/runtime"
)

// ReduceExpression performs one reduction step on expr. Binary operators reduce
// their left operand to a value before touching the right one, and only then
// compute. Expressions never change the environment.
func ReduceExpression(expr ast.Expression, env *runtime.Environment) (ast.Expression, error) {
	switch n := expr.(type) {
	case nil:
		return nil, newMalformedStateError(nil, "missing expression")
	case *ast.Add:
		left, right, stepped, err := reduceOperands(n, n.Left, n.Right, env)
		if err != nil {
			return nil, err
		}
		if stepped {
			return ast.NewAdd(left, right), nil
		}
		l, r, err := numberOperands(n, left, right)
		if err != nil {
			return nil, err
		}
		return ast.NewNumber(l + r), nil
	case *ast.Multiply:
		left, right, stepped, err := reduceOperands(n, n.Left, n.Right, env)
		if err != nil {
			return nil, err
		}
		if stepped {
			return ast.NewMultiply(left, right), nil
		}
		l, r, err := numberOperands(n, left, right)
		if err != nil {
			return nil, err
		}
		return ast.NewNumber(l * r), nil
	case *ast.LessThan:
		left, right, stepped, err := reduceOperands(n, n.Left, n.Right, env)
		if err != nil {
			return nil, err
		}
		if stepped {
			return ast.NewLessThan(left, right), nil
		}
		l, r, err := numberOperands(n, left, right)
		if err != nil {
			return nil, err
		}
		return ast.NewBoolean(l < r), nil
	case *ast.Variable:
		value, ok := env.Get(n.Name)
		if !ok {
			return nil, newUnboundVariableError(n)
		}
		return value, nil
	default:
		return nil, newInvalidStepError(expr)
	}
}

// reduceOperands applies the left, then the right, congruence rule. stepped is
// false when both operands are already values.
func reduceOperands(node ast.Expression, left, right ast.Expression, env *runtime.Environment) (ast.Expression, ast.Expression, bool, error) {
	if left == nil || right == nil {
		return nil, nil, false, newMalformedStateError(node, "missing operand")
	}
	if left.Reducible() {
		next, err := ReduceExpression(left, env)
		if err != nil {
			return nil, nil, false, err
		}
		return next, right, true, nil
	}
	if right.Reducible() {
		next, err := ReduceExpression(right, env)
		if err != nil {
			return nil, nil, false, err
		}
		return left, next, true, nil
	}
	return left, right, false, nil
}

func numberOperands(node ast.Expression, left, right ast.Expression) (int64, int64, error) {
	l, ok := left.(*ast.Number)
	if !ok {
		return 0, 0, newMalformedStateError(node, "left operand %s is not a number", left)
	}
	r, ok := right.(*ast.Number)
	if !ok {
		return 0, 0, newMalformedStateError(node, "right operand %s is not a number", right)
	}
	return l.Value, r.Value, nil
}
