package interpreter

import (
	"github.com/cfmeyers/Understanding-Computation/pkg/ast"
	"github.com/cfmeyers/Understanding-Computation/pkg/runtime"
)

// ReduceStatement performs one reduction step on stmt and returns the successor
// statement with the environment it runs in. Only a committing assignment
// produces a new environment; every other rule hands env back unchanged.
func ReduceStatement(stmt ast.Statement, env *runtime.Environment) (ast.Statement, *runtime.Environment, error) {
	switch n := stmt.(type) {
	case nil:
		return nil, env, newMalformedStateError(nil, "missing statement")
	case *ast.Assign:
		return reduceAssign(n, env)
	case *ast.If:
		return reduceIf(n, env)
	case *ast.Sequence:
		return reduceSequence(n, env)
	case *ast.While:
		if n.Condition == nil || n.Body == nil {
			return nil, env, newMalformedStateError(n, "missing condition or body")
		}
		return reduceWhile(n), env, nil
	default:
		return nil, env, newInvalidStepError(stmt)
	}
}

func reduceAssign(n *ast.Assign, env *runtime.Environment) (ast.Statement, *runtime.Environment, error) {
	if n.Expression == nil {
		return nil, env, newMalformedStateError(n, "missing expression")
	}
	if n.Expression.Reducible() {
		next, err := ReduceExpression(n.Expression, env)
		if err != nil {
			return nil, env, err
		}
		return ast.NewAssign(n.Name, next), env, nil
	}
	value, ok := n.Expression.(ast.Value)
	if !ok {
		return nil, env, newMalformedStateError(n, "%s is not a value", n.Expression)
	}
	return ast.NewDoNothing(), env.With(n.Name, value), nil
}

func reduceIf(n *ast.If, env *runtime.Environment) (ast.Statement, *runtime.Environment, error) {
	if n.Condition == nil {
		return nil, env, newMalformedStateError(n, "missing condition")
	}
	if n.Condition.Reducible() {
		next, err := ReduceExpression(n.Condition, env)
		if err != nil {
			return nil, env, err
		}
		return ast.NewIf(next, n.Consequence, n.Alternative), env, nil
	}
	cond, ok := n.Condition.(*ast.Boolean)
	if !ok {
		return nil, env, newMalformedStateError(n, "condition %s is not a boolean", n.Condition)
	}
	branch := n.Alternative
	if cond.Value {
		branch = n.Consequence
	}
	if branch == nil {
		return nil, env, newMalformedStateError(n, "missing branch")
	}
	return branch, env, nil
}

func reduceSequence(n *ast.Sequence, env *runtime.Environment) (ast.Statement, *runtime.Environment, error) {
	if n.First == nil || n.Second == nil {
		return nil, env, newMalformedStateError(n, "missing statement")
	}
	if ast.IsDoNothing(n.First) {
		return n.Second, env, nil
	}
	first, nextEnv, err := ReduceStatement(n.First, env)
	if err != nil {
		return nil, env, err
	}
	return ast.NewSequence(first, n.Second), nextEnv, nil
}

// reduceWhile unrolls one iteration: while (c){b} becomes
// if (c){ b; while (c){b} else { do-nothing }. The If takes copies of the
// condition and body so the successor stays a tree.
func reduceWhile(n *ast.While) ast.Statement {
	return ast.NewIf(
		ast.Clone(n.Condition),
		ast.NewSequence(ast.Clone(n.Body), ast.NewWhile(n.Condition, n.Body)),
		ast.NewDoNothing(),
	)
}
