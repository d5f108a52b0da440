package interpreter

import (
	"errors"
	"fmt"

	"github.com/cfmeyers/Understanding-Computation/pkg/ast"
)

type ErrorKind string

const (
	ErrorUnboundVariable   ErrorKind = "UnboundVariable"
	ErrorInvalidStep       ErrorKind = "InvalidStep"
	ErrorMalformedState    ErrorKind = "MalformedState"
	ErrorStepLimitExceeded ErrorKind = "StepLimitExceeded"
)

// Sentinels for errors.Is; every *Error unwraps to the one matching its kind.
var (
	ErrUnboundVariable   = errors.New("unbound variable")
	ErrInvalidStep       = errors.New("invalid step")
	ErrMalformedState    = errors.New("malformed state")
	ErrStepLimitExceeded = errors.New("step limit exceeded")
)

// Error reports a failed reduction step. Node is the node being reduced when
// the failure was detected; Name is set for unbound variables.
type Error struct {
	Kind    ErrorKind
	Node    ast.Node
	Name    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	switch e.Kind {
	case ErrorUnboundVariable:
		return ErrUnboundVariable
	case ErrorInvalidStep:
		return ErrInvalidStep
	case ErrorMalformedState:
		return ErrMalformedState
	case ErrorStepLimitExceeded:
		return ErrStepLimitExceeded
	default:
		return nil
	}
}

func newUnboundVariableError(node *ast.Variable) error {
	return &Error{
		Kind:    ErrorUnboundVariable,
		Node:    node,
		Name:    node.Name,
		Message: fmt.Sprintf("unbound variable '%s'", node.Name),
	}
}

func newInvalidStepError(node ast.Node) error {
	return &Error{
		Kind:    ErrorInvalidStep,
		Node:    node,
		Message: fmt.Sprintf("cannot reduce %s: already in normal form", describe(node)),
	}
}

func newMalformedStateError(node ast.Node, format string, args ...any) error {
	return &Error{
		Kind:    ErrorMalformedState,
		Node:    node,
		Message: fmt.Sprintf("malformed %s: %s", describe(node), fmt.Sprintf(format, args...)),
	}
}

func newStepLimitError(node ast.Node, limit int) error {
	return &Error{
		Kind:    ErrorStepLimitExceeded,
		Node:    node,
		Message: fmt.Sprintf("step limit %d exceeded", limit),
	}
}

func describe(node ast.Node) string {
	if node == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s `%s`", node.NodeType(), node.String())
}
