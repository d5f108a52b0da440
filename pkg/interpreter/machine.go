package interpreter

import (
	"fmt"
	"os"

	"github.com/cfmeyers/Understanding-Computation/pkg/ast"
	"github.com/cfmeyers/Understanding-Computation/pkg/runtime"
)

// Machine drives a statement to normal form one reduction at a time.
type Machine struct {
	statement   ast.Statement
	environment *runtime.Environment
	trace       TraceSink
	stepLimit   int
	steps       int
}

type MachineOption func(*Machine)

// WithTrace sends emitted states to sink instead of standard output.
func WithTrace(sink TraceSink) MachineOption {
	return func(m *Machine) {
		if sink != nil {
			m.trace = sink
		}
	}
}

// WithStepLimit makes Step fail once limit reductions have been taken.
// Zero or a negative limit means no limit.
func WithStepLimit(limit int) MachineOption {
	return func(m *Machine) {
		m.stepLimit = limit
	}
}

// NewMachine prepares stmt to run in env. A nil env is treated as empty.
func NewMachine(stmt ast.Statement, env *runtime.Environment, opts ...MachineOption) *Machine {
	if env == nil {
		env = runtime.NewEnvironment(nil)
	}
	m := &Machine{
		statement:   stmt,
		environment: env,
		trace:       NewWriterSink(os.Stdout),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) Statement() ast.Statement {
	return m.statement
}

func (m *Machine) Environment() *runtime.Environment {
	return m.environment
}

// Steps returns the number of reductions applied so far.
func (m *Machine) Steps() int {
	return m.steps
}

func (m *Machine) State() State {
	return State{Statement: m.statement, Environment: m.environment}
}

// Reducible reports whether another Step is possible.
func (m *Machine) Reducible() bool {
	return m.statement != nil && m.statement.Reducible()
}

// Step applies one reduction. On error the machine keeps its current state.
func (m *Machine) Step() error {
	if m.statement == nil {
		return newMalformedStateError(nil, "machine has no statement")
	}
	if !m.statement.Reducible() {
		return newInvalidStepError(m.statement)
	}
	if m.stepLimit > 0 && m.steps >= m.stepLimit {
		return newStepLimitError(m.statement, m.stepLimit)
	}
	next, env, err := ReduceStatement(m.statement, m.environment)
	if err != nil {
		return err
	}
	m.statement, m.environment = next, env
	m.steps++
	return nil
}

// Run emits the current state and steps until the statement is irreducible,
// then emits the final state. A run of N steps emits N+1 states.
func (m *Machine) Run() error {
	if m.statement == nil {
		return newMalformedStateError(nil, "machine has no statement")
	}
	for m.statement.Reducible() {
		if err := m.emit(); err != nil {
			return err
		}
		if err := m.Step(); err != nil {
			return err
		}
	}
	return m.emit()
}

func (m *Machine) emit() error {
	if err := m.trace.Emit(m.State()); err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	return nil
}
