package driver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cfmeyers/Understanding-Computation/pkg/interpreter"
	"github.com/cfmeyers/Understanding-Computation/pkg/runtime"
)

// Expectation describes the outcome a program file claims to produce. Unset
// fields are not checked.
type Expectation struct {
	Steps       *int
	Statement   *string
	Environment *runtime.Environment
	Error       interpreter.ErrorKind
}

func (f expectFile) toExpectation(d treeDecoder) (*Expectation, error) {
	expect := &Expectation{
		Steps:     f.Steps,
		Statement: f.Statement,
	}
	if f.Statement != nil {
		rendered := strings.TrimSpace(*f.Statement)
		expect.Statement = &rendered
	}
	if !isAbsent(&f.Environment) {
		env, err := d.environment(&f.Environment)
		if err != nil {
			return nil, err
		}
		expect.Environment = env
	}
	if kind := strings.TrimSpace(f.Error); kind != "" {
		switch interpreter.ErrorKind(kind) {
		case interpreter.ErrorUnboundVariable, interpreter.ErrorInvalidStep,
			interpreter.ErrorMalformedState, interpreter.ErrorStepLimitExceeded:
			expect.Error = interpreter.ErrorKind(kind)
		default:
			return nil, fmt.Errorf("program: %s: unknown expected error %q", d.path, kind)
		}
	}
	return expect, nil
}

// Check compares a finished machine and the error its run returned against
// the expectation. It returns one message per mismatch.
func (e *Expectation) Check(m *interpreter.Machine, runErr error) []string {
	if e == nil {
		return nil
	}
	var problems []string
	switch {
	case e.Error != "" && runErr == nil:
		problems = append(problems, fmt.Sprintf("expected %s error, run succeeded", e.Error))
	case e.Error != "":
		var rerr *interpreter.Error
		if !errors.As(runErr, &rerr) || rerr.Kind != e.Error {
			problems = append(problems, fmt.Sprintf("expected %s error, got: %v", e.Error, runErr))
		}
	case runErr != nil:
		problems = append(problems, fmt.Sprintf("unexpected error: %v", runErr))
	}
	if e.Steps != nil && m.Steps() != *e.Steps {
		problems = append(problems, fmt.Sprintf("steps = %d, want %d", m.Steps(), *e.Steps))
	}
	if e.Statement != nil {
		got := "<nil>"
		if stmt := m.Statement(); stmt != nil {
			got = stmt.String()
		}
		if got != *e.Statement {
			problems = append(problems, fmt.Sprintf("statement = %q, want %q", got, *e.Statement))
		}
	}
	if e.Environment != nil && !m.Environment().Equal(e.Environment) {
		problems = append(problems, fmt.Sprintf("environment = %s, want %s", m.Environment(), e.Environment))
	}
	return problems
}
