package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cfmeyers/Understanding-Computation/pkg/ast"
	"github.com/cfmeyers/Understanding-Computation/pkg/interpreter"
)

func decodeString(t *testing.T, src string) (*Program, error) {
	t.Helper()
	return DecodeProgram(strings.NewReader(strings.TrimLeft(src, "\n")), "inline.yml")
}

func TestDecodeProgramTree(t *testing.T) {
	program, err := decodeString(t, `
description: "  sum then compare  "
environment:
  a: 2
  b: {number: 3}
  flag: false
program:
  - assign:
      name: c
      expression: {add: [{variable: a}, {multiply: [{variable: b}, 4]}]}
  - if:
      condition: {less_than: [{variable: c}, 20]}
      consequence: {assign: {name: flag, expression: {boolean: true}}}
  - do_nothing:
  - while:
      condition: {variable: flag}
      body: {assign: {name: flag, expression: false}}
`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := ast.Seq(
		ast.Set("c", ast.Plus(ast.ID("a"), ast.Times(ast.ID("b"), ast.Int(4)))),
		ast.IfElse(ast.Less(ast.ID("c"), ast.Int(20)), ast.Set("flag", ast.Bool(true)), ast.Nop()),
		ast.Nop(),
		ast.Loop(ast.ID("flag"), ast.Set("flag", ast.Bool(false))),
	)
	if !ast.Equal(program.Statement, want) {
		t.Fatalf("decoded tree mismatch:\n got: %s\nwant: %s", program.Statement, want)
	}
	if got := program.Environment.String(); got != "{a: 2, b: 3, flag: false}" {
		t.Fatalf("environment = %s", got)
	}
	if program.Description != "sum then compare" || program.Name() != "sum then compare" {
		t.Fatalf("description not trimmed: %q", program.Description)
	}
	if !program.Settings.Trace || program.Settings.MaxSteps != 0 {
		t.Fatalf("unexpected default settings %#v", program.Settings)
	}
	if program.Expect != nil {
		t.Fatalf("expected no expectation")
	}
}

func TestDecodeAnchorsProduceFreshNodes(t *testing.T) {
	program, err := decodeString(t, `
program:
  sequence:
    - &bump {assign: {name: x, expression: {add: [{variable: x}, 1]}}}
    - *bump
environment: {x: 0}
`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	seq, ok := program.Statement.(*ast.Sequence)
	if !ok {
		t.Fatalf("expected sequence, got %T", program.Statement)
	}
	if seq.First == seq.Second {
		t.Fatalf("alias decoded to a shared node")
	}
	if !ast.Equal(seq.First, seq.Second) {
		t.Fatalf("alias should decode to an equal tree")
	}
}

func TestDecodeRejectsCyclicAliases(t *testing.T) {
	cases := map[string]string{
		"statement":  "program: &loop\n  sequence:\n    - *loop\n",
		"expression": "environment:\n  x: &e {add: [*e, 1]}\nprogram: do_nothing\n",
		"nested":     "program: &outer\n  while:\n    condition: true\n    body: {sequence: [do_nothing, *outer]}\n",
	}
	for name, src := range cases {
		_, err := DecodeProgram(strings.NewReader(src), name+".yml")
		var derr *DecodeError
		if !errors.As(err, &derr) || !strings.Contains(derr.Message, "enclosing node") {
			t.Fatalf("%s: expected cycle error, got %v", name, err)
		}
	}

	_, err := DecodeProgram(strings.NewReader("program: &loop\n  sequence:\n    - *loop\n"), "loop.yml")
	var derr *DecodeError
	if !errors.As(err, &derr) || derr.Line != 3 {
		t.Fatalf("expected error at the alias on line 3, got %v", err)
	}
}

func TestDecodeRejectsExpressionAsStatement(t *testing.T) {
	_, err := decodeString(t, `
program:
  add: [1, 2]
`)
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if derr.Line != 2 || !strings.Contains(derr.Message, "expected a statement") {
		t.Fatalf("unexpected error %v", derr)
	}

	_, err = decodeString(t, `
program: 5
`)
	if !errors.As(err, &derr) || !strings.Contains(derr.Message, "expected a statement") {
		t.Fatalf("bare number should be rejected as a statement, got %v", err)
	}
}

func TestDecodeRejectsStatementAsExpression(t *testing.T) {
	_, err := decodeString(t, `
program:
  assign: {name: x, expression: {do_nothing: null}}
`)
	var derr *DecodeError
	if !errors.As(err, &derr) || !strings.Contains(derr.Message, "expected an expression") {
		t.Fatalf("expected expression error, got %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"unknown top-level key": "program: do_nothing\nextra: 1\n",
		"missing program":       "environment: {x: 1}\n",
		"two node kinds":        "program: {assign: {name: x, expression: 1}, while: {condition: true, body: do_nothing}}\n",
		"missing field":         "program: {assign: {name: x}}\n",
		"unexpected field":      "program: {while: {condition: true, body: do_nothing, step: 1}}\n",
		"bad operand count":     "program: {assign: {name: x, expression: {add: [1]}}}\n",
		"bare variable name":    "program: {assign: {name: x, expression: y}}\n",
		"non-literal binding":   "environment: {x: {variable: y}}\nprogram: do_nothing\n",
		"unknown statement":     "program: {repeat: {}}\n",
		"negative max steps":    "program: do_nothing\nsettings: {max_steps: -1}\n",
		"unknown error kind":    "program: do_nothing\nexpect: {error: Boom}\n",
		"empty document":        "",
		"empty variable name":   "program: {assign: {name: \"\", expression: 1}}\n",
	}
	for name, src := range cases {
		if _, err := DecodeProgram(strings.NewReader(src), name+".yml"); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDecodeSettingsAndExpectation(t *testing.T) {
	program, err := decodeString(t, `
program: {assign: {name: x, expression: 1}}
settings:
  max_steps: 10
  trace: false
expect:
  steps: 1
  statement: " do-nothing "
  environment: {x: 1}
`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if program.Settings.MaxSteps != 10 || program.Settings.Trace {
		t.Fatalf("settings not applied: %#v", program.Settings)
	}
	machine, runErr := program.Run()
	if runErr != nil {
		t.Fatalf("run: %v", runErr)
	}
	if problems := program.Expect.Check(machine, runErr); len(problems) != 0 {
		t.Fatalf("unexpected mismatches: %v", problems)
	}
}

func TestExpectationReportsMismatches(t *testing.T) {
	program, err := decodeString(t, `
program: {assign: {name: x, expression: {add: [1, 1]}}}
settings: {trace: false}
expect:
  steps: 3
  statement: x = 2
  environment: {x: 3}
  error: InvalidStep
`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	machine, runErr := program.Run()
	problems := program.Expect.Check(machine, runErr)
	if len(problems) != 4 {
		t.Fatalf("expected four mismatches, got %d: %v", len(problems), problems)
	}
}

func TestProgramSettingsLimitMachine(t *testing.T) {
	program, err := decodeString(t, `
program: {while: {condition: true, body: do_nothing}}
settings: {max_steps: 3, trace: false}
`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	machine, runErr := program.Run()
	if !errors.Is(runErr, interpreter.ErrStepLimitExceeded) {
		t.Fatalf("expected step limit error, got %v", runErr)
	}
	if machine.Steps() != 3 {
		t.Fatalf("steps = %d, want 3", machine.Steps())
	}

	recorder := &interpreter.Recorder{}
	_, runErr = program.Run(interpreter.WithStepLimit(0), interpreter.WithStepLimit(4), interpreter.WithTrace(recorder))
	if !errors.Is(runErr, interpreter.ErrStepLimitExceeded) || len(recorder.States) != 5 {
		t.Fatalf("override limit not honoured: err=%v states=%d", runErr, len(recorder.States))
	}
}

func TestLoadProgramFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "program.yml")
	if err := os.WriteFile(path, []byte("program: {assign: {name: x, expression: 7}}\n"), 0o644); err != nil {
		t.Fatalf("write program: %v", err)
	}
	program, err := LoadProgram(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !filepath.IsAbs(program.Path) || program.Name() != "program.yml" {
		t.Fatalf("unexpected path/name %q %q", program.Path, program.Name())
	}
	if _, err := LoadProgram(filepath.Join(dir, "missing.yml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := LoadProgram(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
