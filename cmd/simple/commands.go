package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/cfmeyers/Understanding-Computation/pkg/driver"
	"github.com/cfmeyers/Understanding-Computation/pkg/interpreter"
)

// runProgram runs one program file, tracing every state to stdout. With
// --quiet only the final state is printed.
func runProgram(args []string) int {
	opts, paths, err := parseRunFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simple run: %v\n", err)
		return 1
	}
	if len(paths) != 1 {
		fmt.Fprintf(os.Stderr, "simple run expects exactly one program file (received %d)\n", len(paths))
		printUsage()
		return 1
	}

	program, err := driver.LoadProgram(paths[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	machineOpts := []interpreter.MachineOption{}
	if opts.maxStepsSet {
		machineOpts = append(machineOpts, interpreter.WithStepLimit(opts.maxSteps))
	}
	switch {
	case opts.quiet:
		machineOpts = append(machineOpts, interpreter.WithTrace(interpreter.DiscardSink))
	case program.Settings.Trace:
		machineOpts = append(machineOpts, interpreter.WithTrace(interpreter.NewWriterSink(os.Stdout)))
	}

	machine, runErr := program.Run(machineOpts...)
	if opts.quiet || !program.Settings.Trace {
		fmt.Fprintln(os.Stdout, machine.State().String())
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "simple run: %s: %v (after %d steps)\n", program.Name(), runErr, machine.Steps())
		return 1
	}
	return 0
}

// runCheck decodes each program file without running it.
func runCheck(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "simple check expects at least one program file")
		return 1
	}
	failed := 0
	for _, path := range args {
		program, err := driver.LoadProgram(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "ok   %s: %s\n", path, program.Statement)
	}
	if failed > 0 {
		return 1
	}
	return 0
}

type testResult struct {
	path     string
	name     string
	steps    int
	problems []string
}

func (r testResult) passed() bool {
	return len(r.problems) == 0
}

// runTest runs each program file without tracing and compares the outcome
// with its expect section. A file without one passes when it runs to
// completion.
func runTest(args []string) int {
	opts, paths, err := parseRunFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simple test: %v\n", err)
		return 1
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stdout, "simple test: no program files given")
		return 0
	}

	results := make([]testResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, testProgram(path, opts))
	}

	for _, result := range results {
		if result.passed() {
			fmt.Fprintf(os.Stdout, "ok   %s (%d steps)\n", result.name, result.steps)
			continue
		}
		fmt.Fprintf(os.Stdout, "FAIL %s\n", result.name)
		for _, problem := range result.problems {
			fmt.Fprintf(os.Stdout, "     %s\n", problem)
		}
	}

	failures := lo.Filter(results, func(result testResult, _ int) bool {
		return !result.passed()
	})
	fmt.Fprintf(os.Stdout, "%d passed, %d failed\n", len(results)-len(failures), len(failures))
	if len(failures) > 0 {
		return 1
	}
	return 0
}

func testProgram(path string, opts runOptions) testResult {
	program, err := driver.LoadProgram(path)
	if err != nil {
		return testResult{path: path, name: path, problems: []string{err.Error()}}
	}
	machineOpts := []interpreter.MachineOption{interpreter.WithTrace(interpreter.DiscardSink)}
	if opts.maxStepsSet {
		machineOpts = append(machineOpts, interpreter.WithStepLimit(opts.maxSteps))
	}
	machine, runErr := program.Run(machineOpts...)

	result := testResult{path: path, name: program.Name(), steps: machine.Steps()}
	if program.Expect != nil {
		result.problems = program.Expect.Check(machine, runErr)
	} else if runErr != nil {
		result.problems = []string{fmt.Sprintf("unexpected error: %v", runErr)}
	}
	if !result.passed() && !strings.Contains(result.name, path) {
		result.name = fmt.Sprintf("%s [%s]", result.name, path)
	}
	return result
}
