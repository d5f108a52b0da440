package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cfmeyers/Understanding-Computation/pkg/interpreter"
)

func TestProgramFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yml"))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixtures found")
	}
	for _, path := range paths {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".yml")
		t.Run(name, func(t *testing.T) {
			runProgramFixture(t, path)
		})
	}
}

func runProgramFixture(t *testing.T, path string) {
	t.Helper()
	program, err := LoadProgram(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	if program.Expect == nil {
		t.Fatalf("fixture %s has no expect section", path)
	}

	recorder := &interpreter.Recorder{}
	machine, runErr := program.Run(interpreter.WithTrace(recorder))
	if problems := program.Expect.Check(machine, runErr); len(problems) > 0 {
		t.Fatalf("expectation mismatch:\n%s", strings.Join(problems, "\n"))
	}
	if len(recorder.States) != machine.Steps()+1 && runErr == nil {
		t.Fatalf("emitted %d states for %d steps", len(recorder.States), machine.Steps())
	}

	golden := strings.TrimSuffix(path, ".yml") + ".trace"
	data, err := os.ReadFile(golden)
	if err != nil {
		t.Fatalf("read golden trace %s: %v", golden, err)
	}
	want := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if diff := cmp.Diff(want, recorder.Lines()); diff != "" {
		t.Fatalf("trace mismatch (-want +got):\n%s", diff)
	}
}
