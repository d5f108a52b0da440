package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cfmeyers/Understanding-Computation/pkg/ast"
	"github.com/cfmeyers/Understanding-Computation/pkg/interpreter"
	"github.com/cfmeyers/Understanding-Computation/pkg/runtime"
)

// Program is a decoded program file: a statement tree, the environment it
// starts in, run settings and optional expectations about the outcome.
type Program struct {
	Path        string
	Description string
	Statement   ast.Statement
	Environment *runtime.Environment
	Settings    Settings
	Expect      *Expectation
}

// Settings control how a program file is run. Command-line flags override them.
type Settings struct {
	MaxSteps int
	Trace    bool
}

func defaultSettings() Settings {
	return Settings{Trace: true}
}

// LoadProgram reads and decodes a program file from disk.
func LoadProgram(path string) (*Program, error) {
	if path == "" {
		return nil, fmt.Errorf("program: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("program: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("program: open %s: %w", absPath, err)
	}
	defer file.Close()
	return DecodeProgram(file, absPath)
}

// DecodeProgram decodes a program document from r. path is only used in
// error messages.
func DecodeProgram(r io.Reader, path string) (*Program, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw programFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("program: %s is empty", path)
		}
		return nil, fmt.Errorf("program: parse %s: %w", path, err)
	}
	return raw.toProgram(path)
}

type programFile struct {
	Description string       `yaml:"description"`
	Environment yaml.Node    `yaml:"environment"`
	Program     yaml.Node    `yaml:"program"`
	Settings    settingsFile `yaml:"settings"`
	Expect      *expectFile  `yaml:"expect"`
}

type settingsFile struct {
	MaxSteps *int  `yaml:"max_steps"`
	Trace    *bool `yaml:"trace"`
}

type expectFile struct {
	Steps       *int      `yaml:"steps"`
	Statement   *string   `yaml:"statement"`
	Environment yaml.Node `yaml:"environment"`
	Error       string    `yaml:"error"`
}

func (f programFile) toProgram(path string) (*Program, error) {
	d := newTreeDecoder(path)
	if isAbsent(&f.Program) {
		return nil, fmt.Errorf("program: %s: missing program", path)
	}
	stmt, err := d.statement(&f.Program)
	if err != nil {
		return nil, err
	}
	env, err := d.environment(&f.Environment)
	if err != nil {
		return nil, err
	}
	settings := defaultSettings()
	if f.Settings.MaxSteps != nil {
		if *f.Settings.MaxSteps < 0 {
			return nil, fmt.Errorf("program: %s: settings.max_steps must not be negative", path)
		}
		settings.MaxSteps = *f.Settings.MaxSteps
	}
	if f.Settings.Trace != nil {
		settings.Trace = *f.Settings.Trace
	}
	program := &Program{
		Path:        path,
		Description: strings.TrimSpace(f.Description),
		Statement:   stmt,
		Environment: env,
		Settings:    settings,
	}
	if f.Expect != nil {
		expect, err := f.Expect.toExpectation(d)
		if err != nil {
			return nil, err
		}
		program.Expect = expect
	}
	return program, nil
}

// NewMachine builds a machine for the program honouring its settings. opts
// are applied afterwards and win over the settings.
func (p *Program) NewMachine(opts ...interpreter.MachineOption) *interpreter.Machine {
	base := []interpreter.MachineOption{interpreter.WithStepLimit(p.Settings.MaxSteps)}
	if !p.Settings.Trace {
		base = append(base, interpreter.WithTrace(interpreter.DiscardSink))
	}
	return interpreter.NewMachine(p.Statement, p.Environment, append(base, opts...)...)
}

// Name is the label used when reporting on the program.
func (p *Program) Name() string {
	if p.Description != "" {
		return p.Description
	}
	return filepath.Base(p.Path)
}

// Run executes the program and returns the machine in its final state along
// with the error that stopped it, if any.
func (p *Program) Run(opts ...interpreter.MachineOption) (*interpreter.Machine, error) {
	m := p.NewMachine(opts...)
	return m, m.Run()
}
