package interpreter

import (
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/cfmeyers/Understanding-Computation/pkg/ast"
	"github.com/cfmeyers/Understanding-Computation/pkg/runtime"
)

// State is one machine configuration: the statement left to run and the
// environment it runs in.
type State struct {
	Statement   ast.Statement
	Environment *runtime.Environment
}

func (s State) String() string {
	return fmt.Sprintf("%s     %s", render(s.Statement), s.Environment)
}

// TraceSink receives every state a Machine passes through, in order.
type TraceSink interface {
	Emit(State) error
}

// TraceFunc adapts a function to TraceSink.
type TraceFunc func(State) error

func (f TraceFunc) Emit(state State) error {
	return f(state)
}

// DiscardSink drops every state.
var DiscardSink TraceSink = TraceFunc(func(State) error { return nil })

type writerSink struct {
	w io.Writer
}

// NewWriterSink writes one rendered state per line to w.
func NewWriterSink(w io.Writer) TraceSink {
	return writerSink{w: w}
}

func (s writerSink) Emit(state State) error {
	_, err := fmt.Fprintln(s.w, state.String())
	return err
}

// Recorder keeps every emitted state.
type Recorder struct {
	States []State
}

func (r *Recorder) Emit(state State) error {
	r.States = append(r.States, state)
	return nil
}

// Lines returns the rendered states.
func (r *Recorder) Lines() []string {
	return lo.Map(r.States, func(state State, _ int) string {
		return state.String()
	})
}

// Last returns the most recent state; ok is false when nothing was recorded.
func (r *Recorder) Last() (State, bool) {
	if len(r.States) == 0 {
		return State{}, false
	}
	return r.States[len(r.States)-1], true
}

func render(node ast.Node) string {
	if node == nil {
		return "<nil>"
	}
	return node.String()
}
