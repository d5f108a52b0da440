package runtime

import (
	"strings"
	"testing"

	"github.com/cfmeyers/Understanding-Computation/pkg/ast"
)

func TestEnvironmentWithLeavesReceiverUntouched(t *testing.T) {
	base := NewEnvironment(map[string]ast.Value{"x": ast.Int(1)})
	next := base.With("x", ast.Int(3))
	added := next.With("y", ast.Bool(true))

	if v, _ := base.Get("x"); v.(*ast.Number).Value != 1 {
		t.Fatalf("base binding changed: %s", base)
	}
	if _, ok := base.Get("y"); ok {
		t.Fatalf("new binding leaked into earlier environments")
	}
	if _, ok := next.Get("y"); ok {
		t.Fatalf("new binding leaked into earlier environments")
	}
	if v, _ := next.Get("x"); v.(*ast.Number).Value != 3 {
		t.Fatalf("expected x = 3 in next, got %s", next)
	}
	if added.Len() != 2 {
		t.Fatalf("expected two bindings, got %d", added.Len())
	}
}

func TestEnvironmentConstructorCopiesInput(t *testing.T) {
	bindings := map[string]ast.Value{"x": ast.Int(1)}
	env := NewEnvironment(bindings)
	bindings["x"] = ast.Int(99)
	bindings["z"] = ast.Int(0)
	if v, _ := env.Get("x"); v.(*ast.Number).Value != 1 {
		t.Fatalf("environment aliased its input map")
	}
	if _, ok := env.Get("z"); ok {
		t.Fatalf("environment aliased its input map")
	}
}

func TestEnvironmentGetUnbound(t *testing.T) {
	env := NewEnvironment(map[string]ast.Value{"x": ast.Int(1)})
	if v, ok := env.Get("z"); ok || v != nil {
		t.Fatalf("expected z to be unbound, got %v", v)
	}
}

func TestNilEnvironmentIsEmpty(t *testing.T) {
	var env *Environment
	if env.Len() != 0 || len(env.Keys()) != 0 {
		t.Fatalf("nil environment should be empty")
	}
	if got := env.String(); got != "{}" {
		t.Fatalf("nil environment renders %q", got)
	}
	next := env.With("x", ast.Int(2))
	if v, ok := next.Get("x"); !ok || v.(*ast.Number).Value != 2 {
		t.Fatalf("With on nil environment lost binding")
	}
}

func TestEnvironmentRendering(t *testing.T) {
	env := NewEnvironment(map[string]ast.Value{
		"y": ast.Bool(false),
		"x": ast.Int(9),
		"a": ast.Int(-1),
	})
	if got, want := env.String(), "{a: -1, x: 9, y: false}"; got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
	if got := strings.Join(env.Keys(), ","); got != "a,x,y" {
		t.Fatalf("keys not sorted: %q", got)
	}
}

func TestEnvironmentEqual(t *testing.T) {
	a := NewEnvironment(map[string]ast.Value{"x": ast.Int(9)})
	b := NewEnvironment(nil).With("x", ast.Int(9))
	if !a.Equal(b) {
		t.Fatalf("expected %s == %s", a, b)
	}
	if a.Equal(b.With("y", ast.Int(1))) {
		t.Fatalf("extra binding should break equality")
	}
	if a.Equal(NewEnvironment(map[string]ast.Value{"x": ast.Bool(true)})) {
		t.Fatalf("value kind should matter")
	}
}

func TestEnvironmentRejectsNilValue(t *testing.T) {
	expectPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s: expected panic on nil binding", name)
			}
		}()
		fn()
	}
	expectPanic("With", func() { NewEnvironment(nil).With("x", nil) })
	expectPanic("NewEnvironment", func() { NewEnvironment(map[string]ast.Value{"x": nil}) })
}
