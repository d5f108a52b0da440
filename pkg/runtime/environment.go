package runtime

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/samber/lo"

	"github.com/cfmeyers/Understanding-Computation/pkg/ast"
)

// Environment maps variable names to values. It is never modified after
// construction: binding a name produces a new Environment and every earlier
// reference keeps seeing its own bindings. A nil *Environment is empty.
type Environment struct {
	values *treemap.Map
}

// NewEnvironment copies bindings into a fresh environment. Every value must be
// non-nil; a nil value panics, the same as With.
func NewEnvironment(bindings map[string]ast.Value) *Environment {
	values := treemap.NewWithStringComparator()
	for name, value := range bindings {
		if value == nil {
			panic(fmt.Sprintf("runtime: nil value bound to %q", name))
		}
		values.Put(name, value)
	}
	return &Environment{values: values}
}

// Get returns the value bound to name.
func (e *Environment) Get(name string) (ast.Value, bool) {
	if e == nil || e.values == nil {
		return nil, false
	}
	raw, ok := e.values.Get(name)
	if !ok {
		return nil, false
	}
	return raw.(ast.Value), true
}

// With returns a copy of the environment with name bound to value. The
// receiver is left untouched. value must be non-nil: reduction only ever binds
// Numbers and Booleans, so a nil value is a programming error and panics.
func (e *Environment) With(name string, value ast.Value) *Environment {
	if value == nil {
		panic(fmt.Sprintf("runtime: nil value bound to %q", name))
	}
	values := treemap.NewWithStringComparator()
	if e != nil && e.values != nil {
		it := e.values.Iterator()
		for it.Next() {
			values.Put(it.Key(), it.Value())
		}
	}
	values.Put(name, value)
	return &Environment{values: values}
}

// Len returns the number of bindings.
func (e *Environment) Len() int {
	if e == nil || e.values == nil {
		return 0
	}
	return e.values.Size()
}

// Keys returns the bound names in sorted order.
func (e *Environment) Keys() []string {
	if e == nil || e.values == nil {
		return []string{}
	}
	return lo.Map(e.values.Keys(), func(key interface{}, _ int) string {
		return key.(string)
	})
}

// Equal reports whether both environments bind the same names to
// structurally equal values.
func (e *Environment) Equal(other *Environment) bool {
	if e.Len() != other.Len() {
		return false
	}
	for _, name := range e.Keys() {
		mine, _ := e.Get(name)
		theirs, ok := other.Get(name)
		if !ok || !ast.Equal(mine, theirs) {
			return false
		}
	}
	return true
}

// String renders the bindings as {name: value, ...} in name order.
func (e *Environment) String() string {
	pairs := lo.Map(e.Keys(), func(name string, _ int) string {
		value, _ := e.Get(name)
		return name + ": " + value.String()
	})
	return "{" + strings.Join(pairs, ", ") + "}"
}
