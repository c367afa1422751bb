package interp

import (
	"github.com/dolthub/swiss"
)

// Environment is one lexical scope's variable bindings, chained to its
// enclosing scope. The global environment has a nil enclosing pointer.
//
// Grounded on the teacher's codecrafters/cmd/environment.go, backed here by
// a swiss.Map instead of a built-in map per SPEC_FULL.md's domain stack —
// Environment lookups are the single hottest path in the evaluator (every
// variable read and assignment goes through one), which is exactly the
// open-addressing/SIMD-probe workload swiss.Map is built for.
type Environment struct {
	enclosing *Environment
	bindings  *swiss.Map[string, Value]
}

// NewGlobal returns the top-level environment with no enclosing scope.
func NewGlobal() *Environment {
	return &Environment{bindings: swiss.NewMap[string, Value](16)}
}

// NewChild returns a scope nested inside enclosing.
func NewChild(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, bindings: swiss.NewMap[string, Value](8)}
}

// Define binds name to value in this scope, shadowing any outer binding and
// overwriting any existing binding of the same name in this scope (a global
// may be re-declared; a duplicate declaration in one local scope is already
// rejected by the resolver).
func (e *Environment) Define(name string, value Value) {
	e.bindings.Put(name, value)
}

// Get looks up name starting in this scope and walking outward.
func (e *Environment) Get(name string) (Value, bool) {
	if v, ok := e.bindings.Get(name); ok {
		return v, true
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, false
}

// GetAt looks up name exactly `distance` scopes out (0 = this scope),
// per the hop count the resolver computed for the reference.
func (e *Environment) GetAt(distance int, name string) Value {
	env := e.ancestor(distance)
	v, _ := env.bindings.Get(name)
	return v
}

// AssignAt assigns name exactly `distance` scopes out.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	e.ancestor(distance).bindings.Put(name, value)
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// Assign sets an existing binding of name, walking outward, and reports
// whether one was found. It never creates a new binding (spec.md treats
// assignment to an undeclared name as a runtime error).
func (e *Environment) Assign(name string, value Value) bool {
	if _, ok := e.bindings.Get(name); ok {
		e.bindings.Put(name, value)
		return true
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return false
}
