package interp

import (
	"fmt"

	"github.com/cwbudde/go-pascal/pkg/ident"
)

// Environment is a symbol table for variable storage with nested scopes.
// Pascal names are case-insensitive; the store uses ident.Map so any casing
// of a name finds the same binding.
//
// The outer chain doubles as the scope chain of active routine frames: the
// innermost frame links to its caller's frame and the root environment
// holds the globals. Lookups search inward-out; assignment writes to the
// first frame that holds the name and falls back to the globals.
type Environment struct {
	store *ident.Map[Value]
	outer *Environment
}

// NewEnvironment creates a root-level environment with no outer scope.
func NewEnvironment() *Environment {
	return &Environment{store: ident.NewMap[Value]()}
}

// NewEnclosedEnvironment creates an environment enclosed by outer. Used for
// routine frames and with-statement field scopes.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{store: ident.NewMap[Value](), outer: outer}
}

// Get retrieves a binding, searching the scope chain inward-out.
func (e *Environment) Get(name string) (Value, bool) {
	if val, ok := e.store.Get(name); ok {
		return val, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// GetLocal retrieves a binding from this scope only.
func (e *Environment) GetLocal(name string) (Value, bool) {
	return e.store.Get(name)
}

// Set updates an existing binding, searching the scope chain inward-out.
// Returns an error when the name is unbound in every scope.
func (e *Environment) Set(name string, val Value) error {
	if e.store.Has(name) {
		e.store.Set(name, val)
		return nil
	}
	if e.outer != nil {
		return e.outer.Set(name, val)
	}
	return fmt.Errorf("undefined variable: %s", name)
}

// Assign writes a value using Pascal's assignment resolution: the first
// scope holding the name receives the write; when no scope holds it, the
// binding is created in the root (global) environment.
func (e *Environment) Assign(name string, val Value) {
	if err := e.Set(name, val); err != nil {
		e.root().store.Set(name, val)
	}
}

// Define creates or replaces a binding in this scope.
func (e *Environment) Define(name string, val Value) {
	e.store.Set(name, val)
}

// Has reports whether the name is bound in this scope or any outer scope.
func (e *Environment) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Outer returns the enclosing environment, or nil at the root.
func (e *Environment) Outer() *Environment {
	return e.outer
}

func (e *Environment) root() *Environment {
	r := e
	for r.outer != nil {
		r = r.outer
	}
	return r
}
