package evaluator

import "sanskrit-lang/impl/internal/langerr"

// Env is one scope in the environment chain. The outer link is shared, never
// copied: closures keep their defining scope alive.
type Env struct {
	store map[string]Value
	outer *Env
}

func NewEnv(outer *Env) *Env { return &Env{store: map[string]Value{}, outer: outer} }

// Define binds name in this scope, overwriting any existing binding.
func (e *Env) Define(name string, v Value) { e.store[name] = v }

// Get resolves name through the chain.
func (e *Env) Get(name string) (Value, error) {
	for s := e; s != nil; s = s.outer {
		if v, ok := s.store[name]; ok {
			return v, nil
		}
	}
	return nil, langerr.NewName(name)
}

// Assign updates the nearest existing binding. When no scope in the chain
// binds name, it is defined in e itself.
func (e *Env) Assign(name string, v Value) {
	for s := e; s != nil; s = s.outer {
		if _, ok := s.store[name]; ok {
			s.store[name] = v
			return
		}
	}
	e.store[name] = v
}

// Outer returns the enclosing scope, or nil for the global scope.
func (e *Env) Outer() *Env { return e.outer }
