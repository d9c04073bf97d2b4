package object

import "jal/internals"

// binding pairs a runtime value with its mutability, per the Environment
// data model: a mapping from name to {value, mutable}.
type binding struct {
	value   *Value
	mutable bool
}

// Environment is one frame of the lexically scoped chain: a mapping owned
// by this frame plus a parent link. A name resolves from the innermost
// frame outward.
type Environment struct {
	parent *Environment
	store  map[string]*binding
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, store: make(map[string]*binding)}
}

// Define introduces name in the current frame only. Callers are expected to
// have already rejected redeclaration (the checker enforces this
// statically); at runtime a duplicate-in-current-scope define is a fatal
// error, since it would silently break the checker's invariant.
func (e *Environment) Define(name string, value *Value, mutable bool) error {
	if _, ok := e.store[name]; ok {
		return &internals.RuntimeError{Message: "duplicate declaration of '" + name + "' in the same scope"}
	}
	e.store[name] = &binding{value: value, mutable: mutable}
	return nil
}

// Resolve walks the chain from this frame outward.
func (e *Environment) Resolve(name string) (*Value, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.store[name]; ok {
			return b.value, true
		}
	}
	return nil, false
}

// Assign overwrites an existing binding found anywhere in the chain. It
// returns an error if the name is unbound or bound immutably.
func (e *Environment) Assign(name string, value *Value) error {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.store[name]; ok {
			if !b.mutable {
				return &internals.RuntimeError{Message: "cannot assign to immutable binding '" + name + "'"}
			}
			b.value = value
			return nil
		}
	}
	return &internals.RuntimeError{Message: "undefined variable '" + name + "'"}
}
