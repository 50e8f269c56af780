// Package registry implements the function name → callable lookup
// table used by the evaluator to dispatch function-call expressions.
// Lookups are case-sensitive (the language's identifiers are
// case-sensitive throughout); registration is last-writer-wins and
// safe for concurrent readers and writers.
package registry

import (
	"sync"

	"github.com/arvidsson/powerfx-go/internal/ast"
	"github.com/arvidsson/powerfx-go/pkg/fxsession"
	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
)

// ScalarFunction is the calling convention every built-in and
// host-registered function implements: it receives the current
// session (mutable, so e.g. Set can write to globals) and the raw,
// unevaluated argument expressions, and decides for itself which to
// evaluate and in what scope.
type ScalarFunction interface {
	Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error)
}

// ScalarFunctionFunc adapts a plain function to the ScalarFunction
// interface.
type ScalarFunctionFunc func(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error)

func (f ScalarFunctionFunc) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	return f(session, args)
}

// Registry maps function names to callables. A nil *Registry behaves
// like an empty one for Lookup purposes but must not be written to.
type Registry struct {
	mu        sync.RWMutex
	functions map[string]ScalarFunction
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{functions: map[string]ScalarFunction{}}
}

// Register adds or overwrites the callable bound to name. Idempotent:
// re-registering the same name overwrites the previous binding,
// last-writer-wins.
func (r *Registry) Register(name string, fn ScalarFunction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[name] = fn
}

// Lookup returns the callable bound to name, if any.
func (r *Registry) Lookup(name string) (ScalarFunction, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.functions[name]
	return fn, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Count returns the number of registered functions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.functions)
}
