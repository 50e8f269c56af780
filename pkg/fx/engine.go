// Package fx is the host-facing API: construct an Engine, optionally
// register host-supplied functions, and evaluate expression text
// against a Session.
package fx

import (
	"github.com/arvidsson/powerfx-go/internal/ast"
	"github.com/arvidsson/powerfx-go/internal/builtins"
	"github.com/arvidsson/powerfx-go/internal/evaluator"
	"github.com/arvidsson/powerfx-go/internal/parser"
	"github.com/arvidsson/powerfx-go/internal/registry"
	"github.com/arvidsson/powerfx-go/pkg/fxsession"
	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
)

// Re-exports so a host only needs to import this one package for the
// common case.
type (
	Value   = fxvalue.Value
	Record  = fxvalue.Record
	Table   = fxvalue.Table
	Session = fxsession.Session
)

// NewSession returns an empty Session: no globals, no row overlay.
func NewSession() *Session { return fxsession.New() }

// Value constructors, re-exported for hosts that only want to import
// this one package.
var (
	Number  = fxvalue.Number
	Boolean = fxvalue.Boolean
	Text    = fxvalue.Text
	Blank   = fxvalue.Blank
)

// ScalarFunctionFactory builds a host-supplied callable given a handle
// to the Engine's Evaluator, so the callable can recursively evaluate
// its own unevaluated argument expressions — the same shape the
// built-ins themselves use.
type ScalarFunctionFactory = evaluator.ScalarFunctionFactory

// Engine wires together a Registry and an Evaluator and exposes the
// three host-visible operations: constructing with built-ins
// pre-registered, registering additional scalar functions, and
// evaluating expression text.
type Engine struct {
	registry  *registry.Registry
	evaluator *evaluator.Evaluator
}

// Option configures an Engine at construction time.
type Option func(*engineConfig)

type engineConfig struct {
	registry       *registry.Registry
	withoutBuiltins bool
}

// WithFunctionRegistry seeds the Engine with a pre-built registry
// instead of a fresh one — useful for a host that wants to share one
// registry across multiple engines.
func WithFunctionRegistry(reg *registry.Registry) Option {
	return func(c *engineConfig) { c.registry = reg }
}

// WithoutBuiltins skips registering the standard library of built-in
// functions, leaving the Engine with only whatever the host registers
// via RegisterScalarFunction.
func WithoutBuiltins() Option {
	return func(c *engineConfig) { c.withoutBuiltins = true }
}

// New constructs an Engine. By default all built-in functions are
// pre-registered (see internal/builtins.RegisterAll).
func New(opts ...Option) *Engine {
	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	reg := cfg.registry
	if reg == nil {
		reg = registry.New()
	}

	eval := evaluator.New(reg)
	if !cfg.withoutBuiltins {
		builtins.RegisterAll(eval)
	}

	return &Engine{registry: reg, evaluator: eval}
}

// RegisterScalarFunction registers a host-supplied function under
// name. factory receives a handle to the Engine's Evaluator and must
// return a callable; this lets host functions recursively evaluate
// their own unevaluated argument expressions exactly as built-ins do.
func (e *Engine) RegisterScalarFunction(name string, factory ScalarFunctionFactory) {
	e.registry.Register(name, factory(e.evaluator))
}

// Evaluate parses text, evaluates each top-level expression in order
// against session (a fresh empty Session is used if session is nil),
// and returns the value of the last expression, or the first error
// encountered — which aborts the whole call.
func (e *Engine) Evaluate(text string, session *Session) (Value, error) {
	program, err := parser.ParseProgram(text)
	if err != nil {
		return Value{}, err
	}

	if session == nil {
		session = NewSession()
	}

	var result Value
	for _, expr := range program.Expressions {
		result, err = e.evaluateTopLevel(session, expr)
		if err != nil {
			return Value{}, err
		}
	}
	return result, nil
}

func (e *Engine) evaluateTopLevel(session *Session, expr ast.Expression) (Value, error) {
	return e.evaluator.Evaluate(session, expr)
}
