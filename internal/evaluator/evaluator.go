// Package evaluator implements the tree-walking interpreter: it
// dispatches on internal/ast node shapes, resolves identifiers
// against a fxsession.Session, and applies the operator coercion
// rules of the expression language.
package evaluator

import (
	"math"
	"strings"

	"github.com/arvidsson/powerfx-go/internal/ast"
	"github.com/arvidsson/powerfx-go/internal/fxerr"
	"github.com/arvidsson/powerfx-go/internal/registry"
	"github.com/arvidsson/powerfx-go/pkg/fxsession"
	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerCaser = cases.Lower(language.Und)

func foldLower(s string) string { return lowerCaser.String(s) }

func containsSubstring(haystack, needle string) bool { return strings.Contains(haystack, needle) }

// Evaluator interprets ast.Expression trees against a Session,
// dispatching function calls through a Registry. It holds a handle to
// its Registry so the top-level Evaluate entry point can resolve
// calls; built-in and host-registered functions are in turn handed a
// handle back to the Evaluator (see ScalarFunctionFactory) so they can
// recursively evaluate their own unevaluated argument expressions.
// This mutual handle is the structural cycle described in the
// language's design notes, resolved by two-phase construction: New
// builds the Evaluator against an already-constructed, still-empty
// Registry; the caller registers built-ins afterward via
// Registry.Register, each wrapped in a closure over this same
// Evaluator.
type Evaluator struct {
	Registry *registry.Registry
}

// New constructs an Evaluator bound to reg. reg need not yet have any
// functions registered.
func New(reg *registry.Registry) *Evaluator {
	return &Evaluator{Registry: reg}
}

// ScalarFunctionFactory builds a registry.ScalarFunction given a
// handle to the Evaluator it will recursively call back into. This is
// the shape `engine.register_scalar_function`'s factory argument
// takes.
type ScalarFunctionFactory func(*Evaluator) registry.ScalarFunction

// Evaluate interprets expr against session and returns its value or
// the first evaluation error encountered.
func (e *Evaluator) Evaluate(session *fxsession.Session, expr ast.Expression) (fxvalue.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.RecordLiteral:
		return e.evaluateRecordLiteral(session, n)
	case *ast.Identifier:
		return e.evaluateName(session, n.Name)
	case *ast.Parameter:
		return e.evaluateName(session, n.Name)
	case *ast.Property:
		return fxvalue.Blank(), fxerr.NewInvalidArgument("unresolved context %s.%s: no host context is bound", n.Context.String(), n.Key)
	case *ast.Alias:
		return e.Evaluate(session, n.Source)
	case *ast.Not:
		return e.evaluateNot(session, n.Operand)
	case *ast.IsBlank:
		v, err := e.Evaluate(session, n.Operand)
		if err != nil {
			return fxvalue.Value{}, err
		}
		return fxvalue.Boolean(v.IsBlank()), nil
	case *ast.IsNotBlank:
		v, err := e.Evaluate(session, n.Operand)
		if err != nil {
			return fxvalue.Value{}, err
		}
		return fxvalue.Boolean(v.IsNotBlank()), nil
	case *ast.BinaryExpression:
		return e.evaluateBinary(session, n)
	case *ast.FunctionExpression:
		return e.evaluateCall(session, n)
	default:
		return fxvalue.Value{}, fxerr.NewInvalidArgument("unrecognized expression node")
	}
}

func (e *Evaluator) evaluateName(session *fxsession.Session, name string) (fxvalue.Value, error) {
	v, ok := session.GetVariable(name)
	if !ok {
		return fxvalue.Value{}, fxerr.NewUnknownIdentifier(name)
	}
	return v, nil
}

func (e *Evaluator) evaluateRecordLiteral(session *fxsession.Session, n *ast.RecordLiteral) (fxvalue.Value, error) {
	fields := make(map[string]fxvalue.Value, len(n.Names))
	for _, name := range n.Names {
		v, err := e.Evaluate(session, n.Fields[name])
		if err != nil {
			return fxvalue.Value{}, err
		}
		fields[name] = v
	}
	return fxvalue.RecordValue(fxvalue.NewRecord(fields)), nil
}

// evaluateNot is the lenient boolean-operator form: a non-boolean
// operand is coerced to false (never an error), matching the And/Or
// binary operators' leniency. This is distinct from the strict Not/
// And/Or built-in FUNCTIONS in internal/builtins, which require
// actual booleans.
func (e *Evaluator) evaluateNot(session *fxsession.Session, operand ast.Expression) (fxvalue.Value, error) {
	v, err := e.Evaluate(session, operand)
	if err != nil {
		return fxvalue.Value{}, err
	}
	return fxvalue.Boolean(!asLenientBool(v)), nil
}

func asLenientBool(v fxvalue.Value) bool {
	return v.Kind() == fxvalue.KindBoolean && v.AsBoolean()
}

func (e *Evaluator) evaluateCall(session *fxsession.Session, n *ast.FunctionExpression) (fxvalue.Value, error) {
	fn, ok := e.Registry.Lookup(n.Name)
	if !ok {
		return fxvalue.Value{}, fxerr.NewUnknownFunction(n.Name)
	}
	return fn.Call(session, n.Args)
}

func (e *Evaluator) evaluateBinary(session *fxsession.Session, n *ast.BinaryExpression) (fxvalue.Value, error) {
	switch n.Operator {
	case ast.OpAnd:
		return e.evaluateLenientLogical(session, n, true)
	case ast.OpOr:
		return e.evaluateLenientLogical(session, n, false)
	}

	left, err := e.Evaluate(session, n.Left)
	if err != nil {
		return fxvalue.Value{}, err
	}
	right, err := e.Evaluate(session, n.Right)
	if err != nil {
		return fxvalue.Value{}, err
	}

	switch n.Operator {
	case ast.OpEq:
		return fxvalue.Boolean(fxvalue.Equal(left, right)), nil
	case ast.OpNe:
		return fxvalue.Boolean(!fxvalue.Equal(left, right)), nil
	case ast.OpLt:
		return compareOp(left, right, func(less, equal bool) bool { return less })
	case ast.OpLe:
		return compareOp(left, right, func(less, equal bool) bool { return less || equal })
	case ast.OpGt:
		return compareOp(left, right, func(less, equal bool) bool { return !less && !equal })
	case ast.OpGe:
		return compareOp(left, right, func(less, equal bool) bool { return !less })
	case ast.OpIn:
		return evaluateIn(left, right, false)
	case ast.OpExactIn:
		return evaluateIn(left, right, true)
	case ast.OpAdd:
		return evaluateAdd(left, right), nil
	case ast.OpSubtract:
		return evaluateNumericOrBlank(left, right, func(a, b float64) float64 { return a - b }), nil
	case ast.OpMultiply:
		return evaluateNumericOrBlank(left, right, func(a, b float64) float64 { return a * b }), nil
	case ast.OpDivide:
		return evaluateNumericOrBlank(left, right, func(a, b float64) float64 { return a / b }), nil
	case ast.OpModulo:
		return evaluateNumericOrBlank(left, right, math.Mod), nil
	case ast.OpExponent:
		return fxvalue.Value{}, fxerr.NewInvalidArgument("exponent operator ^ is not implemented")
	default:
		return fxvalue.Value{}, fxerr.NewInvalidArgument("unrecognized binary operator")
	}
}

// evaluateLenientLogical implements the binary And/Or operators: both
// operands are evaluated in order (not short-circuited — these are
// regular binary nodes per the language design), and a non-boolean
// operand is treated as false rather than raising an error.
func (e *Evaluator) evaluateLenientLogical(session *fxsession.Session, n *ast.BinaryExpression, isAnd bool) (fxvalue.Value, error) {
	left, err := e.Evaluate(session, n.Left)
	if err != nil {
		return fxvalue.Value{}, err
	}
	right, err := e.Evaluate(session, n.Right)
	if err != nil {
		return fxvalue.Value{}, err
	}
	l, r := asLenientBool(left), asLenientBool(right)
	if isAnd {
		return fxvalue.Boolean(l && r), nil
	}
	return fxvalue.Boolean(l || r), nil
}

func compareOp(left, right fxvalue.Value, accept func(less, equal bool) bool) (fxvalue.Value, error) {
	less, ok := fxvalue.Compare(left, right)
	if !ok {
		return fxvalue.Boolean(false), nil
	}
	equal := !less && fxvalue.Equal(left, right)
	return fxvalue.Boolean(accept(less, equal)), nil
}

func evaluateIn(left, right fxvalue.Value, caseSensitive bool) (fxvalue.Value, error) {
	if left.Kind() != fxvalue.KindText || right.Kind() != fxvalue.KindText {
		return fxvalue.Value{}, fxerr.NewInvalidType("in/exactin require Text operands")
	}
	needle, haystack := left.AsText(), right.AsText()
	if !caseSensitive {
		needle = foldLower(needle)
		haystack = foldLower(haystack)
	}
	return fxvalue.Boolean(containsSubstring(haystack, needle)), nil
}

func evaluateAdd(left, right fxvalue.Value) fxvalue.Value {
	if left.Kind() == fxvalue.KindNumber && right.Kind() == fxvalue.KindNumber {
		return fxvalue.Number(left.AsNumber() + right.AsNumber())
	}

	lk, rk := left.Kind(), right.Kind()
	textCombo := (lk == fxvalue.KindNumber && rk == fxvalue.KindText) ||
		(lk == fxvalue.KindText && rk == fxvalue.KindNumber) ||
		(lk == fxvalue.KindText && rk == fxvalue.KindText) ||
		(lk == fxvalue.KindText && rk == fxvalue.KindBoolean)
	if textCombo {
		return fxvalue.Text(left.String() + right.String())
	}

	return fxvalue.Blank()
}

func evaluateNumericOrBlank(left, right fxvalue.Value, op func(a, b float64) float64) fxvalue.Value {
	if left.Kind() != fxvalue.KindNumber || right.Kind() != fxvalue.KindNumber {
		return fxvalue.Blank()
	}
	return fxvalue.Number(op(left.AsNumber(), right.AsNumber()))
}
