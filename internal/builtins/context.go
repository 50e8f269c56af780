// Package builtins implements the function-registry contents: the
// control/context, logical, math, text, table, and aggregation
// built-ins described by the language's built-in function contracts.
// Every built-in holds a handle back to the Evaluator so it can
// recursively evaluate its own unevaluated argument expressions,
// resolving the structural cycle between Evaluator and Registry.
package builtins

import (
	"github.com/arvidsson/powerfx-go/internal/ast"
	"github.com/arvidsson/powerfx-go/internal/evaluator"
	"github.com/arvidsson/powerfx-go/internal/fxerr"
	"github.com/arvidsson/powerfx-go/internal/registry"
	"github.com/arvidsson/powerfx-go/pkg/fxsession"
	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
)

type set struct{ eval *evaluator.Evaluator }

// Set writes its second argument's value to the session's globals
// under the name named by its first argument, which must be a bare
// Identifier node (not itself evaluated). Returns Blank.
func newSet(eval *evaluator.Evaluator) registry.ScalarFunction { return set{eval: eval} }

func (s set) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	if len(args) != 2 {
		return fxvalue.Value{}, fxerr.NewInvalidArgumentCount("Set expects 2 arguments, found %d", len(args))
	}
	ident, ok := args[0].(*ast.Identifier)
	if !ok {
		return fxvalue.Value{}, fxerr.NewInvalidArgument("Set's first argument must be a bare identifier")
	}
	value, err := s.eval.Evaluate(session, args[1])
	if err != nil {
		return fxvalue.Value{}, err
	}
	session.SetVariable(ident.Name, value)
	return fxvalue.Blank(), nil
}
