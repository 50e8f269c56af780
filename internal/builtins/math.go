package builtins

import (
	"math"

	"github.com/arvidsson/powerfx-go/internal/ast"
	"github.com/arvidsson/powerfx-go/internal/evaluator"
	"github.com/arvidsson/powerfx-go/internal/fxerr"
	"github.com/arvidsson/powerfx-go/internal/registry"
	"github.com/arvidsson/powerfx-go/pkg/fxsession"
	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
)

type absFn struct{ eval *evaluator.Evaluator }

func newAbs(eval *evaluator.Evaluator) registry.ScalarFunction { return absFn{eval: eval} }

func (f absFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	if len(args) != 1 {
		return fxvalue.Value{}, fxerr.NewInvalidArgumentCount("Abs expects 1 argument, found %d", len(args))
	}
	v, err := f.eval.Evaluate(session, args[0])
	if err != nil {
		return fxvalue.Value{}, err
	}
	if v.Kind() != fxvalue.KindNumber {
		return fxvalue.Value{}, fxerr.NewInvalidArgument("Abs expects a Number argument")
	}
	return fxvalue.Number(math.Abs(v.AsNumber())), nil
}

type sqrtFn struct{ eval *evaluator.Evaluator }

func newSqrt(eval *evaluator.Evaluator) registry.ScalarFunction { return sqrtFn{eval: eval} }

// Sqrt returns the non-negative square root; a negative argument
// naturally yields Number(NaN) via math.Sqrt, with no special-casing.
func (f sqrtFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	if len(args) != 1 {
		return fxvalue.Value{}, fxerr.NewInvalidArgumentCount("Sqrt expects 1 argument, found %d", len(args))
	}
	v, err := f.eval.Evaluate(session, args[0])
	if err != nil {
		return fxvalue.Value{}, err
	}
	if v.Kind() != fxvalue.KindNumber {
		return fxvalue.Value{}, fxerr.NewInvalidArgument("Sqrt expects a Number argument")
	}
	return fxvalue.Number(math.Sqrt(v.AsNumber())), nil
}
