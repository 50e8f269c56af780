package builtins

import (
	"github.com/arvidsson/powerfx-go/internal/ast"
	"github.com/arvidsson/powerfx-go/internal/evaluator"
	"github.com/arvidsson/powerfx-go/internal/fxerr"
	"github.com/arvidsson/powerfx-go/internal/registry"
	"github.com/arvidsson/powerfx-go/pkg/fxsession"
	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
)

// aggregationValues resolves the two calling shapes shared by Sum,
// Average, Min, and Max: if the first argument evaluates to a Table,
// the call must have exactly 2 arguments and every row's projection
// expression is evaluated in a row-scoped session; otherwise every
// argument is evaluated directly and must be a Number.
func aggregationValues(eval *evaluator.Evaluator, session *fxsession.Session, name string, args []ast.Expression) ([]float64, error) {
	if len(args) == 0 {
		return nil, fxerr.NewInvalidArgumentCount("%s expects at least 1 argument, found %d", name, len(args))
	}

	first, err := eval.Evaluate(session, args[0])
	if err != nil {
		return nil, err
	}

	if first.Kind() == fxvalue.KindTable {
		if len(args) != 2 {
			return nil, fxerr.NewInvalidArgumentCount("%s expects 2 arguments for the table form, found %d", name, len(args))
		}
		proj := args[1]
		table := first.AsTable()
		values := make([]float64, 0, len(table))
		for _, row := range table {
			rowSession := fxsession.FromRecordWithContext(row, session)
			v, err := eval.Evaluate(rowSession, proj)
			if err != nil {
				return nil, err
			}
			if v.Kind() != fxvalue.KindNumber {
				return nil, fxerr.NewInvalidArgument("%s's projection must evaluate to a Number", name)
			}
			values = append(values, v.AsNumber())
		}
		return values, nil
	}

	values := make([]float64, 0, len(args))
	if first.Kind() != fxvalue.KindNumber {
		return nil, fxerr.NewInvalidArgument("%s's arguments must be Numbers", name)
	}
	values = append(values, first.AsNumber())
	for _, arg := range args[1:] {
		v, err := eval.Evaluate(session, arg)
		if err != nil {
			return nil, err
		}
		if v.Kind() != fxvalue.KindNumber {
			return nil, fxerr.NewInvalidArgument("%s's arguments must be Numbers", name)
		}
		values = append(values, v.AsNumber())
	}
	return values, nil
}

type sumFn struct{ eval *evaluator.Evaluator }

func newSum(eval *evaluator.Evaluator) registry.ScalarFunction { return sumFn{eval: eval} }

// Sum starts at 0; an empty input yields 0.
func (f sumFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	values, err := aggregationValues(f.eval, session, "Sum", args)
	if err != nil {
		return fxvalue.Value{}, err
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return fxvalue.Number(sum), nil
}

type averageFn struct{ eval *evaluator.Evaluator }

func newAverage(eval *evaluator.Evaluator) registry.ScalarFunction { return averageFn{eval: eval} }

// Average is the arithmetic mean; an empty table in the table form
// yields Number(NaN) via 0/0, per the language's design notes.
func (f averageFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	values, err := aggregationValues(f.eval, session, "Average", args)
	if err != nil {
		return fxvalue.Value{}, err
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return fxvalue.Number(sum / float64(len(values))), nil
}

type minFn struct{ eval *evaluator.Evaluator }

func newMin(eval *evaluator.Evaluator) registry.ScalarFunction { return minFn{eval: eval} }

// Min yields Blank for empty input.
func (f minFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	values, err := aggregationValues(f.eval, session, "Min", args)
	if err != nil {
		return fxvalue.Value{}, err
	}
	if len(values) == 0 {
		return fxvalue.Blank(), nil
	}
	result := values[0]
	for _, v := range values[1:] {
		if v < result {
			result = v
		}
	}
	return fxvalue.Number(result), nil
}

type maxFn struct{ eval *evaluator.Evaluator }

func newMax(eval *evaluator.Evaluator) registry.ScalarFunction { return maxFn{eval: eval} }

// Max yields Blank for empty input.
func (f maxFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	values, err := aggregationValues(f.eval, session, "Max", args)
	if err != nil {
		return fxvalue.Value{}, err
	}
	if len(values) == 0 {
		return fxvalue.Blank(), nil
	}
	result := values[0]
	for _, v := range values[1:] {
		if v > result {
			result = v
		}
	}
	return fxvalue.Number(result), nil
}
