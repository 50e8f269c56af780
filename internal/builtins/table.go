package builtins

import (
	"github.com/arvidsson/powerfx-go/internal/ast"
	"github.com/arvidsson/powerfx-go/internal/evaluator"
	"github.com/arvidsson/powerfx-go/internal/fxerr"
	"github.com/arvidsson/powerfx-go/internal/registry"
	"github.com/arvidsson/powerfx-go/pkg/fxsession"
	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
)

type tableFn struct{ eval *evaluator.Evaluator }

func newTable(eval *evaluator.Evaluator) registry.ScalarFunction { return tableFn{eval: eval} }

// Table concatenates its arguments into a single Table: a Record
// argument is appended as one row, a Table argument is flattened in.
// Anything else is InvalidArgument.
func (f tableFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	var rows fxvalue.Table
	for _, arg := range args {
		v, err := f.eval.Evaluate(session, arg)
		if err != nil {
			return fxvalue.Value{}, err
		}
		switch v.Kind() {
		case fxvalue.KindRecord:
			rows = append(rows, v.AsRecord())
		case fxvalue.KindTable:
			rows = append(rows, v.AsTable()...)
		default:
			return fxvalue.Value{}, fxerr.NewInvalidArgument("Table's arguments must be Record or Table values")
		}
	}
	return fxvalue.TableValue(rows), nil
}

func evalOneTable(eval *evaluator.Evaluator, session *fxsession.Session, name string, args []ast.Expression) (fxvalue.Table, error) {
	if len(args) != 1 {
		return nil, fxerr.NewInvalidArgumentCount("%s expects 1 argument, found %d", name, len(args))
	}
	v, err := eval.Evaluate(session, args[0])
	if err != nil {
		return nil, err
	}
	if v.Kind() != fxvalue.KindTable {
		return nil, fxerr.NewInvalidArgument("%s expects a Table argument", name)
	}
	return v.AsTable(), nil
}

type firstFn struct{ eval *evaluator.Evaluator }

func newFirst(eval *evaluator.Evaluator) registry.ScalarFunction { return firstFn{eval: eval} }

func (f firstFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	table, err := evalOneTable(f.eval, session, "First", args)
	if err != nil {
		return fxvalue.Value{}, err
	}
	if len(table) == 0 {
		return fxvalue.Blank(), nil
	}
	return fxvalue.RecordValue(table[0]), nil
}

type lastFn struct{ eval *evaluator.Evaluator }

func newLast(eval *evaluator.Evaluator) registry.ScalarFunction { return lastFn{eval: eval} }

func (f lastFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	table, err := evalOneTable(f.eval, session, "Last", args)
	if err != nil {
		return fxvalue.Value{}, err
	}
	if len(table) == 0 {
		return fxvalue.Blank(), nil
	}
	return fxvalue.RecordValue(table[len(table)-1]), nil
}

type indexFn struct{ eval *evaluator.Evaluator }

func newIndex(eval *evaluator.Evaluator) registry.ScalarFunction { return indexFn{eval: eval} }

// Index(t, n) is 0-based; out-of-range yields Blank.
func (f indexFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	if len(args) != 2 {
		return fxvalue.Value{}, fxerr.NewInvalidArgumentCount("Index expects 2 arguments, found %d", len(args))
	}
	tv, err := f.eval.Evaluate(session, args[0])
	if err != nil {
		return fxvalue.Value{}, err
	}
	if tv.Kind() != fxvalue.KindTable {
		return fxvalue.Value{}, fxerr.NewInvalidArgument("Index's first argument must be a Table")
	}
	nv, err := f.eval.Evaluate(session, args[1])
	if err != nil {
		return fxvalue.Value{}, err
	}
	if nv.Kind() != fxvalue.KindNumber {
		return fxvalue.Value{}, fxerr.NewInvalidArgument("Index's second argument must be a Number")
	}
	table := tv.AsTable()
	n := int(nv.AsNumber())
	if n < 0 || n >= len(table) {
		return fxvalue.Blank(), nil
	}
	return fxvalue.RecordValue(table[n]), nil
}

type filterFn struct{ eval *evaluator.Evaluator }

func newFilter(eval *evaluator.Evaluator) registry.ScalarFunction { return filterFn{eval: eval} }

// Filter(t, pred1, pred2, ...) keeps rows for which every predicate,
// evaluated in a row-scoped session, is Boolean(true); a non-boolean
// predicate result is InvalidArgument.
func (f filterFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	if len(args) < 2 {
		return fxvalue.Value{}, fxerr.NewInvalidArgumentCount("Filter expects at least 2 arguments, found %d", len(args))
	}
	tv, err := f.eval.Evaluate(session, args[0])
	if err != nil {
		return fxvalue.Value{}, err
	}
	if tv.Kind() != fxvalue.KindTable {
		return fxvalue.Value{}, fxerr.NewInvalidArgument("Filter's first argument must be a Table")
	}

	var kept fxvalue.Table
	for _, row := range tv.AsTable() {
		rowSession := fxsession.FromRecordWithContext(row, session)
		matches := true
		for _, pred := range args[1:] {
			v, err := f.eval.Evaluate(rowSession, pred)
			if err != nil {
				return fxvalue.Value{}, err
			}
			if v.Kind() != fxvalue.KindBoolean {
				return fxvalue.Value{}, fxerr.NewInvalidArgument("Filter's predicates must evaluate to Boolean")
			}
			if !v.AsBoolean() {
				matches = false
				break
			}
		}
		if matches {
			kept = append(kept, row)
		}
	}
	return fxvalue.TableValue(kept), nil
}
