package builtins

import (
	"github.com/arvidsson/powerfx-go/internal/ast"
	"github.com/arvidsson/powerfx-go/internal/evaluator"
	"github.com/arvidsson/powerfx-go/internal/fxerr"
	"github.com/arvidsson/powerfx-go/internal/registry"
	"github.com/arvidsson/powerfx-go/pkg/fxsession"
	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
)

type ifFn struct{ eval *evaluator.Evaluator }

func newIf(eval *evaluator.Evaluator) registry.ScalarFunction { return ifFn{eval: eval} }

// If requires at least 2 arguments: cond, then[, else]. cond must be
// Boolean. Returns then if true, else if present and cond is false,
// else Blank.
func (f ifFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	if len(args) < 2 {
		return fxvalue.Value{}, fxerr.NewInvalidArgumentCount("If expects at least 2 arguments, found %d", len(args))
	}
	cond, err := f.eval.Evaluate(session, args[0])
	if err != nil {
		return fxvalue.Value{}, err
	}
	if cond.Kind() != fxvalue.KindBoolean {
		return fxvalue.Value{}, fxerr.NewInvalidArgument("If's condition must be a Boolean")
	}
	if cond.AsBoolean() {
		return f.eval.Evaluate(session, args[1])
	}
	if len(args) >= 3 {
		return f.eval.Evaluate(session, args[2])
	}
	return fxvalue.Blank(), nil
}

type andFn struct{ eval *evaluator.Evaluator }

func newAnd(eval *evaluator.Evaluator) registry.ScalarFunction { return andFn{eval: eval} }

// And is the strict logical built-in: unlike the binary And operator,
// every argument must evaluate to Boolean or the call fails. Evaluates
// left to right and may stop as soon as a false argument is found.
func (f andFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	if len(args) < 2 {
		return fxvalue.Value{}, fxerr.NewInvalidArgumentCount("And expects at least 2 arguments, found %d", len(args))
	}
	for _, arg := range args {
		v, err := f.eval.Evaluate(session, arg)
		if err != nil {
			return fxvalue.Value{}, err
		}
		if v.Kind() != fxvalue.KindBoolean {
			return fxvalue.Value{}, fxerr.NewInvalidArgument("And's arguments must all be Boolean")
		}
		if !v.AsBoolean() {
			return fxvalue.Boolean(false), nil
		}
	}
	return fxvalue.Boolean(true), nil
}

type orFn struct{ eval *evaluator.Evaluator }

func newOr(eval *evaluator.Evaluator) registry.ScalarFunction { return orFn{eval: eval} }

// Or is the strict logical built-in, the dual of And.
func (f orFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	if len(args) < 2 {
		return fxvalue.Value{}, fxerr.NewInvalidArgumentCount("Or expects at least 2 arguments, found %d", len(args))
	}
	for _, arg := range args {
		v, err := f.eval.Evaluate(session, arg)
		if err != nil {
			return fxvalue.Value{}, err
		}
		if v.Kind() != fxvalue.KindBoolean {
			return fxvalue.Value{}, fxerr.NewInvalidArgument("Or's arguments must all be Boolean")
		}
		if v.AsBoolean() {
			return fxvalue.Boolean(true), nil
		}
	}
	return fxvalue.Boolean(false), nil
}

type notFn struct{ eval *evaluator.Evaluator }

func newNot(eval *evaluator.Evaluator) registry.ScalarFunction { return notFn{eval: eval} }

// Not is the strict logical built-in: its single argument must be
// Boolean, unlike the lenient Not/! prefix operator the evaluator
// handles directly.
func (f notFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	if len(args) != 1 {
		return fxvalue.Value{}, fxerr.NewInvalidArgumentCount("Not expects 1 argument, found %d", len(args))
	}
	v, err := f.eval.Evaluate(session, args[0])
	if err != nil {
		return fxvalue.Value{}, err
	}
	if v.Kind() != fxvalue.KindBoolean {
		return fxvalue.Value{}, fxerr.NewInvalidArgument("Not's argument must be Boolean")
	}
	return fxvalue.Boolean(!v.AsBoolean()), nil
}

type isBlankFn struct{ eval *evaluator.Evaluator }

func newIsBlank(eval *evaluator.Evaluator) registry.ScalarFunction { return isBlankFn{eval: eval} }

func (f isBlankFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	if len(args) != 1 {
		return fxvalue.Value{}, fxerr.NewInvalidArgumentCount("IsBlank expects 1 argument, found %d", len(args))
	}
	v, err := f.eval.Evaluate(session, args[0])
	if err != nil {
		return fxvalue.Value{}, err
	}
	return fxvalue.Boolean(v.IsBlank()), nil
}

type isNotBlankFn struct{ eval *evaluator.Evaluator }

func newIsNotBlank(eval *evaluator.Evaluator) registry.ScalarFunction { return isNotBlankFn{eval: eval} }

func (f isNotBlankFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	if len(args) != 1 {
		return fxvalue.Value{}, fxerr.NewInvalidArgumentCount("IsNotBlank expects 1 argument, found %d", len(args))
	}
	v, err := f.eval.Evaluate(session, args[0])
	if err != nil {
		return fxvalue.Value{}, err
	}
	return fxvalue.Boolean(v.IsNotBlank()), nil
}
