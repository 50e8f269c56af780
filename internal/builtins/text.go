package builtins

import (
	"github.com/arvidsson/powerfx-go/internal/ast"
	"github.com/arvidsson/powerfx-go/internal/evaluator"
	"github.com/arvidsson/powerfx-go/internal/fxerr"
	"github.com/arvidsson/powerfx-go/internal/registry"
	"github.com/arvidsson/powerfx-go/pkg/fxsession"
	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	simpleUpper = cases.Upper(language.Und)
	simpleLower = cases.Lower(language.Und)
)

func evalOneText(eval *evaluator.Evaluator, session *fxsession.Session, name string, args []ast.Expression) (string, error) {
	if len(args) != 1 {
		return "", fxerr.NewInvalidArgumentCount("%s expects 1 argument, found %d", name, len(args))
	}
	v, err := eval.Evaluate(session, args[0])
	if err != nil {
		return "", err
	}
	if v.Kind() != fxvalue.KindText {
		return "", fxerr.NewInvalidArgument("%s expects a Text argument", name)
	}
	return v.AsText(), nil
}

type upperFn struct{ eval *evaluator.Evaluator }

func newUpper(eval *evaluator.Evaluator) registry.ScalarFunction { return upperFn{eval: eval} }

func (f upperFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	s, err := evalOneText(f.eval, session, "Upper", args)
	if err != nil {
		return fxvalue.Value{}, err
	}
	return fxvalue.Text(simpleUpper.String(s)), nil
}

type lowerFn struct{ eval *evaluator.Evaluator }

func newLower(eval *evaluator.Evaluator) registry.ScalarFunction { return lowerFn{eval: eval} }

func (f lowerFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	s, err := evalOneText(f.eval, session, "Lower", args)
	if err != nil {
		return fxvalue.Value{}, err
	}
	return fxvalue.Text(simpleLower.String(s)), nil
}

func evalTextAndCount(eval *evaluator.Evaluator, session *fxsession.Session, name string, args []ast.Expression) (string, int, error) {
	if len(args) != 2 {
		return "", 0, fxerr.NewInvalidArgumentCount("%s expects 2 arguments, found %d", name, len(args))
	}
	sv, err := eval.Evaluate(session, args[0])
	if err != nil {
		return "", 0, err
	}
	if sv.Kind() != fxvalue.KindText {
		return "", 0, fxerr.NewInvalidArgument("%s's first argument must be Text", name)
	}
	nv, err := eval.Evaluate(session, args[1])
	if err != nil {
		return "", 0, err
	}
	if nv.Kind() != fxvalue.KindNumber {
		return "", 0, fxerr.NewInvalidArgument("%s's second argument must be a Number", name)
	}
	return sv.AsText(), int(nv.AsNumber()), nil
}

type leftFn struct{ eval *evaluator.Evaluator }

func newLeft(eval *evaluator.Evaluator) registry.ScalarFunction { return leftFn{eval: eval} }

// Left returns the first n code points of s.
func (f leftFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	s, n, err := evalTextAndCount(f.eval, session, "Left", args)
	if err != nil {
		return fxvalue.Value{}, err
	}
	runes := []rune(s)
	if n < 0 {
		n = 0
	}
	if n > len(runes) {
		n = len(runes)
	}
	return fxvalue.Text(string(runes[:n])), nil
}

type rightFn struct{ eval *evaluator.Evaluator }

func newRight(eval *evaluator.Evaluator) registry.ScalarFunction { return rightFn{eval: eval} }

// Right returns the last n code points of s.
func (f rightFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	s, n, err := evalTextAndCount(f.eval, session, "Right", args)
	if err != nil {
		return fxvalue.Value{}, err
	}
	runes := []rune(s)
	if n < 0 {
		n = 0
	}
	if n > len(runes) {
		n = len(runes)
	}
	return fxvalue.Text(string(runes[len(runes)-n:])), nil
}

type midFn struct{ eval *evaluator.Evaluator }

func newMid(eval *evaluator.Evaluator) registry.ScalarFunction { return midFn{eval: eval} }

// Mid(s, start[, count]) — start is 1-based and inclusive; an omitted
// count means to the end of the string.
func (f midFn) Call(session *fxsession.Session, args []ast.Expression) (fxvalue.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return fxvalue.Value{}, fxerr.NewInvalidArgumentCount("Mid expects 2 or 3 arguments, found %d", len(args))
	}
	sv, err := f.eval.Evaluate(session, args[0])
	if err != nil {
		return fxvalue.Value{}, err
	}
	if sv.Kind() != fxvalue.KindText {
		return fxvalue.Value{}, fxerr.NewInvalidArgument("Mid's first argument must be Text")
	}
	startV, err := f.eval.Evaluate(session, args[1])
	if err != nil {
		return fxvalue.Value{}, err
	}
	if startV.Kind() != fxvalue.KindNumber {
		return fxvalue.Value{}, fxerr.NewInvalidArgument("Mid's second argument must be a Number")
	}

	runes := []rune(sv.AsText())
	start := int(startV.AsNumber())
	count := len(runes)
	if len(args) == 3 {
		countV, err := f.eval.Evaluate(session, args[2])
		if err != nil {
			return fxvalue.Value{}, err
		}
		if countV.Kind() != fxvalue.KindNumber {
			return fxvalue.Value{}, fxerr.NewInvalidArgument("Mid's third argument must be a Number")
		}
		count = int(countV.AsNumber())
	}

	from := start - 1
	if from < 0 {
		from = 0
	}
	if from > len(runes) {
		from = len(runes)
	}
	to := from + count
	if count < 0 || to > len(runes) {
		to = len(runes)
	}
	if to < from {
		to = from
	}
	return fxvalue.Text(string(runes[from:to])), nil
}
