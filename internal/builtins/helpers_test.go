package builtins

import (
	"testing"

	"github.com/arvidsson/powerfx-go/internal/ast"
	"github.com/arvidsson/powerfx-go/internal/evaluator"
	"github.com/arvidsson/powerfx-go/internal/lexer"
	"github.com/arvidsson/powerfx-go/internal/registry"
	"github.com/arvidsson/powerfx-go/pkg/fxsession"
	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
)

var zeroPos = lexer.Position{}

func lit(v fxvalue.Value) ast.Expression { return ast.NewLiteral(zeroPos, v) }
func num(n float64) ast.Expression       { return lit(fxvalue.Number(n)) }
func str(s string) ast.Expression        { return lit(fxvalue.Text(s)) }
func boolean(b bool) ast.Expression      { return lit(fxvalue.Boolean(b)) }

func newTestEvaluator() *evaluator.Evaluator {
	eval := evaluator.New(registry.New())
	RegisterAll(eval)
	return eval
}

func callFn(t *testing.T, eval *evaluator.Evaluator, session *fxsession.Session, name string, args []ast.Expression) (fxvalue.Value, error) {
	t.Helper()
	fn, ok := eval.Registry.Lookup(name)
	if !ok {
		t.Fatalf("expected %s to be registered", name)
	}
	return fn.Call(session, args)
}

func mustCall(t *testing.T, eval *evaluator.Evaluator, session *fxsession.Session, name string, args []ast.Expression) fxvalue.Value {
	t.Helper()
	v, err := callFn(t, eval, session, name, args)
	if err != nil {
		t.Fatalf("%s(...) returned unexpected error: %v", name, err)
	}
	return v
}
