package evaluator

import (
	"math"
	"testing"

	"github.com/arvidsson/powerfx-go/internal/ast"
	"github.com/arvidsson/powerfx-go/internal/lexer"
	"github.com/arvidsson/powerfx-go/internal/registry"
	"github.com/arvidsson/powerfx-go/pkg/fxsession"
	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
)

var zeroPos = lexer.Position{}

func lit(v fxvalue.Value) ast.Expression { return ast.NewLiteral(zeroPos, v) }

func num(n float64) ast.Expression  { return lit(fxvalue.Number(n)) }
func text(s string) ast.Expression  { return lit(fxvalue.Text(s)) }
func boolean(b bool) ast.Expression { return lit(fxvalue.Boolean(b)) }

func binary(left ast.Expression, op ast.BinaryOp, right ast.Expression) ast.Expression {
	return ast.NewBinaryExpression(zeroPos, left, op, right)
}

func newEval() *Evaluator {
	return New(registry.New())
}

func mustEval(t *testing.T, eval *Evaluator, session *fxsession.Session, expr ast.Expression) fxvalue.Value {
	t.Helper()
	v, err := eval.Evaluate(session, expr)
	if err != nil {
		t.Fatalf("unexpected error evaluating %v: %v", expr, err)
	}
	return v
}

func TestArithmeticNumberCombos(t *testing.T) {
	eval := newEval()
	s := fxsession.New()

	tests := []struct {
		name string
		expr ast.Expression
		want float64
	}{
		{"add", binary(num(2), ast.OpAdd, num(3)), 5},
		{"subtract", binary(num(5), ast.OpSubtract, num(3)), 2},
		{"multiply", binary(num(2), ast.OpMultiply, num(3)), 6},
		{"divide", binary(num(6), ast.OpDivide, num(3)), 2},
		{"modulo", binary(num(7), ast.OpModulo, num(3)), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustEval(t, eval, s, tt.expr)
			if v.Kind() != fxvalue.KindNumber || v.AsNumber() != tt.want {
				t.Fatalf("got %v, want Number(%v)", v, tt.want)
			}
		})
	}
}

func TestAddTextCoercionCombos(t *testing.T) {
	eval := newEval()
	s := fxsession.New()

	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{"number+text", binary(num(2), ast.OpAdd, text("x")), "2x"},
		{"text+number", binary(text("x"), ast.OpAdd, num(2)), "x2"},
		{"text+text", binary(text("a"), ast.OpAdd, text("b")), "ab"},
		{"text+boolean", binary(text("v="), ast.OpAdd, boolean(true)), "v=true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustEval(t, eval, s, tt.expr)
			if v.Kind() != fxvalue.KindText || v.AsText() != tt.want {
				t.Fatalf("got %v, want Text(%q)", v, tt.want)
			}
		})
	}
}

func TestAddOtherCombosYieldBlank(t *testing.T) {
	eval := newEval()
	s := fxsession.New()

	tests := []struct {
		name string
		expr ast.Expression
	}{
		{"boolean+number", binary(boolean(true), ast.OpAdd, num(1))},
		{"boolean+boolean", binary(boolean(true), ast.OpAdd, boolean(false))},
		{"boolean+text", binary(boolean(true), ast.OpAdd, text("x"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustEval(t, eval, s, tt.expr)
			if v.Kind() != fxvalue.KindBlank {
				t.Fatalf("got %v, want Blank", v)
			}
		})
	}
}

func TestNonNumberSubtractYieldsBlank(t *testing.T) {
	eval := newEval()
	s := fxsession.New()
	v := mustEval(t, eval, s, binary(text("a"), ast.OpSubtract, num(1)))
	if v.Kind() != fxvalue.KindBlank {
		t.Fatalf("got %v, want Blank", v)
	}
}

func TestDivisionByZeroYieldsInfNotError(t *testing.T) {
	eval := newEval()
	s := fxsession.New()
	v := mustEval(t, eval, s, binary(num(1), ast.OpDivide, num(0)))
	if v.Kind() != fxvalue.KindNumber || !math.IsInf(v.AsNumber(), 1) {
		t.Fatalf("got %v, want +Inf", v)
	}
}

func TestEqualityAndOrdering(t *testing.T) {
	eval := newEval()
	s := fxsession.New()

	tests := []struct {
		name string
		expr ast.Expression
		want bool
	}{
		{"eq true", binary(num(1), ast.OpEq, num(1)), true},
		{"eq false", binary(num(1), ast.OpEq, num(2)), false},
		{"ne", binary(num(1), ast.OpNe, num(2)), true},
		{"lt", binary(num(1), ast.OpLt, num(2)), true},
		{"le equal", binary(num(2), ast.OpLe, num(2)), true},
		{"gt", binary(num(3), ast.OpGt, num(2)), true},
		{"ge equal", binary(num(2), ast.OpGe, num(2)), true},
		{"cross-kind eq always false", binary(num(1), ast.OpEq, text("1")), false},
		{"undefined ordering is false", binary(text("a"), ast.OpLt, text("b")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustEval(t, eval, s, tt.expr)
			if v.Kind() != fxvalue.KindBoolean || v.AsBoolean() != tt.want {
				t.Fatalf("got %v, want Boolean(%v)", v, tt.want)
			}
		})
	}
}

func TestLenientAndOrCoerceNonBoolean(t *testing.T) {
	eval := newEval()
	s := fxsession.New()

	v := mustEval(t, eval, s, binary(num(1), ast.OpAnd, boolean(true)))
	if v.Kind() != fxvalue.KindBoolean || v.AsBoolean() != false {
		t.Fatalf("got %v, want false (non-boolean operand coerces to false)", v)
	}

	v = mustEval(t, eval, s, binary(num(1), ast.OpOr, boolean(true)))
	if v.Kind() != fxvalue.KindBoolean || v.AsBoolean() != true {
		t.Fatalf("got %v, want true", v)
	}
}

func TestNotIsLenient(t *testing.T) {
	eval := newEval()
	s := fxsession.New()
	v := mustEval(t, eval, s, ast.NewNot(zeroPos, num(1)))
	if v.Kind() != fxvalue.KindBoolean || v.AsBoolean() != true {
		t.Fatalf("got %v, want true (Not of a non-boolean coerces operand to false, then negates)", v)
	}
}

func TestExponentIsUnimplemented(t *testing.T) {
	eval := newEval()
	s := fxsession.New()
	_, err := eval.Evaluate(s, binary(num(2), ast.OpExponent, num(3)))
	if err == nil {
		t.Fatalf("expected ^ to report an error")
	}
}

func TestPropertyAlwaysErrors(t *testing.T) {
	eval := newEval()
	s := fxsession.New()
	_, err := eval.Evaluate(s, ast.NewProperty(zeroPos, ast.ContextParent, "Name"))
	if err == nil {
		t.Fatalf("expected Property node to error with no bound host context")
	}
}

func TestInAndExactIn(t *testing.T) {
	eval := newEval()
	s := fxsession.New()

	v := mustEval(t, eval, s, binary(text("FOO"), ast.OpIn, text("the foo bar")))
	if !v.AsBoolean() {
		t.Fatalf("expected case-insensitive in to match")
	}

	v = mustEval(t, eval, s, binary(text("FOO"), ast.OpExactIn, text("the foo bar")))
	if v.AsBoolean() {
		t.Fatalf("expected case-sensitive exactin not to match")
	}
}

func TestInRequiresText(t *testing.T) {
	eval := newEval()
	s := fxsession.New()
	if _, err := eval.Evaluate(s, binary(num(1), ast.OpIn, text("1"))); err == nil {
		t.Fatalf("expected in with a non-Text operand to error")
	}
}

func TestIsBlankAndIsNotBlank(t *testing.T) {
	eval := newEval()
	s := fxsession.New()

	v := mustEval(t, eval, s, ast.NewIsBlank(zeroPos, lit(fxvalue.Blank())))
	if !v.AsBoolean() {
		t.Fatalf("expected IsBlank(Blank) to be true")
	}

	v = mustEval(t, eval, s, ast.NewIsNotBlank(zeroPos, num(1)))
	if !v.AsBoolean() {
		t.Fatalf("expected IsNotBlank(1) to be true")
	}
}

func TestIdentifierResolvesFromSession(t *testing.T) {
	eval := newEval()
	s := fxsession.New()
	s.SetVariable("a", fxvalue.Number(7))

	v := mustEval(t, eval, s, ast.NewIdentifier(zeroPos, "a"))
	if v.AsNumber() != 7 {
		t.Fatalf("got %v, want 7", v)
	}
}

func TestUnknownIdentifierErrors(t *testing.T) {
	eval := newEval()
	s := fxsession.New()
	if _, err := eval.Evaluate(s, ast.NewIdentifier(zeroPos, "missing")); err == nil {
		t.Fatalf("expected unknown identifier to error")
	}
}

func TestUnknownFunctionErrors(t *testing.T) {
	eval := newEval()
	s := fxsession.New()
	call := ast.NewFunctionExpression(zeroPos, "DoesNotExist", nil)
	if _, err := eval.Evaluate(s, call); err == nil {
		t.Fatalf("expected unknown function to error")
	}
}

func TestAliasDelegatesToSource(t *testing.T) {
	eval := newEval()
	s := fxsession.New()
	alias := ast.NewAlias(zeroPos, num(5), "Total")
	v := mustEval(t, eval, s, alias)
	if v.AsNumber() != 5 {
		t.Fatalf("got %v, want 5", v)
	}
}

func TestRecordLiteralEvaluatesFieldsLazily(t *testing.T) {
	eval := newEval()
	s := fxsession.New()
	rec := ast.NewRecordLiteral(zeroPos, []string{"Age"}, map[string]ast.Expression{"Age": num(30)})
	v := mustEval(t, eval, s, rec)
	if v.Kind() != fxvalue.KindRecord {
		t.Fatalf("got %v, want Record", v)
	}
	age, ok := v.AsRecord().Get("Age")
	if !ok || age.AsNumber() != 30 {
		t.Fatalf("got (%v, %v), want (30, true)", age, ok)
	}
}
