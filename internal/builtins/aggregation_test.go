package builtins

import (
	"math"
	"testing"

	"github.com/arvidsson/powerfx-go/internal/ast"
	"github.com/arvidsson/powerfx-go/pkg/fxsession"
)

func TestSumVariadic(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()
	v := mustCall(t, eval, s, "Sum", []ast.Expression{num(1), num(2), num(3)})
	if v.AsNumber() != 6 {
		t.Fatalf("got %v, want 6", v)
	}
}

func TestAverageVariadic(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()
	v := mustCall(t, eval, s, "Average", []ast.Expression{num(3), num(7), num(5)})
	if v.AsNumber() != 5 {
		t.Fatalf("got %v, want 5", v)
	}
}

func TestMinMaxVariadic(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()
	v := mustCall(t, eval, s, "Min", []ast.Expression{num(3), num(7), num(5)})
	if v.AsNumber() != 3 {
		t.Fatalf("got %v, want 3", v)
	}
	v = mustCall(t, eval, s, "Max", []ast.Expression{num(3), num(7), num(5)})
	if v.AsNumber() != 7 {
		t.Fatalf("got %v, want 7", v)
	}
}

func TestSumOverTable(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()
	tbl := threeRowTable(t, eval, s) // Age: 25, 30, 35

	ageIdent := ast.NewIdentifier(zeroPos, "Age")
	v := mustCall(t, eval, s, "Sum", []ast.Expression{lit(tbl), ageIdent})
	if v.AsNumber() != 90 {
		t.Fatalf("got %v, want 90", v)
	}
}

func TestAverageOverTable(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()
	tbl := threeRowTable(t, eval, s)

	ageIdent := ast.NewIdentifier(zeroPos, "Age")
	v := mustCall(t, eval, s, "Average", []ast.Expression{lit(tbl), ageIdent})
	if v.AsNumber() != 30 {
		t.Fatalf("got %v, want 30", v)
	}
}

func TestSumOverEmptyTableIsZero(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()
	empty := mustCall(t, eval, s, "Table", nil)

	ageIdent := ast.NewIdentifier(zeroPos, "Age")
	v := mustCall(t, eval, s, "Sum", []ast.Expression{lit(empty), ageIdent})
	if v.AsNumber() != 0 {
		t.Fatalf("got %v, want 0", v)
	}
}

func TestAverageOverEmptyTableIsNaN(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()
	empty := mustCall(t, eval, s, "Table", nil)

	ageIdent := ast.NewIdentifier(zeroPos, "Age")
	v := mustCall(t, eval, s, "Average", []ast.Expression{lit(empty), ageIdent})
	if !math.IsNaN(v.AsNumber()) {
		t.Fatalf("got %v, want NaN", v)
	}
}

func TestMinMaxOverEmptyTableIsBlank(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()
	empty := mustCall(t, eval, s, "Table", nil)
	ageIdent := ast.NewIdentifier(zeroPos, "Age")

	if v := mustCall(t, eval, s, "Min", []ast.Expression{lit(empty), ageIdent}); !v.IsBlank() {
		t.Fatalf("got %v, want Blank", v)
	}
	if v := mustCall(t, eval, s, "Max", []ast.Expression{lit(empty), ageIdent}); !v.IsBlank() {
		t.Fatalf("got %v, want Blank", v)
	}
}

func TestAggregationRequiresNumberArguments(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()
	if _, err := callFn(t, eval, s, "Sum", []ast.Expression{str("x")}); err == nil {
		t.Fatalf("expected Sum to reject a non-Number, non-Table first argument")
	}
}
