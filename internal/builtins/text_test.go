package builtins

import (
	"testing"

	"github.com/arvidsson/powerfx-go/internal/ast"
	"github.com/arvidsson/powerfx-go/pkg/fxsession"
)

func TestUpperLower(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()

	v := mustCall(t, eval, s, "Upper", []ast.Expression{str("Foo")})
	if v.AsText() != "FOO" {
		t.Fatalf("got %q, want FOO", v.AsText())
	}
	v = mustCall(t, eval, s, "Lower", []ast.Expression{str("Foo")})
	if v.AsText() != "foo" {
		t.Fatalf("got %q, want foo", v.AsText())
	}
}

func TestLeftRight(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()

	v := mustCall(t, eval, s, "Left", []ast.Expression{str("Hello"), num(3)})
	if v.AsText() != "Hel" {
		t.Fatalf("got %q, want Hel", v.AsText())
	}
	v = mustCall(t, eval, s, "Right", []ast.Expression{str("Hello"), num(3)})
	if v.AsText() != "llo" {
		t.Fatalf("got %q, want llo", v.AsText())
	}
}

func TestLeftRightClampToStringLength(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()

	v := mustCall(t, eval, s, "Left", []ast.Expression{str("Hi"), num(10)})
	if v.AsText() != "Hi" {
		t.Fatalf("got %q, want Hi", v.AsText())
	}
	v = mustCall(t, eval, s, "Right", []ast.Expression{str("Hi"), num(10)})
	if v.AsText() != "Hi" {
		t.Fatalf("got %q, want Hi", v.AsText())
	}
}

func TestLeftRightUseCodePointsNotBytes(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()
	v := mustCall(t, eval, s, "Left", []ast.Expression{str("café"), num(4)})
	if v.AsText() != "café" {
		t.Fatalf("got %q, want café (4 code points, not 4 bytes)", v.AsText())
	}
	v = mustCall(t, eval, s, "Right", []ast.Expression{str("café"), num(4)})
	if v.AsText() != "café" {
		t.Fatalf("got %q, want café (4 code points, not 4 bytes)", v.AsText())
	}
}

func TestMidOneBasedInclusive(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()
	v := mustCall(t, eval, s, "Mid", []ast.Expression{str("Hello"), num(2), num(3)})
	if v.AsText() != "ell" {
		t.Fatalf("got %q, want ell", v.AsText())
	}
}

func TestMidOmittedCountGoesToEnd(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()
	v := mustCall(t, eval, s, "Mid", []ast.Expression{str("Hello"), num(3)})
	if v.AsText() != "llo" {
		t.Fatalf("got %q, want llo", v.AsText())
	}
}

func TestMidStartPastEndYieldsEmpty(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()
	v := mustCall(t, eval, s, "Mid", []ast.Expression{str("Hi"), num(10), num(2)})
	if v.AsText() != "" {
		t.Fatalf("got %q, want empty string", v.AsText())
	}
}

func TestUpperRequiresText(t *testing.T) {
	eval := newTestEvaluator()
	s := fxsession.New()
	if _, err := callFn(t, eval, s, "Upper", []ast.Expression{num(1)}); err == nil {
		t.Fatalf("expected Upper to reject a non-Text argument")
	}
}
