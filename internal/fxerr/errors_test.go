package fxerr

import (
	"strings"
	"testing"
)

func TestParseErrorFormatIncludesCaret(t *testing.T) {
	source := "1 +\nfoo"
	err := NewParseError(source, "unexpected end of expression", Position{Line: 1, Column: 4})
	formatted := err.Format()

	if got := err.Error(); got != formatted {
		t.Fatalf("Error() and Format() should agree")
	}

	wantLine := "   1 | 1 +"
	if !strings.Contains(formatted, wantLine) {
		t.Fatalf("formatted output missing source line:\n%s", formatted)
	}
	if !strings.Contains(formatted, "unexpected end of expression") {
		t.Fatalf("formatted output missing message:\n%s", formatted)
	}
	if !strings.Contains(formatted, "^") {
		t.Fatalf("formatted output missing caret:\n%s", formatted)
	}
}

func TestParseErrorFormatOutOfRangeLine(t *testing.T) {
	err := NewParseError("short", "boom", Position{Line: 99, Column: 1})
	formatted := err.Format()
	if !strings.Contains(formatted, "boom") {
		t.Fatalf("expected message to still render when the line is out of range:\n%s", formatted)
	}
}

func TestErrorMessagesCarryContext(t *testing.T) {
	if got := NewUnknownIdentifier("foo").Error(); !strings.Contains(got, "foo") {
		t.Errorf("UnknownIdentifier error should mention the name, got %q", got)
	}
	if got := NewUnknownFunction("Bar").Error(); !strings.Contains(got, "Bar") {
		t.Errorf("UnknownFunction error should mention the name, got %q", got)
	}
	if got := NewInvalidArgument("bad %s", "arg"); got.Error() != "bad arg" {
		t.Errorf("got %q, want %q", got.Error(), "bad arg")
	}
	if got := NewInvalidArgumentCount("need %d", 2); got.Error() != "need 2" {
		t.Errorf("got %q, want %q", got.Error(), "need 2")
	}
	if got := NewInvalidType("wrong %s", "type"); got.Error() != "wrong type" {
		t.Errorf("got %q, want %q", got.Error(), "wrong type")
	}
}
