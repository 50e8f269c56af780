package fx

import (
	"strings"
	"testing"

	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
)

func TestLoadSessionFromYAML(t *testing.T) {
	doc := `
a: 2
name: Ada
active: true
`
	session, err := LoadSessionFromYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, ok := session.GetVariable("a")
	if !ok || v.AsNumber() != 2 {
		t.Fatalf("got (%v, %v), want (2, true)", v, ok)
	}
	v, ok = session.GetVariable("name")
	if !ok || v.AsText() != "Ada" {
		t.Fatalf("got (%v, %v), want (Ada, true)", v, ok)
	}
	v, ok = session.GetVariable("active")
	if !ok || v.AsBoolean() != true {
		t.Fatalf("got (%v, %v), want (true, true)", v, ok)
	}
}

func TestLoadSessionFromYAMLDateDetection(t *testing.T) {
	session, err := LoadSessionFromYAML(strings.NewReader("born: 2020-01-02\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := session.GetVariable("born")
	if !ok || v.Kind() != fxvalue.KindDate {
		t.Fatalf("got (%v, %v), want a Date value", v, ok)
	}
}

func TestLoadSessionFromYAMLInvalidDocument(t *testing.T) {
	if _, err := LoadSessionFromYAML(strings.NewReader("[this is not a mapping")); err == nil {
		t.Fatalf("expected an error for a malformed YAML document")
	}
}
