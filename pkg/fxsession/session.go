// Package fxsession implements the variable environment an expression
// is evaluated against: a mutable set of globals plus an optional,
// read-only row overlay installed by tabular functions while
// iterating a table.
package fxsession

import "github.com/arvidsson/powerfx-go/pkg/fxvalue"

// Session carries the globals a host populates before evaluation and,
// transiently, a row overlay a tabular built-in installs while
// iterating a table's records. Name resolution consults the row
// overlay first, then globals; Set always writes to the outermost
// globals, never the overlay.
type Session struct {
	globals map[string]fxvalue.Value
	row     *fxvalue.Record
}

// New returns an empty Session: no globals, no row overlay.
func New() *Session {
	return &Session{globals: map[string]fxvalue.Value{}}
}

// FromRecordWithContext produces a new Session whose globals are
// shared with outer's (not copied) and whose row overlay is record.
// Used by tabular functions (Filter, and the two-argument forms of
// Sum/Average/Min/Max) to bind a row's fields as identifiers for the
// duration of evaluating one per-row expression. The returned Session
// never escapes the call that created it.
func FromRecordWithContext(record *fxvalue.Record, outer *Session) *Session {
	return &Session{globals: outer.globals, row: record}
}

// SetVariable writes name=value to the outermost globals map.
func (s *Session) SetVariable(name string, value fxvalue.Value) {
	s.globals[name] = value
}

// GetVariable resolves name, consulting the row overlay (if any)
// before globals.
func (s *Session) GetVariable(name string) (fxvalue.Value, bool) {
	if s.row != nil {
		if v, ok := s.row.Get(name); ok {
			return v, true
		}
	}
	v, ok := s.globals[name]
	return v, ok
}
