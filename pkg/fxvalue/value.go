// Package fxvalue defines the runtime value model for the expression
// language: a small closed set of variants representing everything an
// expression can evaluate to.
package fxvalue

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindBlank Kind = iota
	KindNumber
	KindBoolean
	KindText
	KindDate
	KindHyperlink
	KindImage
	KindMedia
	KindRecord
	KindTable
	KindOptionSet
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "Blank"
	case KindNumber:
		return "Number"
	case KindBoolean:
		return "Boolean"
	case KindText:
		return "Text"
	case KindDate:
		return "Date"
	case KindHyperlink:
		return "Hyperlink"
	case KindImage:
		return "Image"
	case KindMedia:
		return "Media"
	case KindRecord:
		return "Record"
	case KindTable:
		return "Table"
	case KindOptionSet:
		return "OptionSet"
	default:
		return "Unknown"
	}
}

// Value is a runtime value. It is never mutated in place; operations
// always produce a new Value, so a Value may be freely shared between
// sessions and goroutines.
type Value struct {
	kind Kind

	number  float64
	boolean bool
	text    string // also backs Hyperlink, Image, Media payloads
	date    time.Time
	record  *Record
	table   Table
	options *OptionSet
}

// Record is a mapping from field name to value. Field names are kept
// in sorted order so that display and equality are independent of
// construction order.
type Record struct {
	names  []string
	values map[string]Value
}

// NewRecord builds a Record from a map, discarding the map's iteration
// order in favor of a sorted one.
func NewRecord(fields map[string]Value) *Record {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	values := make(map[string]Value, len(fields))
	for k, v := range fields {
		values[k] = v
	}
	return &Record{names: names, values: values}
}

// Fields returns field names in sorted order.
func (r *Record) Fields() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Get returns the value for a field and whether it was present.
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Table is an ordered sequence of records; insertion order is
// preserved (it is not a set and is not sorted).
type Table []*Record

// OptionSet maps integer codes to text labels.
type OptionSet struct {
	Options map[int64]string
}

// Constructors.

func Blank() Value                 { return Value{kind: KindBlank} }
func Number(n float64) Value       { return Value{kind: KindNumber, number: n} }
func Boolean(b bool) Value         { return Value{kind: KindBoolean, boolean: b} }
func Text(s string) Value          { return Value{kind: KindText, text: s} }
func Date(t time.Time) Value       { return Value{kind: KindDate, date: t} }
func Hyperlink(s string) Value     { return Value{kind: KindHyperlink, text: s} }
func Image(s string) Value         { return Value{kind: KindImage, text: s} }
func Media(s string) Value         { return Value{kind: KindMedia, text: s} }
func RecordValue(r *Record) Value  { return Value{kind: KindRecord, record: r} }
func TableValue(t Table) Value     { return Value{kind: KindTable, table: t} }
func OptionSetValue(o *OptionSet) Value {
	return Value{kind: KindOptionSet, options: o}
}

// Accessors. Each panics if called against the wrong Kind; callers
// must check Kind() first (the evaluator and builtins always do).

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsBlank() bool    { return v.kind == KindBlank }
func (v Value) IsNotBlank() bool { return v.kind != KindBlank }

func (v Value) AsNumber() float64 {
	if v.kind != KindNumber {
		panic("fxvalue: AsNumber on non-Number value")
	}
	return v.number
}

func (v Value) AsBoolean() bool {
	if v.kind != KindBoolean {
		panic("fxvalue: AsBoolean on non-Boolean value")
	}
	return v.boolean
}

func (v Value) AsText() string {
	switch v.kind {
	case KindText, KindHyperlink, KindImage, KindMedia:
		return v.text
	default:
		panic("fxvalue: AsText on non-Text-family value")
	}
}

func (v Value) AsDate() time.Time {
	if v.kind != KindDate {
		panic("fxvalue: AsDate on non-Date value")
	}
	return v.date
}

func (v Value) AsRecord() *Record {
	if v.kind != KindRecord {
		panic("fxvalue: AsRecord on non-Record value")
	}
	return v.record
}

func (v Value) AsTable() Table {
	if v.kind != KindTable {
		panic("fxvalue: AsTable on non-Table value")
	}
	return v.table
}

func (v Value) AsOptionSet() *OptionSet {
	if v.kind != KindOptionSet {
		panic("fxvalue: AsOptionSet on non-OptionSet value")
	}
	return v.options
}

// String renders a Value using the default stringification rules:
// Number uses the shortest round-trip decimal, Boolean is lowercase
// true/false, Date is ISO-8601 YYYY-MM-DD, Record/Table render as
// JSON-ish braces with sorted fields, Blank renders as the empty
// string.
func (v Value) String() string {
	switch v.kind {
	case KindBlank:
		return ""
	case KindNumber:
		return formatNumber(v.number)
	case KindBoolean:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindText, KindHyperlink, KindImage, KindMedia:
		return v.text
	case KindDate:
		return v.date.Format("2006-01-02")
	case KindRecord:
		return recordString(v.record)
	case KindTable:
		parts := make([]string, len(v.table))
		for i, r := range v.table {
			parts[i] = recordString(r)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindOptionSet:
		return optionSetString(v.options)
	default:
		return ""
	}
}

func formatNumber(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func recordString(r *Record) string {
	if r == nil {
		return "{}"
	}
	parts := make([]string, len(r.names))
	for i, name := range r.names {
		parts[i] = fmt.Sprintf("%s: %s", name, valueLiteralString(r.values[name]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// valueLiteralString renders a field value for display within a
// record/table, quoting text-family values so nested structure stays
// legible.
func valueLiteralString(v Value) string {
	switch v.kind {
	case KindText, KindHyperlink, KindImage, KindMedia:
		return "'" + v.text + "'"
	default:
		return v.String()
	}
}

func optionSetString(o *OptionSet) string {
	if o == nil {
		return ""
	}
	codes := make([]int64, 0, len(o.Options))
	for c := range o.Options {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = o.Options[c]
	}
	return strings.Join(parts, ", ")
}

// Equal implements the same-variant equality rule from the language
// spec: values of different Kinds are never equal (callers implementing
// `=`/`<>` must special-case NaN and Blank themselves where the
// surface semantics diverge from plain Go equality; Equal here is the
// structural building block).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBlank:
		return true
	case KindNumber:
		return a.number == b.number
	case KindBoolean:
		return a.boolean == b.boolean
	case KindText, KindHyperlink, KindImage, KindMedia:
		return a.text == b.text
	case KindDate:
		return a.date.Equal(b.date)
	case KindRecord:
		return recordEqual(a.record, b.record)
	case KindTable:
		return tableEqual(a.table, b.table)
	case KindOptionSet:
		return optionSetEqual(a.options, b.options)
	default:
		return false
	}
}

func recordEqual(a, b *Record) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.names) != len(b.names) {
		return false
	}
	for i, name := range a.names {
		if b.names[i] != name {
			return false
		}
		if !Equal(a.values[name], b.values[name]) {
			return false
		}
	}
	return true
}

func tableEqual(a, b Table) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !recordEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func optionSetEqual(a, b *OptionSet) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Options) != len(b.Options) {
		return false
	}
	for k, v := range a.Options {
		if bv, ok := b.Options[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// Compare implements the ordered-comparison rule: it is only defined
// for (Number, Number) and (Date, Date) pairs. ok is false for every
// other combination, in which case the caller (the evaluator) must
// treat every ordered comparison as false per the language spec.
func Compare(a, b Value) (less bool, ok bool) {
	if a.kind != b.kind {
		return false, false
	}
	switch a.kind {
	case KindNumber:
		return a.number < b.number, true
	case KindDate:
		return a.date.Before(b.date), true
	default:
		return false, false
	}
}
