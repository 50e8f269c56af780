package fx

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
)

// ToJSON renders a Record or Table value as pretty-printed JSON,
// built field by field with sjson.Set so the output walks fields in
// the same sorted order the value model guarantees for display and
// equality.
func ToJSON(v Value) (string, error) {
	switch v.Kind() {
	case fxvalue.KindRecord:
		return recordToJSON(v.AsRecord())
	case fxvalue.KindTable:
		return tableToJSON(v.AsTable())
	default:
		return "", fmt.Errorf("fx: ToJSON only supports Record and Table values, got %s", v.Kind())
	}
}

func recordToJSON(r *Record) (string, error) {
	doc := "{}"
	var err error
	for _, name := range r.Fields() {
		field, _ := r.Get(name)
		doc, err = setJSONField(doc, name, field)
		if err != nil {
			return "", err
		}
	}
	return string(pretty.Pretty([]byte(doc))), nil
}

func tableToJSON(t Table) (string, error) {
	doc := "[]"
	for i, row := range t {
		rowJSON, err := recordToJSON(row)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, fmt.Sprintf("%d", i), rowJSON)
		if err != nil {
			return "", err
		}
	}
	return string(pretty.Pretty([]byte(doc))), nil
}

func setJSONField(doc, name string, v Value) (string, error) {
	switch v.Kind() {
	case fxvalue.KindRecord, fxvalue.KindTable:
		nested, err := ToJSON(v)
		if err != nil {
			return "", err
		}
		return sjson.SetRaw(doc, name, nested)
	case fxvalue.KindBlank:
		return sjson.SetRaw(doc, name, "null")
	case fxvalue.KindNumber:
		return sjson.Set(doc, name, v.AsNumber())
	case fxvalue.KindBoolean:
		return sjson.Set(doc, name, v.AsBoolean())
	default:
		return sjson.Set(doc, name, v.String())
	}
}

// RecordFromJSON decodes a JSON object into a Record value, and a
// JSON array of objects into a Table value. Nested objects/arrays
// decode recursively into nested Record/Table values.
func RecordFromJSON(doc string) (Value, error) {
	if !gjson.Valid(doc) {
		return Value{}, fmt.Errorf("fx: invalid JSON document")
	}
	return gjsonToValue(gjson.Parse(doc)), nil
}

func gjsonToValue(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return fxvalue.Blank()
	case gjson.False, gjson.True:
		return fxvalue.Boolean(r.Bool())
	case gjson.Number:
		return fxvalue.Number(r.Float())
	case gjson.String:
		return fxvalue.Text(r.String())
	case gjson.JSON:
		if r.IsArray() {
			var rows fxvalue.Table
			r.ForEach(func(_, value gjson.Result) bool {
				rv := gjsonToValue(value)
				if rv.Kind() == fxvalue.KindRecord {
					rows = append(rows, rv.AsRecord())
				}
				return true
			})
			return fxvalue.TableValue(rows)
		}
		fields := map[string]Value{}
		r.ForEach(func(key, value gjson.Result) bool {
			fields[key.String()] = gjsonToValue(value)
			return true
		})
		return fxvalue.RecordValue(fxvalue.NewRecord(fields))
	default:
		return fxvalue.Blank()
	}
}
