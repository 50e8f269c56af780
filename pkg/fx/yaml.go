package fx

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/arvidsson/powerfx-go/pkg/fxvalue"
)

// LoadSessionFromYAML decodes a YAML document of scalar fields into a
// new Session's globals, so a host can seed a session from a config
// file instead of calling SetVariable in a loop. Numbers decode to
// Number, booleans to Boolean, null to Blank, RFC3339 or YYYY-MM-DD
// strings to Date, and everything else to Text.
func LoadSessionFromYAML(r io.Reader) (*Session, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fx: decoding session YAML: %w", err)
	}

	session := NewSession()
	for name, raw := range doc {
		session.SetVariable(name, yamlScalarToValue(raw))
	}
	return session, nil
}

func yamlScalarToValue(raw any) fxvalue.Value {
	switch v := raw.(type) {
	case nil:
		return fxvalue.Blank()
	case bool:
		return fxvalue.Boolean(v)
	case int:
		return fxvalue.Number(float64(v))
	case int64:
		return fxvalue.Number(float64(v))
	case uint64:
		return fxvalue.Number(float64(v))
	case float64:
		return fxvalue.Number(v)
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return fxvalue.Date(t)
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return fxvalue.Date(t)
		}
		return fxvalue.Text(v)
	default:
		return fxvalue.Text(fmt.Sprintf("%v", v))
	}
}
