package validation

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
)

// Record is a decoded JSON object that has not been validated yet.
type Record map[string]any

// ParseRecord decodes body into a Record. Only a JSON object is accepted;
// anything else is reported as a single violation on "body".
func ParseRecord(body []byte) (Record, error) {
	bad := &Error{Violations: []Violation{{Field: "body", Constraint: ConstraintJSONObject}}}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, bad
	}
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, bad
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, bad
	}
	return Record(obj), nil
}

// Set stores value under field and drops every alias spelling of field, so
// that the injected value is the only one a validator can see.
func (r Record) Set(field string, value any) {
	for _, alias := range aliases(field) {
		delete(r, alias)
	}
	r[field] = value
}

// lookup returns the value for field, accepting its snake_case and
// lower-case spellings when the canonical key is absent.
func (r Record) lookup(field string) (any, bool) {
	if v, ok := r[field]; ok {
		return v, true
	}
	for _, alias := range aliases(field) {
		if v, ok := r[alias]; ok {
			return v, true
		}
	}
	return nil, false
}

func aliases(field string) []string {
	var out []string
	for _, a := range []string{snakeCase(field), strings.ToLower(field)} {
		if a == field {
			continue
		}
		dup := false
		for _, seen := range out {
			dup = dup || seen == a
		}
		if !dup {
			out = append(out, a)
		}
	}
	return out
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
