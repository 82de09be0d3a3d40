// Package validation turns untyped request payloads into typed inputs.
//
// Parsing (ParseRecord) and validation (User, Board, ...) are separate steps.
// Validation reports every failing field, not just the first, and never
// touches the database.
package validation

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

type Kind int

const (
	KindString Kind = iota
	KindBool
	KindUUID
	KindDate
)

// Field describes one accepted attribute of a payload. Rules is a
// go-playground/validator tag checked after the kind check passes.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Rules    string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

var ruleConstraints = map[string]string{
	"notblank": ConstraintNonEmpty,
	"email":    ConstraintEmail,
	"uuid":     ConstraintUUID,
}

var dateLayouts = []string{time.RFC3339Nano, time.DateOnly}

// values holds the typed value of every field that was present and valid.
type values map[string]any

// ParseID accepts an identifier in the canonical 8-4-4-4-12 hex form, in
// either letter case. Body fields and path parameters both go through it.
func ParseID(s string) (uuid.UUID, bool) {
	if validate.Var(strings.ToLower(s), "uuid") != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func check(r Record, fields []Field) (values, error) {
	out := make(values, len(fields))
	var violations []Violation

	for _, f := range fields {
		v, constraint := f.check(r)
		if constraint != "" {
			violations = append(violations, Violation{Field: f.Name, Constraint: constraint})
			continue
		}
		if v != nil {
			out[f.Name] = v
		}
	}

	if len(violations) > 0 {
		return nil, &Error{Violations: violations}
	}
	return out, nil
}

func (f Field) check(r Record) (any, string) {
	raw, ok := r.lookup(f.Name)
	if !ok || raw == nil {
		if f.Required {
			return nil, ConstraintRequired
		}
		return nil, ""
	}

	switch f.Kind {
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, ConstraintBoolean
		}
		return b, ""

	case KindUUID:
		s, ok := raw.(string)
		if !ok {
			return nil, ConstraintUUID
		}
		id, ok := ParseID(s)
		if !ok {
			return nil, ConstraintUUID
		}
		return id, ""

	case KindDate:
		s, ok := raw.(string)
		if !ok {
			return nil, ConstraintDate
		}
		t, ok := parseDate(s)
		if !ok {
			return nil, ConstraintDate
		}
		return t, ""

	default:
		s, ok := raw.(string)
		if !ok {
			return nil, ConstraintString
		}
		if f.Rules != "" {
			if err := validate.Var(s, f.Rules); err != nil {
				return nil, constraintOf(err)
			}
		}
		return s, ""
	}
}

func constraintOf(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if c, ok := ruleConstraints[verrs[0].Tag()]; ok {
			return c
		}
		return verrs[0].Tag()
	}
	return ConstraintString
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (v values) str(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v values) optStr(name string) *string {
	s, ok := v[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func (v values) id(name string) uuid.UUID {
	id, _ := v[name].(uuid.UUID)
	return id
}

func (v values) flag(name string) bool {
	b, _ := v[name].(bool)
	return b
}

func (v values) optTime(name string) *time.Time {
	t, ok := v[name].(time.Time)
	if !ok {
		return nil
	}
	return &t
}
