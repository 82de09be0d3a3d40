package validation

import (
	"fmt"
	"strings"
)

const (
	ConstraintRequired   = "required"
	ConstraintString     = "string"
	ConstraintBoolean    = "boolean"
	ConstraintUUID       = "uuid"
	ConstraintDate       = "date"
	ConstraintNonEmpty   = "non_empty"
	ConstraintEmail      = "email"
	ConstraintJSONObject = "json_object"
)

// Violation names one field and the constraint it broke.
type Violation struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

// Error lists every violation found in a payload.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Constraint)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
