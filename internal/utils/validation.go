package utils

import (
	"fmt"
	"regexp"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field errors for a rejected request body.
// It never reaches the persistence layer; handlers map it to a 400.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid field(s)", len(e.Fields))
}

// Validator accumulates field checks against a request body.
type Validator struct {
	fields []FieldError
}

// Email requires a syntactically email-shaped value.
func (v *Validator) Email(field, value string) *Validator {
	if !emailPattern.MatchString(value) {
		v.fields = append(v.fields, FieldError{Field: field, Message: "must be a valid email address"})
	}
	return v
}

// MinLen requires at least n characters.
func (v *Validator) MinLen(field, value string, n int) *Validator {
	if len(value) < n {
		v.fields = append(v.fields, FieldError{Field: field, Message: fmt.Sprintf("must be at least %d characters", n)})
	}
	return v
}

// ExactLen requires exactly n characters.
func (v *Validator) ExactLen(field, value string, n int) *Validator {
	if len(value) != n {
		v.fields = append(v.fields, FieldError{Field: field, Message: fmt.Sprintf("must be exactly %d characters", n)})
	}
	return v
}

// OneOf requires the value to be one of the allowed literals.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.fields = append(v.fields, FieldError{Field: field, Message: fmt.Sprintf("must be one of %v", allowed)})
	return v
}

// Err returns the accumulated ValidationError, or nil if all checks passed.
func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}
