package common

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Rule checks a single string field and returns an empty string when the
// value is acceptable, or a short problem description otherwise.
type Rule func(value string) string

// ValidationError pairs a field name with what went wrong.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Validator collects field-level failures across a request body.
type Validator struct {
	errors []ValidationError
}

func NewValidator() *Validator {
	return &Validator{}
}

// Field runs each rule against value and records every failure.
func (v *Validator) Field(name, value string, rules ...Rule) *Validator {
	for _, rule := range rules {
		if msg := rule(value); msg != "" {
			v.errors = append(v.errors, ValidationError{Field: name, Message: msg})
		}
	}
	return v
}

func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// ErrorMessage joins all recorded failures into one line.
func (v *Validator) ErrorMessage() string {
	parts := make([]string, 0, len(v.errors))
	for _, e := range v.errors {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// Required rejects empty and whitespace-only values.
func Required(value string) string {
	if strings.TrimSpace(value) == "" {
		return "is required"
	}
	return ""
}

// PlaceholderKey requires a [Bracketed] key of reasonable length.
func PlaceholderKey(value string) string {
	if !strings.HasPrefix(value, "[") || !strings.Contains(value, "]") {
		return "must be a bracketed placeholder key"
	}
	if utf8.RuneCountInString(value) > 80 {
		return "must be at most 80 characters"
	}
	return ""
}

// ValidateAndReturnError converts collected failures into an invalid-input error.
func ValidateAndReturnError(v *Validator) error {
	if v.HasErrors() {
		return InvalidInputError(v.ErrorMessage())
	}
	return nil
}
