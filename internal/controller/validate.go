package controller

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldError is one per-field schema rejection.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects a form before any network call is made.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add appends a field error and returns the receiver, allocating on first use.
func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// ok reports whether no field was rejected.
func (e *ValidationError) ok() bool {
	return len(e.Fields) == 0
}

// asError returns nil when the form passed.
func (e *ValidationError) asError() error {
	if e.ok() {
		return nil
	}
	return e
}

// coerceNumber converts a numeric form string to a float, trimming spaces.
func coerceNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	return v, nil
}

// coerceInt converts an integer form string.
func coerceInt(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	return v, nil
}

// requirePositiveNumber coerces raw and rejects zero or negative values.
func requirePositiveNumber(e *ValidationError, field, raw, message string) float64 {
	v, err := coerceNumber(raw)
	if err != nil || v <= 0 {
		e.add(field, message)
		return 0
	}
	return v
}

// requirePositiveInt coerces raw and rejects non-integers and values < 1.
func requirePositiveInt(e *ValidationError, field, raw, message string) int {
	v, err := coerceInt(raw)
	if err != nil || v <= 0 {
		e.add(field, message)
		return 0
	}
	return v
}

// requireMinLength rejects trimmed values shorter than min runes.
func requireMinLength(e *ValidationError, field, raw string, min int, message string) string {
	v := strings.TrimSpace(raw)
	if len([]rune(v)) < min {
		e.add(field, message)
		return ""
	}
	return v
}
