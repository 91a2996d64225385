package core

import (
	"fmt"
	"sort"
	"strings"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err *ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

func (err *ValidationError) Unwrap() error { return err.Err }

// FieldMap returns the field errors keyed by field name.
func (err *ValidationError) FieldMap() map[string]string {
	flds := make(map[string]string, len(err.Fields))
	for _, fErr := range err.Fields {
		flds[fErr.Field] = fErr.Error
	}
	return flds
}

// Details renders the field errors one per line, sorted by field name.
func (err *ValidationError) Details() string {
	if len(err.Fields) == 0 {
		return err.Error()
	}
	lines := make([]string, 0, len(err.Fields))
	for _, fErr := range err.Fields {
		lines = append(lines, fmt.Sprintf("%s: %s", fErr.Field, fErr.Error))
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}
