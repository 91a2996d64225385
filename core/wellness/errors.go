package wellness

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/mindbloom/core"
)

var (
	// errors
	ErrEmptyField       = errors.New("required field is empty")
	ErrInvalidCharacter = errors.New("only letters and spaces are allowed")
	ErrInvalidNumber    = errors.New("screen-free time must be a positive number")
	ErrIndexOutOfRange  = errors.New("entry index out of range")
	ErrInvalidPolicy    = errors.New("healthy threshold must be greater than 0")
	ErrUnknownActivity  = errors.New("unknown activity kind")
)

// EmptyFieldError names the first required field left empty.
type EmptyFieldError struct {
	Field   string
	Message string
}

func (err *EmptyFieldError) Error() string {
	if err.Message != "" {
		return err.Message
	}
	return fmt.Sprintf("%s cannot be empty", err.Field)
}

func (err *EmptyFieldError) Is(target error) bool { return target == ErrEmptyField }

// InvalidCharacterError names a text field holding something else than letters and spaces.
type InvalidCharacterError struct {
	Field   string
	Value   string
	Message string
}

func (err *InvalidCharacterError) Error() string {
	if err.Message != "" {
		return err.Message
	}
	return fmt.Sprintf("%s must only contain letters and spaces", err.Field)
}

func (err *InvalidCharacterError) Is(target error) bool { return target == ErrInvalidCharacter }

// InvalidNumberError is returned when the screen-free minutes are not a number, or not above 0.
type InvalidNumberError struct {
	Value   string
	Message string
}

func (err *InvalidNumberError) Error() string {
	if err.Message != "" {
		return err.Message
	}
	return fmt.Sprintf("%s must be a positive number (got %q)", FieldScreenFreeMinutes, err.Value)
}

func (err *InvalidNumberError) Is(target error) bool { return target == ErrInvalidNumber }

// IndexOutOfRangeError is returned by store operations given an index the store does not hold.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (err *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("entry index %d out of range [0, %d)", err.Index, err.Len)
}

func (err *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }

// CheckIndex returns an *IndexOutOfRangeError unless 0 <= i < n.
func CheckIndex(i, n int) error {
	if i < 0 || i >= n {
		return &IndexOutOfRangeError{Index: i, Len: n}
	}
	return nil
}

// AsValidationError converts validation errors to the field -> message form shown to users.
// ok is false for any other error.
func AsValidationError(err error) (vErr *core.ValidationError, ok bool) {
	var (
		emptyErr *EmptyFieldError
		charErr  *InvalidCharacterError
		numErr   *InvalidNumberError
	)
	switch {
	case errors.As(err, &vErr):
		return vErr, true
	case errors.As(err, &emptyErr):
		return fieldError(emptyErr, emptyErr.Field), true
	case errors.As(err, &charErr):
		return fieldError(charErr, charErr.Field), true
	case errors.As(err, &numErr):
		return fieldError(numErr, FieldScreenFreeMinutes), true
	default:
		return nil, false
	}
}

func fieldError(err error, field string) *core.ValidationError {
	return &core.ValidationError{Err: err, Fields: []core.FieldError{{Field: field, Error: err.Error()}}}
}
