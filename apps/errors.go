package apps

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrArgument matches every *ArgumentError.
var ErrArgument = errors.New("invalid argument")

// ArgumentError reports a misused command: its message is shown to the user as is.
type ArgumentError struct {
	msg string
}

func NewArgumentError(msg string) *ArgumentError {
	return &ArgumentError{msg}
}

func NewArgumentErrorf(format string, args ...interface{}) *ArgumentError {
	return &ArgumentError{fmt.Sprintf(format, args...)}
}

func (err *ArgumentError) Error() string {
	return err.msg
}

func (err *ArgumentError) Is(target error) bool { return target == ErrArgument }
