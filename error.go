package argcheck

import (
	"errors"
	"fmt"
)

// ErrorCode represents an error code for a specific error type.
type ErrorCode int

const (
	// ErrUnknownCommand is returned when the leading token does not name a command with an
	// argument shape.
	ErrUnknownCommand ErrorCode = iota + 1
	// ErrStructuralMismatch is returned for a wrong token count or flag pattern.
	ErrStructuralMismatch
	// ErrTypeCoercion is returned when a token does not parse as its declared kind.
	ErrTypeCoercion
	// ErrDomainValidation is returned when a token parses but violates a semantic constraint.
	ErrDomainValidation
)

func (c ErrorCode) String() string {
	return convertErrorCode(c)
}

func convertErrorCode(code ErrorCode) string {
	switch code {
	case ErrUnknownCommand:
		return "unknown command"
	case ErrStructuralMismatch:
		return "structural mismatch"
	case ErrTypeCoercion:
		return "type coercion"
	case ErrDomainValidation:
		return "domain validation"
	default:
		return "unknown error"
	}
}

// Error is the structured error returned by every parse and validation step.
type Error struct {
	code ErrorCode
	msg  string
	err  error

	// Index is the position of the offending token among the command's arguments, or -1 when the
	// error is not tied to one token.
	Index int
	// Token is the offending token, if any.
	Token string
	// Expected is the schema the input was checked against. When set, it is appended to the
	// message as "Expected Arguments: ...".
	Expected Schema
}

func newError(code ErrorCode, index int, token, format string, args ...any) *Error {
	return &Error{code: code, Index: index, Token: token, msg: fmt.Sprintf(format, args...)}
}

// NewError creates a new error with the given error code and error.
func NewError(code ErrorCode, err error) error {
	return &Error{code: code, err: err, Index: -1}
}

// Code returns the error's classification.
func (e *Error) Code() ErrorCode {
	return e.code
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.msg
	if msg == "" {
		if e.err == nil {
			return convertErrorCode(e.code) + ": <nil>"
		}
		msg = e.err.Error()
	}
	if e.Expected != nil {
		msg += "\nExpected Arguments: " + e.Expected.String()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.err
}

// CodeOf returns the code of the first [*Error] in err's chain, or 0 if there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return 0
}

// NoExecError is returned when a command has no execution function.
type NoExecError struct {
	Command *Command
}

func (e *NoExecError) Error() string {
	return fmt.Sprintf("command %q has no execution function", e.Command.Name)
}
