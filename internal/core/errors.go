package core

import "errors"

// Predefined errors returned by Quill statement building.
var (
	// ErrInvalidOperator is returned when a filter uses a comparison operator
	// outside the allowed set.
	ErrInvalidOperator = errors.New("invalid operation")
)

// WrapError wraps an error with additional context message.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
