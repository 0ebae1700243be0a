package errors

import (
	"errors"
)

var (
	// ErrInvalidState is returned when a required field (selector, receiver) wasn't set
	// before use.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnsupportedOperation is returned when the receiver cannot perform the requested
	// method, or cannot perform it with the given number of arguments.
	ErrUnsupportedOperation = errors.New("receiver does not support the operation")
	// ErrOutOfRange is returned on access past the fixed argument capacity.
	ErrOutOfRange = errors.New("index out of range")
	// ErrConstruction is returned when a table cannot be built from the passed keys and values.
	ErrConstruction = errors.New("table construction failed")
)

