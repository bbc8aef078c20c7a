package chain

import "errors"

// Sentinel errors returned by the wrapper and its operators.
var (
	// ErrUnsupportedOperation is returned when no operator is registered under
	// the requested name.
	ErrUnsupportedOperation = errors.New("chain: unsupported operation")

	// ErrInvalidArgument is returned when an operator argument has the wrong
	// type or is missing, or when Wrap is given a value it cannot traverse.
	ErrInvalidArgument = errors.New("chain: invalid argument")

	// ErrUnexpectedResult is returned by a typed terminal method when the
	// operator registered under its name returns a value of another type.
	ErrUnexpectedResult = errors.New("chain: unexpected operator result")

	// ErrNotNumeric is returned by sum when a value is not a number.
	ErrNotNumeric = errors.New("chain: value is not numeric")
)
