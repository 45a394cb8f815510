package types

import "errors"

// Input errors. Returned when a caller supplies malformed product, variant,
// or pad data; the library is left unmodified.
var (
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidPad       = errors.New("invalid pad")
	ErrInvalidDimension = errors.New("invalid board dimension")
)

// Document errors. Returned when a library document does not match the
// expected shape; the in-memory library is preserved.
var (
	ErrSchema           = errors.New("library document does not match schema")
	ErrPadCountMismatch = errors.New("expectedPads does not match padLayout length")
	ErrUnknownFormat    = errors.New("unknown library format")
)

// ErrNotImplemented is returned by pad extraction sources that are not
// available yet.
var ErrNotImplemented = errors.New("not implemented")
