package texel

import (
	"errors"
	"fmt"
)

// Kind classifies the errors returned by the kernels and the codec.
type Kind int

// The error kinds used across the package.
const (
	InvalidParameter Kind = iota + 1
	EmptyInput
	DimensionMismatch
	DegenerateRange
	DecodeFailure
	EncodeFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "invalid parameter"
	case EmptyInput:
		return "empty input"
	case DimensionMismatch:
		return "dimension mismatch"
	case DegenerateRange:
		return "degenerate range"
	case DecodeFailure:
		return "decode failure"
	case EncodeFailure:
		return "encode failure"
	}
	return "unknown"
}

// Error is a typed error carrying its Kind and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrInvalidStrength   = &Error{Kind: InvalidParameter, Msg: "strength should be greater than zero"}
	ErrInvalidRadius     = &Error{Kind: InvalidParameter, Msg: "radius cannot be negative"}
	ErrInvalidDimensions = &Error{Kind: InvalidParameter, Msg: "image dimensions are out of range"}
	ErrInvalidOption     = &Error{Kind: InvalidParameter, Msg: "unsupported option value"}
	ErrEmptyInput        = &Error{Kind: EmptyInput, Msg: "at least one octave is required"}
	ErrDimensionMismatch = &Error{Kind: DimensionMismatch, Msg: "octave dimensions differ from the base octave"}
	ErrDegenerateRange   = &Error{Kind: DegenerateRange, Msg: "composite has no value range to stretch"}
	ErrUnsupportedFormat = &Error{Kind: EncodeFailure, Msg: "unsupported image format"}
)

// KindOf returns the Kind of the first *Error found in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
