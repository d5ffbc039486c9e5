package mapping

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes of the mapping engine
var (
	ErrInvalidColorFormat  = errors.New("invalid color format")
	ErrUnrecognizedContent = errors.New("unrecognized content")
	ErrInvalidNumericInput = errors.New("invalid numeric input")
	ErrUnknownScale        = errors.New("unknown scale")
)

// InputError records the operation and the input that a mapper rejected
type InputError struct {
	Op    string // "color", "number", "auto", "scale"
	Input string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("map %s %q: %v", e.Op, e.Input, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func newInputError(op, input string, err error) *InputError {
	return &InputError{Op: op, Input: input, Err: err}
}
