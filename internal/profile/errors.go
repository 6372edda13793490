package profile

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrInvalidField indicates a profile field whose value cannot be used.
	ErrInvalidField = constError("invalid profile field")

	// ErrMalformedPayload indicates a body that is not a single object.
	ErrMalformedPayload = constError("malformed profile payload")
)

// ValidationError reports which field was rejected and why.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Reason, e.Value)
}

// Unwrap allows errors.Is(err, ErrInvalidField).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidField
}
