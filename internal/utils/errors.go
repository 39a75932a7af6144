// Package utils provides low-level helpers shared by the fingerprint
// and gistops packages: error wrapping and scratch-buffer pooling.
package utils

import "fmt"

// Kind classifies an FPError by the four error categories the
// indexing algebra distinguishes: a bad textual fingerprint, a
// corrupt stored value, a scratch-allocation failure, or a broken
// internal invariant (picksplit called with one entry, a nil
// deserialize mid-union, degenerate seed selection).
type Kind int

const (
	// KindInvalidRepresentation marks a textual parse failure.
	KindInvalidRepresentation Kind = iota
	// KindInvalidStoredValue marks a detoasted record that fails validation.
	KindInvalidStoredValue
	// KindResourceExhaustion marks a scratch allocation failure.
	KindResourceExhaustion
	// KindInternalInvariant marks a condition the host guarantees can't happen.
	KindInternalInvariant
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRepresentation:
		return "invalid representation"
	case KindInvalidStoredValue:
		return "invalid stored value"
	case KindResourceExhaustion:
		return "resource exhaustion"
	case KindInternalInvariant:
		return "internal invariant violated"
	default:
		return "unknown"
	}
}

// FPError is a structured error carrying the call site context, the
// error kind, and an optional underlying cause.
type FPError struct {
	Kind    Kind
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *FPError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Context)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Context, e.Cause)
}

// Unwrap provides compatibility with errors.Unwrap().
func (e *FPError) Unwrap() error {
	return e.Cause
}

// WrapError creates a contextual FPError of the given kind. Returns
// nil if cause is nil, so callers can use it unconditionally after a
// fallible step.
func WrapError(kind Kind, context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &FPError{Kind: kind, Context: context, Cause: cause}
}

// NewError builds an FPError with no underlying cause, for call sites
// that detect the problem directly rather than wrapping a lower-level
// error.
func NewError(kind Kind, context string) error {
	return &FPError{Kind: kind, Context: context}
}
