package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInputTooLarge indicates markup exceeding the configured size bound.
	// It is raised at the I/O boundary, before the import pipeline runs.
	ErrInputTooLarge = errors.New("input too large")

	// Import Errors.

	// ErrSyntax indicates the repaired markup still failed to parse.
	ErrSyntax = errors.New("syntax error")

	// ErrStructure indicates the markup parsed but the document shape is invalid.
	ErrStructure = errors.New("structure error")

	// ErrInternal indicates an unanticipated failure during conversion.
	ErrInternal = errors.New("internal error")
)

// ImportErrorKind classifies why an import failed.
type ImportErrorKind int

const (
	// ImportErrorSyntax means the parser reported a diagnostic.
	ImportErrorSyntax ImportErrorKind = iota

	// ImportErrorStructure means the root element is not the document wrapper.
	ImportErrorStructure

	// ImportErrorInternal means conversion failed unexpectedly.
	ImportErrorInternal
)

// String returns the name used when reporting the kind to users.
func (k ImportErrorKind) String() string {
	switch k {
	case ImportErrorSyntax:
		return "SyntaxError"
	case ImportErrorStructure:
		return "StructureError"
	case ImportErrorInternal:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

// sentinel returns the package-level error matching the kind.
func (k ImportErrorKind) sentinel() error {
	switch k {
	case ImportErrorSyntax:
		return ErrSyntax
	case ImportErrorStructure:
		return ErrStructure
	default:
		return ErrInternal
	}
}

// ImportError is the only error returned by a failed import.
// errors.Is matches it against ErrSyntax, ErrStructure or ErrInternal
// according to its Kind.
type ImportError struct {
	// Kind is the terminal failure class.
	Kind ImportErrorKind

	// Detail is the human-readable diagnostic.
	Detail string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap returns the underlying cause.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ImportError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// NewSyntaxError wraps a parser diagnostic.
func NewSyntaxError(cause error) *ImportError {
	return &ImportError{Kind: ImportErrorSyntax, Detail: cause.Error(), Err: cause}
}

// NewStructureError reports an invalid document shape.
func NewStructureError(detail string) *ImportError {
	return &ImportError{Kind: ImportErrorStructure, Detail: detail}
}

// NewInternalError reports an unanticipated conversion failure.
func NewInternalError(detail string, cause error) *ImportError {
	return &ImportError{Kind: ImportErrorInternal, Detail: detail, Err: cause}
}
