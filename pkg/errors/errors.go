// Package errors provides structured error types for modgroup.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each code names a failure class of the combinatorial engine:
//   - INVALID_FORMAT: malformed permutation or matrix input
//   - CONSISTENCY: generators of the wrong order, non-transitive pairs,
//     non-integral signatures, stabilizers outside the group
//   - ENUMERATION: coset enumeration cannot reach the required count or
//     produced right-equivalent duplicates
//   - FACTORIZATION: continued-fraction reconstruction failed its self-check
//   - ARITHMETIC: pullback could not locate a matching coset representative
//   - UNDETERMINED: a bounded search exceeded its cap without an answer
//
// # Usage
//
//	err := errors.New(errors.CodeInvalidFormat, "permutation length %d != %d", n, m)
//	if errors.Is(err, errors.CodeInvalidFormat) {
//	    // handle malformed input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.CodeEnumeration, cause, "connecting cycle %d", i)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

// Error codes for the failure classes of the engine.
const (
	// CodeInvalidFormat marks malformed input: permutations of mismatched
	// length, values outside 1..n, non-bijective maps, matrices with
	// determinant != 1, unparseable permutation strings.
	CodeInvalidFormat Code = "INVALID_FORMAT"

	// CodeConsistency marks violated structural invariants: generator
	// orders not dividing 2 and 3, a non-transitive generating pair, a
	// signature that is not a non-negative integer, a cusp stabilizer
	// that fails the membership check.
	CodeConsistency Code = "CONSISTENCY"

	// CodeEnumeration marks a coset enumeration that terminated with the
	// wrong representative count or with right-equivalent duplicates.
	CodeEnumeration Code = "ENUMERATION"

	// CodeFactorization marks a continued-fraction factorization whose
	// reconstruction did not match the input up to sign, or that hit the
	// iteration cap on supposedly rational input.
	CodeFactorization Code = "FACTORIZATION"

	// CodeArithmetic marks a pullback that found no coset representative
	// placing the reduced matrix in the subgroup.
	CodeArithmetic Code = "ARITHMETIC"

	// CodeUndetermined marks a bounded search (congruence test, normalizer
	// order) that exceeded its cap; the answer is unknown, not negative.
	CodeUndetermined Code = "UNDETERMINED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns the empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
