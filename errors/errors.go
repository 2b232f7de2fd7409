// Package errors provides error handling for hookgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints attached to diagnostics
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := loadPackage(); err != nil {
//	    return errors.Wrap(err, "failed to load package")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "declare the property without a body")
//
//	// Check errors
//	if errors.Is(err, errors.ErrNotAbstract) {
//	    // report as a declaration diagnostic
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Assertions and panics
var (
	AssertionFailedf   = crdb.AssertionFailedf
	IsAssertionFailure = crdb.IsAssertionFailure
)

// Sentinel errors for hook generation.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNotAbstract marks a hook property that already has an implementation
	ErrNotAbstract = New("hook property is not abstract")

	// ErrUnknownVariant marks a hook type whose name is not one of the ten variants
	ErrUnknownVariant = New("unrecognized hook type")

	// ErrMalformedSignature marks a hook whose function type is missing or invalid
	ErrMalformedSignature = New("malformed hook signature")

	// ErrUnsupportedContainer marks a hook container that is neither a struct nor an interface
	ErrUnsupportedContainer = New("unsupported hook container kind")

	// ErrStale indicates generated files no longer match their declarations
	ErrStale = New("generated hooks are out of date")

	// ErrInvalidConfig indicates the configuration failed validation
	ErrInvalidConfig = New("invalid configuration")
)

// IsValidationError reports whether err is (or wraps) one of the declaration
// diagnostics produced by the validator.
func IsValidationError(err error) bool {
	return err != nil && IsAny(err, ErrNotAbstract, ErrUnknownVariant, ErrMalformedSignature)
}

// IsUnsupportedContainerError checks if an error is or wraps ErrUnsupportedContainer
func IsUnsupportedContainerError(err error) bool {
	return err != nil && Is(err, ErrUnsupportedContainer)
}
