// Package errors provides error handling for wasync.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints for operator errors (bad credentials, missing config)
//
// Usage:
//
//	// Wrap with context
//	if err := client.Login(ctx); err != nil {
//	    return errors.Wrap(err, "archivesspace login")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "check aspace.username and aspace.password")
//
//	// Check errors
//	if errors.Is(err, errors.ErrNoCaptures) {
//	    // skip this URL
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
	FlattenHints  = crdb.FlattenHints
	GetAllDetails = crdb.GetAllDetails
)

// GetStack returns the reportable stack trace attached to an error, if any.
var GetStack = crdb.GetReportableStackTrace

// Sentinel errors for the reconciliation failure taxonomy.
// Wrap these with errors.Mark() or errors.Wrap() to add context while preserving the type.
var (
	// ErrSeedNotFound: no seed or inferable collection exists for a URL
	ErrSeedNotFound = New("seed not found")

	// ErrNoCaptures: the capture index returned no records for a URL
	ErrNoCaptures = New("no capture records")

	// ErrTransport: an HTTP call failed or returned a non-success status
	ErrTransport = New("transport failure")

	// ErrConflict: the catalog rejected a write because the record changed concurrently
	ErrConflict = New("record conflict")

	// ErrNotFound: the requested record does not exist
	ErrNotFound = New("not found")

	// ErrInvalidConfig: configuration failed validation
	ErrInvalidConfig = New("invalid configuration")

	// ErrPartialFailure: a batch finished but at least one record failed
	ErrPartialFailure = New("one or more records failed")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsTransportError checks if an error is or wraps ErrTransport
func IsTransportError(err error) bool {
	return err != nil && Is(err, ErrTransport)
}

// IsConflictError checks if an error is or wraps ErrConflict
func IsConflictError(err error) bool {
	return err != nil && Is(err, ErrConflict)
}

// IsSkip reports whether err is one of the non-fatal per-URL skip conditions.
func IsSkip(err error) bool {
	return err != nil && IsAny(err, ErrSeedNotFound, ErrNoCaptures)
}

// WrapTransport wraps err with context and marks it as a transport failure
func WrapTransport(err error, context string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrap(err, context), ErrTransport)
}
