// Package errors provides domain-specific error types and sentinel errors
// for the lookup and completion pipeline.
//
// Every failure in the pipeline is one of four kinds: the store is not
// configured (ErrUnavailable), a valid query matched nothing (ErrNotFound),
// a recognised intent lacked its parameter (ErrMissingParameter), or an
// external service call failed (*LookupError, or a *WrappedError around an
// upstream error). Module handlers turn these into reply text.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrUnavailable indicates the document store handle was never initialised.
	ErrUnavailable = errors.New("database unavailable")

	// ErrNotFound indicates a requested document was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrMissingParameter indicates an intent was recognised without its required parameter.
	ErrMissingParameter = errors.New("missing required parameter")
)

// Kind names the failure category of an error, for logs and metrics.
type Kind string

// Failure kinds.
const (
	KindNone        Kind = "ok"
	KindUnavailable Kind = "unavailable"
	KindNotFound    Kind = "not_found"
	KindAmbiguous   Kind = "ambiguous"
	KindExternal    Kind = "external"
)

// KindOf classifies err. Any error that is not one of the sentinels is
// treated as an external-service failure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrMissingParameter):
		return KindAmbiguous
	default:
		return KindExternal
	}
}

// IsUnavailable reports whether err is (or wraps) ErrUnavailable.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// LookupError represents a failed document-store read.
type LookupError struct {
	Collection string
	Key        string
	Err        error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup error (collection=%s, key=%q): %v", e.Collection, e.Key, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// NewLookupError creates a new lookup error.
func NewLookupError(collection, key string, err error) *LookupError {
	return &LookupError{
		Collection: collection,
		Key:        key,
		Err:        err,
	}
}
