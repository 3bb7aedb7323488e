package reconcile

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for errors.Is checks against the failure types below.
var (
	// ErrValidation marks a pre-flight validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrPrecondition marks a missing mutation target (e.g. no editable version).
	ErrPrecondition = errors.New("precondition failed")

	// ErrDuplicate marks a duplicate-resource conflict that could not be recovered.
	ErrDuplicate = errors.New("duplicate conflict")

	// ErrRemote marks any other failed backend call.
	ErrRemote = errors.New("remote api failure")

	// ErrNotFound marks a requested application or locale that does not exist.
	ErrNotFound = errors.New("not found")
)

// Violation is one field that exceeds its backend limit, or one malformed locale.
type Violation struct {
	Locale string `json:"locale"`
	Field  Field  `json:"field"`
	Length int    `json:"length,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (v Violation) String() string {
	if v.Reason != "" {
		return fmt.Sprintf("%s %s: %s", v.Locale, v.Field, v.Reason)
	}
	return fmt.Sprintf("%s %s: length %d exceeds limit %d", v.Locale, v.Field, v.Length, v.Limit)
}

// ValidationFailure aggregates every violation found in a desired record set.
type ValidationFailure struct {
	Violations []Violation
}

// Error implements the error interface
func (e *ValidationFailure) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("validation failed (%d violations): %s", len(e.Violations), strings.Join(parts, "; "))
}

// Is implements errors.Is support
func (e *ValidationFailure) Is(target error) bool {
	return target == ErrValidation
}

// PreconditionFailure means the backend has nothing this pass may mutate.
type PreconditionFailure struct {
	Backend  string
	Resource string
	Reason   string
}

// Error implements the error interface
func (e *PreconditionFailure) Error() string {
	return fmt.Sprintf("%s: no usable %s: %s", e.Backend, e.Resource, e.Reason)
}

// Is implements errors.Is support
func (e *PreconditionFailure) Is(target error) bool {
	return target == ErrPrecondition
}

// DuplicateConflict surfaces only when a duplicate error on CREATE could not be
// resolved to an UPDATE. Err is the original CREATE error.
type DuplicateConflict struct {
	Collection string
	Locale     string
	Reason     string
	Err        error
}

// Error implements the error interface
func (e *DuplicateConflict) Error() string {
	return fmt.Sprintf("%s %s: duplicate conflict not recoverable (%s): %v", e.Collection, e.Locale, e.Reason, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *DuplicateConflict) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *DuplicateConflict) Is(target error) bool {
	return target == ErrDuplicate
}

// RemoteAPIFailure is a non-2xx response or transport error from a backend.
type RemoteAPIFailure struct {
	Backend string
	Method  string
	URL     string
	Status  int
	// Code is the backend's structured error code, when the body carries one.
	Code string
	Body string
	Err  error
}

// Error implements the error interface
func (e *RemoteAPIFailure) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s %s: %v", e.Backend, e.Method, e.URL, e.Err)
	}
	msg := fmt.Sprintf("%s %s %s: status %d", e.Backend, e.Method, e.URL, e.Status)
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap implements errors.Unwrap
func (e *RemoteAPIFailure) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *RemoteAPIFailure) Is(target error) bool {
	if target == ErrRemote {
		return true
	}
	return target == ErrNotFound && e.Status == 404
}

// NotFoundFailure is returned when an application or locale does not exist.
// Available lists what does exist, so callers can show alternatives.
type NotFoundFailure struct {
	Resource  string
	ID        string
	Available []string
}

// Error implements the error interface
func (e *NotFoundFailure) Error() string {
	msg := fmt.Sprintf("%s %s not found", e.Resource, e.ID)
	if len(e.Available) > 0 {
		msg += " (available: " + strings.Join(e.Available, ", ") + ")"
	}
	return msg
}

// Is implements errors.Is support
func (e *NotFoundFailure) Is(target error) bool {
	return target == ErrNotFound
}

// CommitFailure is a failed commit call on an edit session.
type CommitFailure struct {
	SessionID string
	Err       error
}

// Error implements the error interface
func (e *CommitFailure) Error() string {
	return fmt.Sprintf("failed to commit edit session %s: %v", e.SessionID, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *CommitFailure) Unwrap() error {
	return e.Err
}

// Rejected reports whether the backend answered the commit with a client
// error, so none of the session became visible. Network errors, timeouts and
// 5xx responses leave the outcome unknown: the commit may have been applied
// before the response was lost.
func (e *CommitFailure) Rejected() bool {
	var failure *RemoteAPIFailure
	if !errors.As(e.Err, &failure) {
		return false
	}
	return failure.Status >= 400 && failure.Status < 500 && failure.Status != http.StatusRequestTimeout
}
