package types

import (
	"context"
	"errors"
	"fmt"
)

// Record errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid record ID")
)

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// ValidationError reports malformed input. It is raised before any backend
// call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// BackendErrorKind classifies a failure reported by a backend.
type BackendErrorKind string

const (
	// KindSchemaMissing means the relation does not exist; the schema was
	// never set up.
	KindSchemaMissing BackendErrorKind = "schema_missing"
	// KindPermissionDenied means the store refused the operation.
	KindPermissionDenied BackendErrorKind = "permission_denied"
	// KindFault covers every other backend failure.
	KindFault BackendErrorKind = "fault"
)

// BackendError is the uniform error raised at the store boundary. Message
// is safe to show to a user.
type BackendError struct {
	Kind    BackendErrorKind
	Op      string // e.g. "list", "create"
	Table   string // "tasks" or "notes"
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Table, e.Message)
}

func (e *BackendError) Unwrap() error { return e.Err }

// NewSchemaMissingError builds the error for a table that does not exist.
func NewSchemaMissingError(op, table string, cause error) *BackendError {
	return &BackendError{
		Kind:    KindSchemaMissing,
		Op:      op,
		Table:   table,
		Message: fmt.Sprintf("table %q does not exist; run \"taskdesk init\" to set up the schema", table),
		Err:     cause,
	}
}

// NewPermissionDeniedError builds the error for an operation the store
// refused.
func NewPermissionDeniedError(op, table string, cause error) *BackendError {
	return &BackendError{
		Kind:    KindPermissionDenied,
		Op:      op,
		Table:   table,
		Message: "permission denied by the store; check the access policy",
		Err:     cause,
	}
}

// NewFaultError builds a generic backend error. The cause's text becomes
// the message, or a default derived from op and table when cause is nil.
func NewFaultError(op, table string, cause error) *BackendError {
	msg := fmt.Sprintf("failed to %s %s", op, table)
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	return &BackendError{Kind: KindFault, Op: op, Table: table, Message: msg, Err: cause}
}

// IsBackendKind reports whether err is a *BackendError of the given kind.
func IsBackendKind(err error, kind BackendErrorKind) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Kind == kind
}

// UserMessage renders err as notification text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var be *BackendError
	if errors.As(err, &be) {
		return be.Message
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "record not found"
	case errors.Is(err, context.DeadlineExceeded):
		return "the backend did not respond in time"
	case errors.Is(err, context.Canceled):
		return "the operation was cancelled"
	}
	return err.Error()
}
