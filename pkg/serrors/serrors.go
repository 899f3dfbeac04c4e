// File: pkg/serrors/serrors.go
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a semantic error category. Kinds are sentinels and match through errors.Is
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// Creates a new semantic error kind with the provided name
func NewKind(name string) Kind { return kind{s: name} }

var (
	// Credentials are missing or were rejected by the provider
	ErrAuthentication = NewKind("authentication failure")
	// Transient provider or network fault
	ErrUnavailable = NewKind("storage unavailable")
	// The authenticated identity lacks rights for the operation
	ErrPermissionDenied = NewKind("permission denied")
	// A single object write was rejected
	ErrUploadFailed = NewKind("upload failed")
	// A local file could not be listed, opened or read
	ErrLocalIO = NewKind("local I/O failure")
	// A site operation was called in the wrong phase
	ErrOutOfOrder = NewKind("operation out of order")
	// The provider cannot express the requested operation
	ErrUnsupported = NewKind("unsupported by provider")
	// The caller passed an unusable value
	ErrInvalidArgument = NewKind("invalid argument")
	// A provider was requested but its configuration is incomplete
	ErrNotConfigured = NewKind("provider not configured")
)

// Error carries a kind, an optional wrapped cause and an optional message.
//
// errors.Is and errors.As match either the kind or anything in the cause chain,
// so a wrapped provider kind stays visible under an outer kind:
//
//	err := serrors.Wrap(serrors.ErrUploadFailed, serrors.With(serrors.ErrPermissionDenied, "denied"), "writing index.html")
//	errors.Is(err, serrors.ErrUploadFailed)     // true
//	errors.Is(err, serrors.ErrPermissionDenied) // true
type Error struct {
	kind Kind
	err  error
	msg  string
}

// Builds an error of kind k with a formatted message and no cause
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Builds an error of kind k wrapping err
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}
	return false
}

func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}
	return false
}

// Kind returns the outermost kind attached to this error
func (e *Error) Kind() Kind { return e.kind }

// Returns the outermost semantic kind found in err's chain, or nil
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.kind
	}
	return nil
}
